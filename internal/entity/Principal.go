package entity

// Principal is the authenticated actor behind a request. It is passed
// explicitly into every service operation instead of being read from
// ambient request state.
type Principal struct {
	UserID int64
	Email  string
	Admin  bool
}
