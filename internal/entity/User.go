package entity

type User struct {
	ID       int64  `json:"id" xml:"id"`
	Email    string `json:"email" xml:"email"`
	PassHash []byte `json:"-" xml:"-"`
	Admin    bool   `json:"admin" xml:"admin"`
}
