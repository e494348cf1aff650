package repo

import "errors"

var (
	ErrResultNotFound = errors.New("result not found")
	ErrResultExists   = errors.New("result value already taken")
	ErrUserNotFound   = errors.New("user not found")
)
