package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrNotFound           = errors.New("user not found")
)
