package services

import "errors"

var (
	ErrUserAlreadyExists  = errors.New("a user with the same id or email already exists")
	ErrPasswordInvalid    = errors.New("password must be at least 8 characters")
	ErrEmailInvalid       = errors.New("email is not valid")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)
