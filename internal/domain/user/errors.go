package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered in this organization")
	ErrInvalidRole  = errors.New("invalid role")
)
