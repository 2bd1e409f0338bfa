package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("either username or password is incorrect")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("you don't have permission to access this task")
	ErrConflict           = errors.New("account already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrSessionNotFound    = errors.New("session not found")
)
