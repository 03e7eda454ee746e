package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotFound        = errors.New("not found")
	ErrUnreachable     = errors.New("server unreachable")
	ErrNotConnected    = errors.New("socket not connected")
)
