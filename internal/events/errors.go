package events

import "errors"

var (
	ErrNotFound     = errors.New("event not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("event belongs to another user")
)
