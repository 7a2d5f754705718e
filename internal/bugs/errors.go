package bugs

import "errors"

var (
	ErrNotFound     = errors.New("bug not found")
	ErrInvalidInput = errors.New("invalid input")
)
