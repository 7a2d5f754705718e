package contracts

import "errors"

var (
	// ErrInvalidInput marks requests missing the file or the event id.
	ErrInvalidInput = errors.New("file and event id are required")
	// ErrNotFound marks lookups for contracts that do not exist.
	ErrNotFound = errors.New("contract not found")
)
