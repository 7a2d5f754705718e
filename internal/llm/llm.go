package llm

import (
	"context"
	"errors"
)

// Client abstracts generative-text providers.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ErrMissingCredential is returned when no API key is configured. Callers
// must not attempt a network call in that case.
var ErrMissingCredential = errors.New("missing credential")
