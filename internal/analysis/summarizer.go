package analysis

import (
	"context"

	"eventvault-backend/internal/llm"
)

// Summarizer turns extracted contract text into a structured Result using a
// generative-text backend. One attempt per call; a failed attempt is final
// until the document is uploaded again.
type Summarizer struct {
	LLM llm.Client
}

// Summarize builds the fixed contract prompt (input capped at
// llm.MaxContractChars), calls the model and parses its JSON reply.
func (s *Summarizer) Summarize(ctx context.Context, text string) (Result, error) {
	if s == nil || s.LLM == nil {
		return Result{}, llm.ErrMissingCredential
	}

	prompt := llm.BuildContractPrompt(text)
	raw, err := s.LLM.GenerateContent(ctx, prompt)
	if err != nil {
		return Result{}, err
	}
	return ParseModelOutput(raw)
}
