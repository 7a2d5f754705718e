package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"eventvault-backend/internal/llm"
)

type stubLLM struct {
	gotPrompt string
	reply     string
	err       error
}

func (s *stubLLM) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.reply, s.err
}

func TestSummarize_NilClientIsMissingCredential(t *testing.T) {
	s := &Summarizer{}
	if _, err := s.Summarize(context.Background(), "text"); !errors.Is(err, llm.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}

	var nilSummarizer *Summarizer
	if _, err := nilSummarizer.Summarize(context.Background(), "text"); !errors.Is(err, llm.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential for nil summarizer, got %v", err)
	}
}

func TestSummarize_ParsesFencedReply(t *testing.T) {
	stub := &stubLLM{reply: "```json\n{\"summary\":\"DJ services for reception.\"}\n```"}
	s := &Summarizer{LLM: stub}

	res, err := s.Summarize(context.Background(), "contract body")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if res.Summary != "DJ services for reception." {
		t.Fatalf("summary = %q", res.Summary)
	}
	if !strings.Contains(stub.gotPrompt, "contract body") {
		t.Fatalf("prompt missing contract text")
	}
}

func TestSummarize_BackendErrorPropagates(t *testing.T) {
	wantErr := errors.New("rate limited")
	s := &Summarizer{LLM: &stubLLM{err: wantErr}}

	if _, err := s.Summarize(context.Background(), "text"); !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestSummarize_ProseReplyIsError(t *testing.T) {
	s := &Summarizer{LLM: &stubLLM{reply: "Sorry, I cannot help with that."}}
	if _, err := s.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected parse error for prose reply")
	}
}
