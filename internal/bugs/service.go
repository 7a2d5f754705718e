package bugs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements the bug tracker. Access control lives in the handler;
// the service only validates payloads.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateInput is a bug report payload.
type CreateInput struct {
	ElementSelector string `json:"elementSelector"`
	ElementText     string `json:"elementText"`
	Description     string `json:"description"`
}

// Create records a PENDING bug report.
func (s *Service) Create(ctx context.Context, reporterID string, in CreateInput) (Bug, error) {
	if strings.TrimSpace(reporterID) == "" {
		return Bug{}, fmt.Errorf("%w: reporter id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ElementSelector) == "" {
		return Bug{}, fmt.Errorf("%w: element selector is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Description) == "" {
		return Bug{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	bug := Bug{
		ID:              uuid.NewString(),
		ReporterID:      reporterID,
		ElementSelector: strings.TrimSpace(in.ElementSelector),
		ElementText:     strings.TrimSpace(in.ElementText),
		Description:     strings.TrimSpace(in.Description),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, bug); err != nil {
		return Bug{}, err
	}
	return bug, nil
}

// List returns all bug reports.
func (s *Service) List(ctx context.Context) ([]Bug, error) {
	return s.Repo.List(ctx)
}

// Resolve marks a bug FIXED.
func (s *Service) Resolve(ctx context.Context, id string) (Bug, error) {
	if strings.TrimSpace(id) == "" {
		return Bug{}, ErrInvalidInput
	}
	bug, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Bug{}, err
	}
	bug.Status = StatusFixed
	bug.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, bug); err != nil {
		return Bug{}, err
	}
	return bug, nil
}
