package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventvault-backend/internal/shared/telemetry"
)

// CreateInput is the wizard payload for a new event.
type CreateInput struct {
	Name         string `json:"name"`
	ClientName   string `json:"clientName"`
	Type         string `json:"type"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	VenueName    string `json:"venueName"`
	VenueAddress string `json:"venueAddress"`
	Timezone     string `json:"timezone"`
	TemplateID   string `json:"templateId"`
}

// Service implements event creation and retrieval.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create makes a PLANNING event from the wizard payload, seeding checklist
// sections from the chosen template. An unknown template id means no
// sections, not an error.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Event, error) {
	e, err := s.build(userID, in, StatusPlanning)
	if err != nil {
		return Event{}, err
	}

	if in.TemplateID != "" {
		if tpl, ok := TemplateByID(in.TemplateID); ok {
			e.Sections = tpl.Sections
		}
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	telemetry.Info("event.created", map[string]any{
		"event_id": e.ID,
		"user_id":  userID,
		"template": in.TemplateID,
	})
	return e, nil
}

// SaveDraft persists a partially filled wizard payload as a DRAFT event.
// Drafts never get template sections.
func (s *Service) SaveDraft(ctx context.Context, userID string, in CreateInput) (Event, error) {
	e, err := s.build(userID, in, StatusDraft)
	if err != nil {
		return Event{}, err
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// ListByUser returns the caller's events.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Event, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// GetByID returns one event, enforcing ownership.
func (s *Service) GetByID(ctx context.Context, userID, eventID string) (Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return Event{}, ErrInvalidInput
	}
	e, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return Event{}, err
	}
	if e.UserID != userID {
		return Event{}, ErrForbidden
	}
	return e, nil
}

func (s *Service) build(userID string, in CreateInput, status string) (Event, error) {
	if strings.TrimSpace(userID) == "" {
		return Event{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" {
		return Event{}, fmt.Errorf("%w: event name is required", ErrInvalidInput)
	}

	eventType := strings.TrimSpace(in.Type)
	if eventType == "" {
		eventType = "Other"
	}
	timezone := strings.TrimSpace(in.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	now := time.Now().UTC()
	return Event{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		ClientName:   strings.TrimSpace(in.ClientName),
		Type:         eventType,
		Status:       status,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		VenueName:    strings.TrimSpace(in.VenueName),
		VenueAddress: strings.TrimSpace(in.VenueAddress),
		Timezone:     timezone,
		Sections:     []Section{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
