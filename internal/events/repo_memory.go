package events

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Event
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Event)}
}

// Create stores a new event.
func (r *MemoryRepo) Create(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[e.ID] = cloneEvent(e)
	return nil
}

// GetByID returns an event by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.data[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return cloneEvent(e), nil
}

// ListByUser returns a user's events, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0)
	for _, e := range r.data {
		if e.UserID == userID {
			out = append(out, cloneEvent(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces an existing event.
func (r *MemoryRepo) Update(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[e.ID]; !ok {
		return ErrNotFound
	}
	r.data[e.ID] = cloneEvent(e)
	return nil
}

func cloneEvent(e Event) Event {
	sections := make([]Section, len(e.Sections))
	for i, s := range e.Sections {
		s.Tasks = append([]Task(nil), s.Tasks...)
		sections[i] = s
	}
	e.Sections = sections
	return e
}
