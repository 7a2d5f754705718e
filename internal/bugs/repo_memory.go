package bugs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Bug
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Bug)}
}

// Create stores a new bug report.
func (r *MemoryRepo) Create(ctx context.Context, b Bug) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[b.ID] = b
	return nil
}

// List returns all bug reports, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Bug, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Bug, 0, len(r.data))
	for _, b := range r.data {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID returns a bug by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Bug, error) {
	if err := ctx.Err(); err != nil {
		return Bug{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.data[id]
	if !ok {
		return Bug{}, ErrNotFound
	}
	return b, nil
}

// Update replaces an existing bug.
func (r *MemoryRepo) Update(ctx context.Context, b Bug) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[b.ID]; !ok {
		return ErrNotFound
	}
	r.data[b.ID] = b
	return nil
}
