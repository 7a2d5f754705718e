package contracts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Contract // contract id -> contract
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Contract)}
}

// Create stores a new contract.
func (r *MemoryRepo) Create(ctx context.Context, c Contract) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[c.ID] = cloneContract(c)
	return nil
}

// GetByID returns a contract by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Contract, error) {
	if err := ctx.Err(); err != nil {
		return Contract{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.data[id]
	if !ok {
		return Contract{}, ErrNotFound
	}
	return cloneContract(c), nil
}

// ListByEvent returns all contracts for an event, oldest first.
func (r *MemoryRepo) ListByEvent(ctx context.Context, eventID string) ([]Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Contract, 0)
	for _, c := range r.data {
		if c.EventID == eventID {
			out = append(out, cloneContract(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces an existing contract.
func (r *MemoryRepo) Update(ctx context.Context, c Contract) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[c.ID]; !ok {
		return ErrNotFound
	}
	r.data[c.ID] = cloneContract(c)
	return nil
}

func cloneContract(c Contract) Contract {
	c.Versions = append([]Version(nil), c.Versions...)
	return c
}
