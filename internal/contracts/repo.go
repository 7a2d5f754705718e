package contracts

import "context"

// Repo defines persistence operations for contracts.
type Repo interface {
	Create(ctx context.Context, c Contract) error
	GetByID(ctx context.Context, id string) (Contract, error)
	ListByEvent(ctx context.Context, eventID string) ([]Contract, error)
	Update(ctx context.Context, c Contract) error
}
