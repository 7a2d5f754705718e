package events

import "context"

type Repo interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	ListByUser(ctx context.Context, userID string) ([]Event, error)
	Update(ctx context.Context, e Event) error
}
