package bugs

import "context"

type Repo interface {
	Create(ctx context.Context, b Bug) error
	List(ctx context.Context) ([]Bug, error)
	GetByID(ctx context.Context, id string) (Bug, error)
	Update(ctx context.Context, b Bug) error
}
