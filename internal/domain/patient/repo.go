package patient

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Patient, error)
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	Update(ctx context.Context, id string, patch Patch) (*Patient, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}
