package catalog

import "context"

type Repository interface {
	FindByID(ctx context.Context, id string) (*Flower, error)
	Save(ctx context.Context, flower *Flower) error
	// DeductStock performs a guarded decrement: it must fail with
	// ErrInsufficientStock instead of letting available quantity go negative,
	// even under concurrent checkouts.
	DeductStock(ctx context.Context, id string, quantity int) error
}
