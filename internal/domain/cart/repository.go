package cart

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	FindByID(ctx context.Context, id string) (*Item, error)
	FindByUserAndFlower(ctx context.Context, userID, flowerID string) (*Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
	// ClearByUser removes every line for the user. Clearing an already empty
	// cart is a no-op, which keeps payment-callback redelivery harmless.
	ClearByUser(ctx context.Context, userID string) error
}
