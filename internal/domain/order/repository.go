package order

import "context"

type Repository interface {
	// Insert persists the order together with its details.
	Insert(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByIDForUser(ctx context.Context, id, userID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error
}
