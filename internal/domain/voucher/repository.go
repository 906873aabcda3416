package voucher

import "context"

type Repository interface {
	// FindByIDForUser resolves a grant only when it belongs to the user.
	FindByIDForUser(ctx context.Context, id, userID string) (*Grant, error)
	Save(ctx context.Context, grant *Grant) error
}
