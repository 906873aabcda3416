package address

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("address: not found")

// Address is a delivery destination from the user's address book. The address
// book itself is managed elsewhere; checkout only needs ownership-checked
// lookup.
type Address struct {
	ID        string
	UserID    string
	Recipient string
	Detail    string
	CreatedAt time.Time
}

type Repository interface {
	FindByIDForUser(ctx context.Context, id, userID string) (*Address, error)
	Save(ctx context.Context, addr *Address) error
}
