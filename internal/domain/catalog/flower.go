package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("catalog: flower not found")
	ErrUnavailable       = errors.New("catalog: flower is not available for sale")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Lifecycle is the single source of truth for a flower's sale state.
// It replaces the soft-delete flag plus status string the storefront used to
// carry, so a deleted-but-active flower cannot be represented.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleInactive Lifecycle = "inactive"
	LifecycleDeleted  Lifecycle = "deleted"
)

func (l Lifecycle) Valid() bool {
	switch l {
	case LifecycleActive, LifecycleInactive, LifecycleDeleted:
		return true
	}
	return false
}

type Flower struct {
	ID                string
	Name              string
	Price             decimal.Decimal
	AvailableQuantity int
	State             Lifecycle
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewFlower(id, name string, price decimal.Decimal, quantity int) (*Flower, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now().UTC()
	return &Flower{
		ID:                id,
		Name:              name,
		Price:             price,
		AvailableQuantity: quantity,
		State:             LifecycleActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Sellable reports whether the flower may appear on a new order.
func (f *Flower) Sellable() bool {
	return f.State == LifecycleActive
}

// Deduct lowers available stock, refusing to go negative.
func (f *Flower) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > f.AvailableQuantity {
		return ErrInsufficientStock
	}
	f.AvailableQuantity -= quantity
	f.touch()
	return nil
}

func (f *Flower) Deactivate() {
	f.State = LifecycleInactive
	f.touch()
}

func (f *Flower) MarkDeleted() {
	f.State = LifecycleDeleted
	f.touch()
}

func (f *Flower) touch() {
	f.UpdatedAt = time.Now().UTC()
}

func (f *Flower) Clone() *Flower {
	if f == nil {
		return nil
	}
	clone := *f
	return &clone
}
