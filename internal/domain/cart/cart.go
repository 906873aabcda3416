package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("cart: item not found")
	ErrEmpty           = errors.New("cart: cart is empty")
	ErrInvalidQuantity = errors.New("cart: quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("cart: unit price must be zero or greater")
)

// Item is one cart line. UnitPrice is snapshotted at add time so the line is
// insulated from later catalog price changes until checkout freezes it into
// an order detail.
type Item struct {
	ID        string
	UserID    string
	FlowerID  string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewItem(id, userID, flowerID string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	now := time.Now().UTC()
	return &Item{
		ID:        id,
		UserID:    userID,
		FlowerID:  flowerID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (i *Item) ChangeQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.touch()
	return nil
}

// LineTotal is the snapshot price multiplied by quantity.
func (i *Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now().UTC()
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}
