package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
	ErrInvalidAmount   = errors.New("order: amount must be zero or greater")
)

// PaymentStatus follows the gateway-facing lifecycle. The only transitions in
// normal flow are pending -> paid and pending -> failed; both are
// idempotent-by-value because the gateway may redeliver its callback.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Detail freezes one cart line into the order: price and quantity as they
// were at checkout, decoupled from later catalog changes.
type Detail struct {
	ID        string
	OrderID   string
	FlowerID  string
	UnitPrice decimal.Decimal
	Quantity  int
}

type Order struct {
	ID             string
	UserID         string
	PhoneNumber    string
	PaymentMethod  string
	DeliveryMethod string
	AddressID      string
	// VoucherGrantID is empty when no applicable grant discounted the order.
	VoucherGrantID string
	PaymentStatus  PaymentStatus
	Subtotal       decimal.Decimal
	ShippingFee    decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
	Details        []Detail
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func New(id, userID string, details []Detail) (*Order, error) {
	if len(details) == 0 {
		return nil, ErrInvalidQuantity
	}
	for _, d := range details {
		if d.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if d.UnitPrice.IsNegative() {
			return nil, ErrInvalidAmount
		}
	}
	now := time.Now().UTC()
	return &Order{
		ID:            id,
		UserID:        userID,
		PaymentStatus: PaymentPending,
		Details:       details,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (o *Order) MarkPaid() {
	o.PaymentStatus = PaymentPaid
	o.touch()
}

func (o *Order) MarkPaymentFailed() {
	o.PaymentStatus = PaymentFailed
	o.touch()
}

func (o *Order) MarkCancelled() {
	o.PaymentStatus = PaymentCancelled
	o.touch()
}

func (o *Order) Paid() bool {
	return o.PaymentStatus == PaymentPaid
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Details = make([]Detail, len(o.Details))
	copy(clone.Details, o.Details)
	return &clone
}
