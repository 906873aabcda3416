package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is emitted after the checkout transaction commits.
// Subscribers in other contexts (audit, metrics) consume it; nothing in the
// checkout path depends on delivery.
type OrderPlacedEvent struct {
	OrderID        string
	UserID         string
	PaymentMethod  string
	VoucherGrantID string
	Total          decimal.Decimal
	LineCount      int
	OccurredAt     time.Time
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:        o.ID,
		UserID:         o.UserID,
		PaymentMethod:  o.PaymentMethod,
		VoucherGrantID: o.VoucherGrantID,
		Total:          o.Total,
		LineCount:      len(o.Details),
		OccurredAt:     time.Now().UTC(),
	}
}

// PaymentReconciledEvent is emitted after a gateway callback has been applied
// to the order, whatever the outcome.
type PaymentReconciledEvent struct {
	OrderID    string
	UserID     string
	Status     PaymentStatus
	OccurredAt time.Time
}

func (PaymentReconciledEvent) EventName() string { return "payment.reconciled" }

func NewPaymentReconciledEvent(o *Order) PaymentReconciledEvent {
	return PaymentReconciledEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.PaymentStatus,
		OccurredAt: time.Now().UTC(),
	}
}
