package order

import (
	"context"

	"github.com/shopspring/decimal"
)

type IDGenerator interface {
	NewID() string
}

// TxManager scopes a function to one database transaction. Repository calls
// made with the derived context share that transaction; any error rolls the
// whole scope back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type PaymentURLRequest struct {
	OrderID   string
	Amount    decimal.Decimal
	OrderInfo string
	ClientIP  string
}

// PaymentURLBuilder produces the signed redirect URL the buyer's browser
// follows to the gateway. No network call is involved.
type PaymentURLBuilder interface {
	BuildPaymentURL(ctx context.Context, req PaymentURLRequest) (string, error)
}
