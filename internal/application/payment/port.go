package payment

import (
	"errors"
	"net/url"
)

// ErrInvalidSignature is returned by gateway adapters when a callback's
// secure hash does not match the re-derived one. No callback field may be
// trusted once this fires.
var ErrInvalidSignature = errors.New("payment: invalid callback signature")

// Callback is the authenticated, parsed form of a gateway return request.
type Callback struct {
	OrderID           string
	ResponseCode      string
	TransactionStatus string
	TransactionNo     string
	BankCode          string
	// Success is set only when both gateway result codes indicate a completed
	// payment.
	Success bool
}

// Gateway verifies and decodes the signed parameter set the payment provider
// appends to its return redirect.
type Gateway interface {
	ParseCallback(params url.Values) (*Callback, error)
}
