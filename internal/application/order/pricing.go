package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/voucher"
)

type Totals struct {
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals prices the cart snapshot: subtotal over line totals, a flat
// shipping fee, and a percentage discount when an applicable grant is given.
// An inapplicable or nil grant contributes zero discount.
func ComputeTotals(lines []cart.Item, shippingFee decimal.Decimal, grant *voucher.Grant, now time.Time) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}

	discount := decimal.Zero
	if grant != nil && grant.Applicable(now) {
		discount = grant.DiscountAmount(subtotal)
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Discount:    discount,
		Total:       subtotal.Add(shippingFee).Sub(discount),
	}
}
