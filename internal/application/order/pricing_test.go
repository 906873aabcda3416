package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/voucher"
)

func cartLines(t *testing.T) []cart.Item {
	t.Helper()
	roses, err := cart.NewItem("line-1", "user-1", "flower-rose", 2, decimal.NewFromInt(30000))
	require.NoError(t, err)
	tulips, err := cart.NewItem("line-2", "user-1", "flower-tulip", 1, decimal.NewFromInt(40000))
	require.NoError(t, err)
	return []cart.Item{*roses, *tulips}
}

func TestComputeTotals(t *testing.T) {
	now := time.Now().UTC()
	shipping := decimal.NewFromInt(30000)

	tenPercent := voucher.NewGrant(
		"grant-1", "user-1", "SPRING10",
		decimal.NewFromInt(10),
		now.Add(-time.Hour), now.Add(time.Hour), 5,
	)
	expired := voucher.NewGrant(
		"grant-2", "user-1", "OLD10",
		decimal.NewFromInt(10),
		now.Add(-48*time.Hour), now.Add(-24*time.Hour), 5,
	)

	tests := []struct {
		name         string
		grant        *voucher.Grant
		wantSubtotal int64
		wantDiscount int64
		wantTotal    int64
	}{
		{"no voucher", nil, 100000, 0, 130000},
		{"ten percent voucher", tenPercent, 100000, 10000, 120000},
		{"expired voucher contributes nothing", expired, 100000, 0, 130000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(cartLines(t), shipping, tt.grant, now)
			require.True(t, got.Subtotal.Equal(decimal.NewFromInt(tt.wantSubtotal)), "subtotal %s", got.Subtotal)
			require.True(t, got.ShippingFee.Equal(shipping))
			require.True(t, got.Discount.Equal(decimal.NewFromInt(tt.wantDiscount)), "discount %s", got.Discount)
			require.True(t, got.Total.Equal(decimal.NewFromInt(tt.wantTotal)), "total %s", got.Total)
		})
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	got := ComputeTotals(nil, decimal.NewFromInt(30000), nil, time.Now().UTC())
	require.True(t, got.Subtotal.IsZero())
	require.True(t, got.Total.Equal(decimal.NewFromInt(30000)))
}
