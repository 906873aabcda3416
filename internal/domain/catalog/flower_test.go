package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFlowerDeduct(t *testing.T) {
	f, err := NewFlower("flower-rose", "Red Rose", decimal.NewFromInt(30000), 5)
	require.NoError(t, err)

	require.NoError(t, f.Deduct(3))
	require.Equal(t, 2, f.AvailableQuantity)

	require.ErrorIs(t, f.Deduct(3), ErrInsufficientStock)
	require.Equal(t, 2, f.AvailableQuantity)

	require.ErrorIs(t, f.Deduct(0), ErrInvalidQuantity)
	require.ErrorIs(t, f.Deduct(-1), ErrInvalidQuantity)
}

func TestFlowerSellable(t *testing.T) {
	f, err := NewFlower("flower-rose", "Red Rose", decimal.NewFromInt(30000), 5)
	require.NoError(t, err)
	require.True(t, f.Sellable())

	f.Deactivate()
	require.False(t, f.Sellable())

	f.State = LifecycleActive
	f.MarkDeleted()
	require.False(t, f.Sellable())
}

func TestNewFlowerRejectsNegativeStock(t *testing.T) {
	_, err := NewFlower("flower-rose", "Red Rose", decimal.NewFromInt(30000), -1)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}
