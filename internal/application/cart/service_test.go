package cart_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appcart "github.com/floramart/floramart/internal/application/cart"
	domain "github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/catalog"
	"github.com/floramart/floramart/internal/infrastructure/memory"
)

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func newService(t *testing.T) (*appcart.Service, *memory.CartRepository, *memory.CatalogRepository) {
	t.Helper()
	carts := memory.NewCartRepository()
	flowers := memory.NewCatalogRepository()

	rose, err := catalog.NewFlower("flower-rose", "Red Rose", decimal.NewFromInt(30000), 10)
	require.NoError(t, err)
	require.NoError(t, flowers.Save(context.Background(), rose))

	return appcart.NewService(carts, flowers, &seqIDGen{}), carts, flowers
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	svc, _, flowers := newService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 2})
	require.NoError(t, err)
	require.True(t, item.UnitPrice.Equal(decimal.NewFromInt(30000)))

	// A later catalog price change does not move the existing line.
	rose, err := flowers.FindByID(ctx, "flower-rose")
	require.NoError(t, err)
	rose.Price = decimal.NewFromInt(45000)
	require.NoError(t, flowers.Save(ctx, rose))

	lines, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(30000)))
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	first, err := svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 2})
	require.NoError(t, err)
	second, err := svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 3})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 5, second.Quantity)

	lines, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
}

func TestAddItemRespectsStock(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 8})
	require.NoError(t, err)

	// The merged quantity would exceed what the catalog can supply.
	_, err = svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 5})
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)
}

func TestAddItemUnavailableFlower(t *testing.T) {
	svc, _, flowers := newService(t)
	ctx := context.Background()

	rose, err := flowers.FindByID(ctx, "flower-rose")
	require.NoError(t, err)
	rose.Deactivate()
	require.NoError(t, flowers.Save(ctx, rose))

	_, err = svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 1})
	require.ErrorIs(t, err, catalog.ErrUnavailable)
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 2})
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(ctx, "user-2", item.ID, 3)
	require.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := svc.UpdateQuantity(ctx, "user-1", item.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, updated.Quantity)
}

func TestRemoveItem(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, appcart.AddItemInput{UserID: "user-1", FlowerID: "flower-rose", Quantity: 2})
	require.NoError(t, err)

	require.ErrorIs(t, svc.RemoveItem(ctx, "user-2", item.ID), domain.ErrNotFound)
	require.NoError(t, svc.RemoveItem(ctx, "user-1", item.ID))

	lines, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, lines)
}
