package order_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	apporder "github.com/floramart/floramart/internal/application/order"
	"github.com/floramart/floramart/internal/domain/address"
	"github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/catalog"
	domain "github.com/floramart/floramart/internal/domain/order"
	"github.com/floramart/floramart/internal/domain/voucher"
	"github.com/floramart/floramart/internal/infrastructure/memory"
)

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type stubURLBuilder struct {
	url string
	err error
}

func (b *stubURLBuilder) BuildPaymentURL(context.Context, apporder.PaymentURLRequest) (string, error) {
	return b.url, b.err
}

type failingVoucherRepo struct {
	*memory.VoucherRepository
}

func (r *failingVoucherRepo) Save(context.Context, *voucher.Grant) error {
	return errors.New("voucher store unavailable")
}

type fixture struct {
	orders    *memory.OrderRepository
	carts     *memory.CartRepository
	flowers   *memory.CatalogRepository
	vouchers  *memory.VoucherRepository
	addresses *memory.AddressRepository
	gateway   *stubURLBuilder
	svc       *apporder.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		orders:    memory.NewOrderRepository(),
		carts:     memory.NewCartRepository(),
		flowers:   memory.NewCatalogRepository(),
		vouchers:  memory.NewVoucherRepository(),
		addresses: memory.NewAddressRepository(),
		gateway:   &stubURLBuilder{url: "https://pay.example/redirect"},
	}
	tx := memory.NewTxManager(f.orders, f.carts, f.flowers, f.vouchers)
	f.svc = apporder.NewService(
		f.orders, f.carts, f.flowers, f.vouchers, f.addresses,
		tx, f.gateway, &seqIDGen{}, nil,
	)
	return f
}

func (f *fixture) seedCheckout(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.addresses.Save(ctx, &address.Address{
		ID: "addr-1", UserID: "user-1", Recipient: "An Nguyen", Detail: "12 Hoa Street",
	}))

	rose, err := catalog.NewFlower("flower-rose", "Red Rose", decimal.NewFromInt(30000), 10)
	require.NoError(t, err)
	tulip, err := catalog.NewFlower("flower-tulip", "Tulip", decimal.NewFromInt(40000), 5)
	require.NoError(t, err)
	require.NoError(t, f.flowers.Save(ctx, rose))
	require.NoError(t, f.flowers.Save(ctx, tulip))

	roseLine, err := cart.NewItem("line-1", "user-1", "flower-rose", 2, decimal.NewFromInt(30000))
	require.NoError(t, err)
	tulipLine, err := cart.NewItem("line-2", "user-1", "flower-tulip", 1, decimal.NewFromInt(40000))
	require.NoError(t, err)
	require.NoError(t, f.carts.Save(ctx, roseLine))
	require.NoError(t, f.carts.Save(ctx, tulipLine))
}

func checkoutInput() apporder.CreateOrderInput {
	return apporder.CreateOrderInput{
		UserID:         "user-1",
		PhoneNumber:    "+84900000001",
		PaymentMethod:  "vnpay",
		DeliveryMethod: "standard",
		AddressID:      "addr-1",
		ShippingFee:    decimal.NewFromInt(30000),
		ClientIP:       "203.0.113.7",
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	ctx := context.Background()

	res, err := f.svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)
	require.NotNil(t, res.Order)
	require.Equal(t, "https://pay.example/redirect", res.PaymentURL)

	ord := res.Order
	require.Equal(t, domain.PaymentPending, ord.PaymentStatus)
	require.Len(t, ord.Details, 2)
	require.True(t, ord.Subtotal.Equal(decimal.NewFromInt(100000)), "subtotal %s", ord.Subtotal)
	require.True(t, ord.Discount.IsZero())
	require.True(t, ord.Total.Equal(decimal.NewFromInt(130000)), "total %s", ord.Total)

	// Details snapshot the cart line price, not the live catalog price.
	require.Equal(t, "flower-rose", ord.Details[0].FlowerID)
	require.True(t, ord.Details[0].UnitPrice.Equal(decimal.NewFromInt(30000)))
	require.Equal(t, 2, ord.Details[0].Quantity)

	persisted, err := f.orders.FindByIDForUser(ctx, ord.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPending, persisted.PaymentStatus)

	rose, err := f.flowers.FindByID(ctx, "flower-rose")
	require.NoError(t, err)
	require.Equal(t, 8, rose.AvailableQuantity)
	tulip, err := f.flowers.FindByID(ctx, "flower-tulip")
	require.NoError(t, err)
	require.Equal(t, 4, tulip.AvailableQuantity)

	// The cart survives checkout; only a confirmed payment clears it.
	lines, err := f.carts.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.addresses.Save(ctx, &address.Address{ID: "addr-1", UserID: "user-1"}))

	_, err := f.svc.CreateOrder(ctx, checkoutInput())
	require.ErrorIs(t, err, cart.ErrEmpty)
}

func TestCreateOrderInvalidAddress(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	ctx := context.Background()

	input := checkoutInput()
	input.AddressID = "addr-of-someone-else"
	_, err := f.svc.CreateOrder(ctx, input)
	require.ErrorIs(t, err, apporder.ErrInvalidAddress)
}

func TestCreateOrderUnavailableFlower(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	ctx := context.Background()

	rose, err := f.flowers.FindByID(ctx, "flower-rose")
	require.NoError(t, err)
	rose.Deactivate()
	require.NoError(t, f.flowers.Save(ctx, rose))

	_, err = f.svc.CreateOrder(ctx, checkoutInput())
	require.ErrorIs(t, err, catalog.ErrUnavailable)

	orders, err := f.orders.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	ctx := context.Background()

	line, err := f.carts.FindByID(ctx, "line-1")
	require.NoError(t, err)
	require.NoError(t, line.ChangeQuantity(50))
	require.NoError(t, f.carts.Save(ctx, line))

	_, err = f.svc.CreateOrder(ctx, checkoutInput())
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)

	rose, err := f.flowers.FindByID(ctx, "flower-rose")
	require.NoError(t, err)
	require.Equal(t, 10, rose.AvailableQuantity)
	tulip, err := f.flowers.FindByID(ctx, "flower-tulip")
	require.NoError(t, err)
	require.Equal(t, 5, tulip.AvailableQuantity)
}

func TestCreateOrderWithVoucher(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	ctx := context.Background()
	now := time.Now().UTC()

	grant := voucher.NewGrant(
		"grant-1", "user-1", "SPRING10",
		decimal.NewFromInt(10),
		now.Add(-time.Hour), now.Add(time.Hour), 1,
	)
	require.NoError(t, f.vouchers.Save(ctx, grant))

	input := checkoutInput()
	input.VoucherGrantID = "grant-1"

	res, err := f.svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	require.True(t, res.Order.Discount.Equal(decimal.NewFromInt(10000)), "discount %s", res.Order.Discount)
	require.True(t, res.Order.Total.Equal(decimal.NewFromInt(120000)), "total %s", res.Order.Total)
	require.Equal(t, "grant-1", res.Order.VoucherGrantID)

	// The single use is spent, so the grant flips to inactive.
	redeemed, err := f.vouchers.FindByIDForUser(ctx, "grant-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, redeemed.UsageCount)
	require.Equal(t, 0, redeemed.RemainingCount)
	require.Equal(t, voucher.StateInactive, redeemed.State)

	// A second checkout with the exhausted grant succeeds at full price.
	f.seedCheckout(t)
	res2, err := f.svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	require.True(t, res2.Order.Discount.IsZero())
	require.True(t, res2.Order.Total.Equal(decimal.NewFromInt(130000)))
	require.Empty(t, res2.Order.VoucherGrantID)
}

func TestCreateOrderUnknownVoucherIgnored(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	ctx := context.Background()

	input := checkoutInput()
	input.VoucherGrantID = "grant-missing"

	res, err := f.svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	require.True(t, res.Order.Discount.IsZero())
	require.True(t, res.Order.Total.Equal(decimal.NewFromInt(130000)))
}

func TestCreateOrderRollsBackOnVoucherSaveFailure(t *testing.T) {
	orders := memory.NewOrderRepository()
	carts := memory.NewCartRepository()
	flowers := memory.NewCatalogRepository()
	vouchers := memory.NewVoucherRepository()
	addresses := memory.NewAddressRepository()
	tx := memory.NewTxManager(orders, carts, flowers, vouchers)

	svc := apporder.NewService(
		orders, carts, flowers, vouchers, addresses,
		tx, &stubURLBuilder{url: "https://pay.example/redirect"},
		&seqIDGen{}, nil,
	)

	f := &fixture{
		orders: orders, carts: carts, flowers: flowers,
		vouchers: vouchers, addresses: addresses, svc: svc,
	}
	f.seedCheckout(t)
	ctx := context.Background()
	now := time.Now().UTC()

	grant := voucher.NewGrant(
		"grant-1", "user-1", "SPRING10",
		decimal.NewFromInt(10),
		now.Add(-time.Hour), now.Add(time.Hour), 1,
	)
	require.NoError(t, vouchers.Save(ctx, grant))

	// Swap in a service whose voucher writes fail inside the transaction.
	broken := apporder.NewService(
		orders, carts, flowers, &failingVoucherRepo{VoucherRepository: vouchers}, addresses,
		tx, &stubURLBuilder{url: "https://pay.example/redirect"},
		&seqIDGen{}, nil,
	)

	input := checkoutInput()
	input.VoucherGrantID = "grant-1"
	_, err := broken.CreateOrder(ctx, input)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "voucher store unavailable"))

	// Nothing written inside the failed scope survives.
	placed, err := orders.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, placed)

	rose, err := flowers.FindByID(ctx, "flower-rose")
	require.NoError(t, err)
	require.Equal(t, 10, rose.AvailableQuantity)

	untouched, err := vouchers.FindByIDForUser(ctx, "grant-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, 0, untouched.UsageCount)
	require.Equal(t, voucher.StateActive, untouched.State)
}

func TestCreateOrderSurvivesPaymentURLFailure(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	f.gateway.url = ""
	f.gateway.err = errors.New("gateway misconfigured")
	ctx := context.Background()

	res, err := f.svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)
	require.Empty(t, res.PaymentURL)

	// The order committed before the URL was attempted.
	persisted, err := f.orders.FindByID(ctx, res.Order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentPending, persisted.PaymentStatus)
}

func TestGetOrderScopedToUser(t *testing.T) {
	f := newFixture(t)
	f.seedCheckout(t)
	ctx := context.Background()

	res, err := f.svc.CreateOrder(ctx, checkoutInput())
	require.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, res.Order.ID, "user-2")
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.svc.GetOrder(ctx, res.Order.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, res.Order.ID, got.ID)
}
