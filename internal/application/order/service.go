package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/floramart/floramart/internal/domain/address"
	"github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/catalog"
	"github.com/floramart/floramart/internal/domain/event"
	domain "github.com/floramart/floramart/internal/domain/order"
	"github.com/floramart/floramart/internal/domain/voucher"
	"github.com/floramart/floramart/internal/pkg/logging"
)

const (
	tracerName     = "floramart.order"
	publishTimeout = 300 * time.Millisecond
)

// ErrInvalidAddress is returned when the delivery address cannot be resolved
// for the ordering user.
var ErrInvalidAddress = errors.New("order: delivery address does not belong to user")

type Service struct {
	orders    domain.Repository
	carts     cart.Repository
	flowers   catalog.Repository
	vouchers  voucher.Repository
	addresses address.Repository
	tx        TxManager
	gateway   PaymentURLBuilder
	idGen     IDGenerator
	publisher event.Publisher
	now       func() time.Time
}

func NewService(
	orders domain.Repository,
	carts cart.Repository,
	flowers catalog.Repository,
	vouchers voucher.Repository,
	addresses address.Repository,
	tx TxManager,
	gateway PaymentURLBuilder,
	idGen IDGenerator,
	publisher event.Publisher,
) *Service {
	return &Service{
		orders:    orders,
		carts:     carts,
		flowers:   flowers,
		vouchers:  vouchers,
		addresses: addresses,
		tx:        tx,
		gateway:   gateway,
		idGen:     idGen,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type CreateOrderInput struct {
	UserID         string
	PhoneNumber    string
	PaymentMethod  string
	DeliveryMethod string
	AddressID      string
	VoucherGrantID string
	ShippingFee    decimal.Decimal
	ClientIP       string
}

type CreateOrderResult struct {
	Order *domain.Order
	// PaymentURL may be empty: the order already exists in pending state when
	// redirect-URL generation fails, and payment can be retried out-of-band.
	PaymentURL string
}

// CreateOrder runs the checkout workflow: validate address, cart, catalog
// state and stock, price the cart, then atomically persist the order with its
// details, deduct inventory and redeem the voucher. The cart itself is left
// untouched until the gateway confirms payment.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (_ *CreateOrderResult, err error) {
	logger := logging.FromContext(ctx).With(
		zap.String("component", "order_service"),
		zap.String("user_id", input.UserID),
	)
	logger.Info("create_order_start",
		zap.String("address_id", input.AddressID),
		zap.String("payment_method", input.PaymentMethod),
	)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "UC.CreateOrder")
	span.SetAttributes(attribute.String("order.user_id", input.UserID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if input.UserID == "" {
		return nil, errors.New("order: user id is required")
	}
	if input.ShippingFee.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := s.addresses.FindByIDForUser(ctx, input.AddressID, input.UserID); err != nil {
		if errors.Is(err, address.ErrNotFound) {
			return nil, ErrInvalidAddress
		}
		return nil, fmt.Errorf("order: resolve address: %w", err)
	}

	lines, err := s.carts.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("order: load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, cart.ErrEmpty
	}

	// Every referenced flower must be sellable and in stock before anything
	// is written. Failures are reported per flower.
	for _, line := range lines {
		flower, err := s.flowers.FindByID(ctx, line.FlowerID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return nil, fmt.Errorf("%w: flower %s", catalog.ErrUnavailable, line.FlowerID)
			}
			return nil, fmt.Errorf("order: resolve flower %s: %w", line.FlowerID, err)
		}
		if !flower.Sellable() {
			return nil, fmt.Errorf("%w: flower %s", catalog.ErrUnavailable, flower.ID)
		}
		if line.Quantity > flower.AvailableQuantity {
			return nil, fmt.Errorf("%w: flower %s has %d, requested %d",
				catalog.ErrInsufficientStock, flower.ID, flower.AvailableQuantity, line.Quantity)
		}
	}

	now := s.now()

	// An inapplicable grant is silently ignored with zero discount rather
	// than failing the order. Same for a grant id that does not resolve.
	var grant *voucher.Grant
	if input.VoucherGrantID != "" {
		g, err := s.vouchers.FindByIDForUser(ctx, input.VoucherGrantID, input.UserID)
		switch {
		case err == nil && g.Applicable(now):
			grant = g
		case err != nil && !errors.Is(err, voucher.ErrNotFound):
			return nil, fmt.Errorf("order: resolve voucher: %w", err)
		default:
			logger.Info("voucher_ignored", zap.String("voucher_grant_id", input.VoucherGrantID))
		}
	}

	totals := ComputeTotals(lines, input.ShippingFee, grant, now)

	orderID := s.idGen.NewID()
	details := make([]domain.Detail, 0, len(lines))
	for _, line := range lines {
		details = append(details, domain.Detail{
			ID:        s.idGen.NewID(),
			OrderID:   orderID,
			FlowerID:  line.FlowerID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	entity, err := domain.New(orderID, input.UserID, details)
	if err != nil {
		return nil, fmt.Errorf("order: construct: %w", err)
	}
	entity.PhoneNumber = input.PhoneNumber
	entity.PaymentMethod = input.PaymentMethod
	entity.DeliveryMethod = input.DeliveryMethod
	entity.AddressID = input.AddressID
	entity.Subtotal = totals.Subtotal
	entity.ShippingFee = totals.ShippingFee
	entity.Discount = totals.Discount
	entity.Total = totals.Total
	if grant != nil {
		entity.VoucherGrantID = grant.ID
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.orders.Insert(txCtx, entity); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for _, d := range entity.Details {
			if err := s.flowers.DeductStock(txCtx, d.FlowerID, d.Quantity); err != nil {
				return fmt.Errorf("deduct stock for flower %s: %w", d.FlowerID, err)
			}
		}
		if grant != nil {
			if err := grant.Redeem(now); err != nil {
				return fmt.Errorf("redeem voucher %s: %w", grant.ID, err)
			}
			if err := s.vouchers.Save(txCtx, grant); err != nil {
				return fmt.Errorf("save voucher %s: %w", grant.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("create_order_tx_failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("order: %w", err)
	}

	span.SetAttributes(attribute.String("order.id", entity.ID))

	// Best effort: the order is already committed, so a gateway failure only
	// costs the redirect URL, never the order.
	paymentURL, urlErr := s.gateway.BuildPaymentURL(ctx, PaymentURLRequest{
		OrderID:   entity.ID,
		Amount:    entity.Total,
		OrderInfo: fmt.Sprintf("Thanh toan don hang %s", entity.ID),
		ClientIP:  input.ClientIP,
	})
	if urlErr != nil {
		logger.Warn("payment_url_failed", zap.String("order_id", entity.ID), zap.Error(urlErr))
		paymentURL = ""
	}

	s.publish(ctx, logger, domain.NewOrderPlacedEvent(entity))

	logger.Info("create_order_success",
		zap.String("order_id", entity.ID),
		zap.String("total", entity.Total.String()),
		zap.Bool("voucher_applied", grant != nil),
	)
	return &CreateOrderResult{Order: entity, PaymentURL: paymentURL}, nil
}

// GetOrder returns the order only when it belongs to the user.
func (s *Service) GetOrder(ctx context.Context, id, userID string) (*domain.Order, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.orders.FindByIDForUser(ctx, id, userID)
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) publish(ctx context.Context, logger *zap.Logger, e event.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, e); err != nil {
		logger.Warn("event_publish_failed", zap.String("event", e.EventName()), zap.Error(err))
	}
}

// WithClock overrides the service clock, primarily for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}
