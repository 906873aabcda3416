package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/floramart/floramart/internal/domain/cart"
	"github.com/floramart/floramart/internal/domain/event"
	domain "github.com/floramart/floramart/internal/domain/order"
	"github.com/floramart/floramart/internal/pkg/logging"
)

const (
	tracerName     = "floramart.payment"
	publishTimeout = 300 * time.Millisecond
)

// ReconcileStatus is the final status reported back to the gateway. The
// gateway cannot act on structured errors, so rejections are plain statuses.
type ReconcileStatus string

const (
	StatusPaid             ReconcileStatus = "paid"
	StatusFailed           ReconcileStatus = "failed"
	StatusInvalidSignature ReconcileStatus = "invalid_signature"
	StatusOrderNotFound    ReconcileStatus = "order_not_found"
)

type Service struct {
	orders    domain.Repository
	carts     cart.Repository
	gateway   Gateway
	publisher event.Publisher
}

func NewService(orders domain.Repository, carts cart.Repository, gateway Gateway, publisher event.Publisher) *Service {
	return &Service{
		orders:    orders,
		carts:     carts,
		gateway:   gateway,
		publisher: publisher,
	}
}

// Reconcile applies one gateway callback to its order. The handler is
// idempotent: redelivered callbacks re-read the already-final status, and the
// only side effect beyond the status write is cart clearing, which is a no-op
// on an empty cart. Inventory is never touched here; it was adjusted when the
// order was created.
func (s *Service) Reconcile(ctx context.Context, params url.Values) (ReconcileStatus, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))

	ctx, span := otel.Tracer(tracerName).Start(ctx, "UC.ReconcileCallback")
	defer span.End()

	cb, err := s.gateway.ParseCallback(params)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			logger.Warn("callback_signature_invalid")
			return StatusInvalidSignature, nil
		}
		return StatusInvalidSignature, fmt.Errorf("payment: parse callback: %w", err)
	}

	logger = logger.With(zap.String("order_id", cb.OrderID))
	span.SetAttributes(
		attribute.String("order.id", cb.OrderID),
		attribute.String("gateway.response_code", cb.ResponseCode),
	)

	ord, err := s.orders.FindByID(ctx, cb.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("callback_order_not_found")
			return StatusOrderNotFound, nil
		}
		return StatusOrderNotFound, fmt.Errorf("payment: resolve order: %w", err)
	}

	// A callback arriving after the order is already paid must not downgrade
	// it, whatever the redelivered result codes say.
	if ord.Paid() {
		if err := s.carts.ClearByUser(ctx, ord.UserID); err != nil {
			logger.Warn("cart_clear_failed", zap.Error(err))
		}
		logger.Info("callback_replayed", zap.String("status", string(domain.PaymentPaid)))
		return StatusPaid, nil
	}

	if cb.Success {
		ord.MarkPaid()
		if err := s.orders.UpdatePaymentStatus(ctx, ord.ID, domain.PaymentPaid); err != nil {
			return StatusFailed, fmt.Errorf("payment: persist status: %w", err)
		}
		// Clearing is unconditional on the owning user; the cart may have
		// changed since checkout but confirmed payment always empties it.
		if err := s.carts.ClearByUser(ctx, ord.UserID); err != nil {
			logger.Warn("cart_clear_failed", zap.Error(err))
		}
		s.publish(ctx, logger, domain.NewPaymentReconciledEvent(ord))
		logger.Info("payment_reconciled", zap.String("status", string(domain.PaymentPaid)))
		return StatusPaid, nil
	}

	// Failure leaves the cart untouched so the user can retry checkout with
	// the same items.
	ord.MarkPaymentFailed()
	if err := s.orders.UpdatePaymentStatus(ctx, ord.ID, domain.PaymentFailed); err != nil {
		return StatusFailed, fmt.Errorf("payment: persist status: %w", err)
	}
	s.publish(ctx, logger, domain.NewPaymentReconciledEvent(ord))
	logger.Info("payment_reconciled",
		zap.String("status", string(domain.PaymentFailed)),
		zap.String("response_code", cb.ResponseCode),
	)
	return StatusFailed, nil
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
