// Package audit subscribes to order and payment events, writing an audit log
// line and business metrics for each. It lives entirely off the request path.
package audit

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/floramart/floramart/internal/domain/event"
	domorder "github.com/floramart/floramart/internal/domain/order"
)

type Worker struct {
	subscriber event.Subscriber
	log        *zap.Logger
	placed     *prometheus.CounterVec
	reconciled *prometheus.CounterVec
}

func New(subscriber event.Subscriber, logger *zap.Logger, placed, reconciled *prometheus.CounterVec) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		subscriber: subscriber,
		log:        logger.With(zap.String("component", "audit_worker")),
		placed:     placed,
		reconciled: reconciled,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domorder.OrderPlacedEvent{}.EventName(), w.handleOrderPlaced)
	w.subscriber.Subscribe(domorder.PaymentReconciledEvent{}.EventName(), w.handlePaymentReconciled)
}

func (w *Worker) handleOrderPlaced(_ context.Context, e event.Event) error {
	evt, ok := e.(domorder.OrderPlacedEvent)
	if !ok {
		return nil
	}
	if w.placed != nil {
		w.placed.WithLabelValues(evt.PaymentMethod).Inc()
	}
	w.log.Info("order_placed",
		zap.String("order_id", evt.OrderID),
		zap.String("user_id", evt.UserID),
		zap.String("total", evt.Total.String()),
		zap.Int("line_count", evt.LineCount),
		zap.Bool("voucher_applied", evt.VoucherGrantID != ""),
	)
	return nil
}

func (w *Worker) handlePaymentReconciled(_ context.Context, e event.Event) error {
	evt, ok := e.(domorder.PaymentReconciledEvent)
	if !ok {
		return nil
	}
	if w.reconciled != nil {
		w.reconciled.WithLabelValues(string(evt.Status)).Inc()
	}
	w.log.Info("payment_reconciled",
		zap.String("order_id", evt.OrderID),
		zap.String("user_id", evt.UserID),
		zap.String("status", string(evt.Status)),
	)
	return nil
}
