// Package bus is an in-memory event bus for post-commit fanout to other
// contexts (audit, metrics). It is not durable: delivery is best effort and
// nothing in the checkout path waits on it.
package bus

import (
	"context"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"github.com/floramart/floramart/internal/domain/event"
)

const queueSize = 1024

type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]event.Handler
	queue     chan event.Event
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	log       *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subs:  make(map[string][]event.Handler),
		queue: make(chan event.Event, queueSize),
		done:  make(chan struct{}),
		log:   logger.With(zap.String("component", "event_bus")),
	}
}

func (b *Bus) Subscribe(eventName string, h event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

// Publish enqueues the event, failing fast when the queue is full or the
// caller's context is done.
func (b *Bus) Publish(ctx context.Context, e event.Event) error {
	select {
	case b.queue <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)
		b.cancel = cancel
		go b.run(runCtx)
	})
}

func (b *Bus) Stop(context.Context) {
	b.stopOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		<-b.done
	})
}

func (b *Bus) run(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-b.queue:
			b.dispatch(ctx, e)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, e event.Event) {
	b.mu.RLock()
	handlers := b.subs[e.EventName()]
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event_handler_panic",
						zap.String("event", e.EventName()),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()),
					)
				}
			}()
			if err := h(ctx, e); err != nil {
				b.log.Warn("event_handler_failed",
					zap.String("event", e.EventName()),
					zap.Error(err),
				)
			}
		}()
	}
}

var _ event.Publisher = (*Bus)(nil)
var _ event.Subscriber = (*Bus)(nil)
