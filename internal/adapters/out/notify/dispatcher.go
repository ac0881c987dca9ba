// Package notify delivers order notifications outside the request path.
//
// Command handlers hand notifications to a Dispatcher, which only enqueues them. A relay job
// periodically flushes the queue into a Sink such as Kafka. Delivery failures are logged and
// never reach the caller that triggered the notification.
package notify

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"
)

// Sink is the final destination of a notification.
type Sink interface {
	Deliver(ctx context.Context, n ports.Notification) error
}

// Dispatcher is a bounded, non-blocking notification queue implementing ports.NotificationSink.
type Dispatcher struct {
	queue  chan ports.Notification
	sink   Sink
	logger *slog.Logger
}

func NewDispatcher(sink Sink, queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		queue:  make(chan ports.Notification, queueSize),
		sink:   sink,
		logger: logger.With("component", "NotificationDispatcher"),
	}
}

// Notify enqueues n. When the queue is full the notification is dropped with a warning.
func (d *Dispatcher) Notify(ctx context.Context, n ports.Notification) {
	select {
	case d.queue <- n:
	default:
		d.logger.WarnContext(ctx, "notification queue full, dropping notification",
			"order_id", n.OrderID,
			"kind", n.Kind,
		)
	}
}

// Pending reports how many notifications are waiting for the next flush.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Flush delivers what is queued when it starts and returns how many notifications the sink
// accepted. It stops early if ctx is cancelled; undelivered notifications are logged and lost.
func (d *Dispatcher) Flush(ctx context.Context) int {
	delivered := 0
	for range len(d.queue) {
		if ctx.Err() != nil {
			return delivered
		}

		var n ports.Notification
		select {
		case n = <-d.queue:
		default:
			return delivered
		}

		if err := d.sink.Deliver(ctx, n); err != nil {
			d.logger.ErrorContext(ctx, "notification delivery failed",
				"order_id", n.OrderID,
				"kind", n.Kind,
				"error", err,
			)
			continue
		}
		delivered++
	}
	return delivered
}
