package notify

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"
)

// LogSink writes notifications to the log. It is the fallback when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "LogSink")}
}

func (s *LogSink) Deliver(ctx context.Context, n ports.Notification) error {
	s.logger.InfoContext(ctx, "order notification",
		"order_id", n.OrderID,
		"order_number", n.OrderNumber,
		"user_id", n.UserID,
		"kind", n.Kind,
		"status", n.Status,
		"message", n.Message,
	)
	return nil
}
