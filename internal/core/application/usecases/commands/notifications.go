package commands

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

func orderNotification(o *order.Order, kind ports.EventKind, message string, at time.Time) ports.Notification {
	return ports.Notification{
		OrderID:     o.ID().String(),
		OrderNumber: o.Number(),
		UserID:      o.UserID().String(),
		Kind:        kind,
		Status:      o.Status().String(),
		Message:     message,
		OccurredAt:  at.UTC(),
	}
}

func statusChangedMessage(o *order.Order, from order.Status) string {
	return fmt.Sprintf("order %s moved from %s to %s", o.Number(), from, o.Status())
}
