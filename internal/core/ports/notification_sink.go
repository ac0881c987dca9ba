package ports

import (
	"context"
	"time"
)

// EventKind names what happened to an order.
type EventKind string

const (
	EventOrderCreated           EventKind = "order.created"
	EventOrderStatusChanged     EventKind = "order.status_changed"
	EventOrderCancelled         EventKind = "order.cancelled"
	EventOrderDeliveryConfirmed EventKind = "order.delivery_confirmed"
	EventOrderPaymentUpdated    EventKind = "order.payment_updated"
)

// Notification is a status change message for the outside world.
type Notification struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId"`
	Kind        EventKind `json:"kind"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// NotificationSink receives notifications after the triggering transaction committed.
// Implementations must not block and must swallow their own failures.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification)
}
