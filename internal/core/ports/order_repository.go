// Package ports defines the contracts between the storefront core and its infrastructure:
// repositories bound to a unit of work, and the external collaborators (catalog, user directory,
// address book, notification sink, cart cache).
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted; line items are written once with the order.
type OrderRepository interface {
	// Add persists a new order with its line items.
	// Returns errs.ConflictError when the order number is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, payment, timestamps, tracking number and notes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks it until the surrounding transaction ends.
	// Status changes on one order are serialized through this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByUser returns the user's orders, newest first. A non-positive limit means no limit.
	ListByUser(ctx context.Context, userID kernel.UUID, limit int) ([]*order.Order, error)
}
