package ports

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
)

// CartRepository stores one cart per user.
type CartRepository interface {
	// Get returns the user's cart, or errs.ObjectNotFoundError when the user never had one.
	Get(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// GetForUpdate returns the user's cart, empty when none is stored, and locks it until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error)

	// Save replaces the stored items of the cart with the aggregate's items.
	Save(ctx context.Context, aggregate *cart.Cart) error
}
