package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// CartView is the read model returned by the GetCart query and stored in the cart cache.
type CartView struct {
	UserID        string         `json:"userId"`
	Items         []CartViewItem `json:"items"`
	ItemCount     int            `json:"itemCount"`
	TotalQuantity int            `json:"totalQuantity"`
	Subtotal      string         `json:"subtotal"`
}

type CartViewItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

// CartCache caches CartViews. Failures are never fatal to callers.
type CartCache interface {
	// Get returns the cached view and whether it was found.
	Get(ctx context.Context, userID kernel.UUID) (CartView, bool, error)
	Set(ctx context.Context, view CartView) error
	Invalidate(ctx context.Context, userID kernel.UUID) error
}
