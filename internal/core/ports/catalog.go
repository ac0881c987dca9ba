package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// Catalog is the read side of the external product catalog.
type Catalog interface {
	// GetProduct returns the product or errs.ObjectNotFoundError. Inactive products are returned
	// as is; callers decide whether they are purchasable.
	GetProduct(ctx context.Context, id kernel.UUID) (catalog.Product, error)
}

// StockRepository issues the atomic stock commands of the catalog. Every method must run inside
// a unit of work transaction.
type StockRepository interface {
	// LockForUpdate reads the given products and holds row locks on them until the transaction
	// ends. Locks are taken in ascending ID order. Unknown IDs are simply absent from the result.
	LockForUpdate(ctx context.Context, ids []kernel.UUID) ([]catalog.Product, error)

	// Decrement lowers stock by quantity. It fails with errs.InsufficientStockError instead of
	// letting stock go negative.
	Decrement(ctx context.Context, productID kernel.UUID, quantity int) error

	// Increment raises stock by quantity. It fails with errs.ObjectNotFoundError if the product
	// no longer exists.
	Increment(ctx context.Context, productID kernel.UUID, quantity int) error
}
