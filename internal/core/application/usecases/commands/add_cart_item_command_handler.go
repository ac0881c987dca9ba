package commands

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/keylock"
)

// AddCartItemCommandHandler adds products to carts.
//
// Example:
//
//	handler := NewAddCartItemCommandHandler(uowFactory, locks, cache, logger)
//	cart, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown user, or unknown or inactive product
//	case errors.Is(err, errs.ErrOutOfStock):
//	    // merged quantity exceeds current stock
//	}
type AddCartItemCommandHandler struct {
	cartMutator
}

func NewAddCartItemCommandHandler(
	uowFactory CartUoWFactory, locks *keylock.KeyedMutex, cache ports.CartCache, logger *slog.Logger,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{cartMutator{
		uowFactory: uowFactory,
		locks:      locks,
		cache:      cache,
		logger:     logger.With("component", "AddCartItemCommandHandler"),
	}}
}

// Handle checks the user is active and the product is purchasable, merges the quantity into the
// cart and returns the recomputed cart. The stock check here is advisory only.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.UserID(), func(uow CartUoW, c *cart.Cart) error {
		if err := requireActiveUser(ctx, uow.UserDirectory(), cmd.UserID()); err != nil {
			return err
		}

		product, err := uow.Catalog().GetProduct(ctx, cmd.ProductID())
		if err != nil {
			return err
		}

		return c.Add(product, cmd.Quantity())
	})
}
