package commands

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/keylock"
)

type UpdateCartItemCommandHandler struct {
	cartMutator
}

func NewUpdateCartItemCommandHandler(
	uowFactory CartUoWFactory, locks *keylock.KeyedMutex, cache ports.CartCache, logger *slog.Logger,
) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{cartMutator{
		uowFactory: uowFactory,
		locks:      locks,
		cache:      cache,
		logger:     logger.With("component", "UpdateCartItemCommandHandler"),
	}}
}

// Handle fails with errs.ObjectNotFoundError when the line does not exist and with
// errs.OutOfStockError when the new quantity exceeds current stock.
func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.UserID(), func(uow CartUoW, c *cart.Cart) error {
		if _, found := c.Item(cmd.ProductID()); !found {
			return errs.NewObjectNotFoundError("cart item", cmd.ProductID())
		}

		product, err := uow.Catalog().GetProduct(ctx, cmd.ProductID())
		if err != nil {
			return err
		}

		return c.Update(product, cmd.Quantity())
	})
}
