package commands

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/keylock"
)

// RemoveCartItemCommandHandler and ClearCartCommandHandler are idempotent.
type RemoveCartItemCommandHandler struct {
	cartMutator
}

func NewRemoveCartItemCommandHandler(
	uowFactory CartUoWFactory, locks *keylock.KeyedMutex, cache ports.CartCache, logger *slog.Logger,
) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{cartMutator{
		uowFactory: uowFactory,
		locks:      locks,
		cache:      cache,
		logger:     logger.With("component", "RemoveCartItemCommandHandler"),
	}}
}

func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.UserID(), func(_ CartUoW, c *cart.Cart) error {
		c.Remove(cmd.ProductID())
		return nil
	})
}

type ClearCartCommandHandler struct {
	cartMutator
}

func NewClearCartCommandHandler(
	uowFactory CartUoWFactory, locks *keylock.KeyedMutex, cache ports.CartCache, logger *slog.Logger,
) ClearCartCommandHandler {
	return ClearCartCommandHandler{cartMutator{
		uowFactory: uowFactory,
		locks:      locks,
		cache:      cache,
		logger:     logger.With("component", "ClearCartCommandHandler"),
	}}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.UserID(), func(_ CartUoW, c *cart.Cart) error {
		c.Clear()
		return nil
	})
}
