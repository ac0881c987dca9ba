package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/keylock"
)

func orderLockKey(orderID kernel.UUID) string {
	return "order:" + orderID.String()
}

// loadCart returns the user's cart, locked for the rest of the unit of work, or a new empty one.
func loadCart(ctx context.Context, repo ports.CartRepository, userID kernel.UUID) (*cart.Cart, error) {
	c, err := repo.GetForUpdate(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return cart.NewCart(userID)
	}
	return c, err
}

// requireActiveUser fails with errs.ObjectNotFoundError for unknown and inactive users.
func requireActiveUser(ctx context.Context, users ports.UserDirectory, userID kernel.UUID) error {
	user, err := users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Active {
		return errs.NewObjectNotFoundError("user", userID)
	}
	return nil
}

// cartMutator holds what every cart command handler shares.
type cartMutator struct {
	uowFactory CartUoWFactory
	locks      *keylock.KeyedMutex
	cache      ports.CartCache
	logger     *slog.Logger
}

// mutate runs fn on the user's cart inside one unit of work and saves the result. fn is
// serialized per user so concurrent adds of the same product cannot lose an update. The lock
// table covers this process; the cart row lock taken by loadCart covers every other one.
func (m cartMutator) mutate(
	ctx context.Context,
	userID kernel.UUID,
	fn func(uow CartUoW, c *cart.Cart) error,
) (*cart.Cart, error) {
	unlock := m.locks.Lock(cart.LockKey(userID))
	defer unlock()

	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := loadCart(ctx, cartRepo, userID)
	if err != nil {
		return nil, err
	}

	if err = fn(uow, c); err != nil {
		return nil, err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	invalidateCart(ctx, m.cache, m.logger, userID)
	return c, nil
}

func invalidateCart(ctx context.Context, cache ports.CartCache, logger *slog.Logger, userID kernel.UUID) {
	if err := cache.Invalidate(ctx, userID); err != nil {
		logger.WarnContext(ctx, "failed to invalidate cart cache", "user_id", userID.String(), "error", err)
	}
}
