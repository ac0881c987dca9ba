package queries

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/keylock"

	"golang.org/x/sync/singleflight"
)

// GetCartQueryHandler serves cart views from the cache, falling back to storage. Concurrent misses
// for the same user share one storage read.
type GetCartQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	locks      *keylock.KeyedMutex
	cache      ports.CartCache
	group      *singleflight.Group
	logger     *slog.Logger
}

// NewGetCartQueryHandler expects the lock table the cart commands use.
func NewGetCartQueryHandler(
	uowFactory ports.UnitOfWorkFactory, locks *keylock.KeyedMutex, cache ports.CartCache, logger *slog.Logger,
) GetCartQueryHandler {
	return GetCartQueryHandler{
		uowFactory: uowFactory,
		locks:      locks,
		cache:      cache,
		group:      &singleflight.Group{},
		logger:     logger.With("component", "GetCartQueryHandler"),
	}
}

// Handle has no side effects on the cart. Cache failures are logged and the view is read from
// storage instead.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (ports.CartView, error) {
	if err := query.Validate(); err != nil {
		return ports.CartView{}, err
	}

	userID := query.UserID()

	view, found, err := h.cache.Get(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "cart cache read failed", "user_id", userID.String(), "error", err)
	}
	if found {
		return view, nil
	}

	// The read is shared by every waiting caller, so it must outlive the first one's request.
	shared := context.WithoutCancel(ctx)
	result, err, _ := h.group.Do(userID.String(), func() (any, error) {
		// A cart command commits and invalidates under the same lock, so the view stored here
		// is never older than the last invalidation.
		unlock := h.locks.Lock(cart.LockKey(userID))
		defer unlock()

		c, loadErr := h.uowFactory.Create().CartRepository().Get(shared, userID)
		if errors.Is(loadErr, errs.ErrObjectNotFound) {
			c, loadErr = cart.NewCart(userID)
		}
		if loadErr != nil {
			return ports.CartView{}, loadErr
		}

		fresh := NewCartView(c)
		if setErr := h.cache.Set(shared, fresh); setErr != nil {
			h.logger.WarnContext(shared, "cart cache write failed", "user_id", userID.String(), "error", setErr)
		}
		return fresh, nil
	})
	if err != nil {
		return ports.CartView{}, err
	}

	return result.(ports.CartView), nil
}
