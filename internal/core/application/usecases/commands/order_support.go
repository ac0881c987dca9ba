package commands

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/keylock"
)

// orderChange describes what a mutation did to an order.
type orderChange struct {
	effects []order.Effect
	kind    ports.EventKind
	message string
}

// orderMutator holds what every order workflow handler shares.
type orderMutator struct {
	uowFactory OrderUoWFactory
	locks      *keylock.KeyedMutex
	inventory  services.InventoryCoordinator
	notifier   ports.NotificationSink
	logger     *slog.Logger
}

func newOrderMutator(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyedMutex,
	inventory services.InventoryCoordinator,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) orderMutator {
	return orderMutator{
		uowFactory: uowFactory,
		locks:      locks,
		inventory:  inventory,
		notifier:   notifier,
		logger:     logger,
	}
}

// mutate loads the order under both the in-process per-order lock and the storage row lock,
// applies fn, runs the effects fn reported, persists and commits. The notification goes out
// only after a successful commit.
func (m orderMutator) mutate(
	ctx context.Context,
	orderID kernel.UUID,
	fn func(o *order.Order, now time.Time) (orderChange, error),
) (*order.Order, error) {
	unlock := m.locks.Lock(orderLockKey(orderID))
	defer unlock()

	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	change, err := fn(o, now)
	if err != nil {
		return nil, err
	}

	if slices.Contains(change.effects, order.EffectRestoreStock) {
		skipped, restoreErr := m.inventory.Restore(ctx, uow.StockRepository(), o.StockLines())
		if restoreErr != nil {
			return nil, restoreErr
		}
		if len(skipped) > 0 {
			m.logger.WarnContext(ctx, "order cancelled with unrestorable lines",
				"order_id", o.ID().String(),
				"skipped_lines", len(skipped),
			)
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if change.kind != "" {
		m.notifier.Notify(ctx, orderNotification(o, change.kind, change.message, now))
	}

	return o, nil
}

func notifyKind(effects []order.Effect, kind ports.EventKind) ports.EventKind {
	if slices.Contains(effects, order.EffectNotify) {
		return kind
	}
	return ""
}
