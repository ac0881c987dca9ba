package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/keylock"
)

// UpdateOrderStatusCommandHandler applies staff status changes. Cancelling through this handler
// restores stock exactly like CancelOrderCommandHandler, without the ownership check.
type UpdateOrderStatusCommandHandler struct {
	orderMutator
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyedMutex,
	inventory services.InventoryCoordinator,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{newOrderMutator(
		uowFactory, locks, inventory, notifier, logger.With("component", "UpdateOrderStatusCommandHandler"),
	)}
}

// Handle fails with errs.InvalidTransitionError for any move that is not an edge of the status
// state machine; the stored order is not touched in that case.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) (orderChange, error) {
		from := o.Status()

		effects, err := o.ChangeStatus(cmd.Status(), now)
		if err != nil {
			return orderChange{}, err
		}
		o.SetTrackingNumber(cmd.TrackingNumber())
		o.SetNotes(cmd.Notes())

		kind := ports.EventOrderStatusChanged
		if cmd.Status() == order.Cancelled {
			kind = ports.EventOrderCancelled
		}

		return orderChange{
			effects: effects,
			kind:    notifyKind(effects, kind),
			message: statusChangedMessage(o, from),
		}, nil
	})
}
