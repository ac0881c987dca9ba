package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/keylock"
)

// CancelOrderCommandHandler cancels an order on behalf of its owner and returns its stock.
type CancelOrderCommandHandler struct {
	orderMutator
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyedMutex,
	inventory services.InventoryCoordinator,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{newOrderMutator(
		uowFactory, locks, inventory, notifier, logger.With("component", "CancelOrderCommandHandler"),
	)}
}

// Handle returns:
//   - errs.AuthorizationError if the requesting user does not own the order
//   - errs.InvalidTransitionError if the order already left the pre-shipment window
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) (orderChange, error) {
		if !o.IsOwnedBy(cmd.RequestingUserID()) {
			return orderChange{}, errs.NewAuthorizationError(
				cmd.RequestingUserID().String(), "order "+o.ID().String(),
			)
		}

		from := o.Status()
		effects, err := o.ChangeStatus(order.Cancelled, now)
		if err != nil {
			return orderChange{}, err
		}

		return orderChange{
			effects: effects,
			kind:    notifyKind(effects, ports.EventOrderCancelled),
			message: statusChangedMessage(o, from),
		}, nil
	})
}

// ConfirmDeliveryCommandHandler lets the owner of a SHIPPED order confirm it was delivered.
// It is the only status change a customer can make.
type ConfirmDeliveryCommandHandler struct {
	orderMutator
}

func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyedMutex,
	inventory services.InventoryCoordinator,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{newOrderMutator(
		uowFactory, locks, inventory, notifier, logger.With("component", "ConfirmDeliveryCommandHandler"),
	)}
}

// Handle returns:
//   - errs.AuthorizationError if the requesting user does not own the order
//   - errs.InvalidStateError if the order is not SHIPPED
func (h ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context, cmd ConfirmDeliveryCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) (orderChange, error) {
		if !o.IsOwnedBy(cmd.RequestingUserID()) {
			return orderChange{}, errs.NewAuthorizationError(
				cmd.RequestingUserID().String(), "order "+o.ID().String(),
			)
		}

		from := o.Status()
		effects, err := o.ConfirmDelivery(now)
		if err != nil {
			return orderChange{}, err
		}

		return orderChange{
			effects: effects,
			kind:    notifyKind(effects, ports.EventOrderDeliveryConfirmed),
			message: statusChangedMessage(o, from),
		}, nil
	})
}
