package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/keylock"
)

type UpdatePaymentStatusCommandHandler struct {
	orderMutator
}

func NewUpdatePaymentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyedMutex,
	inventory services.InventoryCoordinator,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) UpdatePaymentStatusCommandHandler {
	return UpdatePaymentStatusCommandHandler{newOrderMutator(
		uowFactory, locks, inventory, notifier, logger.With("component", "UpdatePaymentStatusCommandHandler"),
	)}
}

// Handle fails with errs.InvalidTransitionError when the payment would leave COMPLETED.
// Repeating the current status succeeds without a notification.
func (h UpdatePaymentStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdatePaymentStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.OrderID(), func(o *order.Order, _ time.Time) (orderChange, error) {
		from := o.PaymentStatus()
		if err := o.UpdatePaymentStatus(cmd.Status()); err != nil {
			return orderChange{}, err
		}
		if from == o.PaymentStatus() {
			return orderChange{}, nil
		}

		return orderChange{
			kind:    ports.EventOrderPaymentUpdated,
			message: fmt.Sprintf("payment for order %s moved from %s to %s", o.Number(), from, o.PaymentStatus()),
		}, nil
	})
}
