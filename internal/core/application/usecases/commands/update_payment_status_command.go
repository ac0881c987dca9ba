package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand records the outcome of a payment made outside the core.
type UpdatePaymentStatusCommand struct {
	orderID kernel.UUID
	status  order.PaymentStatus

	guard guard.ConstructorGuard
}

func NewUpdatePaymentStatusCommand(orderID kernel.UUID, status string) (UpdatePaymentStatusCommand, error) {
	target, statusErr := order.ParsePaymentStatus(status)
	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}
	return UpdatePaymentStatusCommand{orderID: orderID, status: target, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

func (c UpdatePaymentStatusCommand) OrderID() kernel.UUID        { return c.orderID }
func (c UpdatePaymentStatusCommand) Status() order.PaymentStatus { return c.status }
