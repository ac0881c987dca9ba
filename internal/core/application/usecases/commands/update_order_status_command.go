package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is the staff operation moving an order along the status state
// machine. Tracking number and notes are optional and applied only if the transition succeeds.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, "SHIPPED", "VN123456789", "")
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // order left unchanged
//	}
type UpdateOrderStatusCommand struct {
	orderID        kernel.UUID
	status         order.Status
	trackingNumber string
	notes          string

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	orderID kernel.UUID, status, trackingNumber, notes string,
) (UpdateOrderStatusCommand, error) {
	target, statusErr := order.ParseStatus(status)
	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID:        orderID,
		status:         target,
		trackingNumber: trackingNumber,
		notes:          notes,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID   { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status   { return c.status }
func (c UpdateOrderStatusCommand) TrackingNumber() string { return c.trackingNumber }
func (c UpdateOrderStatusCommand) Notes() string          { return c.notes }
