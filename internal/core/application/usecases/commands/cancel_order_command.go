package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
	)
)

// CancelOrderCommand is a customer's request to cancel their own order.
type CancelOrderCommand struct {
	orderID          kernel.UUID
	requestingUserID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID, requestingUserID kernel.UUID) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), requestingUserID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{
		orderID:          orderID,
		requestingUserID: requestingUserID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CancelOrderCommand) RequestingUserID() kernel.UUID { return c.requestingUserID }

// ConfirmDeliveryCommand is a customer's confirmation that their shipped order arrived.
type ConfirmDeliveryCommand struct {
	orderID          kernel.UUID
	requestingUserID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(orderID, requestingUserID kernel.UUID) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(orderID.Validate(), requestingUserID.Validate()); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{
		orderID:          orderID,
		requestingUserID: requestingUserID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) OrderID() kernel.UUID          { return c.orderID }
func (c ConfirmDeliveryCommand) RequestingUserID() kernel.UUID { return c.requestingUserID }
