package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrRemoveCartItemCommandIsNotConstructed = errors.New(
		"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
	)
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
)

// RemoveCartItemCommand removes one product line. Removing a missing line is not an error.
type RemoveCartItemCommand struct {
	userID    kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(userID, productID kernel.UUID) (RemoveCartItemCommand, error) {
	if err := errors.Join(userID.Validate(), productID.Validate()); err != nil {
		return RemoveCartItemCommand{}, err
	}
	return RemoveCartItemCommand{userID: userID, productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) UserID() kernel.UUID    { return c.userID }
func (c RemoveCartItemCommand) ProductID() kernel.UUID { return c.productID }

// ClearCartCommand empties the user's cart.
type ClearCartCommand struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearCartCommand(userID kernel.UUID) (ClearCartCommand, error) {
	if err := userID.Validate(); err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) UserID() kernel.UUID { return c.userID }
