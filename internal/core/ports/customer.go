package ports

import (
	"context"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
)

// UserDirectory answers existence and active checks for customers.
type UserDirectory interface {
	GetUser(ctx context.Context, id kernel.UUID) (customer.User, error)
}

// AddressBook resolves saved shipping addresses.
type AddressBook interface {
	GetAddress(ctx context.Context, id kernel.UUID) (customer.Address, error)
}
