// Package commands contains the storefront's state-changing operations: cart mutations and the
// order workflow (checkout, status updates, cancellation, delivery confirmation, payment updates).
// Every command follows the same pattern: constructor validation, per-key serialization,
// one unit of work, notification after commit.
package commands

import (
	"context"
	"time"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CatalogFactory interface {
		Catalog() ports.Catalog
	}

	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	CustomerFactory interface {
		UserDirectory() ports.UserDirectory
		AddressBook() ports.AddressBook
	}

	// CartUoW serves cart mutations: the cart itself plus catalog and user lookups.
	CartUoW interface {
		TxManager
		CartRepoFactory
		CatalogFactory
		CustomerFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// OrderUoW serves status changes on existing orders, which may restore stock.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW spans everything checkout touches: the cart is read and cleared, stock is
	// reserved and the order is written in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   cart, err := uow.CartRepository().Get(ctx, userID)
	//   err = inventory.ReserveAndDecrement(ctx, uow.StockRepository(), cart.StockLines())
	//   err = uow.OrderRepository().Add(ctx, order)
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		CatalogFactory
		StockRepoFactory
		CustomerFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)

// OrderNumberGenerator produces candidate order numbers. Uniqueness is checked by storage.
type OrderNumberGenerator interface {
	Generate(at time.Time) (string, error)
}
