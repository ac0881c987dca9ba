package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained from it use the transaction started by Begin; before Begin they read
// committed state directly.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails; callers defer it and ignore the error after Commit.
	Rollback(ctx context.Context) error

	CartRepository() CartRepository
	OrderRepository() OrderRepository
	Catalog() Catalog
	StockRepository() StockRepository
	UserDirectory() UserDirectory
	AddressBook() AddressBook
}
