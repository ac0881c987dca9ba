// Package postgres provides the GORM-based Unit of Work over the storefront tables.
//
// One UnitOfWork instance wraps at most one database transaction. Repositories obtained from it
// run inside that transaction after Begin, and against the plain connection otherwise, which is
// how the read-only queries use them.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := inventory.ReserveAndDecrement(ctx, uow.StockRepository(), lines); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Stock rows and order rows are locked with SELECT ... FOR UPDATE for the
//     lifetime of the transaction, so keep transactions short
package postgres

import (
	"context"

	"storefront/internal/adapters/out/postgres/cartrepo"
	"storefront/internal/adapters/out/postgres/customerrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open, which is the normal
// outcome of the deferred rollback after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) Catalog() ports.Catalog {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) StockRepository() ports.StockRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserDirectory() ports.UserDirectory {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) AddressBook() ports.AddressBook {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
