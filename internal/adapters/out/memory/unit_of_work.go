package memory

import (
	"context"

	"storefront/internal/core/ports"
)

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork works on a private copy of the state between Begin and Commit. Without a
// transaction every repository call reads committed state or commits on its own.
type UnitOfWork struct {
	store *Store
	tx    *state
}

// Begin blocks until no other transaction is running.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.store.txMu.Lock()
	uow.store.mu.RLock()
	uow.tx = uow.store.committed.clone()
	uow.store.mu.RUnlock()
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.store.mu.Lock()
	uow.store.committed = uow.tx
	uow.store.mu.Unlock()

	uow.tx = nil
	uow.store.txMu.Unlock()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.tx = nil
	uow.store.txMu.Unlock()
	return nil
}

func (uow *UnitOfWork) CartRepository() ports.CartRepository   { return cartRepository{uow: uow} }
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository { return orderRepository{uow: uow} }
func (uow *UnitOfWork) Catalog() ports.Catalog                 { return productRepository{uow: uow} }
func (uow *UnitOfWork) StockRepository() ports.StockRepository { return productRepository{uow: uow} }
func (uow *UnitOfWork) UserDirectory() ports.UserDirectory     { return customerRepository{uow: uow} }
func (uow *UnitOfWork) AddressBook() ports.AddressBook         { return customerRepository{uow: uow} }

func (uow *UnitOfWork) read(fn func(st *state) error) error {
	if uow.tx != nil {
		return fn(uow.tx)
	}
	return uow.store.read(fn)
}

func (uow *UnitOfWork) write(fn func(st *state) error) error {
	if uow.tx != nil {
		return fn(uow.tx)
	}
	return uow.store.write(fn)
}
