// Package memory implements every repository port on top of process memory. A transaction takes
// a private copy of the committed state and swaps it in on commit; only one transaction runs at
// a time, which gives the same outcome as row locks for the stock race.
package memory

import (
	"errors"
	"sync"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// ErrNoTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoTransaction = errors.New("no active transaction")

type state struct {
	products  map[kernel.UUID]catalog.Product
	carts     map[kernel.UUID][]cart.Item
	orders    map[kernel.UUID]order.Snapshot
	numbers   map[string]kernel.UUID
	users     map[kernel.UUID]customer.User
	addresses map[kernel.UUID]customer.Address
}

func newState() *state {
	return &state{
		products:  make(map[kernel.UUID]catalog.Product),
		carts:     make(map[kernel.UUID][]cart.Item),
		orders:    make(map[kernel.UUID]order.Snapshot),
		numbers:   make(map[string]kernel.UUID),
		users:     make(map[kernel.UUID]customer.User),
		addresses: make(map[kernel.UUID]customer.Address),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.carts {
		items := make([]cart.Item, len(v))
		copy(items, v)
		c.carts[k] = items
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.numbers {
		c.numbers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.addresses {
		c.addresses[k] = v
	}
	return c
}

// Store holds the committed state shared by all units of work created from it.
type Store struct {
	// txMu is held for the whole lifetime of a transaction.
	txMu sync.Mutex

	mu        sync.RWMutex
	committed *state
}

func NewStore() *Store {
	return &Store{committed: newState()}
}

// SaveProduct inserts or replaces a catalog product.
func (s *Store) SaveProduct(p catalog.Product) {
	s.autocommit(func(st *state) { st.products[p.ID] = p })
}

// DeleteProduct removes a product from the catalog.
func (s *Store) DeleteProduct(id kernel.UUID) {
	s.autocommit(func(st *state) { delete(st.products, id) })
}

func (s *Store) SaveUser(u customer.User) {
	s.autocommit(func(st *state) { st.users[u.ID] = u })
}

func (s *Store) SaveAddress(a customer.Address) {
	s.autocommit(func(st *state) { st.addresses[a.ID] = a })
}

func (s *Store) autocommit(fn func(st *state)) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.committed)
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.committed)
}

func (s *Store) write(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.committed.clone()
	if err := fn(working); err != nil {
		return err
	}
	s.committed = working
	return nil
}
