package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

type cartRepository struct {
	uow *UnitOfWork
}

func (r cartRepository) Get(_ context.Context, userID kernel.UUID) (*cart.Cart, error) {
	var restored *cart.Cart
	err := r.uow.read(func(st *state) error {
		items, found := st.carts[userID]
		if !found {
			return errs.NewObjectNotFoundError("cart", userID)
		}
		var err error
		restored, err = cart.RestoreCart(userID, items)
		return err
	})
	return restored, err
}

// GetForUpdate needs no extra locking: a transaction already excludes all others.
func (r cartRepository) GetForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	c, err := r.Get(ctx, userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return cart.NewCart(userID)
	}
	return c, err
}

func (r cartRepository) Save(_ context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		st.carts[aggregate.UserID()] = aggregate.Items()
		return nil
	})
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		if _, taken := st.numbers[aggregate.Number()]; taken {
			return errs.NewConflictError("order number", nil)
		}
		if _, exists := st.orders[aggregate.ID()]; exists {
			return errs.NewConflictError("order id", nil)
		}
		st.orders[aggregate.ID()] = aggregate.Snapshot()
		st.numbers[aggregate.Number()] = aggregate.ID()
		return nil
	})
}

func (r orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		if _, exists := st.orders[aggregate.ID()]; !exists {
			return errs.NewObjectNotFoundError("order", aggregate.ID())
		}
		st.orders[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	var restored *order.Order
	err := r.uow.read(func(st *state) error {
		snapshot, found := st.orders[id]
		if !found {
			return errs.NewObjectNotFoundError("order", id)
		}
		var err error
		restored, err = order.RestoreOrder(snapshot)
		return err
	})
	return restored, err
}

// GetForUpdate needs no extra locking: a transaction already excludes all others.
func (r orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r orderRepository) ListByUser(_ context.Context, userID kernel.UUID, limit int) ([]*order.Order, error) {
	var orders []*order.Order
	err := r.uow.read(func(st *state) error {
		for _, snapshot := range st.orders {
			if !snapshot.UserID.IsEqual(userID) {
				continue
			}
			o, err := order.RestoreOrder(snapshot)
			if err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(orders, func(a, b *order.Order) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(b.Number(), a.Number())
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

type productRepository struct {
	uow *UnitOfWork
}

func (r productRepository) GetProduct(_ context.Context, id kernel.UUID) (catalog.Product, error) {
	var p catalog.Product
	err := r.uow.read(func(st *state) error {
		found, ok := st.products[id]
		if !ok {
			return errs.NewObjectNotFoundError("product", id)
		}
		p = found
		return nil
	})
	return p, err
}

func (r productRepository) LockForUpdate(_ context.Context, ids []kernel.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.uow.read(func(st *state) error {
		for _, id := range ids {
			if p, ok := st.products[id]; ok {
				products = append(products, p)
			}
		}
		return nil
	})
	slices.SortFunc(products, func(a, b catalog.Product) int { return a.ID.Compare(b.ID) })
	return products, err
}

func (r productRepository) Decrement(_ context.Context, productID kernel.UUID, quantity int) error {
	return r.uow.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return errs.NewObjectNotFoundError("product", productID)
		}
		if p.Stock < quantity {
			return errs.NewInsufficientStockError(productID.String(), quantity, p.Stock)
		}
		p.Stock -= quantity
		st.products[productID] = p
		return nil
	})
}

func (r productRepository) Increment(_ context.Context, productID kernel.UUID, quantity int) error {
	return r.uow.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return errs.NewObjectNotFoundError("product", productID)
		}
		p.Stock += quantity
		st.products[productID] = p
		return nil
	})
}

type customerRepository struct {
	uow *UnitOfWork
}

func (r customerRepository) GetUser(_ context.Context, id kernel.UUID) (customer.User, error) {
	var u customer.User
	err := r.uow.read(func(st *state) error {
		found, ok := st.users[id]
		if !ok {
			return errs.NewObjectNotFoundError("user", id)
		}
		u = found
		return nil
	})
	return u, err
}

func (r customerRepository) GetAddress(_ context.Context, id kernel.UUID) (customer.Address, error) {
	var a customer.Address
	err := r.uow.read(func(st *state) error {
		found, ok := st.addresses[id]
		if !ok {
			return errs.NewObjectNotFoundError("address", id)
		}
		a = found
		return nil
	})
	return a, err
}
