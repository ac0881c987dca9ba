package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/keylock"
)

// maxOrderNumberAttempts bounds the retries after an order number collision.
const maxOrderNumberAttempts = 5

// CreateOrderFromCartCommandHandler turns a user's cart into an order.
//
// Stock reservation, order persistence and clearing the cart happen in a single unit of work:
// either the order exists with its stock debited and the cart empty, or nothing changed.
//
// Example:
//
//	created, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrValidation):
//	    // COD order with missing name, phone or shipping address
//	case errors.Is(err, errs.ErrEmptyCart):
//	    // nothing to check out
//	case errors.Is(err, errs.ErrInsufficientStock):
//	    // another checkout took the stock first
//	}
type CreateOrderFromCartCommandHandler struct {
	uowFactory  CheckoutUoWFactory
	locks       *keylock.KeyedMutex
	inventory   services.InventoryCoordinator
	numbers     OrderNumberGenerator
	shippingFee kernel.Money
	cache       ports.CartCache
	notifier    ports.NotificationSink
	logger      *slog.Logger
}

func NewCreateOrderFromCartCommandHandler(
	uowFactory CheckoutUoWFactory,
	locks *keylock.KeyedMutex,
	inventory services.InventoryCoordinator,
	numbers OrderNumberGenerator,
	shippingFee kernel.Money,
	cache ports.CartCache,
	notifier ports.NotificationSink,
	logger *slog.Logger,
) CreateOrderFromCartCommandHandler {
	return CreateOrderFromCartCommandHandler{
		uowFactory:  uowFactory,
		locks:       locks,
		inventory:   inventory,
		numbers:     numbers,
		shippingFee: shippingFee,
		cache:       cache,
		notifier:    notifier,
		logger:      logger.With("component", "CreateOrderFromCartCommandHandler"),
	}
}

// Handle validates the checkout, snapshots every cart line, reserves stock for all of them,
// persists the order, clears the cart, and notifies once the transaction has committed.
func (h CreateOrderFromCartCommandHandler) Handle(
	ctx context.Context, cmd CreateOrderFromCartCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cart.LockKey(cmd.UserID()))
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customer, err := h.resolveCustomer(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	if cmd.PaymentMethod().IsCOD() {
		if err = customer.ValidateForCOD(); err != nil {
			return nil, err
		}
	}

	cartRepo := uow.CartRepository()
	c, err := loadCart(ctx, cartRepo, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, errs.NewEmptyCartError(cmd.UserID().String())
	}

	items, err := h.snapshotItems(ctx, uow.Catalog(), c)
	if err != nil {
		return nil, err
	}

	if err = h.inventory.ReserveAndDecrement(ctx, uow.StockRepository(), c.StockLines()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := h.addOrder(ctx, uow.OrderRepository(), cmd, customer, items, now)
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	invalidateCart(ctx, h.cache, h.logger, cmd.UserID())
	h.notifier.Notify(ctx, orderNotification(
		created,
		ports.EventOrderCreated,
		fmt.Sprintf("order %s placed, total %s", created.Number(), created.GrandTotal()),
		now,
	))

	return created, nil
}

// resolveCustomer checks the user and completes blank shipping fields from the saved address.
func (h CreateOrderFromCartCommandHandler) resolveCustomer(
	ctx context.Context, uow CheckoutUoW, cmd CreateOrderFromCartCommand,
) (order.CustomerInfo, error) {
	user, err := uow.UserDirectory().GetUser(ctx, cmd.UserID())
	if err != nil {
		return order.CustomerInfo{}, err
	}
	if !user.Active {
		return order.CustomerInfo{}, errs.NewObjectNotFoundError("user", cmd.UserID())
	}

	customer := cmd.Customer()

	if addressID := cmd.AddressID(); addressID != nil {
		address, addrErr := uow.AddressBook().GetAddress(ctx, *addressID)
		if addrErr != nil {
			return order.CustomerInfo{}, addrErr
		}
		if !address.UserID.IsEqual(cmd.UserID()) {
			return order.CustomerInfo{}, errs.NewAuthorizationError(
				cmd.UserID().String(), "address "+addressID.String(),
			)
		}
		customer = customer.WithDefaults(
			order.NewCustomerInfo(address.RecipientName, address.Phone, "", address.Line),
		)
	}

	return customer.WithDefaults(order.NewCustomerInfo("", "", user.Email, "")), nil
}

// snapshotItems freezes each cart line with the product's name and unit price as the catalog
// lists them at checkout.
func (h CreateOrderFromCartCommandHandler) snapshotItems(
	ctx context.Context, catalog ports.Catalog, c *cart.Cart,
) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, c.ItemCount())
	for _, cartItem := range c.Items() {
		product, err := catalog.GetProduct(ctx, cartItem.ProductID())
		if err != nil {
			return nil, err
		}

		item, err := order.NewLineItem(product.ID, product.Name, product.Price, cartItem.Quantity())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// addOrder persists a new order, retrying with a fresh number when storage reports a collision.
func (h CreateOrderFromCartCommandHandler) addOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	cmd CreateOrderFromCartCommand,
	customer order.CustomerInfo,
	items []order.LineItem,
	now time.Time,
) (*order.Order, error) {
	var lastErr error

	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		number, err := h.numbers.Generate(now)
		if err != nil {
			return nil, fmt.Errorf("generate order number: %w", err)
		}

		created, err := order.NewOrder(
			kernel.NewUUID(), number, cmd.UserID(), customer, cmd.PaymentMethod(), items, h.shippingFee, now,
		)
		if err != nil {
			return nil, err
		}
		created.SetNotes(cmd.Notes())

		err = repo.Add(ctx, created)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}

		h.logger.WarnContext(ctx, "order number collision, retrying", "number", number, "attempt", attempt)
		lastErr = err
	}

	return nil, lastErr
}
