package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order would be created without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order line items")
)

// Order is the aggregate root of a placed purchase. It owns its line items by value and is
// mutated only through the status and payment state machines.
//
// Order follows these invariants:
//   - Has a valid identifier, order number and owning user
//   - Has at least one line item
//   - GrandTotal() is always Subtotal() plus the shipping fee; neither is stored separately
//   - Status changes follow the edges defined by Status.CanTransitionTo
//   - Stock is restored at most once, when the order is cancelled
type Order struct {
	id            kernel.UUID
	number        string
	userID        kernel.UUID
	customer      CustomerInfo
	paymentMethod PaymentMethod
	status        Status
	paymentStatus PaymentStatus
	items         []LineItem
	shippingFee   kernel.Money

	createdAt           time.Time
	shippedAt           *time.Time
	deliveredAt         *time.Time
	deliveryConfirmedAt *time.Time

	trackingNumber string
	notes          string

	// stockRestored guards the one-time stock restoration on cancellation.
	stockRestored bool

	isConstructed bool
}

// Snapshot carries every persisted field of an Order. Repositories fill it to rebuild an
// aggregate with RestoreOrder and read it back with Order.Snapshot.
type Snapshot struct {
	ID                  kernel.UUID
	Number              string
	UserID              kernel.UUID
	Customer            CustomerInfo
	PaymentMethod       PaymentMethod
	Status              Status
	PaymentStatus       PaymentStatus
	Items               []LineItem
	ShippingFee         kernel.Money
	CreatedAt           time.Time
	ShippedAt           *time.Time
	DeliveredAt         *time.Time
	DeliveryConfirmedAt *time.Time
	TrackingNumber      string
	Notes               string
	StockRestored       bool
}

// InitialStatus returns the status and payment status a new order starts in.
// COD orders skip confirmation and go straight to PROCESSING.
func InitialStatus(method PaymentMethod) (Status, PaymentStatus) {
	if method.IsCOD() {
		return Processing, PaymentPending
	}
	return Pending, PaymentPending
}

// NewOrder creates an order placed by userID at createdAt.
//
// Parameters:
//   - id: unique identifier of the order
//   - number: human readable order number, unique across all orders
//   - userID: the owning customer
//   - customer: contact and shipping snapshot
//   - method: chosen payment method
//   - items: line item snapshots, at least one
//   - shippingFee: flat fee added to the subtotal
//   - createdAt: placement time
//
// The initial status is chosen by InitialStatus. COD field validation is the caller's
// concern since it depends on the checkout flow, not on the aggregate.
func NewOrder(
	id kernel.UUID,
	number string,
	userID kernel.UUID,
	customer CustomerInfo,
	method PaymentMethod,
	items []LineItem,
	shippingFee kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	status, paymentStatus := InitialStatus(method)
	return RestoreOrder(Snapshot{
		ID:            id,
		Number:        number,
		UserID:        userID,
		Customer:      customer,
		PaymentMethod: method,
		Status:        status,
		PaymentStatus: paymentStatus,
		Items:         items,
		ShippingFee:   shippingFee,
		CreatedAt:     createdAt.UTC(),
	})
}

// RestoreOrder rebuilds an order from persisted state, validating it the same way NewOrder does.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customer:            s.Customer,
		shippingFee:         s.ShippingFee,
		createdAt:           s.CreatedAt,
		shippedAt:           copyTime(s.ShippedAt),
		deliveredAt:         copyTime(s.DeliveredAt),
		deliveryConfirmedAt: copyTime(s.DeliveryConfirmedAt),
		trackingNumber:      strings.TrimSpace(s.TrackingNumber),
		notes:               strings.TrimSpace(s.Notes),
		stockRestored:       s.StockRestored,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setUserID(s.UserID),
		o.setPaymentMethod(s.PaymentMethod),
		o.setStatus(s.Status),
		o.setPaymentStatus(s.PaymentStatus),
		o.setItems(s.Items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) UserID() kernel.UUID          { return o.userID }
func (o *Order) Customer() CustomerInfo       { return o.customer }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) ShippingFee() kernel.Money    { return o.shippingFee }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) ShippedAt() *time.Time        { return copyTime(o.shippedAt) }
func (o *Order) DeliveredAt() *time.Time      { return copyTime(o.deliveredAt) }
func (o *Order) TrackingNumber() string       { return o.trackingNumber }
func (o *Order) Notes() string                { return o.notes }
func (o *Order) StockRestored() bool          { return o.stockRestored }

func (o *Order) DeliveryConfirmedAt() *time.Time {
	return copyTime(o.deliveryConfirmedAt)
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal is the sum of every line item's unit price times quantity.
func (o *Order) Subtotal() kernel.Money {
	total := kernel.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// GrandTotal is the subtotal plus the shipping fee.
func (o *Order) GrandTotal() kernel.Money {
	return o.Subtotal().Add(o.shippingFee)
}

// StockLines returns the quantities this order took from stock.
func (o *Order) StockLines() []catalog.StockLine {
	lines := make([]catalog.StockLine, 0, len(o.items))
	for _, item := range o.items {
		lines = append(lines, item.StockLine())
	}
	return lines
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// Snapshot returns every persisted field.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                  o.id,
		Number:              o.number,
		UserID:              o.userID,
		Customer:            o.customer,
		PaymentMethod:       o.paymentMethod,
		Status:              o.status,
		PaymentStatus:       o.paymentStatus,
		Items:               o.Items(),
		ShippingFee:         o.shippingFee,
		CreatedAt:           o.createdAt,
		ShippedAt:           copyTime(o.shippedAt),
		DeliveredAt:         copyTime(o.deliveredAt),
		DeliveryConfirmedAt: copyTime(o.deliveryConfirmedAt),
		TrackingNumber:      o.trackingNumber,
		Notes:               o.notes,
		StockRestored:       o.stockRestored,
	}
}

// ChangeStatus applies Transition in place and returns the side effects the caller must run.
// On error the order is left unchanged.
func (o *Order) ChangeStatus(target Status, at time.Time) ([]Effect, error) {
	result, err := Transition(o, target, at)
	if err != nil {
		return nil, err
	}
	*o = *result.Order
	return result.Effects, nil
}

// ConfirmDelivery records the customer's confirmation that a SHIPPED order arrived. It moves the
// order to DELIVERED, completes the payment and stamps deliveryConfirmedAt.
//
// Returns:
//   - errs.InvalidStateError if the order is not SHIPPED
//   - the side effects of the DELIVERED transition otherwise
func (o *Order) ConfirmDelivery(at time.Time) ([]Effect, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.status != Shipped {
		return nil, errs.NewInvalidStateError(Shipped, o.status)
	}

	result, err := Transition(o, Delivered, at)
	if err != nil {
		return nil, err
	}

	next := result.Order
	if next.paymentStatus != PaymentCompleted {
		next.paymentStatus = PaymentCompleted
	}
	if next.deliveryConfirmedAt == nil {
		confirmedAt := at.UTC()
		next.deliveryConfirmedAt = &confirmedAt
	}

	*o = *next
	return result.Effects, nil
}

// UpdatePaymentStatus moves the payment status to target. Setting the current value again is a
// no-op; any move out of COMPLETED fails with errs.InvalidTransitionError.
func (o *Order) UpdatePaymentStatus(target PaymentStatus) error {
	if err := errors.Join(o.Validate(), target.Validate()); err != nil {
		return err
	}
	if o.paymentStatus == target {
		return nil
	}
	if !o.paymentStatus.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(o.paymentStatus, target)
	}
	o.paymentStatus = target
	return nil
}

// SetTrackingNumber records the carrier tracking number. Blank input leaves the current value.
func (o *Order) SetTrackingNumber(trackingNumber string) {
	if t := strings.TrimSpace(trackingNumber); t != "" {
		o.trackingNumber = t
	}
}

// SetNotes replaces the order notes. Blank input leaves the current value.
func (o *Order) SetNotes(notes string) {
	if n := strings.TrimSpace(notes); n != "" {
		o.notes = n
	}
}

func (o *Order) clone() *Order {
	c := *o
	c.items = o.Items()
	c.shippedAt = copyTime(o.shippedAt)
	c.deliveredAt = copyTime(o.deliveredAt)
	c.deliveryConfirmedAt = copyTime(o.deliveryConfirmedAt)
	return &c
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return fmt.Errorf("order user: %w", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	normalized, err := NewPaymentMethod(string(method))
	if err != nil {
		return err
	}
	o.paymentMethod = normalized
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
