// Package queries contains read-only operations: the cart view (cached), a single order and a
// user's order history. Queries read committed state through repositories and never begin a
// transaction.
package queries

import (
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// NewCartView renders a cart with its derived totals.
func NewCartView(c *cart.Cart) ports.CartView {
	view := ports.CartView{
		UserID:        c.UserID().String(),
		Items:         make([]ports.CartViewItem, 0, c.ItemCount()),
		ItemCount:     c.ItemCount(),
		TotalQuantity: c.TotalQuantity(),
		Subtotal:      c.Subtotal().String(),
	}
	for _, item := range c.Items() {
		view.Items = append(view.Items, ports.CartViewItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Subtotal:  item.Subtotal().String(),
		})
	}
	return view
}

// OrderView is the read model of an order.
type OrderView struct {
	ID                  string          `json:"id"`
	Number              string          `json:"number"`
	UserID              string          `json:"userId"`
	CustomerName        string          `json:"customerName"`
	CustomerPhone       string          `json:"customerPhone"`
	CustomerEmail       string          `json:"customerEmail"`
	ShippingAddress     string          `json:"shippingAddress"`
	PaymentMethod       string          `json:"paymentMethod"`
	Status              string          `json:"status"`
	PaymentStatus       string          `json:"paymentStatus"`
	Items               []OrderViewItem `json:"items"`
	Subtotal            string          `json:"subtotal"`
	ShippingFee         string          `json:"shippingFee"`
	GrandTotal          string          `json:"grandTotal"`
	CreatedAt           time.Time       `json:"createdAt"`
	ShippedAt           *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt         *time.Time      `json:"deliveredAt,omitempty"`
	DeliveryConfirmedAt *time.Time      `json:"deliveryConfirmedAt,omitempty"`
	TrackingNumber      string          `json:"trackingNumber,omitempty"`
	Notes               string          `json:"notes,omitempty"`
}

type OrderViewItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

func NewOrderView(o *order.Order) OrderView {
	customer := o.Customer()
	view := OrderView{
		ID:                  o.ID().String(),
		Number:              o.Number(),
		UserID:              o.UserID().String(),
		CustomerName:        customer.Name(),
		CustomerPhone:       customer.Phone(),
		CustomerEmail:       customer.Email(),
		ShippingAddress:     customer.ShippingAddress(),
		PaymentMethod:       o.PaymentMethod().String(),
		Status:              o.Status().String(),
		PaymentStatus:       o.PaymentStatus().String(),
		Items:               make([]OrderViewItem, 0, len(o.Items())),
		Subtotal:            o.Subtotal().String(),
		ShippingFee:         o.ShippingFee().String(),
		GrandTotal:          o.GrandTotal().String(),
		CreatedAt:           o.CreatedAt(),
		ShippedAt:           o.ShippedAt(),
		DeliveredAt:         o.DeliveredAt(),
		DeliveryConfirmedAt: o.DeliveryConfirmedAt(),
		TrackingNumber:      o.TrackingNumber(),
		Notes:               o.Notes(),
	}
	for _, item := range o.Items() {
		view.Items = append(view.Items, OrderViewItem{
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().String(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal().String(),
		})
	}
	return view
}
