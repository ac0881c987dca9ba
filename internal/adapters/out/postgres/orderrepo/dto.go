// Package orderrepo maps order aggregates to the orders and order_line_items tables.
// Line items are immutable snapshots and are only written when the order is created.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. Statuses are stored by name.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number              string    `gorm:"uniqueIndex;not null"`
	UserID              uuid.UUID `gorm:"type:uuid;index:idx_orders_user_created,priority:1;not null"`
	CustomerName        string
	CustomerPhone       string
	CustomerEmail       string
	ShippingAddress     string
	PaymentMethod       string          `gorm:"not null"`
	Status              string          `gorm:"index;not null"`
	PaymentStatus       string          `gorm:"not null"`
	ShippingFee         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt           time.Time       `gorm:"index:idx_orders_user_created,priority:2,sort:desc"`
	ShippedAt           *time.Time
	DeliveredAt         *time.Time
	DeliveryConfirmedAt *time.Time
	TrackingNumber      string
	Notes               string
	StockRestored       bool          `gorm:"not null"`
	Items               []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO has no foreign key to products: the snapshot outlives the product.
type LineItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	id := s.ID.Bytes()

	items := make([]LineItemDTO, 0, len(s.Items))
	for i, item := range s.Items {
		items = append(items, LineItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:                  id,
		Number:              s.Number,
		UserID:              s.UserID.Bytes(),
		CustomerName:        s.Customer.Name(),
		CustomerPhone:       s.Customer.Phone(),
		CustomerEmail:       s.Customer.Email(),
		ShippingAddress:     s.Customer.ShippingAddress(),
		PaymentMethod:       s.PaymentMethod.String(),
		Status:              s.Status.String(),
		PaymentStatus:       s.PaymentStatus.String(),
		ShippingFee:         s.ShippingFee.Decimal(),
		CreatedAt:           s.CreatedAt,
		ShippedAt:           s.ShippedAt,
		DeliveredAt:         s.DeliveredAt,
		DeliveryConfirmedAt: s.DeliveryConfirmedAt,
		TrackingNumber:      s.TrackingNumber,
		Notes:               s.Notes,
		StockRestored:       s.StockRestored,
		Items:               items,
	}
}

// mutableColumns are the only columns Update writes.
func mutableColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":                dto.Status,
		"payment_status":        dto.PaymentStatus,
		"shipped_at":            dto.ShippedAt,
		"delivered_at":          dto.DeliveredAt,
		"delivery_confirmed_at": dto.DeliveryConfirmedAt,
		"tracking_number":       dto.TrackingNumber,
		"notes":                 dto.Notes,
		"stock_restored":        dto.StockRestored,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	shippingFee, err := kernel.NewMoney(dto.ShippingFee)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewLineItem(productID, itemDTO.Name, price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	customer := order.NewCustomerInfo(dto.CustomerName, dto.CustomerPhone, dto.CustomerEmail, dto.ShippingAddress)

	return order.RestoreOrder(order.Snapshot{
		ID:                  id,
		Number:              dto.Number,
		UserID:              userID,
		Customer:            customer,
		PaymentMethod:       order.PaymentMethod(dto.PaymentMethod),
		Status:              status,
		PaymentStatus:       paymentStatus,
		Items:               items,
		ShippingFee:         shippingFee,
		CreatedAt:           dto.CreatedAt.UTC(),
		ShippedAt:           utc(dto.ShippedAt),
		DeliveredAt:         utc(dto.DeliveredAt),
		DeliveryConfirmedAt: utc(dto.DeliveryConfirmedAt),
		TrackingNumber:      dto.TrackingNumber,
		Notes:               dto.Notes,
		StockRestored:       dto.StockRestored,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
