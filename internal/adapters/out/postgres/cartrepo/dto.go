// Package cartrepo persists carts as a header row plus one row per line.
package cartrepo

import (
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UpdatedAt time.Time
	Items     []CartItemDTO `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO keeps the line's position so items come back in the order they were added.
type CartItemDTO struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

func fromDomain(c *cart.Cart) CartDTO {
	userID := c.UserID().Bytes()
	items := make([]CartItemDTO, 0, c.ItemCount())
	for i, item := range c.Items() {
		items = append(items, CartItemDTO{
			UserID:    userID,
			ProductID: item.ProductID().Bytes(),
			Position:  i,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}
	return CartDTO{UserID: userID, Items: items}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := cart.NewItem(productID, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(userID, items)
}
