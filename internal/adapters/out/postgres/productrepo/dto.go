// Package productrepo persists the product catalog and its stock counters.
package productrepo

import (
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the products table. The check constraint keeps stock from going negative even if
// a caller bypasses the guarded decrement.
type ProductDTO struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name   string          `gorm:"not null"`
	Price  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Stock  int             `gorm:"not null;check:chk_products_stock_non_negative,stock >= 0"`
	Active bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:     p.ID.Bytes(),
		Name:   p.Name,
		Price:  p.Price.Decimal(),
		Stock:  p.Stock,
		Active: p.Active,
	}
}

func toDomain(dto ProductDTO) (catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Product{}, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return catalog.Product{}, err
	}

	return catalog.Product{
		ID:     id,
		Name:   dto.Name,
		Price:  price,
		Stock:  dto.Stock,
		Active: dto.Active,
	}, nil
}
