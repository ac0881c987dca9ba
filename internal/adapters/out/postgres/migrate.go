package postgres

import (
	"storefront/internal/adapters/out/postgres/cartrepo"
	"storefront/internal/adapters/out/postgres/customerrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Models lists every table the storefront owns, parents before children.
func Models() []any {
	return []any{
		&productrepo.ProductDTO{},
		&customerrepo.UserDTO{},
		&customerrepo.AddressDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
