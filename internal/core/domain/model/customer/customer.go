// Package customer holds read models served by the external user directory and address book.
package customer

import "storefront/internal/core/domain/model/kernel"

// User is the directory's view of a customer. Only existence and the active flag matter
// to the order core.
type User struct {
	ID     kernel.UUID
	Name   string
	Email  string
	Phone  string
	Active bool
}

// Address is a saved shipping address.
type Address struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	RecipientName string
	Phone         string
	Line          string
}
