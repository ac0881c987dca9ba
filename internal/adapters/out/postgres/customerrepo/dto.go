// Package customerrepo stores the local copy of the user directory and saved addresses.
package customerrepo

import (
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Email  string
	Phone  string
	Active bool `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

type AddressDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	RecipientName string
	Phone         string
	Line          string `gorm:"not null"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func userFromDomain(u customer.User) UserDTO {
	return UserDTO{ID: u.ID.Bytes(), Name: u.Name, Email: u.Email, Phone: u.Phone, Active: u.Active}
}

func userToDomain(dto UserDTO) (customer.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return customer.User{}, err
	}
	return customer.User{ID: id, Name: dto.Name, Email: dto.Email, Phone: dto.Phone, Active: dto.Active}, nil
}

func addressFromDomain(a customer.Address) AddressDTO {
	return AddressDTO{
		ID:            a.ID.Bytes(),
		UserID:        a.UserID.Bytes(),
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line:          a.Line,
	}
}

func addressToDomain(dto AddressDTO) (customer.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return customer.Address{}, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return customer.Address{}, err
	}
	return customer.Address{
		ID:            id,
		UserID:        userID,
		RecipientName: dto.RecipientName,
		Phone:         dto.Phone,
		Line:          dto.Line,
	}, nil
}
