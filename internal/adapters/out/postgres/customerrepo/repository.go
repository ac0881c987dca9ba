package customerrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements both the user directory and the address book.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) GetUser(ctx context.Context, id kernel.UUID) (customer.User, error) {
	if err := id.Validate(); err != nil {
		return customer.User{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer.User{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return customer.User{}, err
	}
	return userToDomain(dto)
}

func (r *GormCustomerRepository) GetAddress(ctx context.Context, id kernel.UUID) (customer.Address, error) {
	if err := id.Validate(); err != nil {
		return customer.Address{}, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer.Address{}, errs.NewObjectNotFoundError("address", id.String())
		}
		return customer.Address{}, err
	}
	return addressToDomain(dto)
}

// SaveUser upserts a user synced from the directory.
func (r *GormCustomerRepository) SaveUser(ctx context.Context, u customer.User) error {
	if err := u.ID.Validate(); err != nil {
		return err
	}
	dto := userFromDomain(u)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

func (r *GormCustomerRepository) SaveAddress(ctx context.Context, a customer.Address) error {
	if err := errors.Join(a.ID.Validate(), a.UserID.Validate()); err != nil {
		return err
	}
	dto := addressFromDomain(a)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}
