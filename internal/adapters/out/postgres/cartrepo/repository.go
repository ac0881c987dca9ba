package cartrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Get(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate creates the cart header when it is missing and holds its row lock until the
// surrounding transaction ends. Concurrent writers of one cart queue on that row.
func (r *GormCartRepository) GetForUpdate(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	header := CartDTO{UserID: userID.Bytes()}
	err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&header).Error
	if err != nil {
		return nil, err
	}

	var dto CartDTO
	err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	if err = db.Where("user_id = ?", dto.UserID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Save replaces the stored lines with the cart's current ones.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	if err = db.Where("user_id = ?", dto.UserID).Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}
	return db.Create(&dto.Items).Error
}
