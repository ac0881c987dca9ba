package productrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository serves both the read-only catalog and the guarded stock counters.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save inserts or replaces a product. It backs catalog administration and seeding.
func (r *GormProductRepository) Save(ctx context.Context, p catalog.Product) error {
	if err := p.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

// Delete removes a product. Orders referencing it keep their line item snapshots.
func (r *GormProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&ProductDTO{}, "id = ?", id.Bytes()).Error
}

func (r *GormProductRepository) GetProduct(ctx context.Context, id kernel.UUID) (catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return catalog.Product{}, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Product{}, errs.NewObjectNotFoundError("product", id.String())
		}
		return catalog.Product{}, err
	}

	return toDomain(dto)
}

// LockForUpdate takes row locks in ascending id order so that concurrent checkouts over
// overlapping products cannot deadlock.
func (r *GormProductRepository) LockForUpdate(ctx context.Context, ids []kernel.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		products = append(products, p)
	}
	return products, nil
}

// Decrement only touches the row while enough stock remains, so stock never goes negative.
func (r *GormProductRepository) Decrement(ctx context.Context, productID kernel.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND stock >= ?", productID.Bytes(), quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := r.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	return errs.NewInsufficientStockError(productID.String(), quantity, current.Stock)
}

func (r *GormProductRepository) Increment(ctx context.Context, productID kernel.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", productID.Bytes()).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return nil
}
