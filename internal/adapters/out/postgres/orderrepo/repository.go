package orderrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its line items. The insert runs in its own savepoint so that a
// duplicate order number leaves the caller's transaction usable for a retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewConflictError("order number", err)
	}
	return err
}

// Update writes the mutable columns. Line items never change after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate holds the order row lock until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) ListByUser(ctx context.Context, userID kernel.UUID, limit int) ([]*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	header := db
	if forUpdate {
		header = header.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := header.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
