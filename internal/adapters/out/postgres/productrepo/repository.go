package productrepo

import (
	"context"
	"errors"
	"fmt"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/product"
	"evashoes/internal/pkg/errs"

	"gorm.io/gorm"
)

// consumeStockSQL decrements one size counter and bumps the product's sold counter.
// The products update only runs when the size row exists, so a missing size leaves
// both tables untouched and affects zero rows.
const consumeStockSQL = `
	WITH s AS (
		UPDATE product_sizes
		SET stock = stock - ?
		WHERE product_id = ? AND size = ?
		RETURNING product_id
	)
	UPDATE products
	SET sold = sold + ?
	WHERE id IN (SELECT product_id FROM s)`

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product together with its size rows.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("product", "already exists")
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	err := r.db.WithContext(ctx).
		Preload("Sizes", func(tx *gorm.DB) *gorm.DB { return tx.Order("size") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ConsumeStock applies a sized fulfillment line in a single statement.
func (r *GormProductRepository) ConsumeStock(ctx context.Context, productID kernel.UUID, size int, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "∞")
	}

	result := r.db.WithContext(ctx).Exec(consumeStockSQL, quantity, productID.Bytes(), size, quantity)
	if result.Error != nil {
		return fmt.Errorf("consume stock of product %s size %d: %w", productID, size, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product size", fmt.Sprintf("%s/%d", productID, size))
	}
	return nil
}

// IncrementSold applies a sizeless fulfillment line.
func (r *GormProductRepository) IncrementSold(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "∞")
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", productID.Bytes()).
		UpdateColumn("sold", gorm.Expr("sold + ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("increment sold of product %s: %w", productID, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return nil
}
