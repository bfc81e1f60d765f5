// Package cartrepo stores cart lines. Every write is a single statement so concurrent
// adds of the same line never lose a quantity.
package cartrepo

import (
	"context"
	"fmt"
	"time"

	"evashoes/internal/core/domain/model/cart"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartLineDTO is the "cart_lines" row. Size 0 stands for products without sizes so
// that the composite key never contains NULL.
type CartLineDTO struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Color     string          `gorm:"primaryKey"`
	Size      int             `gorm:"primaryKey;autoIncrement:false"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

func (CartLineDTO) TableName() string {
	return "cart_lines"
}

var lineKey = []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "color"}, {Name: "size"}}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// UpsertLines issues one INSERT ... ON CONFLICT per line. Stored quantities are
// increased by the line's quantity and the price is replaced.
func (r *GormCartRepository) UpsertLines(ctx context.Context, userID kernel.UUID, lines []cart.Line) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}

	db := r.db.WithContext(ctx)
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}

		dto := CartLineDTO{
			UserID:    userID.Bytes(),
			ProductID: line.ProductID.Bytes(),
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Price:     line.Price.Decimal(),
		}
		err := db.Clauses(clause.OnConflict{
			Columns: lineKey,
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_lines.quantity + EXCLUDED.quantity"),
				"price":      gorm.Expr("EXCLUDED.price"),
				"updated_at": gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).Create(&dto).Error
		if err != nil {
			return fmt.Errorf("upsert cart line %s: %w", line.Key(), err)
		}
	}
	return nil
}

func (r *GormCartRepository) RemoveProduct(ctx context.Context, userID kernel.UUID, productID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID.Bytes(), productID.Bytes()).
		Delete(&CartLineDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart item", productID.String())
	}
	return nil
}

// Clear empties the cart. Clearing an empty cart is not an error.
func (r *GormCartRepository) Clear(ctx context.Context, userID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Delete(&CartLineDTO{}).Error
}
