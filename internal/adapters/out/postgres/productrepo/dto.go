// Package productrepo persists catalog products and their per-size stock, and applies
// the inventory counter changes of order fulfillment.
package productrepo

import (
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProductDTO is the "products" row.
type ProductDTO struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name        string              `gorm:"index;not null"`
	Price       decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	SellPrice   decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Description string              `gorm:"not null;default:''"`
	Details     string              `gorm:"not null;default:''"`
	ImageURLs   pq.StringArray      `gorm:"column:image_urls;type:text[]"`
	Sold        int                 `gorm:"not null;default:0"`
	IsSale      bool                `gorm:"not null"`
	IsActive    bool                `gorm:"index;not null"`
	CreatedAt   time.Time           `gorm:"index;not null"`
	Sizes       []ProductSizeDTO    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// ProductSizeDTO is one stock counter, keyed by (product_id, size).
type ProductSizeDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Size      int       `gorm:"primaryKey;autoIncrement:false"`
	Stock     int       `gorm:"not null"`
}

func (ProductSizeDTO) TableName() string {
	return "product_sizes"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	var sellPrice decimal.NullDecimal
	if sp := aggregate.SellPrice(); sp != nil {
		sellPrice = decimal.NullDecimal{Decimal: sp.Decimal(), Valid: true}
	}

	sizes := aggregate.Sizes()
	sizeDTOs := make([]ProductSizeDTO, 0, len(sizes))
	for _, s := range sizes {
		sizeDTOs = append(sizeDTOs, ProductSizeDTO{
			ProductID: aggregate.ID().Bytes(),
			Size:      s.Size,
			Stock:     s.Stock,
		})
	}

	return ProductDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Price:       aggregate.Price().Decimal(),
		SellPrice:   sellPrice,
		Description: aggregate.Description(),
		Details:     aggregate.Details(),
		ImageURLs:   pq.StringArray(aggregate.ImageURLs()),
		Sold:        aggregate.Sold(),
		IsSale:      aggregate.IsSale(),
		IsActive:    aggregate.IsActive(),
		CreatedAt:   aggregate.CreatedAt(),
		Sizes:       sizeDTOs,
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	var sellPrice *kernel.Money
	if dto.SellPrice.Valid {
		sp, spErr := kernel.NewMoney(dto.SellPrice.Decimal)
		if spErr != nil {
			return nil, spErr
		}
		sellPrice = &sp
	}

	sizes := make([]product.SizeStock, 0, len(dto.Sizes))
	for _, s := range dto.Sizes {
		sizes = append(sizes, product.SizeStock{Size: s.Size, Stock: s.Stock})
	}

	return product.RestoreProduct(product.State{
		ID:          id,
		Name:        dto.Name,
		Price:       price,
		SellPrice:   sellPrice,
		Description: dto.Description,
		Details:     dto.Details,
		ImageURLs:   []string(dto.ImageURLs),
		Sizes:       sizes,
		Sold:        dto.Sold,
		IsSale:      dto.IsSale,
		IsActive:    dto.IsActive,
		CreatedAt:   dto.CreatedAt,
	})
}
