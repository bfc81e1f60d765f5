package ports

import (
	"context"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/product"
)

// ProductRepository persists products and applies fulfillment counter changes.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// ConsumeStock decrements the stock of (productID, size) and increments the product's
	// sold counter by quantity in one statement. Returns *errs.ObjectNotFoundError when the
	// product does not carry the size; nothing is changed then. Stock is not checked
	// and may go negative.
	ConsumeStock(ctx context.Context, productID kernel.UUID, size int, quantity int) error

	// IncrementSold bumps only the sold counter, for lines without a size.
	IncrementSold(ctx context.Context, productID kernel.UUID, quantity int) error
}
