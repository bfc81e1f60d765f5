package ports

import (
	"context"

	"evashoes/internal/core/domain/model/cart"
	"evashoes/internal/core/domain/model/kernel"
)

// CartRepository stores cart lines keyed by (user, product, color, size).
type CartRepository interface {
	// UpsertLines inserts every line or, when the key exists, adds its quantity to the
	// stored one and replaces the price. Each line is one atomic statement.
	UpsertLines(ctx context.Context, userID kernel.UUID, lines []cart.Line) error

	// RemoveProduct deletes every line of productID. Returns *errs.ObjectNotFoundError
	// when the user has no such line.
	RemoveProduct(ctx context.Context, userID kernel.UUID, productID kernel.UUID) error

	Clear(ctx context.Context, userID kernel.UUID) error
}
