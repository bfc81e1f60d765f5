// Package ports defines the contracts between the storefront core and its
// infrastructure: repositories bound to a unit of work and the outbound notifiers a
// status change fans out to.
package ports

import (
	"context"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Line items are stored and loaded together with their order.
type OrderRepository interface {
	// Add persists a new order with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order header: status, payment, shipping, notes and the
	// fulfillment timestamps. Line items are immutable after checkout.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns *errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends. Concurrent
	// status changes of the same order are serialized through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and its line items.
	Delete(ctx context.Context, id kernel.UUID) error
}
