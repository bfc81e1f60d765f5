package ports

import (
	"context"

	"evashoes/internal/core/domain/model/order"
)

// OutboxMessage is a committed status change that has not been published yet.
type OutboxMessage struct {
	ID     int64
	Change order.StatusChange
}

// OutboxRepository stores status changes in the same transaction as the order they
// describe, so a committed transition always has an event waiting for the relay.
type OutboxRepository interface {
	Add(ctx context.Context, change order.StatusChange) error

	// ClaimPending locks up to limit unsent messages, oldest first, skipping rows locked
	// by another relay. Call it inside a transaction.
	ClaimPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkSent(ctx context.Context, ids []int64) error
}
