package commands

import (
	"context"
	"fmt"
	"log/slog"

	"evashoes/internal/core/ports"
)

// RelayStatusChangesCommandHandler drains the status change outbox into the
// StatusChangedPublisher.
//
// Delivery is at least once: a crash between publishing and committing leaves the rows
// pending, and the next run publishes them again. Consumers deduplicate on order id and
// target status.
type RelayStatusChangesCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.StatusChangedPublisher
	logger     *slog.Logger
}

func NewRelayStatusChangesCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.StatusChangedPublisher,
	logger *slog.Logger,
) RelayStatusChangesCommandHandler {
	return RelayStatusChangesCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "status_change_relay"),
	}
}

// Handle claims a batch, publishes it in outbox order and marks the published prefix as
// sent. It stops at the first publishing failure so later changes of the same order are
// never announced ahead of earlier ones; the failed message stays pending. It returns
// how many messages were published.
func (h *RelayStatusChangesCommandHandler) Handle(ctx context.Context, cmd RelayStatusChangesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.ClaimPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	sent := make([]int64, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if publishErr = h.publisher.PublishStatusChanged(ctx, msg.Change); publishErr != nil {
			h.logger.ErrorContext(ctx, "Failed to publish status change",
				"outbox_id", msg.ID,
				"order_id", msg.Change.OrderID.String(),
				"to", msg.Change.To.String(),
				"error", publishErr,
			)
			break
		}
		sent = append(sent, msg.ID)
	}

	if err = outbox.MarkSent(ctx, sent); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if publishErr != nil {
		return len(sent), fmt.Errorf("relay stopped after %d of %d messages: %w", len(sent), len(messages), publishErr)
	}
	return len(sent), nil
}
