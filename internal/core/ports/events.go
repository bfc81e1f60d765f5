package ports

import (
	"context"

	"evashoes/internal/core/domain/model/order"
)

// StatusChangedPublisher announces accepted status changes after they are committed.
type StatusChangedPublisher interface {
	PublishStatusChanged(ctx context.Context, change order.StatusChange) error
}

// TransitionObserver records status changes and rejections for monitoring.
type TransitionObserver interface {
	TransitionApplied(from, to order.Status)
	TransitionRejected(from, to order.Status)
}
