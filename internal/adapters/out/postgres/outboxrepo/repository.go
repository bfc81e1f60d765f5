// Package outboxrepo keeps order status changes in a transactional outbox until the
// relay has published them.
package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxMessageDTO is the "outbox_messages" row. A NULL sent_at marks a pending message.
type OutboxMessageDTO struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null"`
	FromStatus string     `gorm:"size:16;not null"`
	ToStatus   string     `gorm:"size:16;not null"`
	OccurredAt time.Time  `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"not null"`
	SentAt     *time.Time `gorm:"index"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, change order.StatusChange) error {
	if err := change.OrderID.Validate(); err != nil {
		return err
	}

	dto := OutboxMessageDTO{
		OrderID:    change.OrderID.Bytes(),
		FromStatus: change.From.String(),
		ToStatus:   change.To.String(),
		OccurredAt: change.At,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ClaimPending selects unsent rows with FOR UPDATE SKIP LOCKED, so concurrent relays
// never pick the same message.
func (r *GormOutboxRepository) ClaimPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msg, err := toMessage(dto)
		if err != nil {
			return nil, fmt.Errorf("outbox message %d: %w", dto.ID, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", ids).
		Update("sent_at", time.Now().UTC()).Error
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	from, err := order.ParseStatus(dto.FromStatus)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID: dto.ID,
		Change: order.StatusChange{
			OrderID: orderID,
			From:    from,
			To:      to,
			At:      dto.OccurredAt,
		},
	}, nil
}
