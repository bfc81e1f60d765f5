// Package ledgerrepo persists financial records of delivered orders.
package ledgerrepo

import (
	"context"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialRecordDTO is the "financial_records" row. OrderID carries no foreign key:
// records outlive deleted orders.
type FinancialRecordDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Cost        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Date        time.Time       `gorm:"index;not null"`
}

func (FinancialRecordDTO) TableName() string {
	return "financial_records"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormLedgerRepository) Add(ctx context.Context, record *ledger.FinancialRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := FinancialRecordDTO{
		ID:          record.ID().Bytes(),
		OrderID:     record.OrderID().Bytes(),
		TotalAmount: record.TotalAmount().Decimal(),
		Cost:        record.Cost().Decimal(),
		Date:        record.Date(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}
