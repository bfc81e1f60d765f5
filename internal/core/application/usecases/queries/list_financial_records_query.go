package queries

import (
	"context"
	"errors"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrListFinancialRecordsQueryIsNotConstructed = errors.New(
	"ListFinancialRecordsQuery must be created via NewListFinancialRecordsQuery constructor",
)

type ListFinancialRecordsQuery struct {
	guard guard.ConstructorGuard
}

func NewListFinancialRecordsQuery() ListFinancialRecordsQuery {
	return ListFinancialRecordsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListFinancialRecordsQuery) Validate() error {
	return q.guard.Validate(ErrListFinancialRecordsQueryIsNotConstructed)
}

type FinancialRecordView struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	CodeOrder   string
	TotalAmount kernel.Money
	Cost        kernel.Money
	Date        time.Time
}

// ListFinancialRecordsQueryHandler lists the ledger, newest first. CodeOrder is empty
// for records whose order was deleted.
type ListFinancialRecordsQueryHandler struct {
	db *gorm.DB
}

func NewListFinancialRecordsQueryHandler(db *gorm.DB) ListFinancialRecordsQueryHandler {
	return ListFinancialRecordsQueryHandler{db: db}
}

func (h ListFinancialRecordsQueryHandler) Handle(
	ctx context.Context,
	query ListFinancialRecordsQuery,
) ([]FinancialRecordView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			f.id,
			f.order_id,
			COALESCE(o.code_order, ''),
			f.total_amount,
			f.cost,
			f.date
		FROM financial_records f
		LEFT JOIN orders o ON o.id = f.order_id
		ORDER BY f.date DESC, f.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]FinancialRecordView, 0)
	for rows.Next() {
		var (
			r           FinancialRecordView
			id, orderID uuid.UUID
			total, cost decimal.Decimal
		)
		if err = rows.Scan(&id, &orderID, &r.CodeOrder, &total, &cost, &r.Date); err != nil {
			return nil, err
		}
		if r.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if r.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if r.TotalAmount, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		if r.Cost, err = kernel.NewMoney(cost); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
