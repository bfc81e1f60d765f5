package queries

import (
	"context"
	"errors"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetAdminStatsQueryIsNotConstructed = errors.New(
	"GetAdminStatsQuery must be created via NewGetAdminStatsQuery constructor",
)

type GetAdminStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAdminStatsQuery() GetAdminStatsQuery {
	return GetAdminStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAdminStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetAdminStatsQueryIsNotConstructed)
}

// AdminStats are the dashboard counters. Customers counts distinct users that placed
// at least one order; Revenue sums the ledger's total amounts.
type AdminStats struct {
	TotalProducts   int64
	TotalCustomers  int64
	DeliveredOrders int64
	PendingOrders   int64
	Revenue         kernel.Money
}

type GetAdminStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetAdminStatsQueryHandler(db *gorm.DB) GetAdminStatsQueryHandler {
	return GetAdminStatsQueryHandler{db: db}
}

func (h GetAdminStatsQueryHandler) Handle(ctx context.Context, query GetAdminStatsQuery) (AdminStats, error) {
	if err := query.Validate(); err != nil {
		return AdminStats{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM products WHERE is_active),
			(SELECT COUNT(DISTINCT user_id) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = ?),
			(SELECT COUNT(*) FROM orders WHERE status = ?),
			(SELECT COALESCE(SUM(total_amount), 0) FROM financial_records)
	`, order.Delivered.String(), order.Pending.String()).Row()

	var (
		stats   AdminStats
		revenue decimal.Decimal
	)
	if err := row.Scan(&stats.TotalProducts, &stats.TotalCustomers, &stats.DeliveredOrders, &stats.PendingOrders, &revenue); err != nil {
		return AdminStats{}, err
	}

	var err error
	if stats.Revenue, err = kernel.NewMoney(revenue); err != nil {
		return AdminStats{}, err
	}
	return stats, nil
}
