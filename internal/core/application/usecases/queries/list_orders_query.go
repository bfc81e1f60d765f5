package queries

import (
	"context"
	"errors"
	"strings"

	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through all orders, newest first, optionally filtered by status.
type ListOrdersQuery struct {
	page   int
	limit  int
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery defaults page to 1 and limit to DefaultPageLimit when they are zero.
func NewListOrdersQuery(page, limit int, status *order.Status) (ListOrdersQuery, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}

	var errList []error
	if page < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 1, "∞"))
	}
	if limit < 1 || limit > MaxPageLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageLimit))
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			errList = append(errList, err)
		}
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{page: page, limit: limit, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Page() int { return q.page }

func (q ListOrdersQuery) Limit() int { return q.limit }

func (q ListOrdersQuery) Status() *order.Status { return q.status }

// OrderPage is one page of orders with the total number of matching orders.
type OrderPage struct {
	Orders []OrderSummary
	Total  int64
	Page   int
	Limit  int
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	where := ""
	args := make([]any, 0, 3)
	if query.Status() != nil {
		where = "WHERE o.status = ?"
		args = append(args, query.Status().String())
	}

	var total int64
	if err := h.db.WithContext(ctx).
		Raw(strings.TrimSpace("SELECT COUNT(*) FROM orders o "+where), args...).
		Scan(&total).Error; err != nil {
		return OrderPage{}, err
	}

	args = append(args, query.Limit(), (query.Page()-1)*query.Limit())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM orders o
		`+where+`
		ORDER BY o.created_at DESC, o.id
		LIMIT ? OFFSET ?
	`, args...).Rows()
	if err != nil {
		return OrderPage{}, err
	}
	orders, err := collectOrderSummaries(rows)
	if err != nil {
		return OrderPage{}, err
	}

	return OrderPage{Orders: orders, Total: total, Page: query.Page(), Limit: query.Limit()}, nil
}
