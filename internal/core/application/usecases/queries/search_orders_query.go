package queries

import (
	"context"
	"errors"
	"strings"

	"evashoes/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery matches orders whose code, recipient name or recipient phone
// contains the text, ignoring case. Blank text matches every order.
type SearchOrdersQuery struct {
	text string

	guard guard.ConstructorGuard
}

func NewSearchOrdersQuery(text string) SearchOrdersQuery {
	return SearchOrdersQuery{text: strings.TrimSpace(text), guard: guard.NewConstructorGuard()}
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) Text() string { return q.text }

type SearchOrdersQueryHandler struct {
	db *gorm.DB
}

func NewSearchOrdersQueryHandler(db *gorm.DB) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{db: db}
}

func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var tx *gorm.DB
	if query.Text() == "" {
		tx = db.Raw(`
			SELECT ` + orderSummaryColumns + `
			FROM orders o
			ORDER BY o.created_at DESC, o.id
		`)
	} else {
		pattern := likePattern(query.Text())
		tx = db.Raw(`
			SELECT `+orderSummaryColumns+`
			FROM orders o
			WHERE o.code_order ILIKE ? OR o.ship_full_name ILIKE ? OR o.ship_phone ILIKE ?
			ORDER BY o.created_at DESC, o.id
		`, pattern, pattern, pattern)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	return collectOrderSummaries(rows)
}
