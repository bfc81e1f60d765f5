package queries

import (
	"context"
	"errors"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

type GetCartQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	return GetCartQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) UserID() kernel.UUID { return q.userID }

// CartLineView is a cart line populated with product data. Size is nil for
// products without sizes.
type CartLineView struct {
	ProductID   kernel.UUID
	ProductName string
	ImageURL    string
	Color       string
	Size        *int
	Quantity    int
	Price       kernel.Money
}

// CartView is a customer's cart. Total is Σ price × quantity and is zero for an empty
// or missing cart.
type CartView struct {
	Lines []CartLineView
	Total kernel.Money
}

type GetCartQueryHandler struct {
	db *gorm.DB
}

func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (CartView, error) {
	if err := query.Validate(); err != nil {
		return CartView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.product_id,
			COALESCE(p.name, ''),
			COALESCE(p.image_urls[1], ''),
			c.color,
			c.size,
			c.quantity,
			c.price
		FROM cart_lines c
		LEFT JOIN products p ON p.id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.created_at, c.product_id, c.color, c.size
	`, query.UserID().String()).Rows()
	if err != nil {
		return CartView{}, err
	}
	defer rows.Close()

	view := CartView{Lines: make([]CartLineView, 0), Total: kernel.Zero()}
	for rows.Next() {
		var (
			line      CartLineView
			productID uuid.UUID
			size      int
			price     decimal.Decimal
		)
		if err = rows.Scan(&productID, &line.ProductName, &line.ImageURL, &line.Color, &size, &line.Quantity, &price); err != nil {
			return CartView{}, err
		}
		if line.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return CartView{}, err
		}
		if line.Price, err = kernel.NewMoney(price); err != nil {
			return CartView{}, err
		}
		if size > 0 {
			line.Size = &size
		}
		view.Lines = append(view.Lines, line)
		view.Total = view.Total.Add(line.Price.Times(line.Quantity))
	}
	if err = rows.Err(); err != nil {
		return CartView{}, err
	}
	return view, nil
}
