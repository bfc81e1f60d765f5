package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrListProductsQueryIsNotConstructed = errors.New(
		"ListProductsQuery must be created via NewListProductsQuery constructor",
	)
	ErrGetProductQueryIsNotConstructed = errors.New(
		"GetProductQuery must be created via NewGetProductQuery constructor",
	)
)

type SizeStockView struct {
	Size  int
	Stock int
}

// ProductView is a catalog entry with its per-size stock.
type ProductView struct {
	ID          kernel.UUID
	Name        string
	Price       kernel.Money
	SellPrice   *kernel.Money
	Description string
	Details     string
	ImageURLs   []string
	Sizes       []SizeStockView
	Sold        int
	IsSale      bool
	CreatedAt   time.Time
}

// ListProductsQuery lists active products, newest first. A non-empty name keeps only
// products whose name contains it, ignoring case.
type ListProductsQuery struct {
	name string

	guard guard.ConstructorGuard
}

func NewListProductsQuery(name string) ListProductsQuery {
	return ListProductsQuery{name: strings.TrimSpace(name), guard: guard.NewConstructorGuard()}
}

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

func (q ListProductsQuery) Name() string { return q.name }

type GetProductQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, err
	}
	return GetProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

func (q GetProductQuery) ProductID() kernel.UUID { return q.productID }

// ProductQueryHandler serves the catalog reads.
type ProductQueryHandler struct {
	db *gorm.DB
}

func NewProductQueryHandler(db *gorm.DB) ProductQueryHandler {
	return ProductQueryHandler{db: db}
}

const productColumns = `
	p.id,
	p.name,
	p.price,
	p.sell_price,
	p.description,
	p.details,
	p.image_urls,
	p.sold,
	p.is_sale,
	p.created_at`

func (h ProductQueryHandler) List(ctx context.Context, query ListProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var tx *gorm.DB
	if query.Name() == "" {
		tx = db.Raw(`
			SELECT ` + productColumns + `
			FROM products p
			WHERE p.is_active
			ORDER BY p.created_at DESC, p.id
		`)
	} else {
		tx = db.Raw(`
			SELECT `+productColumns+`
			FROM products p
			WHERE p.is_active AND p.name ILIKE ?
			ORDER BY p.created_at DESC, p.id
		`, likePattern(query.Name()))
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	if err = h.attachSizes(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns an active product. Inactive and missing products are reported as
// *errs.ObjectNotFoundError.
func (h ProductQueryHandler) Get(ctx context.Context, query GetProductQuery) (ProductView, error) {
	if err := query.Validate(); err != nil {
		return ProductView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+productColumns+`
		FROM products p
		WHERE p.id = ? AND p.is_active
	`, query.ProductID().String()).Rows()
	if err != nil {
		return ProductView{}, err
	}
	products, err := collectProducts(rows)
	if err != nil {
		return ProductView{}, err
	}
	if len(products) == 0 {
		return ProductView{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}
	if err = h.attachSizes(ctx, products); err != nil {
		return ProductView{}, err
	}
	return products[0], nil
}

func collectProducts(rows *sql.Rows) ([]ProductView, error) {
	defer rows.Close()

	products := make([]ProductView, 0)
	for rows.Next() {
		var (
			p         ProductView
			id        uuid.UUID
			price     decimal.Decimal
			sellPrice decimal.NullDecimal
			images    pq.StringArray
		)
		if err := rows.Scan(&id, &p.Name, &price, &sellPrice, &p.Description, &p.Details, &images, &p.Sold, &p.IsSale, &p.CreatedAt); err != nil {
			return nil, err
		}

		var err error
		if p.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if p.Price, err = kernel.NewMoney(price); err != nil {
			return nil, err
		}
		if sellPrice.Valid {
			sp, spErr := kernel.NewMoney(sellPrice.Decimal)
			if spErr != nil {
				return nil, spErr
			}
			p.SellPrice = &sp
		}
		p.ImageURLs = []string(images)
		if p.ImageURLs == nil {
			p.ImageURLs = []string{}
		}
		p.Sizes = []SizeStockView{}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (h ProductQueryHandler) attachSizes(ctx context.Context, products []ProductView) error {
	if len(products) == 0 {
		return nil
	}

	ids := make(pq.StringArray, len(products))
	byID := make(map[string]int, len(products))
	for i, p := range products {
		ids[i] = p.ID.String()
		byID[p.ID.String()] = i
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, size, stock
		FROM product_sizes
		WHERE product_id = ANY(?::uuid[])
		ORDER BY product_id, size
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID uuid.UUID
			s         SizeStockView
		)
		if err = rows.Scan(&productID, &s.Size, &s.Stock); err != nil {
			return err
		}
		if i, ok := byID[productID.String()]; ok {
			products[i].Sizes = append(products[i].Sizes, s)
		}
	}
	return rows.Err()
}
