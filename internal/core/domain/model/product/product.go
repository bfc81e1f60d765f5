// Package product models the catalog entry together with its inventory counters:
// per-size stock and the sold counter. The counters are only mutated by order
// fulfillment, which applies them as single conditional statements in storage.
package product

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// SizeStock is the stock counter of one numeric size.
type SizeStock struct {
	Size  int
	Stock int
}

// Product is a catalog entry.
type Product struct {
	id          kernel.UUID
	name        string
	price       kernel.Money
	sellPrice   *kernel.Money
	description string
	details     string
	imageURLs   []string
	sizes       []SizeStock
	sold        int
	isSale      bool
	isActive    bool
	createdAt   time.Time

	isConstructed bool
}

// State is the persisted form of a product.
type State struct {
	ID          kernel.UUID
	Name        string
	Price       kernel.Money
	SellPrice   *kernel.Money
	Description string
	Details     string
	ImageURLs   []string
	Sizes       []SizeStock
	Sold        int
	IsSale      bool
	IsActive    bool
	CreatedAt   time.Time
}

// NewProduct creates an active product with zero sold units.
func NewProduct(
	id kernel.UUID,
	name string,
	price kernel.Money,
	sellPrice *kernel.Money,
	description string,
	details string,
	imageURLs []string,
	sizes []SizeStock,
	isSale bool,
	createdAt time.Time,
) (*Product, error) {
	return RestoreProduct(State{
		ID:          id,
		Name:        name,
		Price:       price,
		SellPrice:   sellPrice,
		Description: description,
		Details:     details,
		ImageURLs:   imageURLs,
		Sizes:       sizes,
		IsSale:      isSale,
		IsActive:    true,
		CreatedAt:   createdAt,
	})
}

// RestoreProduct rebuilds a product from storage. Sold and stock counters are taken
// as stored: stock may be negative because fulfillment does not check availability.
func RestoreProduct(state State) (*Product, error) {
	p := &Product{
		price:         state.Price,
		sellPrice:     state.SellPrice,
		description:   strings.TrimSpace(state.Description),
		details:       strings.TrimSpace(state.Details),
		imageURLs:     slices.Clone(state.ImageURLs),
		sold:          state.Sold,
		isSale:        state.IsSale,
		isActive:      state.IsActive,
		createdAt:     state.CreatedAt,
		isConstructed: true,
	}

	var errList []error
	if err := state.ID.Validate(); err != nil {
		errList = append(errList, err)
	}
	p.id = state.ID

	p.name = strings.TrimSpace(state.Name)
	if p.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}

	if err := validateSizes(state.Sizes); err != nil {
		errList = append(errList, err)
	}
	p.sizes = slices.Clone(state.Sizes)

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return p, nil
}

func validateSizes(sizes []SizeStock) error {
	seen := make(map[int]struct{}, len(sizes))
	for _, s := range sizes {
		if s.Size <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("sizes", fmt.Errorf("%d is not a shoe size", s.Size))
		}
		if _, ok := seen[s.Size]; ok {
			return errs.NewValueIsInvalidErrorWithCause("sizes", fmt.Errorf("size %d is listed twice", s.Size))
		}
		seen[s.Size] = struct{}{}
	}
	return nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID { return p.id }

func (p *Product) Name() string { return p.name }

func (p *Product) Price() kernel.Money { return p.price }

func (p *Product) SellPrice() *kernel.Money { return p.sellPrice }

func (p *Product) Description() string { return p.description }

func (p *Product) Details() string { return p.details }

func (p *Product) ImageURLs() []string { return slices.Clone(p.imageURLs) }

func (p *Product) Sizes() []SizeStock { return slices.Clone(p.sizes) }

func (p *Product) Sold() int { return p.sold }

func (p *Product) IsSale() bool { return p.isSale }

func (p *Product) IsActive() bool { return p.isActive }

func (p *Product) CreatedAt() time.Time { return p.createdAt }

// Stock returns the stock counter of size and whether the product carries it.
func (p *Product) Stock(size int) (int, bool) {
	for _, s := range p.sizes {
		if s.Size == size {
			return s.Stock, true
		}
	}
	return 0, false
}

// TotalStock sums the stock of every size.
func (p *Product) TotalStock() int {
	total := 0
	for _, s := range p.sizes {
		total += s.Stock
	}
	return total
}
