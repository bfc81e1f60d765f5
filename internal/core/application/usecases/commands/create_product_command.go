package commands

import (
	"errors"
	"strings"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/product"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds a catalog entry and seeds its per-size stock.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	name        string
	price       kernel.Money
	sellPrice   *kernel.Money
	description string
	details     string
	imageURLs   []string
	sizes       []product.SizeStock
	isSale      bool

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID kernel.UUID,
	name string,
	price kernel.Money,
	sellPrice *kernel.Money,
	description string,
	details string,
	imageURLs []string,
	sizes []product.SizeStock,
	isSale bool,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		productID:   productID,
		name:        strings.TrimSpace(name),
		price:       price,
		sellPrice:   sellPrice,
		description: description,
		details:     details,
		imageURLs:   append([]string(nil), imageURLs...),
		sizes:       append([]product.SizeStock(nil), sizes...),
		isSale:      isSale,
		guard:       guard.NewConstructorGuard(),
	}

	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if cmd.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	for _, s := range sizes {
		if s.Stock < 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("stock", s.Stock, 0, "∞"))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID { return c.productID }

func (c CreateProductCommand) Name() string { return c.name }

func (c CreateProductCommand) Price() kernel.Money { return c.price }

func (c CreateProductCommand) SellPrice() *kernel.Money { return c.sellPrice }

func (c CreateProductCommand) Description() string { return c.description }

func (c CreateProductCommand) Details() string { return c.details }

func (c CreateProductCommand) ImageURLs() []string { return append([]string(nil), c.imageURLs...) }

func (c CreateProductCommand) Sizes() []product.SizeStock {
	return append([]product.SizeStock(nil), c.sizes...)
}

func (c CreateProductCommand) IsSale() bool { return c.isSale }
