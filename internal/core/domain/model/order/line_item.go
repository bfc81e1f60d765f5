package order

import (
	"errors"
	"fmt"
	"strings"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
	"evashoes/internal/pkg/guard"
)

// MaxLineQuantity caps a single line. It keeps a mistyped quantity from zeroing out
// a size's stock in one delivery.
const MaxLineQuantity = 1000

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product/color/size/quantity entry of an order with the unit price
// captured at checkout.
type LineItem struct {
	productID kernel.UUID
	quantity  int
	price     kernel.Money
	color     string
	size      *int

	guard guard.ConstructorGuard
}

// NewLineItem validates a line. size is optional: products sold without sizes (bags,
// care kits) carry nil and only count towards the sold counter on delivery.
func NewLineItem(productID kernel.UUID, quantity int, price kernel.Money, color string, size *int) (LineItem, error) {
	item := LineItem{
		productID: productID,
		price:     price,
		color:     strings.TrimSpace(color),
		guard:     guard.NewConstructorGuard(),
	}

	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("product", err))
	}
	if quantity < 1 || quantity > MaxLineQuantity {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxLineQuantity))
	}
	if size != nil && *size <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not a shoe size", *size)))
	}
	if err := errors.Join(errList...); err != nil {
		return LineItem{}, err
	}

	item.quantity = quantity
	if size != nil {
		s := *size
		item.size = &s
	}
	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) ProductID() kernel.UUID { return i.productID }

func (i LineItem) Quantity() int { return i.quantity }

func (i LineItem) Price() kernel.Money { return i.price }

func (i LineItem) Color() string { return i.color }

// Size returns the numeric size and whether the line has one.
func (i LineItem) Size() (int, bool) {
	if i.size == nil {
		return 0, false
	}
	return *i.size, true
}

// Subtotal is price × quantity.
func (i LineItem) Subtotal() kernel.Money {
	return i.price.Times(i.quantity)
}
