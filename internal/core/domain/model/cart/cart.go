// Package cart implements the customer's shopping cart with merge-on-write: lines
// with the same product, color and size collapse into one line whose quantity is the
// sum of the merged quantities.
package cart

import (
	"errors"
	"fmt"
	"strings"

	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/pkg/errs"
)

// NoSize is the size stored for products sold without a numeric size.
const NoSize = 0

// Key identifies a cart line. Two lines with equal keys are merged.
type Key struct {
	ProductID kernel.UUID
	Color     string
	Size      int
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%d", k.ProductID, k.Color, k.Size)
}

// Line is one cart entry.
type Line struct {
	ProductID kernel.UUID
	Color     string
	Size      int
	Quantity  int
	Price     kernel.Money
}

// NewLine normalizes and validates a line. A nil size becomes NoSize.
func NewLine(productID kernel.UUID, color string, size *int, quantity int, price kernel.Money) (Line, error) {
	line := Line{
		ProductID: productID,
		Color:     strings.TrimSpace(color),
		Size:      NoSize,
		Quantity:  quantity,
		Price:     price,
	}
	if size != nil {
		line.Size = *size
	}
	if err := line.Validate(); err != nil {
		return Line{}, err
	}
	return line, nil
}

func (l Line) Validate() error {
	var errList []error
	if err := l.ProductID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("product", err))
	}
	if l.Quantity < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", l.Quantity, 1, "∞"))
	}
	if l.Size < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not a shoe size", l.Size)))
	}
	return errors.Join(errList...)
}

func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Color: l.Color, Size: l.Size}
}

// HasSize reports whether the line carries a numeric size.
func (l Line) HasSize() bool {
	return l.Size != NoSize
}

func (l Line) Subtotal() kernel.Money {
	return l.Price.Times(l.Quantity)
}

// Cart is the set of lines of one customer, at most one line per Key.
type Cart struct {
	userID kernel.UUID
	lines  []Line
	index  map[Key]int
}

func NewCart(userID kernel.UUID) (*Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	return &Cart{
		userID: userID,
		index:  make(map[Key]int),
	}, nil
}

// Add merges lines into the cart. Quantities of equal keys are summed and the price of
// the most recent line wins. Lines keep the order in which their key was first seen.
func (c *Cart) Add(lines ...Line) error {
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}

	for _, line := range lines {
		key := line.Key()
		if pos, ok := c.index[key]; ok {
			c.lines[pos].Quantity += line.Quantity
			c.lines[pos].Price = line.Price
			continue
		}
		c.index[key] = len(c.lines)
		c.lines = append(c.lines, line)
	}
	return nil
}

// Remove drops every line of productID regardless of color and size.
func (c *Cart) Remove(productID kernel.UUID) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if !line.ProductID.IsEqual(productID) {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	c.reindex()
}

func (c *Cart) Clear() {
	c.lines = nil
	c.reindex()
}

func (c *Cart) UserID() kernel.UUID { return c.userID }

func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Total is Σ price × quantity.
func (c *Cart) Total() kernel.Money {
	total := kernel.Zero()
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *Cart) reindex() {
	c.index = make(map[Key]int, len(c.lines))
	for i, line := range c.lines {
		c.index[line.Key()] = i
	}
}
