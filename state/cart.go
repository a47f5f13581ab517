// Package state holds a shopper's application state: the cart, the current
// view, and the cart drawer flag.
package state

import (
	"github.com/shopspring/decimal"

	"github.com/peakhub/storefront/models"
)

// CartLine is one entry in the cart: a product snapshot, the chosen variant and a quantity.
type CartLine struct {
	Product         models.Product
	Quantity        int
	SelectedVariant models.Variant
}

// Subtotal is the line's contribution to the cart total. It bills the product's
// base price; the selected variant's own price is ignored.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l CartLine) matches(productID string, v models.Variant) bool {
	// Size is not part of the merge key.
	return l.Product.ID == productID && l.SelectedVariant.Flavor == v.Flavor
}

func (l CartLine) clone() CartLine {
	l.Product = l.Product.Clone()
	return l
}

// Cart is an ordered list of lines. Lines are addressed by position.
// The zero value is an empty cart.
type Cart struct {
	lines []CartLine
}

// NewCart copies lines into a new cart, raising any quantity below 1 to 1.
func NewCart(lines []CartLine) *Cart {
	c := &Cart{lines: make([]CartLine, 0, len(lines))}
	for _, l := range lines {
		l = l.clone()
		l.Quantity = max(l.Quantity, 1)
		c.lines = append(c.lines, l)
	}
	return c
}

// Add merges qty into the line for the same product and flavor, or appends a
// new line holding a snapshot of product. qty below 1 counts as 1.
func (c *Cart) Add(product models.Product, variant models.Variant, qty int) {
	qty = max(qty, 1)
	for i := range c.lines {
		if c.lines[i].matches(product.ID, variant) {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		Product:         product.Clone(),
		Quantity:        qty,
		SelectedVariant: variant,
	})
}

// RemoveAt drops the line at pos. Positions outside the cart are ignored.
func (c *Cart) RemoveAt(pos int) {
	if pos < 0 || pos >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:pos:pos], c.lines[pos+1:]...)
}

// UpdateQuantity adds delta to the line at pos, never going below 1.
// Positions outside the cart are ignored.
func (c *Cart) UpdateQuantity(pos, delta int) {
	if pos < 0 || pos >= len(c.lines) {
		return
	}
	c.lines[pos].Quantity = max(1, c.lines[pos].Quantity+delta)
}

// Total sums every line's subtotal.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount sums quantities across lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a deep copy of the cart contents in display order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.clone()
	}
	return out
}
