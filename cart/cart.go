// Package cart keeps the shopping cart: an ordered set of lines, one per
// product, with derived totals.
package cart

import (
	"time"

	"agrogram/models"
)

// Cart is the in-memory line set. Checkout aggregation and unit tests use it
// directly; the HTTP handlers keep the same invariants in Mongo.
type Cart struct {
	items []models.CartItem
}

// AddItem merges into an existing line (summing quantities) or appends.
// Quantities below one are clamped to one.
func (c *Cart) AddItem(item models.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			return
		}
	}
	item.AddedAt = time.Now()
	c.items = append(c.items, item)
}

// UpdateQuantity replaces a line's quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops the line for productID, if present.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total recomputes the grand total on every call.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.TotalPrice()
	}
	return total
}

// ItemCount is the summed quantity across lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
