package store

import (
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
)

// Cart is the set of products picked for the order, one unit each.
type Cart struct {
	pub   events.Publisher
	items []domain.Product
}

func NewCart(pub events.Publisher) *Cart {
	return &Cart{pub: pub}
}

// Add puts p in the cart. Adding a product already present does nothing.
func (c *Cart) Add(p domain.Product) {
	if c.Has(p.ID) {
		return
	}
	c.items = append(c.items, p)
	c.changed()
}

// Remove takes p out of the cart. Removing an absent product does nothing.
func (c *Cart) Remove(p domain.Product) {
	for i, item := range c.items {
		if item.ID == p.ID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			c.changed()
			return
		}
	}
}

// Toggle adds p when absent and removes it otherwise.
func (c *Cart) Toggle(p domain.Product) {
	if c.Has(p.ID) {
		c.Remove(p)
		return
	}
	c.Add(p)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	if len(c.items) == 0 {
		return
	}
	c.items = nil
	c.changed()
}

// Items returns a copy of the cart in insertion order.
func (c *Cart) Items() []domain.Product {
	return append([]domain.Product(nil), c.items...)
}

// IDs returns the product ids in insertion order.
func (c *Cart) IDs() []string {
	out := make([]string, 0, len(c.items))
	for _, p := range c.items {
		out = append(out, p.ID)
	}
	return out
}

func (c *Cart) Has(id string) bool {
	for _, p := range c.items {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (c *Cart) Count() int {
	return len(c.items)
}

// TotalPrice sums priced items; unpriced items count as zero.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.items {
		total = total.Add(p.PriceOrZero())
	}
	return total
}

func (c *Cart) changed() {
	c.pub.Publish(events.BasketListUpdate{Items: c.Items()})
}
