package store

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
)

// Catalog owns the product list in server order and the inspected product.
type Catalog struct {
	pub      events.Publisher
	products []domain.Product
	byID     map[string]int
	selected string
}

func NewCatalog(pub events.Publisher) *Catalog {
	return &Catalog{pub: pub, byID: map[string]int{}}
}

// SetProducts replaces the whole catalog.
func (c *Catalog) SetProducts(products []domain.Product) {
	c.products = append([]domain.Product(nil), products...)
	c.byID = make(map[string]int, len(products))
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	c.pub.Publish(events.ProductsReceived{Products: c.Products()})
}

// Products returns a copy of the catalog.
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

// Len returns the number of loaded products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ProductByID looks a product up.
func (c *Catalog) ProductByID(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// SetSelected marks id as the inspected product. Unknown ids are ignored and
// reported as false.
func (c *Catalog) SetSelected(id string) bool {
	p, ok := c.ProductByID(id)
	if !ok {
		return false
	}
	c.selected = id
	c.pub.Publish(events.ProductSelected{Product: p})
	return true
}

// Selected returns the inspected product, if it is still in the catalog.
func (c *Catalog) Selected() (domain.Product, bool) {
	if c.selected == "" {
		return domain.Product{}, false
	}
	return c.ProductByID(c.selected)
}

// Search returns products whose title or category contains query, or whose
// title has a word within a small edit distance of it. Order follows the
// catalog. An empty query returns everything.
func (c *Catalog) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Products()
	}
	var out []domain.Product
	for _, p := range c.products {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, q string) bool {
	title := strings.ToLower(p.Title)
	if strings.Contains(title, q) || strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	limit := 1
	if len([]rune(q)) >= 6 {
		limit = 2
	}
	if len([]rune(q)) < 3 {
		return false
	}
	for _, word := range strings.FieldsFunc(title, isSeparator) {
		if levenshtein.ComputeDistance(word, q) <= limit {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '_' || r == '/' || r == ',' || r == '.'
}
