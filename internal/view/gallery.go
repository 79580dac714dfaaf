package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
)

// GallerySnapshot replaces the gallery tiles when Products is set.
type GallerySnapshot struct {
	Products *[]domain.Product
}

// Gallery lists the catalog as product cards.
type Gallery struct {
	pub    events.Publisher
	format Format
	cards  []*ProductCard
	cursor int
}

func NewGallery(pub events.Publisher, format Format) *Gallery {
	return &Gallery{pub: pub, format: format.withDefaults()}
}

func (g *Gallery) Render(s GallerySnapshot) Handle {
	if s.Products != nil {
		g.cards = g.cards[:0]
		for _, p := range *s.Products {
			c := NewProductCard(g.format, Actions{})
			c.actions.OnClick = func() {
				g.pub.Publish(events.ProductSelect{ID: c.id})
			}
			c.Render(FromProduct(p))
			g.cards = append(g.cards, c)
		}
		g.cursor = clamp(g.cursor, len(g.cards))
	}
	return g.View()
}

func (g *Gallery) View() Handle {
	if len(g.cards) == 0 {
		return Handle(mutedStyle.Render("No products to show."))
	}
	lines := make([]string, 0, len(g.cards))
	for i, c := range g.cards {
		lines = append(lines, marker(i == g.cursor)+string(c.View()))
	}
	return Handle(strings.Join(lines, "\n"))
}

// Move shifts the highlighted card.
func (g *Gallery) Move(delta int) {
	g.cursor = clamp(g.cursor+delta, len(g.cards))
}

// Choose clicks the highlighted card.
func (g *Gallery) Choose() {
	if len(g.cards) == 0 {
		return
	}
	g.cards[g.cursor].Click()
}

// Search is the filter gesture.
func (g *Gallery) Search(query string) {
	g.pub.Publish(events.GallerySearch{Query: query})
}

// Len returns the number of tiles shown.
func (g *Gallery) Len() int { return len(g.cards) }

// Cursor returns the highlighted tile index.
func (g *Gallery) Cursor() int { return g.cursor }

// HeaderSnapshot updates the page header.
type HeaderSnapshot struct {
	Counter *int
}

// Header shows the shop name and the basket counter.
type Header struct {
	pub     events.Publisher
	title   string
	counter int
}

func NewHeader(pub events.Publisher, title string) *Header {
	return &Header{pub: pub, title: title}
}

func (h *Header) Render(s HeaderSnapshot) Handle {
	if s.Counter != nil {
		h.counter = *s.Counter
	}
	return h.View()
}

func (h *Header) View() Handle {
	return Handle(titleStyle.Render(h.title) + "   basket " + counterStyle.Render(fmt.Sprint(h.counter)))
}

// OpenBasket is the basket button gesture.
func (h *Header) OpenBasket() {
	h.pub.Publish(events.BasketOpen{})
}

// Counter returns the displayed basket size.
func (h *Header) Counter() int { return h.counter }

// BasketSnapshot updates the basket view.
type BasketSnapshot struct {
	Items           *[]domain.Product
	Total           *decimal.Decimal
	CheckoutEnabled *bool
}

// Basket lists the cart lines, the total and the checkout button.
type Basket struct {
	pub             events.Publisher
	format          Format
	lines           []*BasketCard
	total           string
	checkoutEnabled bool
	cursor          int
}

func NewBasket(pub events.Publisher, format Format) *Basket {
	format = format.withDefaults()
	return &Basket{pub: pub, format: format, total: format.Amount(decimal.Zero)}
}

func (b *Basket) Render(s BasketSnapshot) Handle {
	if s.Items != nil {
		b.lines = b.lines[:0]
		for i, p := range *s.Items {
			line := NewBasketCard(b.format, Actions{})
			line.actions.OnClick = func() {
				b.pub.Publish(events.BasketRemove{ID: line.id})
			}
			snap := FromProduct(p)
			snap.Index = Ptr(i + 1)
			line.Render(snap)
			b.lines = append(b.lines, line)
		}
		b.cursor = clamp(b.cursor, len(b.lines))
	}
	if s.Total != nil {
		b.total = b.format.Amount(*s.Total)
	}
	if s.CheckoutEnabled != nil {
		b.checkoutEnabled = *s.CheckoutEnabled
	}
	return b.View()
}

func (b *Basket) View() Handle {
	lines := []string{titleStyle.Render("Basket"), ""}
	if len(b.lines) == 0 {
		lines = append(lines, mutedStyle.Render("The basket is empty."))
	}
	for i, l := range b.lines {
		lines = append(lines, marker(i == b.cursor)+string(l.View()))
	}
	lines = append(lines, "", button("Checkout", b.checkoutEnabled)+"   "+priceStyle.Render(b.total))
	return Handle(strings.Join(lines, "\n"))
}

// Move shifts the highlighted line.
func (b *Basket) Move(delta int) {
	b.cursor = clamp(b.cursor+delta, len(b.lines))
}

// RemoveCurrent is the delete gesture on the highlighted line.
func (b *Basket) RemoveCurrent() {
	if len(b.lines) == 0 {
		return
	}
	b.lines[b.cursor].Delete()
}

// Checkout is the checkout button gesture.
func (b *Basket) Checkout() {
	if !b.checkoutEnabled {
		return
	}
	b.pub.Publish(events.OrderFormOpen{})
}

// Total returns the displayed total label.
func (b *Basket) Total() string { return b.total }

// Len returns the number of lines shown.
func (b *Basket) Len() int { return len(b.lines) }

// CheckoutEnabled reports the checkout button state.
func (b *Basket) CheckoutEnabled() bool { return b.checkoutEnabled }

func marker(active bool) string {
	if active {
		return cursorStyle.Render("▶ ")
	}
	return "  "
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

var (
	_ Renderable[GallerySnapshot] = (*Gallery)(nil)
	_ Renderable[HeaderSnapshot]  = (*Header)(nil)
	_ Renderable[BasketSnapshot]  = (*Basket)(nil)
)
