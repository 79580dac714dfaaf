package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
)

// CardSnapshot is the partial state of a product card.
type CardSnapshot struct {
	ID            *string
	Title         *string
	Price         *decimal.NullDecimal
	Category      *string
	Image         *string
	Description   *string
	ButtonLabel   *string
	ButtonEnabled *bool
	Index         *int
}

// FromProduct fills every product field of a snapshot.
func FromProduct(p domain.Product) CardSnapshot {
	return CardSnapshot{
		ID:          Ptr(p.ID),
		Title:       Ptr(p.Title),
		Price:       Ptr(p.Price),
		Category:    Ptr(p.Category),
		Image:       Ptr(p.Image),
		Description: Ptr(p.Description),
	}
}

// Actions are the gesture callbacks a card forwards to.
type Actions struct {
	OnClick func()
}

// card is the title and price surface every card variant shares.
type card struct {
	format Format
	id     string
	title  string
	price  string
}

func (c *card) apply(s CardSnapshot) {
	if s.ID != nil {
		c.id = *s.ID
	}
	if s.Title != nil {
		c.title = *s.Title
	}
	if s.Price != nil {
		c.price = c.format.Price(*s.Price)
	}
}

// ProductCard is a gallery tile.
type ProductCard struct {
	card
	category string
	image    string
	actions  Actions
}

func NewProductCard(format Format, actions Actions) *ProductCard {
	return &ProductCard{card: card{format: format.withDefaults()}, actions: actions}
}

func (c *ProductCard) apply(s CardSnapshot) {
	c.card.apply(s)
	if s.Category != nil {
		c.category = *s.Category
	}
	if s.Image != nil {
		c.image = c.format.ImageURL(*s.Image)
	}
}

func (c *ProductCard) Render(s CardSnapshot) Handle {
	c.apply(s)
	return c.View()
}

func (c *ProductCard) View() Handle {
	var b strings.Builder
	if c.category != "" {
		b.WriteString(categoryBadge(c.category) + " ")
	}
	b.WriteString(titleStyle.Render(c.title))
	b.WriteString("  " + priceStyle.Render(c.price))
	return Handle(b.String())
}

// Click is the select gesture.
func (c *ProductCard) Click() {
	if c.actions.OnClick != nil {
		c.actions.OnClick()
	}
}

// PreviewCard is the detailed product view with the buy/remove button.
type PreviewCard struct {
	card
	pub           events.Publisher
	category      string
	image         string
	description   string
	buttonLabel   string
	buttonEnabled bool
}

func NewPreviewCard(pub events.Publisher, format Format) *PreviewCard {
	return &PreviewCard{card: card{format: format.withDefaults()}, pub: pub}
}

func (c *PreviewCard) Render(s CardSnapshot) Handle {
	c.card.apply(s)
	if s.Category != nil {
		c.category = *s.Category
	}
	if s.Image != nil {
		c.image = c.format.ImageURL(*s.Image)
	}
	if s.Description != nil {
		c.description = *s.Description
	}
	if s.Price != nil {
		c.buttonEnabled = s.Price.Valid
	}
	if s.ButtonEnabled != nil {
		c.buttonEnabled = *s.ButtonEnabled
	}
	if s.ButtonLabel != nil {
		c.buttonLabel = *s.ButtonLabel
	}
	return c.View()
}

func (c *PreviewCard) View() Handle {
	lines := []string{}
	if c.category != "" {
		lines = append(lines, categoryBadge(c.category))
	}
	lines = append(lines, titleStyle.Render(c.title))
	if c.image != "" {
		lines = append(lines, mutedStyle.Render(c.image))
	}
	if c.description != "" {
		lines = append(lines, "", textStyle.Width(56).Render(c.description))
	}
	lines = append(lines, "", priceStyle.Render(c.price), "", button(c.buttonLabel, c.buttonEnabled))
	return Handle(strings.Join(lines, "\n"))
}

// Press is the button gesture. A disabled button does nothing.
func (c *PreviewCard) Press() {
	if !c.buttonEnabled {
		return
	}
	c.pub.Publish(events.ProductSubmit{})
}

// ButtonLabel returns the current button text.
func (c *PreviewCard) ButtonLabel() string { return c.buttonLabel }

// ButtonEnabled reports whether Press has an effect.
func (c *PreviewCard) ButtonEnabled() bool { return c.buttonEnabled }

// BasketCard is one numbered line of the basket.
type BasketCard struct {
	card
	index   int
	actions Actions
}

// NewBasketCard returns a line whose OnClick is the delete gesture.
func NewBasketCard(format Format, actions Actions) *BasketCard {
	return &BasketCard{card: card{format: format.withDefaults()}, actions: actions}
}

func (c *BasketCard) Render(s CardSnapshot) Handle {
	c.card.apply(s)
	if s.Index != nil {
		c.index = *s.Index
	}
	return c.View()
}

func (c *BasketCard) View() Handle {
	return Handle(fmt.Sprintf("%s  %-32s %s", mutedStyle.Render(fmt.Sprintf("%2d", c.index)), c.title, priceStyle.Render(c.price)))
}

// Delete is the remove gesture.
func (c *BasketCard) Delete() {
	if c.actions.OnClick != nil {
		c.actions.OnClick()
	}
}

var (
	_ Renderable[CardSnapshot] = (*ProductCard)(nil)
	_ Renderable[CardSnapshot] = (*PreviewCard)(nil)
	_ Renderable[CardSnapshot] = (*BasketCard)(nil)
)
