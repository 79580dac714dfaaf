package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Handle is a rendered surface. Callers hand it to a display; they never
// look inside.
type Handle string

// Renderable projects a partial snapshot onto a surface. Fields left nil in
// the snapshot keep whatever the surface last showed.
type Renderable[S any] interface {
	Render(S) Handle
}

// Viewer re-renders a surface from its current state.
type Viewer interface {
	View() Handle
}

// Format holds the display conventions shared by every unit.
type Format struct {
	Currency         string
	PriceUnavailable string
	ImageBase        string
}

// DefaultFormat is used when a zero Format is supplied.
var DefaultFormat = Format{
	Currency:         "synapses",
	PriceUnavailable: "Priceless",
}

func (f Format) withDefaults() Format {
	if f.Currency == "" {
		f.Currency = DefaultFormat.Currency
	}
	if f.PriceUnavailable == "" {
		f.PriceUnavailable = DefaultFormat.PriceUnavailable
	}
	return f
}

// Price labels a product price.
func (f Format) Price(p decimal.NullDecimal) string {
	if !p.Valid {
		return f.PriceUnavailable
	}
	return f.Amount(p.Decimal)
}

// Amount labels a sum of money.
func (f Format) Amount(d decimal.Decimal) string {
	return d.String() + " " + f.Currency
}

// ImageURL resolves a relative image reference against ImageBase.
func (f Format) ImageURL(ref string) string {
	if ref == "" || f.ImageBase == "" || strings.Contains(ref, "://") {
		return ref
	}
	return strings.TrimRight(f.ImageBase, "/") + "/" + strings.TrimLeft(ref, "/")
}

// Ptr returns a pointer to v, for building snapshots.
func Ptr[T any](v T) *T {
	return &v
}
