package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Price is invalid (null) for unpriced goods.
type Product struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	Price       decimal.NullDecimal `json:"price"`
}

// Priced reports whether the product can be bought.
func (p Product) Priced() bool {
	return p.Price.Valid
}

// PriceOrZero returns the price, or zero for unpriced goods.
func (p Product) PriceOrZero() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}

// Payment is the customer's chosen payment method.
type Payment string

const (
	PaymentUnset  Payment = ""
	PaymentOnline Payment = "online"
	PaymentCash   Payment = "cash"
)

// Valid reports whether p is one of the selectable methods.
func (p Payment) Valid() bool {
	return p == PaymentOnline || p == PaymentCash
}

// Field names a Customer attribute.
type Field string

const (
	FieldPayment Field = "payment"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldAddress Field = "address"
)

// Customer holds checkout details.
type Customer struct {
	Payment Payment `json:"payment"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
}

// CustomerPatch is a partial update; nil fields are left untouched.
type CustomerPatch struct {
	Payment *Payment
	Email   *string
	Phone   *string
	Address *string
}

// OrderRequest is the snapshot sent when an order is placed.
type OrderRequest struct {
	Customer
	Items []string        `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// OrderResult is the API answer to a placed order.
type OrderResult struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// ValidationResult maps an invalid field to its message. A nil or empty
// result means every checked field is valid.
type ValidationResult map[Field]string

// Valid reports whether no field failed.
func (v ValidationResult) Valid() bool {
	return len(v) == 0
}

// Only returns the subset of v restricted to fields.
func (v ValidationResult) Only(fields ...Field) ValidationResult {
	out := ValidationResult{}
	for _, f := range fields {
		if msg, ok := v[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// Messages returns the messages in field order of fields, or sorted by
// field name when fields is empty.
func (v ValidationResult) Messages(fields ...Field) []string {
	if len(fields) == 0 {
		for f := range v {
			fields = append(fields, f)
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	}
	var out []string
	for _, f := range fields {
		if msg, ok := v[f]; ok {
			out = append(out, msg)
		}
	}
	return out
}
