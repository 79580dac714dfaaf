package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/domain"
)

// ErrNotFound is returned for a missing row.
var ErrNotFound = errors.New("not found")

// Order represents an orders row with its item ids in basket order.
type Order struct {
	ID        string
	Customer  domain.Customer
	Total     decimal.Decimal
	Items     []string
	CreatedAt time.Time
}
