package store

import (
	"strings"

	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
)

// Validation messages.
const (
	MsgPaymentRequired = "Select a payment method"
	MsgEmailRequired   = "Enter an email"
	MsgPhoneRequired   = "Enter a phone number"
	MsgAddressRequired = "Enter a delivery address"
)

// Customer holds the buyer's checkout details for the session.
type Customer struct {
	pub  events.Publisher
	data domain.Customer
}

func NewCustomer(pub events.Publisher) *Customer {
	return &Customer{pub: pub}
}

// SetData merges patch; fields left nil keep their value. One change event
// is published per call.
func (c *Customer) SetData(patch domain.CustomerPatch) {
	if patch.Payment != nil {
		c.data.Payment = *patch.Payment
	}
	if patch.Email != nil {
		c.data.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.data.Phone = *patch.Phone
	}
	if patch.Address != nil {
		c.data.Address = *patch.Address
	}
	c.changed()
}

// Data returns a copy of the current details.
func (c *Customer) Data() domain.Customer {
	return c.data
}

// Clear resets every field.
func (c *Customer) Clear() {
	c.data = domain.Customer{}
	c.changed()
}

// Validate checks every field independently. It has no side effects and
// returns nil when all fields are filled.
func (c *Customer) Validate() domain.ValidationResult {
	errs := domain.ValidationResult{}
	if !c.data.Payment.Valid() {
		errs[domain.FieldPayment] = MsgPaymentRequired
	}
	if blank(c.data.Email) {
		errs[domain.FieldEmail] = MsgEmailRequired
	}
	if blank(c.data.Phone) {
		errs[domain.FieldPhone] = MsgPhoneRequired
	}
	if blank(c.data.Address) {
		errs[domain.FieldAddress] = MsgAddressRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c *Customer) changed() {
	c.pub.Publish(events.CustomerChanged{Customer: c.data})
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
