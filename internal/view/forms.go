package view

import (
	"strings"

	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
)

// form is the error line and submit button shared by the checkout forms.
type form struct {
	errors        []string
	submitEnabled bool
}

func (f *form) apply(errs *[]string, enabled *bool) {
	if errs != nil {
		f.errors = append([]string(nil), (*errs)...)
	}
	if enabled != nil {
		f.submitEnabled = *enabled
	}
}

func (f *form) footer(label string) []string {
	out := []string{""}
	if len(f.errors) > 0 {
		out = append(out, errorStyle.Render(strings.Join(f.errors, "; ")))
	}
	return append(out, button(label, f.submitEnabled))
}

// SubmitEnabled reports the submit button state.
func (f *form) SubmitEnabled() bool { return f.submitEnabled }

// Errors returns the displayed messages.
func (f *form) Errors() []string { return append([]string(nil), f.errors...) }

// OrderFormSnapshot updates the payment and address step.
type OrderFormSnapshot struct {
	Payment       *domain.Payment
	Address       *string
	Errors        *[]string
	SubmitEnabled *bool
}

// OrderForm is the payment method and delivery address step.
type OrderForm struct {
	form
	pub     events.Publisher
	payment domain.Payment
	address string
}

func NewOrderForm(pub events.Publisher) *OrderForm {
	return &OrderForm{pub: pub}
}

func (f *OrderForm) Render(s OrderFormSnapshot) Handle {
	if s.Payment != nil {
		f.payment = *s.Payment
	}
	if s.Address != nil {
		f.address = *s.Address
	}
	f.apply(s.Errors, s.SubmitEnabled)
	return f.View()
}

func (f *OrderForm) View() Handle {
	lines := []string{
		titleStyle.Render("Payment method"),
		toggle("Online", f.payment == domain.PaymentOnline) + " " + toggle("Cash", f.payment == domain.PaymentCash),
		"",
		titleStyle.Render("Delivery address"),
		field(f.address, "Enter an address"),
	}
	lines = append(lines, f.footer("Next")...)
	return Handle(strings.Join(lines, "\n"))
}

func (f *OrderForm) SelectOnline() { f.pub.Publish(events.PaymentOnlineSelect{}) }

func (f *OrderForm) SelectCash() { f.pub.Publish(events.PaymentCashSelect{}) }

// InputAddress is the address field edit gesture.
func (f *OrderForm) InputAddress(v string) { f.pub.Publish(events.AddressInput{Address: v}) }

// Submit is the form submit gesture; a disabled button does nothing.
func (f *OrderForm) Submit() {
	if f.submitEnabled {
		f.pub.Publish(events.OrderFormSubmit{})
	}
}

func (f *OrderForm) Payment() domain.Payment { return f.payment }

func (f *OrderForm) Address() string { return f.address }

// ContactsFormSnapshot updates the contact step.
type ContactsFormSnapshot struct {
	Email         *string
	Phone         *string
	Errors        *[]string
	SubmitEnabled *bool
}

// ContactsForm is the email and phone step.
type ContactsForm struct {
	form
	pub   events.Publisher
	email string
	phone string
}

func NewContactsForm(pub events.Publisher) *ContactsForm {
	return &ContactsForm{pub: pub}
}

func (f *ContactsForm) Render(s ContactsFormSnapshot) Handle {
	if s.Email != nil {
		f.email = *s.Email
	}
	if s.Phone != nil {
		f.phone = *s.Phone
	}
	f.apply(s.Errors, s.SubmitEnabled)
	return f.View()
}

func (f *ContactsForm) View() Handle {
	lines := []string{
		titleStyle.Render("Email"),
		field(f.email, "Enter an email"),
		"",
		titleStyle.Render("Phone"),
		field(f.phone, "+7 ("),
	}
	lines = append(lines, f.footer("Pay")...)
	return Handle(strings.Join(lines, "\n"))
}

func (f *ContactsForm) InputEmail(v string) { f.pub.Publish(events.EmailInput{Email: v}) }

func (f *ContactsForm) InputPhone(v string) { f.pub.Publish(events.PhoneInput{Phone: v}) }

// Submit is the form submit gesture; a disabled button does nothing.
func (f *ContactsForm) Submit() {
	if f.submitEnabled {
		f.pub.Publish(events.ContactFormSubmit{})
	}
}

func (f *ContactsForm) Email() string { return f.email }

func (f *ContactsForm) Phone() string { return f.phone }

// SuccessSnapshot updates the confirmation.
type SuccessSnapshot struct {
	Description *string
}

// Success confirms a placed order.
type Success struct {
	pub         events.Publisher
	description string
}

func NewSuccess(pub events.Publisher) *Success {
	return &Success{pub: pub}
}

func (s *Success) Render(snap SuccessSnapshot) Handle {
	if snap.Description != nil {
		s.description = *snap.Description
	}
	return s.View()
}

func (s *Success) View() Handle {
	return Handle(strings.Join([]string{
		successStyle.Render("Order placed"),
		"",
		textStyle.Render(s.description),
		"",
		button("Continue shopping", true),
	}, "\n"))
}

// Dismiss is the confirmation close gesture.
func (s *Success) Dismiss() { s.pub.Publish(events.SuccessModalClose{}) }

func (s *Success) Description() string { return s.description }

func toggle(label string, on bool) string {
	if on {
		return selectedStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func field(value, placeholder string) string {
	if value == "" {
		return mutedStyle.Render("> " + placeholder)
	}
	return "> " + value
}

var (
	_ Renderable[OrderFormSnapshot]    = (*OrderForm)(nil)
	_ Renderable[ContactsFormSnapshot] = (*ContactsForm)(nil)
	_ Renderable[SuccessSnapshot]      = (*Success)(nil)
)
