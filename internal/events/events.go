package events

import (
	"github.com/jask/storefront/internal/broker"
	"github.com/jask/storefront/internal/domain"
)

// Topic strings shared by every producer and consumer.
const (
	TopicProductsReceived = "product:received"
	TopicProductSelect    = "product:selectCard"
	TopicProductSelected  = "product:selected"
	TopicProductSubmit    = "product:submit"
	TopicGallerySearch    = "gallery:search"

	TopicBasketOpen       = "basket:open"
	TopicBasketRemove     = "basket:productRemove"
	TopicBasketListUpdate = "basket:listUpdate"

	TopicCustomerChanged = "customer:received"

	TopicOrderFormOpen       = "orderForm:open"
	TopicPaymentOnlineSelect = "orderForm:paymentOnlineSelect"
	TopicPaymentCashSelect   = "orderForm:paymentCashSelect"
	TopicAddressInput        = "orderForm:addressInput"
	TopicOrderFormSubmit     = "orderForm:submit"
	TopicOrderFormValidation = "orderForm:validationError"

	TopicEmailInput            = "contactForm:emailInput"
	TopicPhoneInput            = "contactForm:phoneInput"
	TopicContactFormSubmit     = "contactForm:submit"
	TopicContactFormValidation = "contactForm:validationError"

	TopicOrderPlaced = "order:placed"
	TopicOrderFailed = "order:failed"

	TopicModalClose        = "modal:close"
	TopicSuccessModalClose = "successModal:close"
)

// Event is implemented only by the payloads in this package.
type Event interface {
	broker.Event
	event()
}

type (
	// ProductsReceived follows a catalog reload.
	ProductsReceived struct{ Products []domain.Product }
	// ProductSelect is the gesture of picking a gallery card.
	ProductSelect struct{ ID string }
	// ProductSelected follows a change of the inspected product.
	ProductSelected struct{ Product domain.Product }
	// ProductSubmit is the preview buy/remove gesture.
	ProductSubmit struct{}
	// GallerySearch narrows the gallery; an empty query restores it.
	GallerySearch struct{ Query string }

	// BasketOpen is the header basket gesture.
	BasketOpen struct{}
	// BasketRemove is the basket line delete gesture.
	BasketRemove struct{ ID string }
	// BasketListUpdate follows any change of cart membership.
	BasketListUpdate struct {
		Items []domain.Product
	}

	// CustomerChanged follows every Customer mutation.
	CustomerChanged struct{ Customer domain.Customer }

	// OrderFormOpen is the basket checkout gesture.
	OrderFormOpen struct{}
	// PaymentOnlineSelect picks online payment.
	PaymentOnlineSelect struct{}
	// PaymentCashSelect picks cash payment.
	PaymentCashSelect struct{}
	// AddressInput carries the address field value.
	AddressInput struct{ Address string }
	// OrderFormSubmit is the order form submit gesture.
	OrderFormSubmit struct{}
	// OrderFormValidation carries the payment/address check.
	OrderFormValidation struct{ Errors domain.ValidationResult }

	// EmailInput carries the email field value.
	EmailInput struct{ Email string }
	// PhoneInput carries the phone field value.
	PhoneInput struct{ Phone string }
	// ContactFormSubmit is the contact form submit gesture.
	ContactFormSubmit struct{}
	// ContactFormValidation carries the email/phone check.
	ContactFormValidation struct{ Errors domain.ValidationResult }

	// OrderPlaced follows a successful submission.
	OrderPlaced struct{ Result domain.OrderResult }
	// OrderFailed follows a rejected submission.
	OrderFailed struct{ Err error }

	// ModalClose is the modal close gesture.
	ModalClose struct{}
	// SuccessModalClose is the confirmation dismiss gesture.
	SuccessModalClose struct{}
)

func (ProductsReceived) Topic() string      { return TopicProductsReceived }
func (ProductSelect) Topic() string         { return TopicProductSelect }
func (ProductSelected) Topic() string       { return TopicProductSelected }
func (ProductSubmit) Topic() string         { return TopicProductSubmit }
func (GallerySearch) Topic() string         { return TopicGallerySearch }
func (BasketOpen) Topic() string            { return TopicBasketOpen }
func (BasketRemove) Topic() string          { return TopicBasketRemove }
func (BasketListUpdate) Topic() string      { return TopicBasketListUpdate }
func (CustomerChanged) Topic() string       { return TopicCustomerChanged }
func (OrderFormOpen) Topic() string         { return TopicOrderFormOpen }
func (PaymentOnlineSelect) Topic() string   { return TopicPaymentOnlineSelect }
func (PaymentCashSelect) Topic() string     { return TopicPaymentCashSelect }
func (AddressInput) Topic() string          { return TopicAddressInput }
func (OrderFormSubmit) Topic() string       { return TopicOrderFormSubmit }
func (OrderFormValidation) Topic() string   { return TopicOrderFormValidation }
func (EmailInput) Topic() string            { return TopicEmailInput }
func (PhoneInput) Topic() string            { return TopicPhoneInput }
func (ContactFormSubmit) Topic() string     { return TopicContactFormSubmit }
func (ContactFormValidation) Topic() string { return TopicContactFormValidation }
func (OrderPlaced) Topic() string           { return TopicOrderPlaced }
func (OrderFailed) Topic() string           { return TopicOrderFailed }
func (ModalClose) Topic() string            { return TopicModalClose }
func (SuccessModalClose) Topic() string     { return TopicSuccessModalClose }

func (ProductsReceived) event()      {}
func (ProductSelect) event()         {}
func (ProductSelected) event()       {}
func (ProductSubmit) event()         {}
func (GallerySearch) event()         {}
func (BasketOpen) event()            {}
func (BasketRemove) event()          {}
func (BasketListUpdate) event()      {}
func (CustomerChanged) event()       {}
func (OrderFormOpen) event()         {}
func (PaymentOnlineSelect) event()   {}
func (PaymentCashSelect) event()     {}
func (AddressInput) event()          {}
func (OrderFormSubmit) event()       {}
func (OrderFormValidation) event()   {}
func (EmailInput) event()            {}
func (PhoneInput) event()            {}
func (ContactFormSubmit) event()     {}
func (ContactFormValidation) event() {}
func (OrderPlaced) event()           {}
func (OrderFailed) event()           {}
func (ModalClose) event()            {}
func (SuccessModalClose) event()     {}

// Publisher is the one broker capability stores and views need.
type Publisher interface {
	Publish(broker.Event)
}

var _ = []Event{
	ProductsReceived{}, ProductSelect{}, ProductSelected{}, ProductSubmit{}, GallerySearch{},
	BasketOpen{}, BasketRemove{}, BasketListUpdate{}, CustomerChanged{},
	OrderFormOpen{}, PaymentOnlineSelect{}, PaymentCashSelect{}, AddressInput{},
	OrderFormSubmit{}, OrderFormValidation{}, EmailInput{}, PhoneInput{},
	ContactFormSubmit{}, ContactFormValidation{}, OrderPlaced{}, OrderFailed{},
	ModalClose{}, SuccessModalClose{},
}
