package checkout

import "github.com/jask/storefront/internal/domain"

// State is a checkout workflow state.
type State string

const (
	Browsing       State = "browsing"
	Previewing     State = "previewing"
	CartReview     State = "cartReview"
	OrderDetails   State = "orderDetails"
	ContactDetails State = "contactDetails"
	Submitting     State = "submitting"
	Succeeded      State = "success"
	Failed         State = "failed"
)

// Trigger is the input that moves the workflow.
type Trigger string

const (
	TriggerSelect        Trigger = "select"
	TriggerToggle        Trigger = "toggle"
	TriggerOpenBasket    Trigger = "openBasket"
	TriggerCheckout      Trigger = "checkout"
	TriggerOrderSubmit   Trigger = "orderSubmit"
	TriggerContactSubmit Trigger = "contactSubmit"
	TriggerSucceeded     Trigger = "succeeded"
	TriggerFailed        Trigger = "failed"
	TriggerRecover       Trigger = "recover"
	TriggerClose         Trigger = "close"
)

// Transitions is the workflow table. A trigger absent for the current state
// is ignored.
var Transitions = map[State]map[Trigger]State{
	Browsing: {
		TriggerSelect:     Previewing,
		TriggerOpenBasket: CartReview,
	},
	Previewing: {
		TriggerSelect:     Previewing,
		TriggerToggle:     Browsing,
		TriggerOpenBasket: CartReview,
		TriggerClose:      Browsing,
	},
	CartReview: {
		TriggerCheckout: OrderDetails,
		TriggerClose:    Browsing,
	},
	OrderDetails: {
		TriggerOrderSubmit: ContactDetails,
		TriggerClose:       Browsing,
	},
	ContactDetails: {
		TriggerContactSubmit: Submitting,
		TriggerClose:         Browsing,
	},
	Submitting: {
		TriggerSucceeded: Succeeded,
		TriggerFailed:    Failed,
		TriggerClose:     Browsing,
	},
	Succeeded: {
		TriggerClose: Browsing,
	},
	Failed: {
		TriggerRecover: ContactDetails,
		TriggerClose:   Browsing,
	},
}

// StepFields lists the customer fields each form step must have valid
// before its submit button is enabled.
var StepFields = map[State][]domain.Field{
	OrderDetails:   {domain.FieldPayment, domain.FieldAddress},
	ContactDetails: {domain.FieldEmail, domain.FieldPhone},
}

// Next looks a transition up.
func Next(from State, t Trigger) (State, bool) {
	to, ok := Transitions[from][t]
	return to, ok
}
