package checkout

import (
	"context"
	"log/slog"

	"github.com/jask/storefront/internal/broker"
	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/store"
	"github.com/jask/storefront/internal/view"
)

// API is the network collaborator.
type API interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	SubmitOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderResult, error)
}

// Scheduler runs blocking work away from the event loop. The function work
// returns is called back on the loop.
type Scheduler interface {
	Go(work func() (resume func()))
}

// Inline runs work and its continuation immediately on the caller.
type Inline struct{}

func (Inline) Go(work func() func()) {
	if resume := work(); resume != nil {
		resume()
	}
}

// Stores bundles the entity stores the orchestrator drives.
type Stores struct {
	Catalog  *store.Catalog
	Cart     *store.Cart
	Customer *store.Customer
}

// Views bundles the presentation units the orchestrator renders.
type Views struct {
	Header   *view.Header
	Gallery  *view.Gallery
	Preview  *view.PreviewCard
	Basket   *view.Basket
	Order    *view.OrderForm
	Contacts *view.ContactsForm
	Success  *view.Success
	Modal    *view.Modal
}

// Labels are the preview button captions.
type Labels struct {
	Buy         string
	Remove      string
	Unavailable string
}

// DefaultLabels are used for unset captions.
var DefaultLabels = Labels{
	Buy:         "Buy",
	Remove:      "Remove from basket",
	Unavailable: "Unavailable",
}

// Orchestrator reacts to gestures and store changes, moves the checkout
// state machine and renders the views.
type Orchestrator struct {
	ctx      context.Context
	bus      *broker.Broker
	api      API
	sched    Scheduler
	stores   Stores
	views    Views
	format   view.Format
	labels   Labels
	logger   *slog.Logger
	state    State
	inFlight bool
	query    string
	subs     []broker.Subscription
}

// Config carries the orchestrator's collaborators.
type Config struct {
	Bus       *broker.Broker
	API       API
	Scheduler Scheduler
	Stores    Stores
	Views     Views
	Format    view.Format
	Labels    Labels
	Logger    *slog.Logger
}

func New(cfg Config) *Orchestrator {
	o := &Orchestrator{
		ctx:    context.Background(),
		bus:    cfg.Bus,
		api:    cfg.API,
		sched:  cfg.Scheduler,
		stores: cfg.Stores,
		views:  cfg.Views,
		format: cfg.Format,
		labels: cfg.Labels,
		logger: cfg.Logger,
		state:  Browsing,
	}
	if o.sched == nil {
		o.sched = Inline{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.format.Currency == "" {
		o.format.Currency = view.DefaultFormat.Currency
	}
	if o.labels == (Labels{}) {
		o.labels = DefaultLabels
	}
	return o
}

// State returns the current workflow state.
func (o *Orchestrator) State() State { return o.state }

// Submitting reports whether an order is waiting for the API.
func (o *Orchestrator) Submitting() bool { return o.inFlight }

// Start subscribes every handler, renders the initial page and requests the
// catalog. ctx bounds the network calls made later.
func (o *Orchestrator) Start(ctx context.Context) {
	o.ctx = ctx
	o.subs = append(o.subs,
		broker.On(o.bus, o.onProductsReceived),
		broker.On(o.bus, o.onGallerySearch),
		broker.On(o.bus, o.onProductSelect),
		broker.On(o.bus, o.onProductSelected),
		broker.On(o.bus, o.onProductSubmit),
		broker.On(o.bus, o.onBasketListUpdate),
		broker.On(o.bus, o.onBasketOpen),
		broker.On(o.bus, o.onBasketRemove),
		broker.On(o.bus, o.onOrderFormOpen),
		broker.On(o.bus, o.onPaymentOnline),
		broker.On(o.bus, o.onPaymentCash),
		broker.On(o.bus, o.onAddressInput),
		broker.On(o.bus, o.onEmailInput),
		broker.On(o.bus, o.onPhoneInput),
		broker.On(o.bus, o.onCustomerChanged),
		broker.On(o.bus, o.onOrderFormValidation),
		broker.On(o.bus, o.onContactFormValidation),
		broker.On(o.bus, o.onOrderFormSubmit),
		broker.On(o.bus, o.onContactFormSubmit),
		broker.On(o.bus, o.onModalClose),
		broker.On(o.bus, o.onSuccessModalClose),
	)

	o.views.Header.Render(view.HeaderSnapshot{Counter: view.Ptr(o.stores.Cart.Count())})
	o.renderBasket(o.stores.Cart.Items())
	o.renderCustomer(o.stores.Customer.Data())
	o.loadCatalog()
}

// Stop removes every subscription made by Start.
func (o *Orchestrator) Stop() {
	for _, s := range o.subs {
		s.Cancel()
	}
	o.subs = nil
}

func (o *Orchestrator) loadCatalog() {
	ctx := o.ctx
	o.sched.Go(func() func() {
		products, err := o.api.FetchProducts(ctx)
		return func() {
			if err != nil {
				o.logger.Error("catalog load failed", "err", err)
				return
			}
			o.stores.Catalog.SetProducts(products)
		}
	})
}

// transition moves to the state t leads to and reports whether t was
// allowed in the current state.
func (o *Orchestrator) transition(t Trigger) bool {
	next, ok := Next(o.state, t)
	if !ok {
		o.logger.Debug("trigger ignored", "state", o.state, "trigger", t)
		return false
	}
	if next != o.state {
		o.logger.Debug("checkout transition", "from", o.state, "to", next, "trigger", t)
	}
	o.state = next
	return true
}

func (o *Orchestrator) allowed(t Trigger) bool {
	_, ok := Next(o.state, t)
	return ok
}

// onProductsReceived renders a reloaded catalog through the active query.
func (o *Orchestrator) onProductsReceived(ev events.ProductsReceived) error {
	if o.query == "" {
		o.views.Gallery.Render(view.GallerySnapshot{Products: &ev.Products})
		return nil
	}
	o.renderSearch()
	return nil
}

func (o *Orchestrator) onGallerySearch(ev events.GallerySearch) error {
	o.query = ev.Query
	o.renderSearch()
	return nil
}

func (o *Orchestrator) renderSearch() {
	found := o.stores.Catalog.Search(o.query)
	if found == nil {
		found = []domain.Product{}
	}
	o.views.Gallery.Render(view.GallerySnapshot{Products: &found})
}

func (o *Orchestrator) onProductSelect(ev events.ProductSelect) error {
	if !o.allowed(TriggerSelect) {
		return nil
	}
	p, ok := o.stores.Catalog.ProductByID(ev.ID)
	if !ok {
		return nil
	}
	snap := view.FromProduct(p)
	snap.ButtonLabel = view.Ptr(o.buttonLabel(p))
	snap.ButtonEnabled = view.Ptr(p.Priced())
	o.views.Preview.Render(snap)
	o.stores.Catalog.SetSelected(p.ID)
	o.transition(TriggerSelect)
	return nil
}

func (o *Orchestrator) buttonLabel(p domain.Product) string {
	switch {
	case !p.Priced():
		return o.labels.Unavailable
	case o.stores.Cart.Has(p.ID):
		return o.labels.Remove
	default:
		return o.labels.Buy
	}
}

func (o *Orchestrator) onProductSelected(events.ProductSelected) error {
	o.views.Modal.Open(o.views.Preview)
	return nil
}

func (o *Orchestrator) onProductSubmit(events.ProductSubmit) error {
	if !o.allowed(TriggerToggle) {
		return nil
	}
	if p, ok := o.stores.Catalog.Selected(); ok && p.Priced() {
		o.stores.Cart.Toggle(p)
	}
	o.views.Modal.Close()
	o.transition(TriggerToggle)
	return nil
}

func (o *Orchestrator) onBasketListUpdate(ev events.BasketListUpdate) error {
	o.renderBasket(ev.Items)
	o.views.Header.Render(view.HeaderSnapshot{Counter: view.Ptr(len(ev.Items))})
	return nil
}

func (o *Orchestrator) renderBasket(items []domain.Product) {
	total := o.stores.Cart.TotalPrice()
	if items == nil {
		items = []domain.Product{}
	}
	o.views.Basket.Render(view.BasketSnapshot{
		Items:           &items,
		Total:           &total,
		CheckoutEnabled: view.Ptr(!total.IsZero()),
	})
}

func (o *Orchestrator) onBasketOpen(events.BasketOpen) error {
	if !o.transition(TriggerOpenBasket) {
		return nil
	}
	o.views.Modal.Open(o.views.Basket)
	return nil
}

func (o *Orchestrator) onBasketRemove(ev events.BasketRemove) error {
	o.stores.Cart.Remove(domain.Product{ID: ev.ID})
	return nil
}

func (o *Orchestrator) onOrderFormOpen(events.OrderFormOpen) error {
	if !o.transition(TriggerCheckout) {
		return nil
	}
	o.renderCustomer(o.stores.Customer.Data())
	o.views.Modal.Open(o.views.Order)
	return nil
}

func (o *Orchestrator) onPaymentOnline(events.PaymentOnlineSelect) error {
	p := domain.PaymentOnline
	o.stores.Customer.SetData(domain.CustomerPatch{Payment: &p})
	return nil
}

func (o *Orchestrator) onPaymentCash(events.PaymentCashSelect) error {
	p := domain.PaymentCash
	o.stores.Customer.SetData(domain.CustomerPatch{Payment: &p})
	return nil
}

func (o *Orchestrator) onAddressInput(ev events.AddressInput) error {
	o.stores.Customer.SetData(domain.CustomerPatch{Address: &ev.Address})
	return nil
}

func (o *Orchestrator) onEmailInput(ev events.EmailInput) error {
	o.stores.Customer.SetData(domain.CustomerPatch{Email: &ev.Email})
	return nil
}

func (o *Orchestrator) onPhoneInput(ev events.PhoneInput) error {
	o.stores.Customer.SetData(domain.CustomerPatch{Phone: &ev.Phone})
	return nil
}

func (o *Orchestrator) onCustomerChanged(ev events.CustomerChanged) error {
	o.renderCustomer(ev.Customer)
	return nil
}

// renderCustomer copies the customer into both forms and publishes the
// per-step validation results, which drive the error lines and buttons.
func (o *Orchestrator) renderCustomer(c domain.Customer) {
	o.views.Order.Render(view.OrderFormSnapshot{Payment: &c.Payment, Address: &c.Address})
	o.views.Contacts.Render(view.ContactsFormSnapshot{Email: &c.Email, Phone: &c.Phone})

	errs := o.stores.Customer.Validate()
	o.bus.Publish(events.OrderFormValidation{Errors: errs.Only(StepFields[OrderDetails]...)})
	o.bus.Publish(events.ContactFormValidation{Errors: errs.Only(StepFields[ContactDetails]...)})
}

func (o *Orchestrator) onOrderFormValidation(ev events.OrderFormValidation) error {
	msgs := ev.Errors.Messages(StepFields[OrderDetails]...)
	o.views.Order.Render(view.OrderFormSnapshot{Errors: &msgs, SubmitEnabled: view.Ptr(ev.Errors.Valid())})
	return nil
}

func (o *Orchestrator) onContactFormValidation(ev events.ContactFormValidation) error {
	msgs := ev.Errors.Messages(StepFields[ContactDetails]...)
	o.views.Contacts.Render(view.ContactsFormSnapshot{Errors: &msgs, SubmitEnabled: view.Ptr(ev.Errors.Valid() && !o.inFlight)})
	return nil
}

// stepValid reports whether the fields of step are filled in.
func (o *Orchestrator) stepValid(step State) bool {
	return o.stores.Customer.Validate().Only(StepFields[step]...).Valid()
}

func (o *Orchestrator) onOrderFormSubmit(events.OrderFormSubmit) error {
	if !o.allowed(TriggerOrderSubmit) || !o.stepValid(OrderDetails) {
		return nil
	}
	o.transition(TriggerOrderSubmit)
	o.views.Modal.Open(o.views.Contacts)
	return nil
}

func (o *Orchestrator) onContactFormSubmit(events.ContactFormSubmit) error {
	if o.inFlight {
		o.logger.Debug("order already in flight, submit ignored")
		return nil
	}
	if !o.allowed(TriggerContactSubmit) || !o.stepValid(ContactDetails) {
		return nil
	}
	o.submit()
	return nil
}

// OrderRequest snapshots the customer and cart for submission.
func (o *Orchestrator) OrderRequest() domain.OrderRequest {
	return domain.OrderRequest{
		Customer: o.stores.Customer.Data(),
		Items:    o.stores.Cart.IDs(),
		Total:    o.stores.Cart.TotalPrice(),
	}
}

func (o *Orchestrator) submit() {
	req := o.OrderRequest()
	o.inFlight = true
	o.transition(TriggerContactSubmit)
	o.views.Contacts.Render(view.ContactsFormSnapshot{SubmitEnabled: view.Ptr(false)})

	ctx := o.ctx
	o.sched.Go(func() func() {
		res, err := o.api.SubmitOrder(ctx, req)
		return func() {
			if err != nil {
				o.fail(err)
				return
			}
			o.succeed(res)
		}
	})
}

func (o *Orchestrator) succeed(res domain.OrderResult) {
	o.inFlight = false
	o.views.Success.Render(view.SuccessSnapshot{Description: view.Ptr("Charged " + o.format.Amount(res.Total))})
	o.views.Modal.Open(o.views.Success)
	o.stores.Cart.Clear()
	o.stores.Customer.Clear()
	o.views.Header.Render(view.HeaderSnapshot{Counter: view.Ptr(0)})
	o.logger.Info("order placed", "id", res.ID, "total", res.Total.String())
	// a submission outlives a closed modal
	if !o.transition(TriggerSucceeded) {
		o.state = Succeeded
	}
	o.bus.Publish(events.OrderPlaced{Result: res})
}

func (o *Orchestrator) fail(err error) {
	o.inFlight = false
	o.logger.Error("order submission failed", "err", err)
	if o.transition(TriggerFailed) {
		o.transition(TriggerRecover)
	}
	o.renderCustomer(o.stores.Customer.Data())
	o.bus.Publish(events.OrderFailed{Err: err})
}

func (o *Orchestrator) onModalClose(events.ModalClose) error {
	o.close()
	return nil
}

func (o *Orchestrator) onSuccessModalClose(events.SuccessModalClose) error {
	o.close()
	return nil
}

func (o *Orchestrator) close() {
	o.views.Modal.Close()
	o.transition(TriggerClose)
}
