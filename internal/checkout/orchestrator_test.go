package checkout

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/storefront/internal/broker"
	"github.com/jask/storefront/internal/domain"
	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/store"
	"github.com/jask/storefront/internal/view"
)

type fakeAPI struct {
	products  []domain.Product
	fetchErr  error
	submitErr error
	requests  []domain.OrderRequest
}

func (f *fakeAPI) FetchProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.fetchErr
}

func (f *fakeAPI) SubmitOrder(_ context.Context, req domain.OrderRequest) (domain.OrderResult, error) {
	f.requests = append(f.requests, req)
	if f.submitErr != nil {
		return domain.OrderResult{}, f.submitErr
	}
	return domain.OrderResult{ID: "order-1", Total: req.Total}, nil
}

// manual holds scheduled work until flush.
type manual struct{ pending []func() func() }

func (m *manual) Go(work func() func()) { m.pending = append(m.pending, work) }

func (m *manual) flush() {
	for len(m.pending) > 0 {
		work := m.pending[0]
		m.pending = m.pending[1:]
		if resume := work(); resume != nil {
			resume()
		}
	}
}

type harness struct {
	bus    *broker.Broker
	api    *fakeAPI
	sched  *manual
	stores Stores
	views  Views
	orch   *Orchestrator
	logs   *bytes.Buffer
	seen   []broker.Event
}

func price(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func catalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "+1 hour", Category: "soft-skill", Price: price(750)},
		{ID: "p2", Title: "Mega button", Category: "button", Price: price(100)},
		{ID: "p3", Title: "Hamster", Category: "other"},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := &harness{
		bus:   broker.New(broker.WithLogger(logger)),
		api:   &fakeAPI{products: catalog()},
		sched: &manual{},
		logs:  logs,
	}
	h.bus.Subscribe(broker.All(), func(ev broker.Event) error {
		h.seen = append(h.seen, ev)
		return nil
	})
	format := view.Format{Currency: "syn"}
	h.stores = Stores{
		Catalog:  store.NewCatalog(h.bus),
		Cart:     store.NewCart(h.bus),
		Customer: store.NewCustomer(h.bus),
	}
	h.views = Views{
		Header:   view.NewHeader(h.bus, "WEB-LAREK"),
		Gallery:  view.NewGallery(h.bus, format),
		Preview:  view.NewPreviewCard(h.bus, format),
		Basket:   view.NewBasket(h.bus, format),
		Order:    view.NewOrderForm(h.bus),
		Contacts: view.NewContactsForm(h.bus),
		Success:  view.NewSuccess(h.bus),
		Modal:    view.NewModal(h.bus),
	}
	h.orch = New(Config{
		Bus:       h.bus,
		API:       h.api,
		Scheduler: h.sched,
		Stores:    h.stores,
		Views:     h.views,
		Format:    format,
		Logger:    logger,
	})
	h.orch.Start(context.Background())
	t.Cleanup(h.orch.Stop)
	h.sched.flush()
	return h
}

func (h *harness) selectProduct(id string) {
	h.bus.Publish(events.ProductSelect{ID: id})
}

func (h *harness) buy(id string) {
	h.selectProduct(id)
	h.views.Preview.Press()
}

func (h *harness) fillOrder() {
	h.views.Order.SelectCash()
	h.views.Order.InputAddress("Main St 1")
}

func (h *harness) fillContacts() {
	h.views.Contacts.InputEmail("a@b.c")
	h.views.Contacts.InputPhone("+7 900 000 00 00")
}

func (h *harness) count(topic string) int {
	n := 0
	for _, ev := range h.seen {
		if ev.Topic() == topic {
			n++
		}
	}
	return n
}

func TestStartLoadsCatalog(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 3, h.stores.Catalog.Len())
	require.Equal(t, 3, h.views.Gallery.Len())
	require.Equal(t, 0, h.views.Header.Counter())
	require.Equal(t, Browsing, h.orch.State())
}

func TestCatalogLoadFailureIsLogged(t *testing.T) {
	logs := &bytes.Buffer{}
	bus := broker.New()
	sched := &manual{}
	orch := New(Config{
		Bus:       bus,
		API:       &fakeAPI{fetchErr: errors.New("offline")},
		Scheduler: sched,
		Stores:    Stores{Catalog: store.NewCatalog(bus), Cart: store.NewCart(bus), Customer: store.NewCustomer(bus)},
		Views: Views{
			Header: view.NewHeader(bus, "x"), Gallery: view.NewGallery(bus, view.Format{}),
			Preview: view.NewPreviewCard(bus, view.Format{}), Basket: view.NewBasket(bus, view.Format{}),
			Order: view.NewOrderForm(bus), Contacts: view.NewContactsForm(bus),
			Success: view.NewSuccess(bus), Modal: view.NewModal(bus),
		},
		Logger: slog.New(slog.NewTextHandler(logs, nil)),
	})
	orch.Start(context.Background())
	sched.flush()

	require.Contains(t, logs.String(), "catalog load failed")
	require.Contains(t, logs.String(), "offline")
	require.Equal(t, Browsing, orch.State())
}

func TestScenarioAddToCartAndReview(t *testing.T) {
	h := newHarness(t)

	h.selectProduct("p2")
	require.Equal(t, Previewing, h.orch.State())
	require.True(t, h.views.Modal.Active())
	require.Equal(t, "Buy", h.views.Preview.ButtonLabel())

	h.views.Preview.Press()
	require.Equal(t, Browsing, h.orch.State())
	require.False(t, h.views.Modal.Active())
	require.Equal(t, 1, h.views.Header.Counter())

	h.views.Header.OpenBasket()
	require.Equal(t, CartReview, h.orch.State())
	require.Equal(t, "100 syn", h.views.Basket.Total())
	require.True(t, h.views.Basket.CheckoutEnabled())
}

func TestScenarioUnpricedCountsButAddsNothing(t *testing.T) {
	h := newHarness(t)
	h.stores.Cart.Add(catalog()[1])
	h.stores.Cart.Add(catalog()[2])

	require.Equal(t, 2, h.stores.Cart.Count())
	require.Equal(t, 2, h.views.Header.Counter())
	require.Equal(t, "100 syn", h.views.Basket.Total())
}

func TestPreviewLabels(t *testing.T) {
	h := newHarness(t)

	h.selectProduct("p3")
	require.Equal(t, "Unavailable", h.views.Preview.ButtonLabel())
	require.False(t, h.views.Preview.ButtonEnabled())
	h.views.Preview.Press()
	require.Equal(t, 0, h.stores.Cart.Count())
	require.Equal(t, Previewing, h.orch.State())

	h.buy("p1")
	h.selectProduct("p1")
	require.Equal(t, "Remove from basket", h.views.Preview.ButtonLabel())
	h.views.Preview.Press()
	require.Equal(t, 0, h.stores.Cart.Count())
}

func TestSelectUnknownProductIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.selectProduct("missing")
	require.Equal(t, Browsing, h.orch.State())
	require.False(t, h.views.Modal.Active())
	require.Zero(t, h.count(events.TopicProductSelected))
}

func TestBasketRemoveUpdatesCounter(t *testing.T) {
	h := newHarness(t)
	h.buy("p1")
	h.buy("p2")
	h.views.Header.OpenBasket()

	h.views.Basket.RemoveCurrent()
	require.Equal(t, 1, h.views.Header.Counter())
	require.Equal(t, "100 syn", h.views.Basket.Total())

	// removing an absent product changes nothing
	updates := h.count(events.TopicBasketListUpdate)
	h.bus.Publish(events.BasketRemove{ID: "p1"})
	require.Equal(t, updates, h.count(events.TopicBasketListUpdate))
}

func TestCheckoutDisabledForFreeBasket(t *testing.T) {
	h := newHarness(t)
	h.stores.Cart.Add(catalog()[2])
	h.views.Header.OpenBasket()
	require.False(t, h.views.Basket.CheckoutEnabled())

	h.views.Basket.Checkout()
	require.Equal(t, CartReview, h.orch.State())
}

func TestScenarioCheckoutSucceeds(t *testing.T) {
	h := newHarness(t)
	h.buy("p2")
	h.views.Header.OpenBasket()
	h.views.Basket.Checkout()

	require.Equal(t, OrderDetails, h.orch.State())
	require.False(t, h.views.Order.SubmitEnabled())
	require.Len(t, h.views.Order.Errors(), 2)

	h.views.Order.SelectCash()
	require.False(t, h.views.Order.SubmitEnabled())
	h.views.Order.InputAddress("Main St 1")
	require.True(t, h.views.Order.SubmitEnabled())
	require.Empty(t, h.views.Order.Errors())

	h.views.Order.Submit()
	require.Equal(t, ContactDetails, h.orch.State())
	require.False(t, h.views.Contacts.SubmitEnabled())

	h.fillContacts()
	require.True(t, h.views.Contacts.SubmitEnabled())
	h.views.Contacts.Submit()
	require.Equal(t, Submitting, h.orch.State())
	require.True(t, h.orch.Submitting())
	require.False(t, h.views.Contacts.SubmitEnabled())

	h.sched.flush()

	require.Equal(t, Succeeded, h.orch.State())
	require.Len(t, h.api.requests, 1)
	req := h.api.requests[0]
	require.Equal(t, []string{"p2"}, req.Items)
	require.True(t, decimal.NewFromInt(100).Equal(req.Total))
	require.Equal(t, domain.PaymentCash, req.Payment)
	require.Equal(t, "Main St 1", req.Address)

	require.Equal(t, "Charged 100 syn", h.views.Success.Description())
	require.Same(t, h.views.Success, h.views.Modal.Content())
	require.Zero(t, h.stores.Cart.Count())
	require.Zero(t, h.views.Header.Counter())
	require.Equal(t, domain.Customer{}, h.stores.Customer.Data())
	require.Equal(t, 1, h.count(events.TopicOrderPlaced))

	h.views.Success.Dismiss()
	require.Equal(t, Browsing, h.orch.State())
	require.False(t, h.views.Modal.Active())
}

func TestScenarioCheckoutFailureKeepsState(t *testing.T) {
	h := newHarness(t)
	h.api.submitErr = errors.New("503 service unavailable")
	h.buy("p1")
	h.views.Header.OpenBasket()
	h.views.Basket.Checkout()
	h.fillOrder()
	h.views.Order.Submit()
	h.fillContacts()
	before := h.stores.Customer.Data()

	h.views.Contacts.Submit()
	h.sched.flush()

	require.Equal(t, ContactDetails, h.orch.State())
	require.False(t, h.orch.Submitting())
	require.Contains(t, h.logs.String(), "order submission failed")
	require.Contains(t, h.logs.String(), "503 service unavailable")
	require.Equal(t, 1, h.stores.Cart.Count())
	require.Equal(t, before, h.stores.Customer.Data())
	require.True(t, h.views.Contacts.SubmitEnabled())
	require.Equal(t, 1, h.count(events.TopicOrderFailed))

	h.api.submitErr = nil
	h.views.Contacts.Submit()
	h.sched.flush()
	require.Equal(t, Succeeded, h.orch.State())
	require.Len(t, h.api.requests, 2)
}

func TestSecondSubmitWhileInFlightIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.buy("p1")
	h.views.Header.OpenBasket()
	h.views.Basket.Checkout()
	h.fillOrder()
	h.views.Order.Submit()
	h.fillContacts()

	h.views.Contacts.Submit()
	h.bus.Publish(events.ContactFormSubmit{})
	require.Len(t, h.sched.pending, 1)
	require.Contains(t, h.logs.String(), "order already in flight")

	h.sched.flush()
	require.Len(t, h.api.requests, 1)
}

func TestStepValidationIsFieldScoped(t *testing.T) {
	h := newHarness(t)
	h.buy("p1")
	h.views.Header.OpenBasket()
	h.views.Basket.Checkout()

	// contact fields do not gate the order step
	h.fillOrder()
	require.True(t, h.views.Order.SubmitEnabled())
	require.False(t, h.stores.Customer.Validate().Valid())

	// and order fields do not gate the contact step
	h.views.Contacts.InputEmail("a@b.c")
	require.Equal(t, []string{store.MsgPhoneRequired}, h.views.Contacts.Errors())
}

func TestOrderSubmitRequiresValidStep(t *testing.T) {
	h := newHarness(t)
	h.buy("p1")
	h.views.Header.OpenBasket()
	h.views.Basket.Checkout()

	h.bus.Publish(events.OrderFormSubmit{})
	require.Equal(t, OrderDetails, h.orch.State())
}

func TestOrderFormIsPrefilledFromCustomer(t *testing.T) {
	h := newHarness(t)
	h.fillOrder()
	h.buy("p1")
	h.views.Header.OpenBasket()
	h.views.Basket.Checkout()

	require.Equal(t, domain.PaymentCash, h.views.Order.Payment())
	require.Equal(t, "Main St 1", h.views.Order.Address())
	require.True(t, h.views.Order.SubmitEnabled())
}

func TestCloseReturnsToBrowsing(t *testing.T) {
	for _, open := range []func(h *harness){
		func(h *harness) { h.selectProduct("p1") },
		func(h *harness) { h.views.Header.OpenBasket() },
		func(h *harness) {
			h.buy("p1")
			h.views.Header.OpenBasket()
			h.views.Basket.Checkout()
		},
	} {
		h := newHarness(t)
		open(h)
		require.True(t, h.views.Modal.Active())
		h.views.Modal.RequestClose()
		require.Equal(t, Browsing, h.orch.State())
		require.False(t, h.views.Modal.Active())
	}
}

func TestCloseWhileSubmittingStillResolves(t *testing.T) {
	h := newHarness(t)
	h.buy("p1")
	h.views.Header.OpenBasket()
	h.views.Basket.Checkout()
	h.fillOrder()
	h.views.Order.Submit()
	h.fillContacts()
	h.views.Contacts.Submit()

	h.views.Modal.RequestClose()
	require.Equal(t, Browsing, h.orch.State())

	h.sched.flush()
	require.Equal(t, Succeeded, h.orch.State())
	require.Zero(t, h.stores.Cart.Count())
	require.True(t, h.views.Modal.Active())
}

func TestGallerySearchNarrowsTiles(t *testing.T) {
	h := newHarness(t)
	h.views.Gallery.Search("hamster")
	require.Equal(t, 1, h.views.Gallery.Len())

	h.views.Gallery.Search("zzzz")
	require.Equal(t, 0, h.views.Gallery.Len())

	h.views.Gallery.Search("")
	require.Equal(t, 3, h.views.Gallery.Len())
}

func TestCatalogReloadKeepsActiveQuery(t *testing.T) {
	h := newHarness(t)
	h.views.Gallery.Search("hamster")
	require.Equal(t, 1, h.views.Gallery.Len())

	reloaded := append(catalog(), domain.Product{ID: "p4", Title: "Hamster wheel", Category: "other", Price: price(20)})
	h.stores.Catalog.SetProducts(reloaded)
	require.Equal(t, 2, h.views.Gallery.Len())

	h.views.Gallery.Search("")
	require.Equal(t, 4, h.views.Gallery.Len())
	h.stores.Catalog.SetProducts(catalog())
	require.Equal(t, 3, h.views.Gallery.Len())
}

func TestStopRemovesSubscriptions(t *testing.T) {
	h := newHarness(t)
	h.orch.Stop()
	h.selectProduct("p1")
	require.Equal(t, Browsing, h.orch.State())
	require.Equal(t, 1, h.bus.Len())
}

func TestTransitionsTable(t *testing.T) {
	to, ok := Next(Browsing, TriggerSelect)
	require.True(t, ok)
	require.Equal(t, Previewing, to)

	_, ok = Next(Browsing, TriggerCheckout)
	require.False(t, ok)

	for from := range Transitions {
		if from == Browsing {
			continue
		}
		to, ok := Next(from, TriggerClose)
		require.True(t, ok, from)
		require.Equal(t, Browsing, to)
	}
}
