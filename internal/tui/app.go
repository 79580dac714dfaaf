package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/storefront/internal/broker"
	"github.com/jask/storefront/internal/checkout"
	"github.com/jask/storefront/internal/events"
	"github.com/jask/storefront/internal/view"
	"github.com/jask/storefront/internal/widgets"
)

// App hosts the presentation units and turns key presses into their
// gestures. All workflow decisions happen in the orchestrator.
type App struct {
	bus    *broker.Broker
	views  checkout.Views
	sched  *Scheduler
	keys   *KeyRegistry
	width  int
	height int
	status string
	okay   bool

	searching bool
	search    textinput.Model
	address   textinput.Model
	email     textinput.Model
	phone     textinput.Model

	orderFocus   int // 0 payment, 1 address
	contactFocus int // 0 email, 1 phone
	content      view.Viewer
	subs         []broker.Subscription
}

func New(bus *broker.Broker, views checkout.Views, sched *Scheduler) *App {
	a := &App{
		bus:     bus,
		views:   views,
		sched:   sched,
		keys:    NewKeyRegistry(),
		search:  newInput("search products", 40),
		address: newInput("Enter an address", 60),
		email:   newInput("Enter an email", 60),
		phone:   newInput("+7 (", 20),
	}
	a.subs = append(a.subs,
		broker.On(bus, func(ev events.OrderPlaced) error {
			a.status = fmt.Sprintf("Order %s placed", ev.Result.ID)
			a.okay = true
			return nil
		}),
	)
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = "> "
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// Close removes the App's own subscriptions.
func (a *App) Close() {
	for _, s := range a.subs {
		s.Cancel()
	}
	a.subs = nil
}

func (a *App) Init() tea.Cmd {
	return a.sched.Drain()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case resumeMsg:
		if m.resume != nil {
			m.resume()
		}
		a.sync()
		return a, a.sched.Drain()
	case tea.KeyMsg:
		cmd := a.handleKey(m)
		a.sync()
		return a, tea.Batch(cmd, a.sched.Drain())
	}
	return a, nil
}

func (a *App) scope() string {
	if a.searching {
		return scopeSearch
	}
	switch a.views.Modal.Content().(type) {
	case *view.PreviewCard:
		return scopePreview
	case *view.Basket:
		return scopeBasket
	case *view.OrderForm:
		if a.orderFocus == 0 {
			return scopeOrderPayment
		}
		return scopeOrderAddress
	case *view.ContactsForm:
		return scopeContacts
	case *view.Success:
		return scopeSuccess
	}
	return scopeGallery
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	scope := a.scope()
	b := a.keys.Lookup(msg.String(), scope)
	if b == nil {
		return a.handleText(scope, msg)
	}
	if a.okay && b.Action != actionQuit {
		a.status, a.okay = "", false
	}

	switch b.Action {
	case actionQuit:
		return tea.Quit
	case actionUp:
		a.move(-1)
	case actionDown:
		a.move(1)
	case actionSelect:
		a.views.Gallery.Choose()
	case actionSearch:
		a.searching = true
		return a.search.Focus()
	case actionApply:
		a.searching = false
		a.search.Blur()
	case actionClearQuery:
		a.searching = false
		a.search.Blur()
		a.search.SetValue("")
		a.views.Gallery.Search("")
	case actionBasket:
		a.views.Header.OpenBasket()
	case actionClose:
		a.views.Modal.RequestClose()
	case actionBuy:
		a.views.Preview.Press()
	case actionRemove:
		a.views.Basket.RemoveCurrent()
	case actionCheckout:
		a.views.Basket.Checkout()
	case actionOnline:
		a.views.Order.SelectOnline()
	case actionCash:
		a.views.Order.SelectCash()
	case actionNextField, actionPrevField:
		return a.switchField()
	case actionSubmit:
		if scope == scopeContacts {
			a.views.Contacts.Submit()
		} else {
			a.views.Order.Submit()
		}
	case actionDismiss:
		a.views.Success.Dismiss()
	}
	return nil
}

func (a *App) move(delta int) {
	if a.scope() == scopeBasket {
		a.views.Basket.Move(delta)
		return
	}
	a.views.Gallery.Move(delta)
}

func (a *App) switchField() tea.Cmd {
	switch a.scope() {
	case scopeOrderPayment:
		a.orderFocus = 1
		return a.address.Focus()
	case scopeOrderAddress:
		a.orderFocus = 0
		a.address.Blur()
	case scopeContacts:
		// two fields, so next and prev both flip
		a.contactFocus = 1 - a.contactFocus
		if a.contactFocus == 0 {
			a.phone.Blur()
			return a.email.Focus()
		}
		a.email.Blur()
		return a.phone.Focus()
	}
	return nil
}

// handleText feeds unbound keys to the focused text field and publishes the
// edit gesture when the value changed.
func (a *App) handleText(scope string, msg tea.KeyMsg) tea.Cmd {
	switch scope {
	case scopeSearch:
		return updateInput(&a.search, msg, a.views.Gallery.Search)
	case scopeOrderAddress:
		return updateInput(&a.address, msg, a.views.Order.InputAddress)
	case scopeContacts:
		if a.contactFocus == 0 {
			return updateInput(&a.email, msg, a.views.Contacts.InputEmail)
		}
		return updateInput(&a.phone, msg, a.views.Contacts.InputPhone)
	}
	return nil
}

func updateInput(in *textinput.Model, msg tea.KeyMsg, gesture func(string)) tea.Cmd {
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if v := in.Value(); v != before {
		gesture(v)
	}
	return cmd
}

// sync copies form values into the text fields when the modal switches to a
// form, since the orchestrator pre-fills forms from the customer.
func (a *App) sync() {
	content := a.views.Modal.Content()
	if content == a.content {
		return
	}
	a.content = content
	a.address.Blur()
	a.email.Blur()
	a.phone.Blur()
	switch content.(type) {
	case *view.OrderForm:
		a.orderFocus = 0
		a.address.SetValue(a.views.Order.Address())
	case *view.ContactsForm:
		a.contactFocus = 0
		a.email.SetValue(a.views.Contacts.Email())
		a.phone.SetValue(a.views.Contacts.Phone())
		a.email.Focus()
	}
}

// Status returns the status line text.
func (a *App) Status() string { return a.status }

func (a *App) footerBindings() []key.Binding {
	return a.keys.HelpBindings(a.scope())
}

// wideLayout is the width from which the basket summary pane is shown.
const wideLayout = 100

// page lays out the header above the catalog, with the basket summary
// beside it on wide terminals.
func (a *App) page() string {
	header := headerStyle.Render(string(a.views.Header.View()))
	catalog := string(a.views.Gallery.View())
	if a.searching || a.search.Value() != "" {
		catalog += "\n\n" + searchStyle.Render(a.search.View())
	}
	if a.width == 0 || a.height == 0 {
		return header + "\n\n" + catalog
	}

	height := max(1, a.height-4) // header, gap, status, footer
	var body widgets.Widget = widgets.Box{Title: "Catalog", Content: widgets.Text(catalog), Accent: colorPeach}
	if a.width >= wideLayout {
		body = widgets.HStack{
			Widgets: []widgets.Widget{
				body,
				widgets.Box{Title: "Basket", Content: widgets.Text(a.summary()), Accent: colorGreen},
			},
			Ratios: []float64{3, 1},
			Gap:    1,
		}
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{widgets.Text(header), body},
		Spacing: 1,
		Ratios:  []float64{1, float64(height)},
	}.Render(a.width, height+2)
}

func (a *App) summary() string {
	n := a.views.Header.Counter()
	if n == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d item(s)\n%s", n, a.views.Basket.Total())
}

func (a *App) View() string {
	body := a.page()

	status := statusBarStyle.Render(widgets.PadRight(a.status, a.width))
	if a.okay {
		status = statusOKStyle.Render(widgets.PadRight(a.status, a.width))
	}
	footer := widgets.Footer(a.footerBindings(), a.width)
	screen := widgets.PlaceWithFooter(body, status, footer, a.width, a.height)

	if !a.views.Modal.Active() {
		return screen
	}
	popup := string(a.views.Modal.View())
	if field := a.focusedField(); field != "" {
		popup += "\n\n" + field
	}
	if a.width == 0 || a.height == 0 {
		return screen + "\n\n" + popup
	}
	return widgets.RenderPopup(screen, popup, a.width, a.height-2) + "\n" + status + "\n" + footer
}

func (a *App) focusedField() string {
	switch a.scope() {
	case scopeOrderAddress:
		return a.address.View()
	case scopeContacts:
		if a.contactFocus == 0 {
			return a.email.View()
		}
		return a.phone.View()
	}
	return ""
}
