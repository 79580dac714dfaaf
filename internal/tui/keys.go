package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry resolves a key press to an action within a scope, falling back
// to the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal       = "global"
	scopeGallery      = "gallery"
	scopeSearch       = "search"
	scopePreview      = "preview"
	scopeBasket       = "basket"
	scopeOrderPayment = "order_payment"
	scopeOrderAddress = "order_address"
	scopeContacts     = "contacts"
	scopeSuccess      = "success"
)

const (
	actionQuit       Action = "quit"
	actionUp         Action = "up"
	actionDown       Action = "down"
	actionSelect     Action = "select"
	actionSearch     Action = "search"
	actionBasket     Action = "basket"
	actionClose      Action = "close"
	actionBuy        Action = "buy"
	actionRemove     Action = "remove"
	actionCheckout   Action = "checkout"
	actionOnline     Action = "online"
	actionCash       Action = "cash"
	actionNextField  Action = "next_field"
	actionPrevField  Action = "prev_field"
	actionSubmit     Action = "submit"
	actionDismiss    Action = "dismiss"
	actionApply      Action = "apply"
	actionClearQuery Action = "clear_query"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeGallery, actionUp, []string{"k", "up", "h", "left"}, "prev")
	reg(scopeGallery, actionDown, []string{"j", "down", "l", "right"}, "next")
	reg(scopeGallery, actionSelect, []string{"enter"}, "open")
	reg(scopeGallery, actionSearch, []string{"/"}, "search")
	reg(scopeGallery, actionBasket, []string{"b"}, "basket")
	reg(scopeGallery, actionQuit, []string{"q"}, "quit")

	reg(scopeSearch, actionApply, []string{"enter"}, "apply")
	reg(scopeSearch, actionClearQuery, []string{"esc"}, "clear")

	reg(scopePreview, actionBuy, []string{"enter", "space"}, "buy/remove")
	reg(scopePreview, actionBasket, []string{"b"}, "basket")
	reg(scopePreview, actionClose, []string{"esc", "q"}, "close")

	reg(scopeBasket, actionUp, []string{"k", "up"}, "up")
	reg(scopeBasket, actionDown, []string{"j", "down"}, "down")
	reg(scopeBasket, actionRemove, []string{"d", "x", "delete"}, "remove")
	reg(scopeBasket, actionCheckout, []string{"enter", "c"}, "checkout")
	reg(scopeBasket, actionClose, []string{"esc", "q"}, "close")

	reg(scopeOrderPayment, actionOnline, []string{"o", "left", "h"}, "online")
	reg(scopeOrderPayment, actionCash, []string{"c", "right", "l"}, "cash")
	reg(scopeOrderPayment, actionNextField, []string{"tab", "down", "j"}, "address")
	reg(scopeOrderPayment, actionSubmit, []string{"enter"}, "next")
	reg(scopeOrderPayment, actionClose, []string{"esc"}, "close")

	reg(scopeOrderAddress, actionPrevField, []string{"tab", "shift+tab", "up"}, "payment")
	reg(scopeOrderAddress, actionSubmit, []string{"enter"}, "next")
	reg(scopeOrderAddress, actionClose, []string{"esc"}, "close")

	reg(scopeContacts, actionNextField, []string{"tab", "down"}, "next field")
	reg(scopeContacts, actionPrevField, []string{"shift+tab", "up"}, "prev field")
	reg(scopeContacts, actionSubmit, []string{"enter"}, "pay")
	reg(scopeContacts, actionClose, []string{"esc"}, "close")

	reg(scopeSuccess, actionDismiss, []string{"enter", "esc", "q"}, "continue")

	return r
}

// Register adds b to each of its scopes. Keys already bound in a scope are
// not rebound.
func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.indexByScope[scope][keyName]; b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.indexByScope[scopeGlobal][keyName]
	}
	return nil
}

// HelpBindings returns the scope's bindings for the footer.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(k))
}
