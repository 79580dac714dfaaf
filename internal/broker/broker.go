package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxDepth bounds re-entrant publish chains.
const DefaultMaxDepth = 32

// ErrDepthExceeded is reported when a publish chain nests deeper than the
// configured bound, which almost always means two handlers republish each
// other's topics.
var ErrDepthExceeded = errors.New("broker: publish depth exceeded")

// Event is a payload that knows its own topic.
type Event interface {
	Topic() string
}

// Handler reacts to one published event.
type Handler func(Event) error

// Matcher selects the topics a subscription receives.
type Matcher interface {
	Match(topic string) bool
}

type exact string

func (m exact) Match(topic string) bool { return string(m) == topic }

type prefix string

func (m prefix) Match(topic string) bool { return strings.HasPrefix(topic, string(m)) }

type pattern struct{ re *regexp.Regexp }

func (m pattern) Match(topic string) bool { return m.re.MatchString(topic) }

type all struct{}

func (all) Match(string) bool { return true }

// Exact matches one topic string.
func Exact(topic string) Matcher { return exact(topic) }

// Prefix matches every topic starting with p, e.g. "basket:".
func Prefix(p string) Matcher { return prefix(p) }

// Pattern matches topics against a regular expression.
func Pattern(re *regexp.Regexp) Matcher { return pattern{re: re} }

// All matches every topic.
func All() Matcher { return all{} }

// HandlerError describes a handler that failed during dispatch.
type HandlerError struct {
	Topic        string
	Subscription uuid.UUID
	Err          error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("broker: handler %s on %q: %v", e.Subscription, e.Topic, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Subscription identifies one registration. The zero value is valid and
// cancelling it does nothing.
type Subscription struct {
	id uuid.UUID
	b  *Broker
}

// ID returns the registration id.
func (s Subscription) ID() uuid.UUID { return s.id }

// Cancel removes the registration.
func (s Subscription) Cancel() {
	if s.b != nil {
		s.b.Unsubscribe(s)
	}
}

type entry struct {
	id      uuid.UUID
	match   Matcher
	handler Handler
	active  bool
}

// Broker is a synchronous topic-based publish/subscribe bus. Handlers run on
// the publishing goroutine in registration order; a handler may publish
// again, and that nested dispatch completes before the outer one resumes.
type Broker struct {
	mu       sync.Mutex
	entries  []*entry
	depth    int
	maxDepth int
	logger   *slog.Logger
	report   func(error)
}

// Option configures a Broker.
type Option func(*Broker)

// WithLogger sets the logger used for failure reports.
func WithLogger(l *slog.Logger) Option {
	return func(b *Broker) { b.logger = l }
}

// WithErrorHandler replaces the default failure reporter (a log line).
func WithErrorHandler(fn func(error)) Option {
	return func(b *Broker) { b.report = fn }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(b *Broker) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// New returns an empty broker.
func New(opts ...Option) *Broker {
	b := &Broker{maxDepth: DefaultMaxDepth, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	if b.report == nil {
		b.report = func(err error) {
			b.logger.Error("event handler failed", "err", err)
		}
	}
	return b
}

// Subscribe registers h for every topic m matches.
func (b *Broker) Subscribe(m Matcher, h Handler) Subscription {
	e := &entry{id: uuid.New(), match: m, handler: h, active: true}
	b.mu.Lock()
	b.entries = append(b.entries, e)
	b.mu.Unlock()
	return Subscription{id: e.id, b: b}
}

// Unsubscribe removes sub. Unknown or already removed subscriptions are
// ignored. A handler removed during a dispatch pass is not invoked later in
// that pass.
func (b *Broker) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.entries {
		if e.id == sub.id {
			e.active = false
			b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every matching handler. Handler errors and panics
// are reported and never stop the remaining handlers.
func (b *Broker) Publish(ev Event) {
	topic := ev.Topic()

	b.mu.Lock()
	if b.depth >= b.maxDepth {
		b.mu.Unlock()
		b.report(fmt.Errorf("%w: %q at depth %d", ErrDepthExceeded, topic, b.maxDepth))
		return
	}
	b.depth++
	matched := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		if e.match.Match(topic) {
			matched = append(matched, e)
		}
	}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.depth--
		b.mu.Unlock()
	}()

	for _, e := range matched {
		b.mu.Lock()
		active := e.active
		b.mu.Unlock()
		if !active {
			continue
		}
		if err := invoke(e.handler, ev); err != nil {
			b.report(&HandlerError{Topic: topic, Subscription: e.id, Err: err})
		}
	}
}

// Len returns the number of live registrations.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

func invoke(h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ev)
}

// On subscribes a handler typed to one event payload. The topic is taken
// from the zero value of E.
func On[E Event](b *Broker, h func(E) error) Subscription {
	var zero E
	topic := zero.Topic()
	return b.Subscribe(Exact(topic), func(ev Event) error {
		e, ok := ev.(E)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %q", ev, topic)
		}
		return h(e)
	})
}
