package broker

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }

func (ping) Topic() string { return "test:ping" }

type pong struct{}

func (pong) Topic() string { return "test:pong" }

type other struct{}

func (other) Topic() string { return "misc:other" }

func collectErrors() (*[]error, Option) {
	var errs []error
	return &errs, WithErrorHandler(func(err error) { errs = append(errs, err) })
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	errs, opt := collectErrors()
	b := New(opt)
	require.NotPanics(t, func() { b.Publish(ping{}) })
	require.Empty(t, *errs)
}

func TestHandlersRunInRegistrationOrder(t *testing.T) {
	b := New()
	var order []string
	b.Subscribe(Exact("test:ping"), func(Event) error { order = append(order, "a"); return nil })
	b.Subscribe(Exact("test:ping"), func(Event) error { order = append(order, "b"); return nil })
	b.Subscribe(Exact("test:ping"), func(Event) error { order = append(order, "c"); return nil })
	b.Subscribe(Exact("test:pong"), func(Event) error { order = append(order, "x"); return nil })

	b.Publish(ping{})
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestMatchers(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe(Prefix("test:"), func(ev Event) error { got = append(got, "prefix "+ev.Topic()); return nil })
	b.Subscribe(Pattern(regexp.MustCompile(`^misc:`)), func(ev Event) error { got = append(got, "re "+ev.Topic()); return nil })
	b.Subscribe(All(), func(ev Event) error { got = append(got, "all "+ev.Topic()); return nil })

	b.Publish(ping{})
	b.Publish(other{})
	require.Equal(t, []string{
		"prefix test:ping", "all test:ping",
		"re misc:other", "all misc:other",
	}, got)
}

func TestFailingHandlersAreReportedAndIsolated(t *testing.T) {
	errs, opt := collectErrors()
	b := New(opt)
	boom := errors.New("boom")
	ran := 0
	b.Subscribe(Exact("test:ping"), func(Event) error { return boom })
	b.Subscribe(Exact("test:ping"), func(Event) error { panic("kaboom") })
	b.Subscribe(Exact("test:ping"), func(Event) error { ran++; return nil })

	b.Publish(ping{})
	require.Equal(t, 1, ran)
	require.Len(t, *errs, 2)
	require.ErrorIs(t, (*errs)[0], boom)

	var he *HandlerError
	require.ErrorAs(t, (*errs)[1], &he)
	require.Equal(t, "test:ping", he.Topic)
	require.Contains(t, he.Error(), "kaboom")
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	sub := b.Subscribe(Exact("test:ping"), func(Event) error { calls++; return nil })
	b.Publish(ping{})
	b.Unsubscribe(sub)
	b.Publish(ping{})
	require.Equal(t, 1, calls)
	require.Zero(t, b.Len())

	require.NotPanics(t, func() {
		b.Unsubscribe(sub)
		b.Unsubscribe(Subscription{})
		Subscription{}.Cancel()
	})
}

func TestUnsubscribeMidDispatchSkipsPendingHandler(t *testing.T) {
	b := New()
	var later Subscription
	laterCalls, earlierCalls := 0, 0
	b.Subscribe(Exact("test:ping"), func(Event) error {
		earlierCalls++
		later.Cancel()
		return nil
	})
	later = b.Subscribe(Exact("test:ping"), func(Event) error { laterCalls++; return nil })

	b.Publish(ping{})
	require.Equal(t, 1, earlierCalls)
	require.Zero(t, laterCalls)
}

func TestSelfUnsubscribeDuringDispatch(t *testing.T) {
	b := New()
	var self Subscription
	calls := 0
	self = b.Subscribe(Exact("test:ping"), func(Event) error {
		calls++
		self.Cancel()
		return nil
	})
	b.Publish(ping{})
	b.Publish(ping{})
	require.Equal(t, 1, calls)
}

func TestNestedPublishRunsDepthFirst(t *testing.T) {
	b := New()
	var trace []string
	b.Subscribe(Exact("test:ping"), func(Event) error {
		trace = append(trace, "ping-1")
		b.Publish(pong{})
		return nil
	})
	b.Subscribe(Exact("test:ping"), func(Event) error { trace = append(trace, "ping-2"); return nil })
	b.Subscribe(Exact("test:pong"), func(Event) error { trace = append(trace, "pong"); return nil })

	b.Publish(ping{})
	require.Equal(t, []string{"ping-1", "pong", "ping-2"}, trace)
}

func TestPublishCycleIsCut(t *testing.T) {
	errs, opt := collectErrors()
	b := New(opt, WithMaxDepth(4))
	hops := 0
	b.Subscribe(Exact("test:ping"), func(Event) error { hops++; b.Publish(pong{}); return nil })
	b.Subscribe(Exact("test:pong"), func(Event) error { hops++; b.Publish(ping{}); return nil })

	b.Publish(ping{})
	require.Equal(t, 4, hops)
	require.Len(t, *errs, 1)
	require.ErrorIs(t, (*errs)[0], ErrDepthExceeded)

	hops = 0
	b.Publish(ping{})
	require.Equal(t, 4, hops, "depth resets after the chain unwinds")
}

func TestOnDeliversTypedPayload(t *testing.T) {
	errs, opt := collectErrors()
	b := New(opt)
	var got []int
	On(b, func(p ping) error { got = append(got, p.N); return nil })

	b.Publish(ping{N: 7})
	b.Publish(pong{})
	require.Equal(t, []int{7}, got)
	require.Empty(t, *errs)
}
