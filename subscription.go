package urx

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Spectonic/urx/diagnostics"
)

// Subscription is a node of the cancellation tree. Unsubscribing a node runs
// its own teardown and then unsubscribes every child, in insertion order.
type Subscription struct {
	mu       sync.Mutex
	closed   atomic.Bool
	teardown Unsubscribable
	children []*Subscription
	parents  []*Subscription
	// sink receives teardown failures that cannot be returned to a caller.
	// Nil means diagnostics.Default().
	sink diagnostics.Sink
}

// EmptySubscription is the shared, already closed, no-op subscription.
var EmptySubscription = closedSubscription()

func closedSubscription() *Subscription {
	s := &Subscription{}
	s.closed.Store(true)
	return s
}

// NewSubscription creates an open subscription owning teardown (may be nil).
func NewSubscription(teardown Unsubscribable) *Subscription {
	return &Subscription{teardown: teardown}
}

// Closed reports whether the subscription has been unsubscribed.
func (s *Subscription) Closed() bool {
	return s.closed.Load()
}

// Add links teardown as a child and returns the child subscription, so it can
// later be detached with Remove. Anything that is not already a
// *Subscription is wrapped in a new one.
//
// Adding nil or a closed subscription returns EmptySubscription. Adding to a
// closed subscription unsubscribes teardown immediately.
func (s *Subscription) Add(teardown Unsubscribable) *Subscription {
	if teardown == nil {
		return EmptySubscription
	}
	child, ok := teardown.(*Subscription)
	switch {
	case ok && child == nil:
		return EmptySubscription
	case ok && child == s:
		return s
	case !ok:
		child = &Subscription{teardown: teardown, sink: s.sink}
	}
	if child.Closed() {
		return EmptySubscription
	}

	s.mu.Lock()
	if s.Closed() {
		s.mu.Unlock()
		if err := child.Unsubscribe(); err != nil {
			reportTeardown(s.reportSink(), "urx.subscription", err)
		}
		return child
	}
	s.children = append(s.children, child)
	s.mu.Unlock()

	child.mu.Lock()
	child.parents = append(child.parents, s)
	child.mu.Unlock()
	return child
}

// AddFunc registers fn to run on unsubscribe.
func (s *Subscription) AddFunc(fn func()) *Subscription {
	return s.Add(TeardownFunc(func() error {
		fn()
		return nil
	}))
}

// Remove detaches child without unsubscribing it.
func (s *Subscription) Remove(child *Subscription) {
	if child == nil || child == s {
		return
	}
	s.mu.Lock()
	if i := slices.Index(s.children, child); i >= 0 {
		s.children = slices.Delete(s.children, i, i+1)
	}
	s.mu.Unlock()

	child.mu.Lock()
	if i := slices.Index(child.parents, s); i >= 0 {
		child.parents = slices.Delete(child.parents, i, i+1)
	}
	child.mu.Unlock()
}

// Unsubscribe releases the node and all of its descendants. Failures from
// the own teardown or any child do not stop the remaining cleanup; they are
// returned together as an *UnsubscriptionError. Calling it again is a no-op.
func (s *Subscription) Unsubscribe() error {
	s.mu.Lock()
	if s.Closed() {
		s.mu.Unlock()
		return nil
	}
	s.closed.Store(true)
	teardown, children, parents := s.teardown, s.children, s.parents
	s.teardown, s.children, s.parents = nil, nil, nil
	s.mu.Unlock()

	for _, parent := range parents {
		parent.Remove(s)
	}

	var errs []error
	collect := func(err error) {
		if err == nil {
			return
		}
		if agg, ok := err.(*UnsubscriptionError); ok {
			errs = append(errs, agg.Errors...)
			return
		}
		errs = append(errs, err)
	}

	if teardown != nil {
		collect(runTeardown(teardown))
	}
	for _, child := range children {
		collect(runTeardown(child))
	}

	if len(errs) > 0 {
		return &UnsubscriptionError{Errors: errs}
	}
	return nil
}

func (s *Subscription) reportSink() diagnostics.Sink {
	if s.sink == nil {
		return diagnostics.Default()
	}
	return s.sink
}

func runTeardown(u Unsubscribable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return u.Unsubscribe()
}

func reportTeardown(sink diagnostics.Sink, source string, err error) {
	sink.OnEvent(context.Background(), diagnostics.Event{
		Type:      diagnostics.EventTeardownFailed,
		Level:     diagnostics.LevelError,
		Timestamp: time.Now(),
		Source:    source,
		Data:      map[string]any{"error": err},
	})
}
