package urx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Spectonic/urx/diagnostics"
)

// Subscriber is the Observer a producer writes to. It wraps the consumer's
// observer, owns the subscription of one Subscribe call, and drops every
// notification once it has terminated or been unsubscribed.
type Subscriber[T any] struct {
	idOnce       sync.Once
	id           uuid.UUID
	dst          Observer[T]
	sink         diagnostics.Sink
	subscription *Subscription
	stopped      atomic.Bool
}

// NewSubscriber wraps dst. Missing callbacks of a PartialObserver are
// defaulted; unhandled errors go to sink, or diagnostics.Default() when sink
// is nil.
func NewSubscriber[T any](dst Observer[T], sink diagnostics.Sink) *Subscriber[T] {
	if sink == nil {
		sink = diagnostics.Default()
	}
	s := &Subscriber[T]{
		sink:         sink,
		subscription: &Subscription{sink: sink},
	}
	s.dst = normalize(dst, s.reportUnhandled)
	return s
}

// ID identifies the subscriber in diagnostic events. It is generated on
// first use.
func (s *Subscriber[T]) ID() uuid.UUID {
	s.idOnce.Do(func() { s.id = uuid.New() })
	return s.id
}

// Sink returns the diagnostics sink the subscriber reports to.
func (s *Subscriber[T]) Sink() diagnostics.Sink {
	return s.sink
}

// Subscription returns the lifetime handle of the subscriber.
func (s *Subscriber[T]) Subscription() *Subscription {
	return s.subscription
}

// Closed reports whether the subscriber stopped accepting notifications.
func (s *Subscriber[T]) Closed() bool {
	return s.stopped.Load() || s.subscription.Closed()
}

func (s *Subscriber[T]) Next(v T) {
	if s.Closed() {
		return
	}
	s.dst.Next(v)
}

func (s *Subscriber[T]) Error(err error) {
	if s.subscription.Closed() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.dst.Error(err)
	s.release()
}

func (s *Subscriber[T]) Complete() {
	if s.subscription.Closed() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.dst.Complete()
	s.release()
}

// Notify dispatches a materialized notification.
func (s *Subscriber[T]) Notify(n Notification[T]) {
	n.Accept(s)
}

// newRoot creates a subscription for an operator's inner work that reports
// to the same sink as s.
func (s *Subscriber[T]) newRoot() *Subscription {
	return &Subscription{sink: s.sink}
}

// Add ties teardown to the lifetime of the subscriber.
func (s *Subscriber[T]) Add(teardown Unsubscribable) *Subscription {
	return s.subscription.Add(teardown)
}

// AddFunc registers fn to run when the subscriber is released.
func (s *Subscriber[T]) AddFunc(fn func()) *Subscription {
	return s.subscription.AddFunc(fn)
}

// Unsubscribe stops delivery and releases everything the producer acquired.
func (s *Subscriber[T]) Unsubscribe() error {
	s.stopped.Store(true)
	return s.subscription.Unsubscribe()
}

// release runs after a terminal notification, where nobody is left to
// receive a teardown failure.
func (s *Subscriber[T]) release() {
	if err := s.subscription.Unsubscribe(); err != nil {
		reportTeardown(s.sink, "urx.subscriber", err)
	}
}

func (s *Subscriber[T]) reportUnhandled(err error) {
	s.sink.OnEvent(context.Background(), diagnostics.Event{
		Type:      diagnostics.EventUnhandledError,
		Level:     diagnostics.LevelWarning,
		Timestamp: time.Now(),
		Source:    "urx.subscriber",
		Data: map[string]any{
			"error":      err,
			"subscriber": s.ID().String(),
		},
	})
}
