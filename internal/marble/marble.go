// Package marble drives urx streams on virtual time from marble strings.
//
// One rune is one frame: '-' is an empty frame, '|' completes, '#' errors and
// any other rune emits the value it maps to (or the rune itself as a string
// when no mapping is given and T is string).
package marble

import (
	"slices"
	"time"

	"github.com/Spectonic/urx"
)

// Frame is the virtual duration of one marble rune.
const Frame = time.Millisecond

type action struct {
	frame     int
	seq       int
	work      func()
	cancelled bool
}

// Scheduler is a virtual clock. Work runs only inside Run, ordered by frame
// and then by the order it was scheduled.
type Scheduler struct {
	now   int
	seq   int
	queue []*action
	epoch time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{epoch: time.Unix(0, 0)}
}

// Frame returns the current virtual frame.
func (s *Scheduler) Frame() int {
	return s.now
}

// Now returns the virtual time, usable as a ReplayConfig clock.
func (s *Scheduler) Now() time.Time {
	return s.epoch.Add(time.Duration(s.now) * Frame)
}

// Schedule implements urx.Scheduler on virtual time.
func (s *Scheduler) Schedule(delay time.Duration, work func()) *urx.Subscription {
	return s.at(s.now+int(delay/Frame), work)
}

func (s *Scheduler) at(frame int, work func()) *urx.Subscription {
	a := &action{frame: frame, seq: s.seq, work: work}
	s.seq++
	s.queue = append(s.queue, a)
	return urx.NewSubscription(urx.TeardownFunc(func() error {
		a.cancelled = true
		return nil
	}))
}

// Run executes scheduled work until none is left.
func (s *Scheduler) Run() {
	for len(s.queue) > 0 {
		next := slices.MinFunc(s.queue, func(a, b *action) int {
			if a.frame != b.frame {
				return a.frame - b.frame
			}
			return a.seq - b.seq
		})
		s.queue = slices.DeleteFunc(s.queue, func(a *action) bool { return a == next })
		if next.frame > s.now {
			s.now = next.frame
		}
		if !next.cancelled {
			next.work()
		}
	}
}

// Event is a notification observed at a virtual frame.
type Event[T any] struct {
	Frame        int
	Notification urx.Notification[T]
}

// Parse turns a marble string into the events it describes, with frames
// offset by start.
func Parse[T any](marbles string, start int, values map[rune]T, err error) []Event[T] {
	var events []Event[T]
	for i, r := range []rune(marbles) {
		frame := start + i
		switch r {
		case '-', ' ':
		case '|':
			events = append(events, Event[T]{Frame: frame, Notification: urx.CompleteNotification[T]()})
		case '#':
			events = append(events, Event[T]{Frame: frame, Notification: urx.ErrorNotification[T](err)})
		default:
			events = append(events, Event[T]{Frame: frame, Notification: urx.NextNotification(lookup(r, values))})
		}
	}
	return events
}

func lookup[T any](r rune, values map[rune]T) T {
	if v, ok := values[r]; ok {
		return v
	}
	var zero T
	if v, ok := any(string(r)).(T); ok {
		return v
	}
	return zero
}

// Hot returns a Subject that plays marbles from frame zero, whether or not
// anybody is subscribed.
func Hot[T any](s *Scheduler, marbles string, values map[rune]T, err error) *urx.Subject[T] {
	subject := urx.NewSubject[T]()
	for _, e := range Parse(marbles, 0, values, err) {
		n := e.Notification
		s.at(e.Frame, func() { n.Accept(subject) })
	}
	return subject
}

// Cold returns an Observable that plays marbles relative to the frame of
// each subscription.
func Cold[T any](s *Scheduler, marbles string, values map[rune]T, err error) urx.Observable[T] {
	return urx.Create(func(subscriber *urx.Subscriber[T]) urx.Unsubscribable {
		root := urx.NewSubscription(nil)
		for _, e := range Parse(marbles, s.now, values, err) {
			n := e.Notification
			root.Add(s.at(e.Frame, func() { subscriber.Notify(n) }))
		}
		return root
	})
}

// Recording collects what a subscription observed.
type Recording[T any] struct {
	Events       []Event[T]
	Subscription *urx.Subscription
}

// Record subscribes to obs at the current frame and stamps every
// notification with the frame it arrived at.
func Record[T any](s *Scheduler, obs urx.Observable[T]) *Recording[T] {
	rec := &Recording[T]{}
	add := func(n urx.Notification[T]) {
		rec.Events = append(rec.Events, Event[T]{Frame: s.now, Notification: n})
	}
	rec.Subscription = obs.Subscribe(urx.PartialObserver[T]{
		OnNext:     func(v T) { add(urx.NextNotification(v)) },
		OnError:    func(err error) { add(urx.ErrorNotification[T](err)) },
		OnComplete: func() { add(urx.CompleteNotification[T]()) },
	})
	return rec
}
