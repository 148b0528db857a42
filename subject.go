package urx

import (
	"slices"
	"sync"
)

// Subject is an Observable that is also an Observer: every value pushed into
// it is multicast to the observers subscribed at that moment.
//
// A Subject stops on Error or Complete; later Next calls are ignored and
// late subscribers receive the stored terminal notification. Unsubscribe
// closes the Subject for good: any further use panics with
// ErrObjectUnsubscribed.
type Subject[T any] struct {
	mu          sync.RWMutex
	observers   []*member[T]
	closed      bool
	isStopped   bool
	hasError    bool
	thrownError error
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

func (s *Subject[T]) Next(v T) {
	s.next(v, nil)
}

func (s *Subject[T]) Error(err error) {
	observers, ok := s.terminate(func() {
		s.hasError = true
		s.thrownError = err
	})
	if !ok {
		return
	}
	for _, m := range observers {
		m.notify(ErrorNotification[T](err))
	}
}

func (s *Subject[T]) Complete() {
	observers, ok := s.terminate(nil)
	if !ok {
		return
	}
	for _, m := range observers {
		m.notify(CompleteNotification[T]())
	}
}

// Subscribe adds observer to the multicast set, or replays the terminal
// notification if the Subject already stopped.
func (s *Subject[T]) Subscribe(observer Observer[T]) *Subscription {
	return s.AsObservable().Subscribe(observer)
}

// AsObservable hides the Observer side of the Subject.
func (s *Subject[T]) AsObservable() Observable[T] {
	return wrapObservable[T](s)
}

// Unsubscribe drops every observer without notifying them and closes the
// Subject.
func (s *Subject[T]) Unsubscribe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
	s.closed = true
	return nil
}

// Closed reports whether Unsubscribe was called.
func (s *Subject[T]) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Observed reports whether any observer is currently subscribed.
func (s *Subject[T]) Observed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers) > 0
}

func (s *Subject[T]) subscribe(sub *Subscriber[T]) *Subscription {
	_, terminal, stopped := s.admit(sub, nil, false)
	if stopped {
		terminal(sub)
		return EmptySubscription
	}
	return s.link(sub)
}

// next delivers v to a snapshot of the observers. record, when given, runs
// under the same lock as the snapshot so that variants store v atomically
// with choosing who receives it live.
func (s *Subject[T]) next(v T, record func()) {
	observers, ok := s.active(record)
	if !ok {
		return
	}
	for _, m := range observers {
		m.notify(NextNotification(v))
	}
}

// active returns a snapshot of the observers, or false once stopped.
func (s *Subject[T]) active(record func()) ([]*member[T], bool) {
	if record == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
	} else {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	s.checkClosed()
	if s.isStopped {
		return nil, false
	}
	if record != nil {
		record()
	}
	return slices.Clone(s.observers), true
}

// terminate stops the subject, running record under the lock first, and
// returns the observers that must receive the terminal notification.
func (s *Subject[T]) terminate(record func()) ([]*member[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkClosed()
	if s.isStopped {
		return nil, false
	}
	if record != nil {
		record()
	}
	return s.stop(), true
}

// admit appends sub unless the subject stopped, in which case it returns the
// stored terminal notification instead. capture runs under the lock so
// variants can read their own state consistently with the admission. A held
// member queues live notifications until release, so values captured here
// reach sub before anything pushed after admission.
func (s *Subject[T]) admit(sub *Subscriber[T], capture func(stopped bool), held bool) (m *member[T], terminal func(Observer[T]), stopped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkClosed()
	if capture != nil {
		capture(s.isStopped)
	}
	if s.isStopped {
		hasError, err := s.hasError, s.thrownError
		return nil, func(o Observer[T]) {
			if hasError {
				o.Error(err)
				return
			}
			o.Complete()
		}, true
	}
	m = &member[T]{sub: sub, held: held}
	s.observers = append(s.observers, m)
	return m, nil, false
}

// link ties the subscriber's lifetime to its membership of the subject.
func (s *Subject[T]) link(sub *Subscriber[T]) *Subscription {
	sub.Add(&subjectSubscription[T]{subject: s, subscriber: sub})
	return sub.Subscription()
}

// stop marks the subject stopped and hands back the observers it dropped.
// Callers hold s.mu.
func (s *Subject[T]) stop() []*member[T] {
	observers := s.observers
	s.isStopped = true
	s.observers = nil
	return observers
}

func (s *Subject[T]) checkClosed() {
	if s.closed {
		panic(ErrObjectUnsubscribed)
	}
}

// detach removes exactly one subscriber. It does nothing once the subject
// stopped or closed, since the list is already gone.
func (s *Subject[T]) detach(sub *Subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isStopped || s.closed {
		return
	}
	if i := slices.IndexFunc(s.observers, func(m *member[T]) bool { return m.sub == sub }); i >= 0 {
		s.observers = slices.Delete(s.observers, i, i+1)
	}
}

// subjectSubscription is the per-observer handle of a Subject. It only
// detaches its own subscriber and never touches the Subject's lifecycle.
type subjectSubscription[T any] struct {
	subject    *Subject[T]
	subscriber *Subscriber[T]
}

func (ss *subjectSubscription[T]) Unsubscribe() error {
	ss.subject.detach(ss.subscriber)
	return nil
}

// member is one registration of a Subscriber in a Subject. While held, live
// notifications are queued behind the values being replayed to it.
type member[T any] struct {
	sub *Subscriber[T]

	mu      sync.Mutex
	held    bool
	backlog []Notification[T]
}

func (m *member[T]) notify(n Notification[T]) {
	m.mu.Lock()
	if m.held {
		m.backlog = append(m.backlog, n)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	n.Accept(m.sub)
}

// release delivers the backlog in order and lets later notifications
// through directly.
func (m *member[T]) release() {
	for {
		m.mu.Lock()
		if len(m.backlog) == 0 {
			m.held = false
			m.mu.Unlock()
			return
		}
		n := m.backlog[0]
		m.backlog = m.backlog[1:]
		m.mu.Unlock()
		n.Accept(m.sub)
	}
}
