package urx

import "sync"

// Published multicasts a single subscription to its source through a
// Subject. The source is connected when the first observer subscribes and
// stays connected until it terminates or Unsubscribe is called.
type Published[T any] struct {
	source  Observable[T]
	subject *Subject[T]

	mu         sync.Mutex
	connection *Subscription
}

func Publish[T any](source Observable[T]) *Published[T] {
	return &Published[T]{source: source, subject: NewSubject[T]()}
}

func (p *Published[T]) Subscribe(observer Observer[T]) *Subscription {
	return p.AsObservable().Subscribe(observer)
}

func (p *Published[T]) AsObservable() Observable[T] {
	return wrapObservable[T](p)
}

func (p *Published[T]) subscribe(sub *Subscriber[T]) *Subscription {
	subscription := p.subject.subscribe(sub)
	p.connectIfNeeded()
	return subscription
}

func (p *Published[T]) connectIfNeeded() {
	p.mu.Lock()
	if p.connection != nil {
		p.mu.Unlock()
		return
	}
	p.connection = NewSubscription(nil)
	connection := p.connection
	p.mu.Unlock()

	connection.Add(p.source.Subscribe(PartialObserver[T]{
		OnNext: p.subject.Next,
		OnError: func(err error) {
			p.subject.Error(err)
			_ = connection.Unsubscribe()
		},
		OnComplete: func() {
			p.subject.Complete()
			_ = connection.Unsubscribe()
		},
	}))
}

// Connected reports whether the source has been subscribed and has neither
// terminated nor been released.
func (p *Published[T]) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connection != nil && !p.connection.Closed()
}

// Unsubscribe disconnects from the source and closes the underlying subject.
func (p *Published[T]) Unsubscribe() error {
	p.mu.Lock()
	connection := p.connection
	if connection == nil {
		p.connection = EmptySubscription
	}
	p.mu.Unlock()

	var err error
	if connection != nil {
		err = connection.Unsubscribe()
	}
	_ = p.subject.Unsubscribe()
	return err
}
