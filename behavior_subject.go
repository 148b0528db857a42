package urx

// BehaviorSubject is a Subject that remembers the latest value and hands it
// to every new subscriber before anything else.
type BehaviorSubject[T any] struct {
	Subject[T]
	value T
}

func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{value: initial}
}

// Value returns the latest value. It fails with the stored stream error once
// the subject errored, and with ErrObjectUnsubscribed once it is closed.
func (b *BehaviorSubject[T]) Value() (T, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var zero T
	if b.hasError {
		return zero, b.thrownError
	}
	if b.closed {
		return zero, ErrObjectUnsubscribed
	}
	return b.value, nil
}

func (b *BehaviorSubject[T]) Next(v T) {
	b.next(v, func() { b.value = v })
}

func (b *BehaviorSubject[T]) Subscribe(observer Observer[T]) *Subscription {
	return b.AsObservable().Subscribe(observer)
}

func (b *BehaviorSubject[T]) AsObservable() Observable[T] {
	return wrapObservable[T](b)
}

func (b *BehaviorSubject[T]) subscribe(sub *Subscriber[T]) *Subscription {
	var current T
	m, terminal, stopped := b.admit(sub, func(bool) {
		current = b.value
	}, true)
	if stopped {
		terminal(sub)
		return EmptySubscription
	}
	subscription := b.link(sub)
	sub.Next(current)
	m.release()
	return subscription
}
