package urx

// AsyncSubject emits only the last value it received, and only once it
// completes. An error discards the value.
type AsyncSubject[T any] struct {
	Subject[T]
	value   T
	hasNext bool
}

func NewAsyncSubject[T any]() *AsyncSubject[T] {
	return &AsyncSubject[T]{}
}

func (a *AsyncSubject[T]) Next(v T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checkClosed()
	if a.isStopped {
		return
	}
	a.value = v
	a.hasNext = true
}

func (a *AsyncSubject[T]) Error(err error) {
	observers, ok := a.terminate(func() {
		a.hasError = true
		a.thrownError = err
		a.discard()
	})
	if !ok {
		return
	}
	for _, m := range observers {
		m.notify(ErrorNotification[T](err))
	}
}

func (a *AsyncSubject[T]) Complete() {
	var (
		value   T
		hasNext bool
	)
	observers, ok := a.terminate(func() {
		value, hasNext = a.value, a.hasNext
	})
	if !ok {
		return
	}
	if hasNext {
		for _, m := range observers {
			m.notify(NextNotification(value))
		}
	}
	for _, m := range observers {
		m.notify(CompleteNotification[T]())
	}
}

func (a *AsyncSubject[T]) Subscribe(observer Observer[T]) *Subscription {
	return a.AsObservable().Subscribe(observer)
}

func (a *AsyncSubject[T]) AsObservable() Observable[T] {
	return wrapObservable[T](a)
}

func (a *AsyncSubject[T]) subscribe(sub *Subscriber[T]) *Subscription {
	var (
		value   T
		hasNext bool
	)
	_, terminal, stopped := a.admit(sub, func(bool) {
		value, hasNext = a.value, a.hasNext
	}, false)
	if !stopped {
		return a.link(sub)
	}
	if hasNext {
		sub.Next(value)
	}
	terminal(sub)
	return EmptySubscription
}

// forceError delivers err even when the subject already completed. It
// exists for callback adapters whose call fails after the callback fired;
// it is not part of the general Subject contract.
func (a *AsyncSubject[T]) forceError(err error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		panic(ErrObjectUnsubscribed)
	}
	a.isStopped = false
	a.mu.Unlock()
	a.Error(err)
}

// discard forgets the buffered value. Callers hold a.mu.
func (a *AsyncSubject[T]) discard() {
	var zero T
	a.value = zero
	a.hasNext = false
}
