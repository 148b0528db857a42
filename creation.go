package urx

// Of emits values in order and completes.
func Of[T any](values ...T) Observable[T] {
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		for _, v := range values {
			if subscriber.Closed() {
				return nil
			}
			subscriber.Next(v)
		}
		subscriber.Complete()
		return nil
	})
}

type emptySource[T any] struct{}

func (emptySource[T]) subscribe(sub *Subscriber[T]) *Subscription {
	sub.Complete()
	return sub.Subscription()
}

// Empty completes immediately. Every call for the same T returns an equal
// value.
func Empty[T any]() Observable[T] {
	return wrapObservable[T](emptySource[T]{})
}

type neverSource[T any] struct{}

func (neverSource[T]) subscribe(sub *Subscriber[T]) *Subscription {
	return sub.Subscription()
}

// Never emits nothing and never terminates.
func Never[T any]() Observable[T] {
	return wrapObservable[T](neverSource[T]{})
}

// ThrowError fails immediately with err.
func ThrowError[T any](err error) Observable[T] {
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		subscriber.Error(err)
		return nil
	})
}

// Defer calls factory on every Subscribe and subscribes to what it returns.
// A factory error is delivered as the stream error; a zero Observable is
// treated as Empty.
func Defer[T any](factory func() (Observable[T], error)) Observable[T] {
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		obs, err := factory()
		if err != nil {
			subscriber.Error(err)
			return nil
		}
		if obs.src == nil {
			obs = Empty[T]()
		}
		return obs.Subscribe(subscriber)
	})
}
