package urx

// Observer is the consumer side of a stream.
type Observer[T any] interface {
	Next(T)
	Error(error)
	Complete()
}

// Unsubscribable is anything that can release resources. It is the teardown
// shape accepted by Subscription.Add and returned by producers.
type Unsubscribable interface {
	Unsubscribe() error
}

// TeardownFunc adapts a function to Unsubscribable.
type TeardownFunc func() error

func (f TeardownFunc) Unsubscribe() error {
	return f()
}

// Producer pushes values into the subscriber it is handed and returns the
// teardown that releases whatever it acquired. A nil teardown is allowed.
type Producer[T any] func(*Subscriber[T]) Unsubscribable

// source is what an Observable wraps: producer functions and subjects.
type source[T any] interface {
	subscribe(*Subscriber[T]) *Subscription
}
