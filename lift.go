package urx

// OperatorFunc derives one Observable from another.
type OperatorFunc[T, R any] func(Observable[T]) Observable[R]

// Lift applies op to src. It is Pipe for operators that change the element
// type, which a method cannot express.
func Lift[T, R any](src Observable[T], op OperatorFunc[T, R]) Observable[R] {
	return op(src)
}

// passThrough subscribes to input with an observer built around the
// downstream subscriber, and tears the upstream down with it.
func passThrough[T, R any](input Observable[T], observe func(*Subscriber[R]) Observer[T]) Observable[R] {
	return Create(func(subscriber *Subscriber[R]) Unsubscribable {
		return subscribeInner(input, subscriber, observe(subscriber))
	})
}
