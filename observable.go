package urx

import "github.com/Spectonic/urx/diagnostics"

// Observable is a lazy, repeatable description of a push-based sequence.
// The zero value never emits.
type Observable[T any] struct {
	src source[T]
}

func wrapObservable[T any](src source[T]) Observable[T] {
	return Observable[T]{src: src}
}

// Subscribe starts the sequence and delivers it to observer. A
// *Subscriber is attached as is; any other observer, including nil, gets a
// fresh Subscriber reporting to diagnostics.Default().
func (o Observable[T]) Subscribe(observer Observer[T]) *Subscription {
	sub, ok := observer.(*Subscriber[T])
	switch {
	case ok && sub == nil:
		sub = NewSubscriber[T](nil, nil)
	case !ok:
		sub = NewSubscriber(observer, nil)
	}
	return o.subscribe(sub)
}

// SubscribeFunc is Subscribe with separate callbacks, any of which may be nil.
func (o Observable[T]) SubscribeFunc(next func(T), err func(error), complete func()) *Subscription {
	return o.Subscribe(PartialObserver[T]{OnNext: next, OnError: err, OnComplete: complete})
}

// SubscribeWithSink subscribes observer and sends its unhandled errors and
// teardown failures to sink instead of the process-wide default.
func (o Observable[T]) SubscribeWithSink(observer Observer[T], sink diagnostics.Sink) *Subscription {
	return o.subscribe(NewSubscriber(observer, sink))
}

func (o Observable[T]) subscribe(sub *Subscriber[T]) *Subscription {
	if o.src == nil {
		return sub.Subscription()
	}
	return o.src.subscribe(sub)
}

// Pipe applies ops left to right. With no ops it returns o.
func (o Observable[T]) Pipe(ops ...OperatorFunc[T, T]) Observable[T] {
	out := o
	for _, op := range ops {
		out = op(out)
	}
	return out
}

// subscribeInner subscribes observer to o on behalf of outer, so that
// subscriptions built inside an operator report to the same sink.
func subscribeInner[T, R any](o Observable[T], outer *Subscriber[R], observer Observer[T]) *Subscription {
	return o.SubscribeWithSink(observer, outer.sink)
}
