package urx

import "sync"

// BindCallback turns a callback-style call into an Observable. Every
// subscription invokes call with a fresh callback; the first value handed to
// the callback is emitted, then the stream completes. A panic in call is
// delivered as an error, even if the callback already fired.
func BindCallback[T any](call func(callback func(T))) Observable[T] {
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		subject := NewAsyncSubject[T]()
		invoke(subject, func() {
			call(func(v T) {
				subject.Next(v)
				subject.Complete()
			})
		})
		return subject.Subscribe(subscriber)
	})
}

// BindErrCallback is BindCallback for calls that report (value, error). The
// call runs once, on the first subscription; its outcome is cached and
// replayed to every later subscriber.
func BindErrCallback[T any](call func(callback func(T, error))) Observable[T] {
	var (
		mu      sync.Mutex
		subject *AsyncSubject[T]
	)
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		mu.Lock()
		if subject != nil {
			s := subject
			mu.Unlock()
			return s.Subscribe(subscriber)
		}
		subject = NewAsyncSubject[T]()
		s := subject
		mu.Unlock()

		invoke(s, func() {
			call(func(v T, err error) {
				if err != nil {
					s.Error(err)
					return
				}
				s.Next(v)
				s.Complete()
			})
		})
		return s.Subscribe(subscriber)
	})
}

func invoke[T any](subject *AsyncSubject[T], call func()) {
	defer func() {
		if r := recover(); r != nil {
			subject.forceError(recovered(r))
		}
	}()
	call()
}
