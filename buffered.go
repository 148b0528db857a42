package urx

// Buffered moves delivery onto its own goroutine. Notifications are queued
// on a channel of the given capacity, so the producer only blocks once size
// notifications are waiting. Order is preserved.
func Buffered[T any](size int) OperatorFunc[T, T] {
	return func(input Observable[T]) Observable[T] {
		return Create(func(subscriber *Subscriber[T]) Unsubscribable {
			queue := make(chan Notification[T], size)
			done := make(chan struct{})

			go func() {
				for {
					select {
					case n := <-queue:
						subscriber.Notify(n)
						if n.Kind() != OnNext {
							return
						}
					case <-done:
						return
					}
				}
			}()

			push := func(n Notification[T]) {
				select {
				case queue <- n:
				case <-done:
				}
			}
			upstream := subscribeInner(input, subscriber, PartialObserver[T]{
				OnNext:     func(v T) { push(NextNotification(v)) },
				OnError:    func(err error) { push(ErrorNotification[T](err)) },
				OnComplete: func() { push(CompleteNotification[T]()) },
			})

			return TeardownFunc(func() error {
				close(done)
				return upstream.Unsubscribe()
			})
		})
	}
}
