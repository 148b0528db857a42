package urx

// FromChan emits every value received from ch and completes when ch is
// closed. Each subscription reads on its own goroutine until the channel
// closes or the subscription ends; ch itself is never closed by urx.
func FromChan[T any](ch <-chan T) Observable[T] {
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case v, ok := <-ch:
					if !ok {
						subscriber.Complete()
						return
					}
					subscriber.Next(v)
				case <-done:
					return
				}
			}
		}()
		return TeardownFunc(func() error {
			close(done)
			return nil
		})
	})
}
