package urx

// Concat subscribes to the sources one after another, moving on when the
// current one completes. An error from any source ends the chain. A single
// source is returned unchanged.
func Concat[T any](sources ...Observable[T]) Observable[T] {
	if len(sources) == 1 {
		return sources[0]
	}
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		root := subscriber.newRoot()

		var subscribeAt func(i int)
		subscribeAt = func(i int) {
			if i == len(sources) {
				subscriber.Complete()
				return
			}
			if subscriber.Closed() || root.Closed() {
				return
			}
			root.Add(subscribeInner(sources[i], subscriber, PartialObserver[T]{
				OnNext:     subscriber.Next,
				OnError:    subscriber.Error,
				OnComplete: func() { subscribeAt(i + 1) },
			}))
		}
		subscribeAt(0)
		return root
	})
}
