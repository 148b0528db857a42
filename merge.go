package urx

import "sync/atomic"

// Merge subscribes to every source at once and forwards their values as they
// arrive. The first error from any source ends the result; it completes once
// all sources have completed.
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		if len(sources) == 0 {
			subscriber.Complete()
			return nil
		}

		var remaining atomic.Int32
		remaining.Store(int32(len(sources)))
		root := subscriber.newRoot()
		for _, src := range sources {
			if subscriber.Closed() {
				break
			}
			root.Add(subscribeInner(src, subscriber, PartialObserver[T]{
				OnNext:  subscriber.Next,
				OnError: subscriber.Error,
				OnComplete: func() {
					if remaining.Add(-1) == 0 {
						subscriber.Complete()
					}
				},
			}))
		}
		return root
	})
}
