package urx

import (
	"slices"
	"sync"
)

// CombineLatest emits a snapshot of the latest value of every source each
// time any source emits, once all of them have emitted at least once. An
// error from any source ends the result; it completes when every source
// has completed.
func CombineLatest[T any](sources []Observable[T]) Observable[[]T] {
	return Create(func(subscriber *Subscriber[[]T]) Unsubscribable {
		n := len(sources)
		if n == 0 {
			subscriber.Complete()
			return nil
		}

		var (
			mu      sync.Mutex
			latest  = make([]T, n)
			seen    = make([]bool, n)
			started int
			ended   int
		)
		root := subscriber.newRoot()
		for i, src := range sources {
			if subscriber.Closed() {
				break
			}
			root.Add(subscribeInner(src, subscriber, PartialObserver[T]{
				OnNext: func(v T) {
					mu.Lock()
					latest[i] = v
					if !seen[i] {
						seen[i] = true
						started++
					}
					var snapshot []T
					if started == n {
						snapshot = slices.Clone(latest)
					}
					mu.Unlock()
					if snapshot != nil {
						subscriber.Next(snapshot)
					}
				},
				OnError: subscriber.Error,
				OnComplete: func() {
					mu.Lock()
					ended++
					done := ended == n
					mu.Unlock()
					if done {
						subscriber.Complete()
					}
				},
			}))
		}
		return root
	})
}
