package urx

import (
	"slices"
	"sync"
)

// ForkJoin waits for every source to complete and then emits one slice with
// the last value of each. If any source completed without a value the
// result completes without emitting. An error from any source ends the
// result.
func ForkJoin[T any](sources []Observable[T]) Observable[[]T] {
	return Create(func(subscriber *Subscriber[[]T]) Unsubscribable {
		n := len(sources)
		if n == 0 {
			subscriber.Complete()
			return nil
		}

		var (
			mu    sync.Mutex
			last  = make([]T, n)
			seen  = make([]bool, n)
			ended int
		)
		root := subscriber.newRoot()
		for i, src := range sources {
			if subscriber.Closed() {
				break
			}
			root.Add(subscribeInner(src, subscriber, PartialObserver[T]{
				OnNext: func(v T) {
					mu.Lock()
					last[i] = v
					seen[i] = true
					mu.Unlock()
				},
				OnError: subscriber.Error,
				OnComplete: func() {
					mu.Lock()
					ended++
					done := ended == n
					var values []T
					if done && !slices.Contains(seen, false) {
						values = slices.Clone(last)
					}
					mu.Unlock()
					if !done {
						return
					}
					if values != nil {
						subscriber.Next(values)
					}
					subscriber.Complete()
				},
			}))
		}
		return root
	})
}
