package urx

import (
	"context"
	"sync/atomic"
)

// FromFunc runs fn on its own goroutine for every subscription and emits its
// single result, or its error. Unsubscribing cancels ctx, and a result that
// arrives afterwards is dropped.
func FromFunc[T any](fn func(ctx context.Context) (T, error)) Observable[T] {
	return Create(func(subscriber *Subscriber[T]) Unsubscribable {
		ctx, cancel := context.WithCancel(context.Background())
		var active atomic.Bool
		active.Store(true)

		go func() {
			v, err := fn(ctx)
			if !active.Load() {
				return
			}
			if err != nil {
				subscriber.Error(err)
				return
			}
			subscriber.Next(v)
			subscriber.Complete()
		}()

		return TeardownFunc(func() error {
			active.Store(false)
			cancel()
			return nil
		})
	})
}
