package urx

import (
	"context"
	"sync"
)

// Events subscribes to o and delivers every notification on the returned
// channel. The channel is closed after the terminal notification, or when
// ctx is done, which also unsubscribes.
func (o Observable[T]) Events(ctx context.Context) <-chan Notification[T] {
	out := make(chan Notification[T])
	finished := make(chan struct{})

	var (
		mu     sync.Mutex
		closed bool
		once   sync.Once
	)
	send := func(n Notification[T]) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- n:
		case <-ctx.Done():
		case <-finished:
		}
	}
	finish := func() { once.Do(func() { close(finished) }) }

	go func() {
		subscription := o.Subscribe(PartialObserver[T]{
			OnNext: func(v T) { send(NextNotification(v)) },
			OnError: func(err error) {
				send(ErrorNotification[T](err))
				finish()
			},
			OnComplete: func() {
				send(CompleteNotification[T]())
				finish()
			},
		})

		select {
		case <-finished:
		case <-ctx.Done():
		}
		_ = subscription.Unsubscribe()

		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()
	return out
}

// ToSlice blocks until o terminates and returns the values it emitted, with
// the stream error if it failed. If ctx ends first, ctx.Err() is returned
// with the values received so far.
func (o Observable[T]) ToSlice(ctx context.Context) ([]T, error) {
	var values []T
	for n := range o.Events(ctx) {
		switch n.Kind() {
		case OnNext:
			values = append(values, n.Value())
		case OnError:
			return values, n.Err()
		case OnComplete:
			return values, nil
		}
	}
	return values, ctx.Err()
}
