package urx

import (
	"sync"
	"time"
)

// Map transforms every value with project, which also receives the zero-based
// index of the value. An error from project ends the stream with that error.
func Map[T, R any](project func(T, int) (R, error)) OperatorFunc[T, R] {
	return func(input Observable[T]) Observable[R] {
		return passThrough(input, func(subscriber *Subscriber[R]) Observer[T] {
			index := 0
			return PartialObserver[T]{
				OnNext: func(v T) {
					result, err := project(v, index)
					index++
					if err != nil {
						subscriber.Error(err)
						return
					}
					subscriber.Next(result)
				},
				OnError:    subscriber.Error,
				OnComplete: subscriber.Complete,
			}
		})
	}
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](keep func(T) bool) OperatorFunc[T, T] {
	return func(input Observable[T]) Observable[T] {
		return passThrough(input, func(subscriber *Subscriber[T]) Observer[T] {
			return PartialObserver[T]{
				OnNext: func(v T) {
					if keep(v) {
						subscriber.Next(v)
					}
				},
				OnError:    subscriber.Error,
				OnComplete: subscriber.Complete,
			}
		})
	}
}

// Tap runs side effects on every notification without changing the stream.
func Tap[T any](observer Observer[T]) OperatorFunc[T, T] {
	tap := normalize(observer, func(error) {})
	return func(input Observable[T]) Observable[T] {
		return passThrough(input, func(subscriber *Subscriber[T]) Observer[T] {
			return PartialObserver[T]{
				OnNext: func(v T) {
					tap.Next(v)
					subscriber.Next(v)
				},
				OnError: func(err error) {
					tap.Error(err)
					subscriber.Error(err)
				},
				OnComplete: func() {
					tap.Complete()
					subscriber.Complete()
				},
			}
		})
	}
}

type delayed[T any] struct {
	value T
	due   time.Time
}

// Delay shifts every value by d on scheduler, or on TimerScheduler when it
// is nil. Values leave in arrival order from a single drain, so the
// observer is never called concurrently. Completion follows the last
// delayed value; errors are not delayed.
func Delay[T any](d time.Duration, scheduler Scheduler) OperatorFunc[T, T] {
	if scheduler == nil {
		scheduler = TimerScheduler
	}
	return func(input Observable[T]) Observable[T] {
		return Create(func(subscriber *Subscriber[T]) Unsubscribable {
			var (
				mu        sync.Mutex
				queue     []delayed[T]
				draining  bool
				completed bool
				pending   *Subscription
			)
			root := subscriber.newRoot()

			var drain func()
			// schedule arms the single drain. Callers hold mu.
			schedule := func(wait time.Duration) {
				pending = root.Add(scheduler.Schedule(wait, drain))
			}
			drain = func() {
				mu.Lock()
				root.Remove(pending)
				pending = nil
				mu.Unlock()

				for {
					mu.Lock()
					if len(queue) == 0 {
						draining = false
						done := completed
						mu.Unlock()
						if done {
							subscriber.Complete()
						}
						return
					}
					head := queue[0]
					if wait := head.due.Sub(scheduler.Now()); wait > 0 {
						schedule(wait)
						mu.Unlock()
						return
					}
					queue = queue[1:]
					mu.Unlock()

					if subscriber.Closed() {
						return
					}
					subscriber.Next(head.value)
				}
			}

			root.Add(subscribeInner(input, subscriber, PartialObserver[T]{
				OnNext: func(v T) {
					mu.Lock()
					defer mu.Unlock()
					queue = append(queue, delayed[T]{value: v, due: scheduler.Now().Add(d)})
					if !draining {
						draining = true
						schedule(d)
					}
				},
				OnError: subscriber.Error,
				OnComplete: func() {
					mu.Lock()
					completed = true
					idle := !draining
					mu.Unlock()
					if idle {
						subscriber.Complete()
					}
				},
			}))
			return root
		})
	}
}
