package urx

import (
	"slices"
	"time"
)

// ReplayConfig bounds what a ReplaySubject keeps for late subscribers.
type ReplayConfig struct {
	// BufferSize caps the number of buffered values. Zero or less keeps all.
	BufferSize int `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty"`
	// WindowTime drops values older than this when a subscriber arrives.
	// Zero or less keeps them forever.
	WindowTime time.Duration `json:"window_time,omitempty" yaml:"window_time,omitempty"`
	// Now is the clock used to timestamp values. Defaults to time.Now.
	Now func() time.Time `json:"-" yaml:"-"`
}

// DefaultReplayConfig returns an unbounded configuration on the wall clock.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{Now: time.Now}
}

// Merge applies non-zero values from source into c.
func (c *ReplayConfig) Merge(source *ReplayConfig) {
	if source.BufferSize > 0 {
		c.BufferSize = source.BufferSize
	}
	if source.WindowTime > 0 {
		c.WindowTime = source.WindowTime
	}
	if source.Now != nil {
		c.Now = source.Now
	}
}

type replayRecord[T any] struct {
	value T
	time  time.Time
}

// ReplaySubject is a Subject that records values and replays them, oldest
// first, to every new subscriber.
type ReplaySubject[T any] struct {
	Subject[T]
	config ReplayConfig
	buffer []replayRecord[T]
}

// NewReplaySubject creates a ReplaySubject; zero fields of cfg fall back to
// DefaultReplayConfig.
func NewReplaySubject[T any](cfg ReplayConfig) *ReplaySubject[T] {
	config := DefaultReplayConfig()
	config.Merge(&cfg)
	return &ReplaySubject[T]{config: config}
}

func (r *ReplaySubject[T]) Next(v T) {
	r.next(v, func() {
		r.buffer = append(r.buffer, replayRecord[T]{value: v, time: r.config.Now()})
		if size := r.config.BufferSize; size > 0 && len(r.buffer) > size {
			r.buffer = slices.Delete(r.buffer, 0, len(r.buffer)-size)
		}
	})
}

func (r *ReplaySubject[T]) Subscribe(observer Observer[T]) *Subscription {
	return r.AsObservable().Subscribe(observer)
}

func (r *ReplaySubject[T]) AsObservable() Observable[T] {
	return wrapObservable[T](r)
}

func (r *ReplaySubject[T]) subscribe(sub *Subscriber[T]) *Subscription {
	var replay []replayRecord[T]
	m, terminal, stopped := r.admit(sub, func(bool) {
		r.trimWindow()
		replay = slices.Clone(r.buffer)
	}, true)

	subscription := EmptySubscription
	if !stopped {
		subscription = r.link(sub)
	}
	for _, rec := range replay {
		if sub.Closed() {
			break
		}
		sub.Next(rec.value)
	}
	if stopped {
		terminal(sub)
		return subscription
	}
	m.release()
	return subscription
}

// trimWindow drops records older than the window. Callers hold r.mu.
func (r *ReplaySubject[T]) trimWindow() {
	if r.config.WindowTime <= 0 {
		return
	}
	cutoff := r.config.Now().Add(-r.config.WindowTime)
	i := 0
	for i < len(r.buffer) && r.buffer[i].time.Before(cutoff) {
		i++
	}
	r.buffer = slices.Delete(r.buffer, 0, i)
}
