package urx

import "time"

// Scheduler defers a unit of work on its own clock. Unsubscribing the
// returned subscription cancels the work if it has not run yet.
type Scheduler interface {
	Now() time.Time
	Schedule(delay time.Duration, work func()) *Subscription
}

type timerScheduler struct{}

// TimerScheduler runs work on its own goroutine via time.AfterFunc.
var TimerScheduler Scheduler = timerScheduler{}

func (timerScheduler) Now() time.Time {
	return time.Now()
}

func (timerScheduler) Schedule(delay time.Duration, work func()) *Subscription {
	t := time.AfterFunc(delay, work)
	return NewSubscription(TeardownFunc(func() error {
		t.Stop()
		return nil
	}))
}
