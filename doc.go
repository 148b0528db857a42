// Package urx is a push-based reactive stream runtime.
//
// An Observable describes a sequence lazily: nothing runs until Subscribe,
// and every Subscribe runs the producer again. Values reach an Observer
// through Next, and a stream ends with at most one Error or Complete.
//
//	sub := urx.Of(1, 2, 3).SubscribeFunc(
//		func(v int) { fmt.Println(v) },
//		nil,
//		func() { fmt.Println("done") },
//	)
//	defer sub.Unsubscribe()
//
// Subscriptions form a cancellation tree. Unsubscribing a node runs its own
// teardown and then its children, once, and bundles every failure into an
// *UnsubscriptionError.
//
// Subject, BehaviorSubject, ReplaySubject and AsyncSubject are hot: they are
// both Observer and source and multicast to whoever is subscribed. Merge,
// Concat, CombineLatest and ForkJoin join several Observables into one.
//
// Errors nobody handles, and teardown failures after a stream ended, go to a
// diagnostics.Sink instead of panicking.
package urx
