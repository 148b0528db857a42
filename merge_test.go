package urx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Spectonic/urx"
	"github.com/Spectonic/urx/internal/marble"
)

func expectEvents[T comparable](t *testing.T, got, want []marble.Event[T]) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Frame != w.Frame || g.Notification.Kind() != w.Notification.Kind() ||
			g.Notification.Value() != w.Notification.Value() ||
			!errors.Is(g.Notification.Err(), w.Notification.Err()) {
			t.Fatalf("event %d = %+v, want %+v", i, g, w)
		}
	}
}

func joined(obs urx.Observable[[]string]) urx.Observable[string] {
	return urx.Lift(obs, urx.Map(func(v []string, _ int) (string, error) {
		return strings.Join(v, ""), nil
	}))
}

func TestMerge(t *testing.T) {
	s := marble.NewScheduler()
	one := marble.Cold[string](s, "-a---b-|", nil, nil)
	two := marble.Cold[string](s, "--x-y---z|", nil, nil)

	rec := marble.Record(s, urx.Merge(one, two))
	s.Run()

	expectEvents(t, rec.Events, marble.Parse[string]("-ax-yb--z|", 0, nil, nil))
}

func TestMerge_ErrorEndsEverything(t *testing.T) {
	boom := errors.New("boom")
	s := marble.NewScheduler()
	one := marble.Hot[string](s, "-a---b---|", nil, nil)
	two := marble.Hot[string](s, "---#", nil, boom)

	rec := marble.Record(s, urx.Merge(one.AsObservable(), two.AsObservable()))
	s.Run()

	expectEvents(t, rec.Events, marble.Parse[string]("-a-#", 0, nil, boom))
	if one.Observed() {
		t.Error("first source still subscribed after error")
	}
}

func TestMerge_Unsubscribe(t *testing.T) {
	s := marble.NewScheduler()
	one := marble.Hot[string](s, "-a-b-c-|", nil, nil)

	rec := marble.Record(s, urx.Merge(one.AsObservable(), urx.Never[string]()))
	s.Schedule(4*marble.Frame, func() { _ = rec.Subscription.Unsubscribe() })
	s.Run()

	expectEvents(t, rec.Events, marble.Parse[string]("-a-b", 0, nil, nil))
	if one.Observed() {
		t.Error("source still subscribed after unsubscribe")
	}
}

func TestMerge_NoSources(t *testing.T) {
	var log []string
	urx.Merge[int]().SubscribeFunc(nil, nil, func() { log = append(log, "complete") })
	if len(log) != 1 {
		t.Errorf("log = %v, want one completion", log)
	}
}

func TestConcat(t *testing.T) {
	s := marble.NewScheduler()
	letters := marble.Cold[string](s, "-a-b-c-|", nil, nil)
	digits := marble.Cold[string](s, "-0-1-|", nil, nil)

	rec := marble.Record(s, urx.Concat(letters, digits))
	s.Run()

	expectEvents(t, rec.Events, marble.Parse[string]("-a-b-c--0-1-|", 0, nil, nil))
}

func TestConcat_ErrorStopsTheChain(t *testing.T) {
	boom := errors.New("boom")
	s := marble.NewScheduler()
	first := marble.Cold[string](s, "-a-#", nil, boom)
	subscribed := false
	second := urx.Defer(func() (urx.Observable[string], error) {
		subscribed = true
		return urx.Of("z"), nil
	})

	rec := marble.Record(s, urx.Concat(first, second))
	s.Run()

	expectEvents(t, rec.Events, marble.Parse[string]("-a-#", 0, nil, boom))
	if subscribed {
		t.Error("second source subscribed after error")
	}
}

func TestConcat_Resubscribe(t *testing.T) {
	obs := urx.Concat(urx.Of(1, 2), urx.Of(3))
	for i := 0; i < 2; i++ {
		var got []int
		obs.SubscribeFunc(func(v int) { got = append(got, v) }, nil, nil)
		if len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Fatalf("run %d: got %v", i, got)
		}
	}
}

func TestConcat_Shapes(t *testing.T) {
	single := urx.Empty[int]()
	if urx.Concat(single) != single {
		t.Error("Concat of one source did not return it")
	}

	completed := false
	urx.Concat[int]().SubscribeFunc(nil, nil, func() { completed = true })
	if !completed {
		t.Error("Concat() did not complete")
	}
}

func TestCombineLatest(t *testing.T) {
	s := marble.NewScheduler()
	e1 := marble.Hot[string](s, "----a----b----c----|", nil, nil)
	e2 := marble.Hot[string](s, "--d--e--f--g--|", nil, nil)

	combined := urx.CombineLatest([]urx.Observable[string]{e1.AsObservable(), e2.AsObservable()})
	rec := marble.Record(s, joined(combined))
	s.Run()

	values := map[rune]string{'x': "ad", 'y': "ae", 'z': "af", 'w': "bf", 'v': "bg", 'u': "cg"}
	expectEvents(t, rec.Events, marble.Parse("----xy--zw-v--u----|", 0, values, nil))
}

func TestCombineLatest_SnapshotsAreIndependent(t *testing.T) {
	a := urx.NewSubject[int]()
	b := urx.NewSubject[int]()

	var got [][]int
	urx.CombineLatest([]urx.Observable[int]{a.AsObservable(), b.AsObservable()}).
		SubscribeFunc(func(v []int) { got = append(got, v) }, nil, nil)

	a.Next(1)
	b.Next(2)
	a.Next(3)

	if len(got) != 2 || got[0][0] != 1 || got[1][0] != 3 {
		t.Errorf("got = %v, want [[1 2] [3 2]]", got)
	}
}

func TestCombineLatest_Error(t *testing.T) {
	boom := errors.New("boom")
	s := marble.NewScheduler()
	e1 := marble.Hot[string](s, "-a--#", nil, boom)
	e2 := marble.Hot[string](s, "--b---c-|", nil, nil)

	rec := marble.Record(s, joined(urx.CombineLatest([]urx.Observable[string]{e1.AsObservable(), e2.AsObservable()})))
	s.Run()

	expectEvents(t, rec.Events, marble.Parse("--x-#", 0, map[rune]string{'x': "ab"}, boom))
}

func TestCombineLatest_NoSources(t *testing.T) {
	completed := false
	urx.CombineLatest[int](nil).SubscribeFunc(nil, nil, func() { completed = true })
	if !completed {
		t.Error("CombineLatest(nil) did not complete")
	}
}

func TestForkJoin(t *testing.T) {
	s := marble.NewScheduler()
	e1 := marble.Hot[string](s, "-a--b-|", nil, nil)
	e2 := marble.Hot[string](s, "--c----d--|", nil, nil)

	rec := marble.Record(s, joined(urx.ForkJoin([]urx.Observable[string]{e1.AsObservable(), e2.AsObservable()})))
	s.Run()

	expectEvents(t, rec.Events, []marble.Event[string]{
		{Frame: 10, Notification: urx.NextNotification("bd")},
		{Frame: 10, Notification: urx.CompleteNotification[string]()},
	})
}

func TestForkJoin_EmptySources(t *testing.T) {
	s := marble.NewScheduler()
	e1 := marble.Hot[string](s, "|", nil, nil)
	e2 := marble.Hot[string](s, "------|", nil, nil)

	rec := marble.Record(s, joined(urx.ForkJoin([]urx.Observable[string]{e1.AsObservable(), e2.AsObservable()})))
	s.Run()

	expectEvents(t, rec.Events, marble.Parse[string]("------|", 0, nil, nil))
}

func TestForkJoin_SourceWithoutValue(t *testing.T) {
	var got [][]int
	completed := false
	urx.ForkJoin([]urx.Observable[int]{urx.Of(1, 2), urx.Empty[int]()}).
		SubscribeFunc(func(v []int) { got = append(got, v) }, nil, func() { completed = true })

	if len(got) != 0 || !completed {
		t.Errorf("got = %v completed = %v", got, completed)
	}
}

func TestForkJoin_Error(t *testing.T) {
	boom := errors.New("boom")
	var errs []error
	urx.ForkJoin([]urx.Observable[int]{urx.Of(1), urx.ThrowError[int](boom)}).
		SubscribeFunc(nil, func(err error) { errs = append(errs, err) }, nil)

	if len(errs) != 1 || errs[0] != boom {
		t.Errorf("errs = %v", errs)
	}
}

func TestForkJoin_NoSources(t *testing.T) {
	completed := false
	urx.ForkJoin[int](nil).SubscribeFunc(nil, nil, func() { completed = true })
	if !completed {
		t.Error("ForkJoin(nil) did not complete")
	}
}
