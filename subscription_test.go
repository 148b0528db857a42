package urx

import (
	"errors"
	"sync"
	"testing"

	"github.com/Spectonic/urx/diagnostics"
)

func countingTeardown(calls *int) TeardownFunc {
	return func() error {
		*calls++
		return nil
	}
}

func TestSubscription_Add(t *testing.T) {
	t.Run("returns self when self is passed", func(t *testing.T) {
		s := NewSubscription(nil)
		if got := s.Add(s); got != s {
			t.Errorf("Add(self) = %p, want %p", got, s)
		}
		if len(s.children) != 0 {
			t.Errorf("children = %d, want 0", len(s.children))
		}
	})

	t.Run("returns EmptySubscription for nil", func(t *testing.T) {
		s := NewSubscription(nil)
		if got := s.Add(nil); got != EmptySubscription {
			t.Errorf("Add(nil) = %p, want EmptySubscription", got)
		}
		var typedNil *Subscription
		if got := s.Add(typedNil); got != EmptySubscription {
			t.Errorf("Add(typed nil) = %p, want EmptySubscription", got)
		}
	})

	t.Run("returns EmptySubscription for a closed child", func(t *testing.T) {
		s := NewSubscription(nil)
		if got := s.Add(EmptySubscription); got != EmptySubscription {
			t.Errorf("Add(EmptySubscription) = %p, want EmptySubscription", got)
		}
		closed := NewSubscription(nil)
		_ = closed.Unsubscribe()
		if got := s.Add(closed); got != EmptySubscription {
			t.Errorf("Add(closed) = %p, want EmptySubscription", got)
		}
	})

	t.Run("wraps a teardown func in a new child", func(t *testing.T) {
		calls := 0
		s := NewSubscription(nil)
		child := s.Add(countingTeardown(&calls))
		if child == s || child == EmptySubscription {
			t.Fatal("Add(func) did not create a child")
		}
		if err := s.Unsubscribe(); err != nil {
			t.Fatalf("Unsubscribe() error = %v", err)
		}
		if calls != 1 {
			t.Errorf("teardown calls = %d, want 1", calls)
		}
		if !child.Closed() {
			t.Error("child not closed after parent unsubscribed")
		}
	})

	t.Run("unsubscribes the argument when already closed", func(t *testing.T) {
		calls := 0
		s := NewSubscription(nil)
		_ = s.Unsubscribe()

		child := NewSubscription(countingTeardown(&calls))
		if got := s.Add(child); got != child {
			t.Errorf("Add on closed = %p, want the argument", got)
		}
		if calls != 1 || !child.Closed() {
			t.Errorf("calls = %d closed = %v, want 1 true", calls, child.Closed())
		}
	})

	t.Run("reports teardown failure when adding to a closed parent", func(t *testing.T) {
		capture := &diagnostics.CaptureSink{}
		prev := diagnostics.SetDefault(capture)
		defer diagnostics.SetDefault(prev)

		s := NewSubscription(nil)
		_ = s.Unsubscribe()
		s.Add(TeardownFunc(func() error { return errors.New("late") }))

		if got := len(capture.OfType(diagnostics.EventTeardownFailed)); got != 1 {
			t.Errorf("teardown events = %d, want 1", got)
		}
	})
}

func TestSubscription_Remove(t *testing.T) {
	calls := 0
	s := NewSubscription(nil)
	child := s.Add(countingTeardown(&calls))

	s.Remove(child)
	_ = s.Unsubscribe()

	if calls != 0 {
		t.Errorf("removed child teardown calls = %d, want 0", calls)
	}
	if child.Closed() {
		t.Error("Remove must not unsubscribe the child")
	}
	if len(child.parents) != 0 {
		t.Errorf("child parents = %d, want 0", len(child.parents))
	}
}

func TestSubscription_ChildDetachesFromParents(t *testing.T) {
	a := NewSubscription(nil)
	b := NewSubscription(nil)
	child := NewSubscription(nil)
	a.Add(child)
	b.Add(child)

	_ = child.Unsubscribe()

	if len(a.children) != 0 || len(b.children) != 0 {
		t.Errorf("children = %d, %d, want 0, 0", len(a.children), len(b.children))
	}
}

func TestSubscription_UnsubscribeOrder(t *testing.T) {
	var order []string
	record := func(name string) TeardownFunc {
		return func() error {
			order = append(order, name)
			return nil
		}
	}

	root := NewSubscription(record("root"))
	root.Add(record("first"))
	inner := root.Add(record("second"))
	inner.Add(record("nested"))
	root.Add(record("third"))

	if err := root.Unsubscribe(); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}

	want := []string{"root", "first", "second", "nested", "third"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSubscription_UnsubscribeAggregatesFailures(t *testing.T) {
	errOwn := errors.New("own")
	errChild := errors.New("child")
	errNested := errors.New("nested")

	calls := 0
	root := NewSubscription(TeardownFunc(func() error { return errOwn }))
	root.Add(countingTeardown(&calls))
	root.Add(TeardownFunc(func() error { return errChild }))
	inner := root.Add(countingTeardown(&calls))
	inner.Add(TeardownFunc(func() error { return errNested }))
	root.Add(TeardownFunc(func() error { panic("kaboom") }))
	root.Add(countingTeardown(&calls))

	err := root.Unsubscribe()

	var agg *UnsubscriptionError
	if !errors.As(err, &agg) {
		t.Fatalf("Unsubscribe() error = %v, want *UnsubscriptionError", err)
	}
	if len(agg.Errors) != 4 {
		t.Fatalf("aggregated %d errors, want 4: %v", len(agg.Errors), agg.Errors)
	}
	for _, want := range []error{errOwn, errChild, errNested} {
		if !errors.Is(err, want) {
			t.Errorf("errors.Is(err, %v) = false", want)
		}
	}
	var perr *PanicError
	if !errors.As(err, &perr) || perr.Value != "kaboom" {
		t.Errorf("panic not collected: %v", err)
	}
	if calls != 3 {
		t.Errorf("healthy teardown calls = %d, want 3", calls)
	}
}

func TestSubscription_UnsubscribeIsIdempotent(t *testing.T) {
	calls := 0
	s := NewSubscription(countingTeardown(&calls))

	_ = s.Unsubscribe()
	_ = s.Unsubscribe()

	if calls != 1 {
		t.Errorf("teardown calls = %d, want 1", calls)
	}
}

func TestSubscription_WrapsCustomUnsubscribable(t *testing.T) {
	calls := 0
	s := NewSubscription(nil)
	child := s.Add(countingTeardown(&calls))
	_ = child.Unsubscribe()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(s.children) != 0 {
		t.Error("unsubscribed child still linked to parent")
	}
	_ = s.Unsubscribe()
	if calls != 1 {
		t.Errorf("calls after parent = %d, want 1", calls)
	}
}

func TestSubscription_ConcurrentAdd(t *testing.T) {
	s := NewSubscription(nil)
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddFunc(func() {
				mu.Lock()
				calls++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()
	_ = s.Unsubscribe()

	if calls != 50 {
		t.Errorf("calls = %d, want 50", calls)
	}
}
