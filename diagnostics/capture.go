package diagnostics

import (
	"context"
	"sync"
)

// CaptureSink records every event it receives. It is meant for tests that
// need to assert on what the runtime reported.
type CaptureSink struct {
	mu     sync.Mutex
	events []Event
}

func (c *CaptureSink) OnEvent(ctx context.Context, event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of the recorded events in arrival order.
func (c *CaptureSink) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// OfType returns the recorded events with the given type.
func (c *CaptureSink) OfType(t EventType) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
