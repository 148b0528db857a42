package diagnostics

import "context"

// NoOpSink discards all events.
type NoOpSink struct{}

func (NoOpSink) OnEvent(ctx context.Context, event Event) {}
