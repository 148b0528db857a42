package diagnostics

import "context"

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a MultiSink that forwards events to all non-nil sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &MultiSink{sinks: filtered}
}

func (m *MultiSink) OnEvent(ctx context.Context, event Event) {
	for _, s := range m.sinks {
		s.OnEvent(ctx, event)
	}
}
