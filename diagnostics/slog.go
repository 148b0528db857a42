package diagnostics

import (
	"context"
	"log/slog"
)

// SlogSink emits events to a slog.Logger. The event type becomes the log
// message and Data keys are flattened as top-level attributes.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a SlogSink that emits to the given logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) OnEvent(ctx context.Context, event Event) {
	attrs := make([]slog.Attr, 0, len(event.Data)+1)
	attrs = append(attrs, slog.String("source", event.Source))
	for k, v := range event.Data {
		attrs = append(attrs, slog.Any(k, v))
	}

	s.logger.LogAttrs(ctx, event.Level.SlogLevel(), string(event.Type), attrs...)
}
