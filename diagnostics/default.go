package diagnostics

import (
	"log/slog"
	"sync"
)

var (
	defaultSink Sink = NewSlogSink(slog.Default())
	mutex       sync.RWMutex
)

// Default returns the process-wide sink used when none is injected.
// It starts out as a SlogSink over slog.Default().
func Default() Sink {
	mutex.RLock()
	defer mutex.RUnlock()
	return defaultSink
}

// SetDefault replaces the process-wide sink and returns the previous one.
// A nil sink installs NoOpSink.
func SetDefault(sink Sink) Sink {
	mutex.Lock()
	defer mutex.Unlock()

	if sink == nil {
		sink = NoOpSink{}
	}
	prev := defaultSink
	defaultSink = sink
	return prev
}
