package diagnostics

import (
	"fmt"
	"log/slog"
	"sync"
)

// sinks maps names to implementations so a sink can be chosen from
// configuration.
var (
	sinks = map[string]Sink{
		"noop": NoOpSink{},
		"slog": NewSlogSink(slog.Default()),
	}
	registryMutex sync.RWMutex
)

// GetSink returns the sink registered under name.
func GetSink(name string) (Sink, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	sink, exists := sinks[name]
	if !exists {
		return nil, fmt.Errorf("unknown sink: %s", name)
	}
	return sink, nil
}

// RegisterSink makes sink available under name, replacing any previous one.
func RegisterSink(name string, sink Sink) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	sinks[name] = sink
}

// UseSink installs the sink registered under name as the default.
func UseSink(name string) error {
	sink, err := GetSink(name)
	if err != nil {
		return err
	}
	SetDefault(sink)
	return nil
}
