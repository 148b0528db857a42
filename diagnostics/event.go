// Package diagnostics carries the out-of-band reports of the urx runtime:
// stream errors nobody handled and teardown failures that had no caller to
// return to. Level values align with OpenTelemetry SeverityNumbers.
package diagnostics

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8)
	LevelInfo    Level = 9  // OTel INFO (9-12)
	LevelWarning Level = 13 // OTel WARN (13-16)
	LevelError   Level = 17 // OTel ERROR (17-20)
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps this level to the corresponding slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType identifies the kind of event.
type EventType string

const (
	// EventUnhandledError is emitted when a stream error reaches a subscriber
	// that supplied no error handler.
	EventUnhandledError EventType = "urx.error.unhandled"
	// EventTeardownFailed is emitted when teardown fails somewhere the
	// failure cannot be returned, e.g. while a terminal notification
	// releases its subscription.
	EventTeardownFailed EventType = "urx.teardown.failed"
)

// Event is a diagnostic report. Data keys become log attributes.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Sink receives diagnostic events.
type Sink interface {
	OnEvent(ctx context.Context, event Event)
}
