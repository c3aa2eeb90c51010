// Package observability carries structured events from the REPL subsystems
// to log sinks. Subsystems never hold a logger; they emit Events to an
// Observer and the CLI decides where those events end up.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity. Values sit inside the OpenTelemetry
// SeverityNumber ranges so they translate without a lookup table.
type Level int

const (
	LevelVerbose Level = 5  // DEBUG range (5-8)
	LevelInfo    Level = 9  // INFO range (9-12)
	LevelWarning Level = 13 // WARN range (13-16)
	LevelError   Level = 17 // ERROR range (17-20)
)

// String returns the severity text for the level.
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

// EventType identifies the kind of event, e.g. "repl.commit" or
// "pipeline.compile.complete".
type EventType string

// Event is one observation from a subsystem. SessionID ties events from the
// same REPL run together when several runs append to one log file.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	SessionID string
	Data      map[string]any
}

// Observer receives events from subsystems.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
