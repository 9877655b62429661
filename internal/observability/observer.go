// Package observability carries lifecycle events from the session and the
// orchestrator to logs. Levels align with OpenTelemetry severity numbers.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level represents event severity aligned with OTel SeverityNumber ranges.
type Level int

const (
	LevelVerbose Level = 5
	LevelInfo    Level = 9
	LevelWarning Level = 13
	LevelError   Level = 17
)

// SlogLevel maps this level to the corresponding slog.Level for log emission.
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

// EventType identifies the kind of event, e.g. "query.start".
type EventType string

const (
	EventSessionConnect    EventType = "session.connect"
	EventSessionDisconnect EventType = "session.disconnect"
	EventQueryStart        EventType = "query.start"
	EventQueryState        EventType = "query.state"
	EventToolInvoke        EventType = "tool.invoke"
	EventToolError         EventType = "tool.error"
	EventQueryComplete     EventType = "query.complete"
	EventQueryError        EventType = "query.error"
)

// Event is an observability event emitted by a subsystem.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// Emit stamps and forwards an event; a nil observer is a no-op.
func Emit(ctx context.Context, o Observer, source string, typ EventType, level Level, data map[string]any) {
	if o == nil {
		return
	}
	o.OnEvent(ctx, Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    source,
		Data:      data,
	})
}
