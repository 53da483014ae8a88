// Package telemetry records operational events about running games:
// creations, phase transitions, deaths, agent fallbacks, endings. The
// emitter is storage-backed and degrades to a no-op without a store.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/werewolf/internal/storage"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Well-known event names.
const (
	EventGameCreated   = "game.created"
	EventNightResolved = "game.night.resolved"
	EventDayResolved   = "game.day.resolved"
	EventGameEnded     = "game.ended"
	EventAgentFallback = "agent.fallback"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	if evt.Severity == "" {
		evt.Severity = string(SeverityInfo)
	}
	return e.store.AppendTelemetryEvent(ctx, evt)
}

// GameEvent is a convenience for game-scoped info events.
func (e *Emitter) GameEvent(ctx context.Context, gameID, name string, attrs map[string]string) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		EventName:  name,
		Severity:   string(SeverityInfo),
		GameID:     gameID,
		Attributes: attrs,
	})
}

// AgentFallback records a decision source failure that fell back to a
// random legal action.
func (e *Emitter) AgentFallback(ctx context.Context, gameID string, seat int, cause error) error {
	return e.Emit(ctx, storage.TelemetryEvent{
		EventName: EventAgentFallback,
		Severity:  string(SeverityWarn),
		GameID:    gameID,
		Seat:      seat,
		Attributes: map[string]string{
			"cause": fmt.Sprint(cause),
		},
	})
}
