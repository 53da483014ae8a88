package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/werewolf/internal/storage"
	"github.com/louisbranch/werewolf/internal/storage/memory"
)

func TestEmitDefaultsTimestampAndSeverity(t *testing.T) {
	store := memory.New()
	emitter := NewEmitter(store)
	emitter.clock = func() time.Time {
		return time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC)
	}

	if err := emitter.Emit(context.Background(), storage.TelemetryEvent{
		EventName: EventGameCreated,
		GameID:    "game-1",
	}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	events := store.TelemetryEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp not set from clock")
	}
	if events[0].Severity != string(SeverityInfo) {
		t.Errorf("severity = %q, want INFO", events[0].Severity)
	}
}

func TestEmitWithoutStoreIsNoop(t *testing.T) {
	var emitter *Emitter
	if err := emitter.Emit(context.Background(), storage.TelemetryEvent{EventName: "x"}); err != nil {
		t.Fatalf("nil emitter should no-op, got %v", err)
	}

	emitter = NewEmitter(nil)
	if err := emitter.Emit(context.Background(), storage.TelemetryEvent{EventName: "x"}); err != nil {
		t.Fatalf("store-less emitter should no-op, got %v", err)
	}
}

func TestAgentFallback(t *testing.T) {
	store := memory.New()
	emitter := NewEmitter(store)

	if err := emitter.AgentFallback(context.Background(), "game-1", 4, errors.New("timeout")); err != nil {
		t.Fatalf("agent fallback: %v", err)
	}

	events := store.TelemetryEvents()
	if len(events) != 1 || events[0].EventName != EventAgentFallback {
		t.Fatalf("unexpected events %v", events)
	}
	if events[0].Severity != string(SeverityWarn) || events[0].Seat != 4 {
		t.Errorf("fallback event wrong: %+v", events[0])
	}
	if events[0].Attributes["cause"] != "timeout" {
		t.Errorf("cause attribute = %q", events[0].Attributes["cause"])
	}
}
