package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/storage"
)

func TestGameRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	state, err := domain.NewGame(domain.DefaultGameConfig(), nil, nil,
		func() (string, error) { return "game-1", nil })
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if err := store.PutGame(ctx, state); err != nil {
		t.Fatalf("put game: %v", err)
	}

	loaded, err := store.GetGame(ctx, state.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}

	// Mutating the loaded copy must not affect the stored snapshot.
	loaded.Players[0].Alive = false
	again, err := store.GetGame(ctx, state.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !again.Players[0].Alive {
		t.Error("stored snapshot shares player storage with caller")
	}

	if _, err := store.GetGame(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventJournal(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		evt := event.New("game-1", event.TypePhaseChanged, i, "day", now)
		stored, err := store.AppendEvent(ctx, evt)
		if err != nil {
			t.Fatalf("append event: %v", err)
		}
		if stored.Seq != uint64(i+1) {
			t.Fatalf("seq = %d, want %d", stored.Seq, i+1)
		}
	}

	events, err := store.ListEvents(ctx, "game-1", 1, 1)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Seq != 2 {
		t.Fatalf("expected seq 2 only, got %v", events)
	}
}

func TestTelemetry(t *testing.T) {
	store := New()
	if err := store.AppendTelemetryEvent(context.Background(), storage.TelemetryEvent{
		EventName: "game.created",
		Severity:  "INFO",
	}); err != nil {
		t.Fatalf("append telemetry: %v", err)
	}

	events := store.TelemetryEvents()
	if len(events) != 1 || events[0].EventName != "game.created" {
		t.Fatalf("unexpected telemetry %v", events)
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp not defaulted")
	}
}
