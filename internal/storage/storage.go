// Package storage defines the persistence contracts for game
// snapshots, the append-only event journal, and operational telemetry.
// Implementations live in the sqlite and memory subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// GameSummary is the listing projection of a stored game.
type GameSummary struct {
	ID        string
	Day       int
	Phase     string
	Winner    string
	UpdatedAt time.Time
}

// GameStore persists full game snapshots keyed by game id.
type GameStore interface {
	PutGame(ctx context.Context, state domain.State) error
	GetGame(ctx context.Context, id string) (domain.State, error)
	ListGames(ctx context.Context) ([]GameSummary, error)
}

// EventStore persists the append-only event journal. AppendEvent
// assigns the per-game sequence number and returns the stored event.
type EventStore interface {
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error)
}

// TelemetryEvent records one operational occurrence.
type TelemetryEvent struct {
	Timestamp      time.Time
	EventName      string
	Severity       string
	GameID         string
	Seat           int
	Attributes     map[string]string
	AttributesJSON []byte
}

// TelemetryStore persists operational telemetry.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}

// Store combines every persistence concern one backend provides.
type Store interface {
	GameStore
	EventStore
	TelemetryStore
	Close() error
}
