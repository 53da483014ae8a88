// Package memory provides an in-memory store for tests and the
// simulator. It satisfies the same contracts as the sqlite store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/storage"
)

// Store is an in-memory implementation of storage.Store.
type Store struct {
	mu        sync.RWMutex
	games     map[string]domain.State
	updatedAt map[string]time.Time
	events    map[string][]event.Event
	telemetry []storage.TelemetryEvent
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		games:     make(map[string]domain.State),
		updatedAt: make(map[string]time.Time),
		events:    make(map[string][]event.Event),
	}
}

// PutGame upserts a game snapshot.
func (s *Store) PutGame(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[state.ID] = state.Clone()
	s.updatedAt[state.ID] = time.Now().UTC()
	return nil
}

// GetGame loads a game snapshot by id.
func (s *Store) GetGame(ctx context.Context, id string) (domain.State, error) {
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.games[id]
	if !ok {
		return domain.State{}, storage.ErrNotFound
	}
	return state.Clone(), nil
}

// ListGames returns stored game summaries, most recently updated first.
func (s *Store) ListGames(ctx context.Context) ([]storage.GameSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]storage.GameSummary, 0, len(s.games))
	for id, state := range s.games {
		summaries = append(summaries, storage.GameSummary{
			ID:        id,
			Day:       state.Day,
			Phase:     string(state.Phase),
			Winner:    string(state.Winner),
			UpdatedAt: s.updatedAt[id],
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// AppendEvent appends an event, assigning the per-game sequence.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Seq = uint64(len(s.events[evt.GameID]) + 1)
	s.events[evt.GameID] = append(s.events[evt.GameID], evt)
	return evt, nil
}

// ListEvents returns events with seq greater than afterSeq in order.
func (s *Store) ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []event.Event
	for _, evt := range s.events[gameID] {
		if evt.Seq <= afterSeq {
			continue
		}
		events = append(events, evt)
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}

// AppendTelemetryEvent records a telemetry event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	s.telemetry = append(s.telemetry, evt)
	return nil
}

// TelemetryEvents returns a copy of the recorded telemetry.
func (s *Store) TelemetryEvents() []storage.TelemetryEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]storage.TelemetryEvent(nil), s.telemetry...)
}

// Close satisfies storage.Store; nothing to release.
func (s *Store) Close() error {
	return nil
}
