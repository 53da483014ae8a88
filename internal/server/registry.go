package server

import (
	"context"
	"sync"

	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/storage"
)

// LiveGame is one running game's shared snapshot. The orchestrator
// writes through PutGame; readers and websocket subscribers see the
// latest committed state.
type LiveGame struct {
	id string

	mu    sync.RWMutex
	state domain.State
	subs  map[chan domain.State]struct{}
	done  bool
}

// NewLiveGame wraps an initial snapshot.
func NewLiveGame(state domain.State) *LiveGame {
	return &LiveGame{
		id:    state.ID,
		state: state.Clone(),
		subs:  make(map[chan domain.State]struct{}),
	}
}

// ID returns the game id.
func (g *LiveGame) ID() string { return g.id }

// State returns a deep copy of the latest snapshot.
func (g *LiveGame) State() domain.State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Clone()
}

// PutGame commits a snapshot and notifies subscribers. It satisfies
// the orchestrator's snapshot store so a running game publishes its
// own progress.
func (g *LiveGame) PutGame(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	g.state = state.Clone()
	g.done = state.Ended()
	for ch := range g.subs {
		// A slow subscriber misses intermediate snapshots rather than
		// stalling the game: drop its oldest pending snapshot to make
		// room so the latest one always lands.
		snap := g.state.Clone()
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	g.mu.Unlock()
	return nil
}

// Subscribe registers for snapshot updates. The returned cancel
// closes the subscription; the channel is closed after cancel or once
// the terminal snapshot is delivered.
func (g *LiveGame) Subscribe() (<-chan domain.State, func()) {
	ch := make(chan domain.State, 16)

	g.mu.Lock()
	g.subs[ch] = struct{}{}
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		if _, ok := g.subs[ch]; ok {
			delete(g.subs, ch)
			close(ch)
		}
		g.mu.Unlock()
	}
	return ch, cancel
}

// Registry is the process-wide set of live games.
type Registry struct {
	mu    sync.Mutex
	games map[string]*LiveGame
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*LiveGame)}
}

// Add registers a live game.
func (r *Registry) Add(g *LiveGame) {
	r.mu.Lock()
	r.games[g.ID()] = g
	r.mu.Unlock()
}

// Get looks up a live game by id.
func (r *Registry) Get(id string) (*LiveGame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	return g, ok
}

// List summarizes every registered game.
func (r *Registry) List() []storage.GameSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := make([]storage.GameSummary, 0, len(r.games))
	for _, g := range r.games {
		state := g.State()
		summaries = append(summaries, storage.GameSummary{
			ID:     state.ID,
			Day:    state.Day,
			Phase:  string(state.Phase),
			Winner: string(state.Winner),
		})
	}
	return summaries
}
