// Package server exposes the game service over HTTP: create a game,
// inspect its state, and stream per-player views over a websocket.
// Created games are played by bot decision sources in the background;
// connected clients watch one seat's knowledge, never the hidden
// state.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/louisbranch/werewolf/internal/agent"
	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/engine"
	"github.com/louisbranch/werewolf/internal/game/projection"
	"github.com/louisbranch/werewolf/internal/game/role"
	"github.com/louisbranch/werewolf/internal/orchestrator"
	"github.com/louisbranch/werewolf/internal/random"
	"github.com/louisbranch/werewolf/internal/storage"
	"github.com/louisbranch/werewolf/internal/telemetry"
)

// SourceFactory builds the decision source for one seat of a new
// game. The game seed lets factories derive per-seat determinism.
type SourceFactory func(seed int64, seat int) agent.Source

// Server is the HTTP front of the game service.
type Server struct {
	mux      *http.ServeMux
	registry *Registry
	store    storage.Store
	emitter  *telemetry.Emitter
	logger   *log.Logger
	sources  SourceFactory

	baseCtx context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithSourceFactory replaces the default bot players for new games.
func WithSourceFactory(f SourceFactory) Option {
	return func(s *Server) { s.sources = f }
}

// New creates a server. The store may be nil; games then live only in
// the registry.
func New(store storage.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		mux:      http.NewServeMux(),
		registry: NewRegistry(),
		store:    store,
		logger:   logger,
		sources: func(seed int64, seat int) agent.Source {
			return agent.NewBot(seed + int64(seat))
		},
		baseCtx: ctx,
		cancel:  cancel,
	}
	if store != nil {
		s.emitter = telemetry.NewEmitter(store)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/games", s.handleCreateGame)
	s.mux.HandleFunc("GET /api/games", s.handleListGames)
	s.mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	s.mux.HandleFunc("GET /api/games/{id}/ws", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close stops every running game and waits for their goroutines.
func (s *Server) Close() {
	s.cancel()
	s.running.Wait()
}

type createGameRequest struct {
	Seed    int64  `json:"seed,omitempty"`
	RoleSet string `json:"role_set,omitempty"`
}

type createGameResponse struct {
	ID   string `json:"id"`
	Seed int64  `json:"seed"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg := domain.DefaultGameConfig()
	if req.RoleSet != "" {
		cfg.RoleSet = role.Set(req.RoleSet)
	}
	cfg.Seed = req.Seed
	if cfg.Seed == 0 {
		seed, err := random.NewSeed()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "seed generation failed"})
			return
		}
		cfg.Seed = seed
	}

	eng, err := engine.New(cfg, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	live := NewLiveGame(eng.State())
	s.registry.Add(live)
	s.startGame(eng, live, cfg.Seed)

	writeJSON(w, http.StatusCreated, createGameResponse{ID: live.ID(), Seed: cfg.Seed})
}

// startGame plays the game with the configured decision sources in
// the background. The registry entry doubles as the orchestrator's
// snapshot store so websocket subscribers follow along; the durable
// store, when configured, additionally receives the snapshot and
// journal.
func (s *Server) startGame(eng *engine.Engine, live *LiveGame, seed int64) {
	sources := make(map[int]agent.Source, role.PlayerCount)
	for seat := 1; seat <= role.PlayerCount; seat++ {
		sources[seat] = s.sources(seed, seat)
	}

	var games orchestrator.GameStore = live
	var events orchestrator.EventStore
	if s.store != nil {
		games = teeGameStore{live: live, db: s.store}
		events = s.store
	}
	opts := []orchestrator.Option{
		orchestrator.WithStores(games, events),
		orchestrator.WithLogger(s.logger),
	}
	if s.emitter != nil {
		opts = append(opts, orchestrator.WithTelemetry(s.emitter))
	}
	o := orchestrator.New(eng, sources, opts...)

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		if _, err := o.Run(s.baseCtx); err != nil {
			s.logger.Printf("game %s aborted: %v", live.ID(), err)
		}
	}()
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

// handleGetGame returns the public view, or one seat's view when the
// seat query parameter is set.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	live, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	seat, err := seatParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seat"})
		return
	}

	state := live.State()
	view, err := buildView(&state, seat)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// seatParam parses the optional seat query parameter; 0 means the
// public view.
func seatParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("seat")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func buildView(state *domain.State, seat int) (projection.PlayerView, error) {
	if seat == 0 {
		return projection.Public(state), nil
	}
	return projection.View(state, seat)
}

// teeGameStore fans snapshot writes out to the registry entry and the
// durable store.
type teeGameStore struct {
	live *LiveGame
	db   storage.GameStore
}

func (t teeGameStore) PutGame(ctx context.Context, state domain.State) error {
	if err := t.live.PutGame(ctx, state); err != nil {
		return err
	}
	return t.db.PutGame(ctx, state)
}

// writeError maps domain error codes to HTTP statuses and echoes the
// machine-readable code alongside the message.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusBadRequest
	switch code {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeUnknown:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json response: %v", err)
	}
}
