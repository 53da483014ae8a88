// Package serve parses game service flags and runs the HTTP server.
package serve

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/louisbranch/werewolf/internal/agent"
	"github.com/louisbranch/werewolf/internal/platform/config"
	"github.com/louisbranch/werewolf/internal/server"
	"github.com/louisbranch/werewolf/internal/storage"
	"github.com/louisbranch/werewolf/internal/storage/memory"
	"github.com/louisbranch/werewolf/internal/storage/sqlite"
)

// Config holds game service configuration.
type Config struct {
	Port   int    `env:"WEREWOLF_PORT" envDefault:"8080"`
	Addr   string `env:"WEREWOLF_ADDR"`
	DBPath string `env:"WEREWOLF_DB_PATH"`

	Agent       string `env:"WEREWOLF_AGENT" envDefault:"bot"`
	OpenAIKey   string `env:"WEREWOLF_OPENAI_API_KEY"`
	OpenAIModel string `env:"WEREWOLF_OPENAI_MODEL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The service port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the sqlite database (empty = in-memory)")
	fs.StringVar(&cfg.Agent, "agent", cfg.Agent, "Decision source for players: bot or openai")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "OpenAI model for the openai agent")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// sourceFactory builds the per-seat decision sources for new games.
// OpenAI seats fall back to the orchestrator's legal-random choice on
// API errors, so a flaky key degrades a game instead of stalling it.
func sourceFactory(cfg Config) (server.SourceFactory, error) {
	switch cfg.Agent {
	case "", "bot":
		return func(seed int64, seat int) agent.Source {
			return agent.NewBot(seed + int64(seat))
		}, nil
	case "openai":
		src, err := agent.NewOpenAI(agent.OpenAIConfig{
			APIKey: cfg.OpenAIKey,
			Model:  cfg.OpenAIModel,
		})
		if err != nil {
			return nil, fmt.Errorf("openai agent: %w", err)
		}
		return func(seed int64, seat int) agent.Source { return src }, nil
	default:
		return nil, fmt.Errorf("unknown agent %q", cfg.Agent)
	}
}

// Run serves the game service until the context is cancelled.
func Run(ctx context.Context, cfg Config) error {
	sources, err := sourceFactory(cfg)
	if err != nil {
		return err
	}

	var store storage.Store
	if cfg.DBPath != "" {
		sqlStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		store = sqlStore
	} else {
		store = memory.New()
	}
	defer store.Close()

	srv := server.New(store, log.Default(), server.WithSourceFactory(sources))
	defer srv.Close()

	addr := cfg.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	log.Printf("serving on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
