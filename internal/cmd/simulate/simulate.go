// Package simulate parses simulator flags and plays one full bot game,
// printing the public transcript.
package simulate

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/louisbranch/werewolf/internal/agent"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/engine"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
	"github.com/louisbranch/werewolf/internal/orchestrator"
	"github.com/louisbranch/werewolf/internal/platform/config"
	"github.com/louisbranch/werewolf/internal/random"
	"github.com/louisbranch/werewolf/internal/storage/sqlite"
	"github.com/louisbranch/werewolf/internal/telemetry"
)

// Config holds simulator configuration.
type Config struct {
	Seed         int64  `env:"WEREWOLF_SIM_SEED"`
	RoleSet      string `env:"WEREWOLF_SIM_ROLE_SET" envDefault:"A"`
	VariantsFile string `env:"WEREWOLF_VARIANTS_FILE"`
	DBPath       string `env:"WEREWOLF_DB_PATH"`
	MaxDays      int    `env:"WEREWOLF_SIM_MAX_DAYS" envDefault:"15"`

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
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Game seed (0 = random)")
	fs.StringVar(&cfg.RoleSet, "roles", cfg.RoleSet, "Role set (A or B)")
	fs.StringVar(&cfg.VariantsFile, "variants", cfg.VariantsFile, "Path to a YAML rule variants preset")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Persist the game to this sqlite database")
	fs.IntVar(&cfg.MaxDays, "max-days", cfg.MaxDays, "Failsafe day limit")
	fs.StringVar(&cfg.Agent, "agent", cfg.Agent, "Decision source for players: bot or openai")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "OpenAI model for the openai agent")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newSources builds the per-seat decision sources. OpenAI seats fall
// back to the orchestrator's legal-random choice on API errors.
func newSources(cfg Config, seed int64) (map[int]agent.Source, error) {
	sources := make(map[int]agent.Source, role.PlayerCount)
	switch cfg.Agent {
	case "", "bot":
		for seat := 1; seat <= role.PlayerCount; seat++ {
			sources[seat] = agent.NewBot(seed + int64(seat))
		}
	case "openai":
		src, err := agent.NewOpenAI(agent.OpenAIConfig{
			APIKey: cfg.OpenAIKey,
			Model:  cfg.OpenAIModel,
		})
		if err != nil {
			return nil, fmt.Errorf("openai agent: %w", err)
		}
		for seat := 1; seat <= role.PlayerCount; seat++ {
			sources[seat] = src
		}
	default:
		return nil, fmt.Errorf("unknown agent %q", cfg.Agent)
	}
	return sources, nil
}

// Run plays one game to completion and writes the public transcript
// to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	gameCfg := domain.DefaultGameConfig()
	gameCfg.RoleSet = role.Set(cfg.RoleSet)
	if cfg.VariantsFile != "" {
		variants, err := config.LoadVariantsFile(cfg.VariantsFile)
		if err != nil {
			return fmt.Errorf("load variants: %w", err)
		}
		gameCfg.Variants = variants
	}
	gameCfg.Seed = cfg.Seed
	if gameCfg.Seed == 0 {
		seed, err := random.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
		gameCfg.Seed = seed
	}

	eng, err := engine.New(gameCfg, nil)
	if err != nil {
		return err
	}

	sources, err := newSources(cfg, gameCfg.Seed)
	if err != nil {
		return err
	}

	opts := []orchestrator.Option{orchestrator.WithMaxDays(cfg.MaxDays)}
	if cfg.DBPath != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer store.Close()
		opts = append(opts,
			orchestrator.WithStores(store, store),
			orchestrator.WithTelemetry(telemetry.NewEmitter(store)),
		)
	}

	final, err := orchestrator.New(eng, sources, opts...).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "game %s (seed %d)\n", final.ID, gameCfg.Seed)
	for _, evt := range final.History {
		if evt.Visibility != event.VisibilityPublic {
			continue
		}
		fmt.Fprintln(out, formatEvent(evt))
	}
	fmt.Fprintf(out, "winner: %s on day %d\n", final.Winner, final.Day)
	return nil
}

// formatEvent renders one public event as a transcript line.
func formatEvent(evt event.Event) string {
	prefix := fmt.Sprintf("day %d %-5s %-20s", evt.Day, evt.Phase, evt.Type)
	switch evt.Type {
	case event.TypeSpeech, event.TypeLastWords:
		var p event.SpeechPayload
		_ = json.Unmarshal(evt.PayloadJSON, &p)
		return fmt.Sprintf("%s seat %d: %q", prefix, evt.ActorSeat, p.Content)
	case event.TypeDeathAnnounced:
		return fmt.Sprintf("%s seat %d", prefix, evt.TargetSeat)
	case event.TypeGameEnded:
		var p event.GameEndedPayload
		_ = json.Unmarshal(evt.PayloadJSON, &p)
		return fmt.Sprintf("%s %s wins", prefix, p.Winner)
	}

	switch {
	case evt.ActorSeat != 0 && evt.TargetSeat != 0:
		return fmt.Sprintf("%s seat %d -> seat %d", prefix, evt.ActorSeat, evt.TargetSeat)
	case evt.TargetSeat != 0:
		return fmt.Sprintf("%s seat %d", prefix, evt.TargetSeat)
	case evt.ActorSeat != 0:
		return fmt.Sprintf("%s seat %d", prefix, evt.ActorSeat)
	}
	return prefix
}
