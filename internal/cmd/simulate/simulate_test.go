package simulate

import (
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/werewolf/internal/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.RoleSet != "A" {
		t.Fatalf("expected role set A, got %q", cfg.RoleSet)
	}
	if cfg.MaxDays != 15 {
		t.Fatalf("expected max days 15, got %d", cfg.MaxDays)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-seed", "77", "-roles", "B", "-max-days", "9"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Seed != 77 || cfg.RoleSet != "B" || cfg.MaxDays != 9 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestRun_PrintsTranscript(t *testing.T) {
	var out strings.Builder
	cfg := Config{Seed: 19, RoleSet: "A", MaxDays: 15}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	transcript := out.String()
	if !strings.Contains(transcript, "winner:") {
		t.Fatalf("transcript missing winner line:\n%s", transcript)
	}
	if !strings.Contains(transcript, "day.death_announced") && !strings.Contains(transcript, "day.lynch") {
		t.Fatalf("transcript has no public deaths:\n%s", transcript)
	}
	if strings.Contains(transcript, "night.seer_check") {
		t.Fatalf("transcript leaked a private event:\n%s", transcript)
	}
	if strings.Contains(transcript, "(attack)") || strings.Contains(transcript, "(poison)") {
		t.Fatalf("transcript reveals how a player died:\n%s", transcript)
	}
}

func TestNewSources(t *testing.T) {
	sources, err := newSources(Config{Agent: "bot"}, 7)
	if err != nil {
		t.Fatalf("bot sources: %v", err)
	}
	if len(sources) != 12 {
		t.Fatalf("built %d bot sources, want 12", len(sources))
	}

	if _, err := newSources(Config{Agent: "openai"}, 7); err == nil {
		t.Fatal("openai agent without an API key should fail")
	}
	sources, err = newSources(Config{Agent: "openai", OpenAIKey: "test-key"}, 7)
	if err != nil {
		t.Fatalf("openai sources: %v", err)
	}
	if len(sources) != 12 {
		t.Fatalf("built %d openai sources, want 12", len(sources))
	}

	if _, err := newSources(Config{Agent: "llama"}, 7); err == nil {
		t.Fatal("unknown agent should fail")
	}
}

func TestRun_PersistsToSqlite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sim.db")
	var out strings.Builder
	cfg := Config{Seed: 19, RoleSet: "A", MaxDays: 15, DBPath: dbPath}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	defer store.Close()

	games, err := store.ListGames(context.Background())
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("stored %d games, want 1", len(games))
	}
	if games[0].Winner == "" {
		t.Fatal("stored game has no winner")
	}

	events, err := store.ListEvents(context.Background(), games[0].ID, 0, 0)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("no journaled events")
	}
}
