package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/werewolf/internal/game/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadVariantsFile(t *testing.T) {
	path := writeFile(t, "variants.yaml", `
witch_can_self_heal: true
same_guard_same_save_kills: false
sheriff_vote_weight_halves: 4
`)

	variants, err := LoadVariantsFile(path)
	if err != nil {
		t.Fatalf("load variants: %v", err)
	}

	if !variants.WitchCanSelfHeal || variants.SameGuardSameSaveKills {
		t.Errorf("overrides not applied: %+v", variants)
	}
	if variants.SheriffVoteWeightHalves != 4 {
		t.Errorf("sheriff weight = %d, want 4", variants.SheriffVoteWeightHalves)
	}
	// Untouched fields keep defaults.
	if !variants.WitchCanSelfHealN1 {
		t.Error("default lost for unset field")
	}
}

func TestLoadVariantsFileInvalid(t *testing.T) {
	path := writeFile(t, "variants.yaml", "sheriff_vote_weight_halves: 1\n")
	if _, err := LoadVariantsFile(path); err == nil {
		t.Fatal("expected validation error")
	}

	if _, err := LoadVariantsFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}

func TestLoadGameConfigFile(t *testing.T) {
	path := writeFile(t, "game.yaml", `
role_set: B
seed: 99
variants:
  win_mode: city_elimination
`)

	cfg, err := LoadGameConfigFile(path)
	if err != nil {
		t.Fatalf("load game config: %v", err)
	}
	if cfg.RoleSet != "B" || cfg.Seed != 99 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Variants.WinMode != domain.WinModeCityElimination {
		t.Errorf("win mode = %q", cfg.Variants.WinMode)
	}
	if cfg.Players != 12 {
		t.Errorf("players default lost: %d", cfg.Players)
	}
}
