package domain

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC)
}

func testConfig(seed int64) GameConfig {
	cfg := DefaultGameConfig()
	cfg.Seed = seed
	return cfg
}

func TestNewGame_Composition(t *testing.T) {
	state, err := NewGame(testConfig(1), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	if len(state.Players) != role.PlayerCount {
		t.Fatalf("expected %d players, got %d", role.PlayerCount, len(state.Players))
	}
	if err := ValidateSeating(state); err != nil {
		t.Fatalf("seating invalid: %v", err)
	}

	counts := make(map[role.Role]int)
	for _, p := range state.Players {
		counts[p.Role]++
		if p.Alignment != role.AlignmentOf(p.Role) {
			t.Errorf("seat %d: alignment %q does not follow role %q", p.Seat, p.Alignment, p.Role)
		}
		if !p.Alive {
			t.Errorf("seat %d: created dead", p.Seat)
		}
	}
	want := map[role.Role]int{
		role.Werewolf: 4,
		role.Villager: 4,
		role.Seer:     1,
		role.Witch:    1,
		role.Hunter:   1,
		role.Guard:    1,
	}
	for r, n := range want {
		if counts[r] != n {
			t.Errorf("expected %d %s, got %d", n, r, counts[r])
		}
	}

	if state.Day != 0 || state.Phase != PhaseNight {
		t.Errorf("expected night 0 start, got day %d phase %q", state.Day, state.Phase)
	}
	if len(state.History) != 1 || state.History[0].Type != event.TypeGameStarted {
		t.Errorf("expected a single game.started event, got %d events", len(state.History))
	}
}

func TestNewGame_SeedDeterminism(t *testing.T) {
	first, err := NewGame(testConfig(42), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("first game: %v", err)
	}
	second, err := NewGame(testConfig(42), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("second game: %v", err)
	}

	for i := range first.Players {
		if first.Players[i].Role != second.Players[i].Role {
			t.Fatalf("seat %d: same seed produced different roles %q vs %q",
				i+1, first.Players[i].Role, second.Players[i].Role)
		}
	}
}

func TestNewGame_WitchAndHunterState(t *testing.T) {
	state, err := NewGame(testConfig(7), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	for _, p := range state.Players {
		switch p.Role {
		case role.Witch:
			if !p.WitchHasCure || !p.WitchHasPoison {
				t.Error("witch should start with both potions")
			}
		case role.Hunter:
			if !p.HunterArmed {
				t.Error("hunter should start armed")
			}
		}
	}
}

func TestNewGame_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		want   apperrors.Code
	}{
		{"wrong player count", func(c *GameConfig) { c.Players = 10 }, apperrors.CodeConfigPlayerCount},
		{"unknown role set", func(c *GameConfig) { c.RoleSet = "C" }, apperrors.CodeConfigRoleSet},
		{"unknown win mode", func(c *GameConfig) { c.Variants.WinMode = "draw" }, apperrors.CodeConfigWinMode},
		{"bad sheriff weight", func(c *GameConfig) { c.Variants.SheriffVoteWeightHalves = 1 }, apperrors.CodeConfigVoteWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(1)
			tt.mutate(&cfg)
			_, err := NewGame(cfg, nil, fixedNow, nil)
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if got := apperrors.GetCode(err); got != tt.want {
				t.Errorf("error code = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewGame_NameCountMismatch(t *testing.T) {
	_, err := NewGame(testConfig(1), []string{"Ana", "Bo"}, fixedNow, nil)
	if err == nil {
		t.Fatal("expected error for short name list")
	}
	if got := apperrors.GetCode(err); got != apperrors.CodeConfigPlayerNames {
		t.Errorf("error code = %q, want %q", got, apperrors.CodeConfigPlayerNames)
	}
}

func TestState_Clone(t *testing.T) {
	state, err := NewGame(testConfig(3), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	clone := state.Clone()
	clone.Players[0].Alive = false
	clone.AppendEvents(event.Event{Type: event.TypeLynch})

	if !state.Players[0].Alive {
		t.Error("mutating a clone changed the original player")
	}
	if len(state.History) != 1 {
		t.Errorf("mutating a clone changed the original history, len=%d", len(state.History))
	}
}

func TestState_HelpersOnSnapshotValues(t *testing.T) {
	state, err := NewGame(testConfig(11), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}

	// Read helpers must work on unaddressable snapshot copies, the
	// way callers chain them off Clone.
	if state.Clone().Ended() {
		t.Error("fresh game reports ended")
	}
	if p := state.Clone().PlayerBySeat(1); p == nil || p.Seat != 1 {
		t.Errorf("PlayerBySeat(1) on a snapshot = %+v", p)
	}
	if state.Clone().PlayerBySeat(13) != nil {
		t.Error("PlayerBySeat out of range should be nil")
	}

	// The returned pointer addresses the receiver's players, so
	// resolvers mutating through it still see their local copy change.
	local := state.Clone()
	local.PlayerBySeat(2).Alive = false
	if local.Players[1].Alive {
		t.Error("mutation through PlayerBySeat did not reach the local state")
	}
	if !state.Players[1].Alive {
		t.Error("mutation through PlayerBySeat leaked into the source state")
	}
}

func TestState_ValidGuardTargets(t *testing.T) {
	state, err := NewGame(testConfig(5), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	var guardSeat int
	for _, p := range state.Players {
		if p.Role == role.Guard {
			guardSeat = p.Seat
		}
	}
	if guardSeat == 0 {
		t.Fatal("no guard seated in set A")
	}

	state.PlayerBySeat(guardSeat).GuardLastProtected = 5

	targets := state.ValidGuardTargets(guardSeat)
	for _, seat := range targets {
		if seat == 5 {
			t.Error("last night's target should be excluded")
		}
	}

	state.Config.Variants.GuardCanSelfGuard = false
	for _, seat := range state.ValidGuardTargets(guardSeat) {
		if seat == guardSeat {
			t.Error("self-guard should be excluded when disallowed")
		}
	}
}

func TestState_CanWitchCure(t *testing.T) {
	state, err := NewGame(testConfig(9), nil, fixedNow, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	var witchSeat int
	for _, p := range state.Players {
		if p.Role == role.Witch {
			witchSeat = p.Seat
		}
	}

	attack := witchSeat%12 + 1
	if attack == witchSeat {
		attack = attack%12 + 1
	}

	if !state.CanWitchCure(witchSeat, attack) {
		t.Error("witch with cure should be able to cure the attack target")
	}
	if state.CanWitchCure(witchSeat, 0) {
		t.Error("no attack target means nothing to cure")
	}

	// Self-heal on night 1 follows the variant.
	if !state.CanWitchCure(witchSeat, witchSeat) {
		t.Error("self-heal on night 1 allowed by default variant")
	}
	state.Config.Variants.WitchCanSelfHealN1 = false
	if state.CanWitchCure(witchSeat, witchSeat) {
		t.Error("self-heal on night 1 should follow the variant")
	}

	state.PlayerBySeat(witchSeat).WitchHasCure = false
	if state.CanWitchCure(witchSeat, attack) {
		t.Error("consumed cure cannot be used again")
	}
}
