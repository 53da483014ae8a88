package domain

import (
	"fmt"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// WinMode selects how the werewolf team wins.
type WinMode string

const (
	// WinModeSideElimination: werewolves win when all plain villagers OR
	// all special roles are dead.
	WinModeSideElimination WinMode = "side_elimination"
	// WinModeCityElimination: werewolves win only when every good-aligned
	// player is dead.
	WinModeCityElimination WinMode = "city_elimination"
)

// IsValid reports whether the win mode is supported.
func (m WinMode) IsValid() bool {
	return m == WinModeSideElimination || m == WinModeCityElimination
}

// RuleVariants configures table-rule differences. Immutable for the
// lifetime of a game. The zero value is not usable; start from
// DefaultRuleVariants.
type RuleVariants struct {
	WitchCanSelfHealN1     bool `yaml:"witch_can_self_heal_n1" json:"witch_can_self_heal_n1"`
	WitchCanSelfHeal       bool `yaml:"witch_can_self_heal" json:"witch_can_self_heal"`
	WitchCanUseBothPotions bool `yaml:"witch_can_use_both_potions" json:"witch_can_use_both_potions"`

	GuardCanSelfGuard      bool `yaml:"guard_can_self_guard" json:"guard_can_self_guard"`
	SameGuardSameSaveKills bool `yaml:"same_guard_same_save_kills" json:"same_guard_same_save_kills"`

	WinMode WinMode `yaml:"win_mode" json:"win_mode"`

	AllowWolfSelfExplode bool `yaml:"allow_wolf_self_explode" json:"allow_wolf_self_explode"`
	AllowWolfSelfKnife   bool `yaml:"allow_wolf_self_knife" json:"allow_wolf_self_knife"`

	// SheriffVoteWeightHalves is the sheriff's vote weight in half-votes.
	// A normal vote weighs 2 halves; the default sheriff weight is 3
	// (1.5 votes). Integer halves keep tally comparisons exact.
	SheriffVoteWeightHalves int `yaml:"sheriff_vote_weight_halves" json:"sheriff_vote_weight_halves"`

	HunterCanShootIfPoisoned    bool `yaml:"hunter_can_shoot_if_poisoned" json:"hunter_can_shoot_if_poisoned"`
	HunterCanShootIfNightKilled bool `yaml:"hunter_can_shoot_if_night_killed" json:"hunter_can_shoot_if_night_killed"`

	FirstNightDeathHasLastWords bool `yaml:"first_night_death_has_last_words" json:"first_night_death_has_last_words"`
}

// DefaultRuleVariants returns the standard table rules.
func DefaultRuleVariants() RuleVariants {
	return RuleVariants{
		WitchCanSelfHealN1:          true,
		WitchCanSelfHeal:            false,
		WitchCanUseBothPotions:      false,
		GuardCanSelfGuard:           true,
		SameGuardSameSaveKills:      true,
		WinMode:                     WinModeSideElimination,
		AllowWolfSelfExplode:        true,
		AllowWolfSelfKnife:          true,
		SheriffVoteWeightHalves:     3,
		HunterCanShootIfPoisoned:    false,
		HunterCanShootIfNightKilled: true,
		FirstNightDeathHasLastWords: true,
	}
}

// Validate reports the first configuration problem, or nil.
func (v RuleVariants) Validate() error {
	if !v.WinMode.IsValid() {
		return apperrors.New(apperrors.CodeConfigWinMode, fmt.Sprintf("unknown win mode %q", v.WinMode))
	}
	if v.SheriffVoteWeightHalves < 2 {
		return apperrors.New(apperrors.CodeConfigVoteWeight,
			fmt.Sprintf("sheriff vote weight must be at least a normal vote, got %d halves", v.SheriffVoteWeightHalves))
	}
	return nil
}

// GameConfig describes one game instance. Immutable after creation.
type GameConfig struct {
	// Players is the seat count; only 12-player games are supported.
	Players int `yaml:"players" json:"players"`
	// RoleSet selects the special role composition (A or B).
	RoleSet role.Set `yaml:"role_set" json:"role_set"`
	// Variants holds the table rules.
	Variants RuleVariants `yaml:"variants" json:"variants"`
	// Seed drives the role shuffle and any delegated tie-breaks.
	// A single seed produces a single outcome.
	Seed int64 `yaml:"seed" json:"seed"`
}

// DefaultGameConfig returns a 12-player Set A game with default rules.
// The seed is zero; callers wanting non-reproducible games generate one.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Players:  role.PlayerCount,
		RoleSet:  role.SetA,
		Variants: DefaultRuleVariants(),
	}
}

// Validate reports the first configuration problem, or nil. A failed
// validation is fatal to game creation; no partial game is created.
func (c GameConfig) Validate() error {
	if c.Players != role.PlayerCount {
		return apperrors.New(apperrors.CodeConfigPlayerCount,
			fmt.Sprintf("only %d-player games are supported, got %d", role.PlayerCount, c.Players))
	}
	if !c.RoleSet.IsValid() {
		return apperrors.New(apperrors.CodeConfigRoleSet, fmt.Sprintf("unknown role set %q", c.RoleSet))
	}
	return c.Variants.Validate()
}
