// Package action defines the input unit submitted per decision point.
// Actions are validated by resolvers before any state mutation; an
// invalid action rejects with a machine-readable code and is never
// partially applied.
package action

import (
	"fmt"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// Type identifies the action type.
type Type string

// Night actions.
const (
	// TypeWolfKill is the werewolves' consensus attack target.
	TypeWolfKill Type = "night.wolf_kill"
	// TypeSeerCheck is the seer's alignment check.
	TypeSeerCheck Type = "night.seer_check"
	// TypeWitchCure negates the attack, consuming the single-use cure.
	TypeWitchCure Type = "night.witch_cure"
	// TypeWitchPoison kills a chosen living player, consuming the poison.
	TypeWitchPoison Type = "night.witch_poison"
	// TypeGuardProtect shields one living player for the night.
	TypeGuardProtect Type = "night.guard_protect"
)

// Day actions.
const (
	// TypeSpeech is a daytime statement; no rule effect.
	TypeSpeech Type = "day.speech"
	// TypeVote is a lynch vote.
	TypeVote Type = "day.vote"
	// TypeHunterShoot is the hunter's dying shot.
	TypeHunterShoot Type = "day.hunter_shoot"
	// TypeWolfSelfExplode forcibly ends day discussion at the actor's cost.
	TypeWolfSelfExplode Type = "day.wolf_self_explode"
)

// Sheriff actions.
const (
	// TypeRunForSheriff declares candidacy in the day-1 election.
	TypeRunForSheriff Type = "sheriff.run"
	// TypeSheriffVote is an election ballot.
	TypeSheriffVote Type = "sheriff.vote"
	// TypePassBadge hands the badge to a named living player.
	TypePassBadge Type = "sheriff.pass_badge"
	// TypeTearBadge destroys the badge for the rest of the game.
	TypeTearBadge Type = "sheriff.tear_badge"
)

// IsValid reports whether the type is one of the enumerated actions.
func (t Type) IsValid() bool {
	switch t {
	case TypeWolfKill, TypeSeerCheck, TypeWitchCure, TypeWitchPoison, TypeGuardProtect,
		TypeSpeech, TypeVote, TypeHunterShoot, TypeWolfSelfExplode,
		TypeRunForSheriff, TypeSheriffVote, TypePassBadge, TypeTearBadge:
		return true
	}
	return false
}

// Role returns the role an action type is reserved to, or "" when any
// player may take it.
func (t Type) Role() role.Role {
	switch t {
	case TypeWolfKill, TypeWolfSelfExplode:
		return role.Werewolf
	case TypeSeerCheck:
		return role.Seer
	case TypeWitchCure, TypeWitchPoison:
		return role.Witch
	case TypeGuardProtect:
		return role.Guard
	case TypeHunterShoot:
		return role.Hunter
	}
	return ""
}

// Action is the canonical action envelope. ActorSeat identifies the
// acting player; TargetSeat the affected player where applicable.
type Action struct {
	Type       Type   `json:"type"`
	ActorSeat  int    `json:"actor_seat"`
	TargetSeat int    `json:"target_seat,omitempty"`
	Content    string `json:"content,omitempty"`
}

// Validate checks envelope well-formedness independent of game state.
func (a Action) Validate() error {
	if !a.Type.IsValid() {
		return apperrors.New(apperrors.CodeUnknown, fmt.Sprintf("unknown action type %q", a.Type))
	}
	if a.ActorSeat < 1 || a.ActorSeat > role.PlayerCount {
		return apperrors.New(apperrors.CodeActorNotFound,
			fmt.Sprintf("actor seat %d out of range", a.ActorSeat))
	}
	if a.TargetSeat < 0 || a.TargetSeat > role.PlayerCount {
		return apperrors.New(apperrors.CodeTargetNotFound,
			fmt.Sprintf("target seat %d out of range", a.TargetSeat))
	}
	return nil
}
