// Package agent defines decision sources: the pluggable brains that
// choose actions for seats. A source receives the seat's projection
// and the legal choices for the decision at hand; it never sees hidden
// state, so a misbehaving source cannot cheat, only choose badly.
package agent

import (
	"context"

	"github.com/louisbranch/werewolf/internal/game/projection"
)

// WitchDecision is the witch's combined night choice. Cure negates the
// pending attack; PoisonSeat of zero means the poison stays unused.
type WitchDecision struct {
	Cure       bool
	PoisonSeat int
}

// Source answers one question per decision point in a game. Target
// seat answers of zero mean skip, abstain, or decline where the rules
// allow it; a zero from BadgeDecision tears the badge.
//
// Every method takes the deciding seat's projection so implementations
// can reason from exactly what that player knows.
type Source interface {
	WolfKill(ctx context.Context, view projection.PlayerView, targets []int) (int, error)
	GuardProtect(ctx context.Context, view projection.PlayerView, targets []int) (int, error)
	SeerCheck(ctx context.Context, view projection.PlayerView, targets []int) (int, error)
	WitchAct(ctx context.Context, view projection.PlayerView, attackSeat int, canCure bool, poisonTargets []int) (WitchDecision, error)

	RunForSheriff(ctx context.Context, view projection.PlayerView) (bool, error)
	SheriffVote(ctx context.Context, view projection.PlayerView, candidates []int) (int, error)

	Speech(ctx context.Context, view projection.PlayerView) (string, error)
	LastWords(ctx context.Context, view projection.PlayerView) (string, error)
	Vote(ctx context.Context, view projection.PlayerView, targets []int) (int, error)

	HunterShoot(ctx context.Context, view projection.PlayerView, targets []int) (int, error)
	BadgeDecision(ctx context.Context, view projection.PlayerView, heirs []int) (int, error)

	// SelfExplode asks a living werewolf whether to reveal and die,
	// cutting the day's discussion short.
	SelfExplode(ctx context.Context, view projection.PlayerView) (bool, error)
}

func containsSeat(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}
