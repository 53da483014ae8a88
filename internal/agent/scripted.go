package agent

import (
	"context"

	"github.com/louisbranch/werewolf/internal/game/projection"
)

// Scripted replays queued answers in order, one queue per decision
// kind. An exhausted queue yields the zero answer (skip or silence),
// which keeps short scripts usable for long games.
type Scripted struct {
	WolfKills    []int
	Protections  []int
	Checks       []int
	WitchChoices []WitchDecision
	Candidacies  []bool
	SheriffVotes []int
	Speeches     []string
	Farewells    []string
	Votes        []int
	Shots        []int
	BadgeHeirs   []int
	Explosions   []bool

	cursors map[string]int
}

func (s *Scripted) next(kind string, n int) int {
	if s.cursors == nil {
		s.cursors = make(map[string]int)
	}
	i := s.cursors[kind]
	if i >= n {
		return -1
	}
	s.cursors[kind] = i + 1
	return i
}

func (s *Scripted) nextSeat(kind string, queue []int) int {
	i := s.next(kind, len(queue))
	if i < 0 {
		return 0
	}
	return queue[i]
}

func (s *Scripted) WolfKill(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return s.nextSeat("wolf", s.WolfKills), nil
}

func (s *Scripted) GuardProtect(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return s.nextSeat("guard", s.Protections), nil
}

func (s *Scripted) SeerCheck(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return s.nextSeat("seer", s.Checks), nil
}

func (s *Scripted) WitchAct(ctx context.Context, view projection.PlayerView, attackSeat int, canCure bool, poisonTargets []int) (WitchDecision, error) {
	i := s.next("witch", len(s.WitchChoices))
	if i < 0 {
		return WitchDecision{}, nil
	}
	return s.WitchChoices[i], nil
}

func (s *Scripted) RunForSheriff(ctx context.Context, view projection.PlayerView) (bool, error) {
	i := s.next("candidacy", len(s.Candidacies))
	if i < 0 {
		return false, nil
	}
	return s.Candidacies[i], nil
}

func (s *Scripted) SheriffVote(ctx context.Context, view projection.PlayerView, candidates []int) (int, error) {
	return s.nextSeat("sheriffvote", s.SheriffVotes), nil
}

func (s *Scripted) Speech(ctx context.Context, view projection.PlayerView) (string, error) {
	i := s.next("speech", len(s.Speeches))
	if i < 0 {
		return "", nil
	}
	return s.Speeches[i], nil
}

func (s *Scripted) LastWords(ctx context.Context, view projection.PlayerView) (string, error) {
	i := s.next("farewell", len(s.Farewells))
	if i < 0 {
		return "", nil
	}
	return s.Farewells[i], nil
}

func (s *Scripted) Vote(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return s.nextSeat("vote", s.Votes), nil
}

func (s *Scripted) HunterShoot(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return s.nextSeat("shot", s.Shots), nil
}

func (s *Scripted) BadgeDecision(ctx context.Context, view projection.PlayerView, heirs []int) (int, error) {
	return s.nextSeat("badge", s.BadgeHeirs), nil
}

func (s *Scripted) SelfExplode(ctx context.Context, view projection.PlayerView) (bool, error) {
	i := s.next("explode", len(s.Explosions))
	if i < 0 {
		return false, nil
	}
	return s.Explosions[i], nil
}
