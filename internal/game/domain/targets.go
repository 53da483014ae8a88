package domain

import "github.com/louisbranch/werewolf/internal/game/role"

// Legal-target helpers for decision sources and fallback selection.
// Each returns living seats only; resolvers still validate submissions.

// ValidWolfTargets returns the seats the werewolves may attack.
// Fellow werewolves are included only under the self-knife variant.
func (s *State) ValidWolfTargets() []int {
	var seats []int
	for _, p := range s.Players {
		if !p.Alive {
			continue
		}
		if p.Role == role.Werewolf && !s.Config.Variants.AllowWolfSelfKnife {
			continue
		}
		seats = append(seats, p.Seat)
	}
	return seats
}

// ValidGuardTargets returns the seats the guard may protect tonight:
// living players minus last night's target, minus the guard unless
// self-guarding is allowed.
func (s *State) ValidGuardTargets(guardSeat int) []int {
	guard := s.PlayerBySeat(guardSeat)
	if guard == nil {
		return nil
	}
	var seats []int
	for _, p := range s.Players {
		if !p.Alive {
			continue
		}
		if p.Seat == guard.GuardLastProtected {
			continue
		}
		if p.Seat == guardSeat && !s.Config.Variants.GuardCanSelfGuard {
			continue
		}
		seats = append(seats, p.Seat)
	}
	return seats
}

// ValidSeerTargets returns the living seats the seer may check, minus
// the seer and anyone previously checked.
func (s *State) ValidSeerTargets(seerSeat int) []int {
	seer := s.PlayerBySeat(seerSeat)
	if seer == nil {
		return nil
	}
	var seats []int
	for _, p := range s.Players {
		if !p.Alive || p.Seat == seerSeat {
			continue
		}
		if seer.SeerHasChecked(p.Seat) {
			continue
		}
		seats = append(seats, p.Seat)
	}
	return seats
}

// ValidVoteTargets returns the seats a voter may vote to lynch (living
// players minus the voter).
func (s *State) ValidVoteTargets(voterSeat int) []int {
	var seats []int
	for _, p := range s.Players {
		if !p.Alive || p.Seat == voterSeat {
			continue
		}
		seats = append(seats, p.Seat)
	}
	return seats
}

// ValidHunterTargets returns the seats the hunter may shoot (living
// players minus the hunter).
func (s *State) ValidHunterTargets(hunterSeat int) []int {
	var seats []int
	for _, p := range s.Players {
		if !p.Alive || p.Seat == hunterSeat {
			continue
		}
		seats = append(seats, p.Seat)
	}
	return seats
}

// CanWitchCure reports whether the witch may cure the given attack
// target tonight. The attack seat comes from the night batch, before
// resolution.
func (s *State) CanWitchCure(witchSeat, attackSeat int) bool {
	witch := s.PlayerBySeat(witchSeat)
	if witch == nil || !witch.Alive || witch.Role != role.Witch || !witch.WitchHasCure {
		return false
	}
	if attackSeat == 0 {
		return false
	}
	if attackSeat == witchSeat {
		if s.IsFirstNight() {
			return s.Config.Variants.WitchCanSelfHealN1
		}
		return s.Config.Variants.WitchCanSelfHeal
	}
	return true
}

// CanWitchPoison reports whether the witch still holds her poison.
func (s *State) CanWitchPoison(witchSeat int) bool {
	witch := s.PlayerBySeat(witchSeat)
	return witch != nil && witch.Alive && witch.Role == role.Witch && witch.WitchHasPoison
}
