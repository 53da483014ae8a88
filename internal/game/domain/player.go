package domain

import "github.com/louisbranch/werewolf/internal/game/role"

// SeerCheck records one alignment check performed by the seer.
type SeerCheck struct {
	TargetSeat int            `json:"target_seat"`
	Result     role.Alignment `json:"result"`
	Night      int            `json:"night"`
}

// Player is one seated participant. Players are never removed from the
// seat order; death only flips Alive. Role-private ability state rides
// on the player and is mutated exclusively by resolvers.
type Player struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Seat      int            `json:"seat"`
	Role      role.Role      `json:"role"`
	Alignment role.Alignment `json:"alignment"`
	Alive     bool           `json:"alive"`
	Sheriff   bool           `json:"sheriff"`

	// Witch state: each potion usable at most once per game.
	WitchHasCure   bool `json:"witch_has_cure,omitempty"`
	WitchHasPoison bool `json:"witch_has_poison,omitempty"`

	// Guard state: seat protected the immediately preceding night (0 = none).
	GuardLastProtected int `json:"guard_last_protected,omitempty"`

	// Seer state: private log of checks, never exposed to other roles.
	SeerChecks []SeerCheck `json:"seer_checks,omitempty"`

	// Village idiot state: revealed idiots survive the lynch but lose
	// their vote permanently.
	IdiotRevealed bool `json:"idiot_revealed,omitempty"`

	// Hunter state: disarmed when death was caused by poison (or by a
	// night kill under the stricter variant).
	HunterArmed bool `json:"hunter_armed,omitempty"`
}

// CanVote reports whether the player may cast a lynch vote.
func (p Player) CanVote() bool {
	return p.Alive && !(p.Role == role.VillageIdiot && p.IdiotRevealed)
}

// SeerHasChecked reports whether the seer already checked the given seat.
func (p Player) SeerHasChecked(seat int) bool {
	for _, check := range p.SeerChecks {
		if check.TargetSeat == seat {
			return true
		}
	}
	return false
}

func (p Player) clone() Player {
	clone := p
	if p.SeerChecks != nil {
		clone.SeerChecks = append([]SeerCheck(nil), p.SeerChecks...)
	}
	return clone
}
