package domain

import (
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// Phase identifies where the game is in its night/day cycle.
type Phase string

const (
	// PhaseNight is the closed-eyes action phase.
	PhaseNight Phase = "night"
	// PhaseDay is the discussion, election, and voting phase.
	PhaseDay Phase = "day"
	// PhaseEnded is terminal; no further actions are accepted.
	PhaseEnded Phase = "ended"
)

// State is the complete state of one game. It is owned by exactly one
// engine instance; resolvers receive a clone and return the updated
// value together with emitted events.
type State struct {
	ID     string     `json:"id"`
	Config GameConfig `json:"config"`

	// Day starts at 0 for the first night and increments entering each day.
	Day   int   `json:"day"`
	Phase Phase `json:"phase"`

	// Players in seat order (seat 1 at index 0).
	Players []Player `json:"players"`

	// SheriffSeat is the badge holder's seat (0 = none).
	SheriffSeat int `json:"sheriff_seat"`
	// BadgeTorn permanently vacates the sheriff seat once true.
	BadgeTorn bool `json:"badge_torn"`
	// ElectionHeld is set after the day-1 election concludes.
	ElectionHeld bool `json:"election_held"`

	// Winner is set when the game ends.
	Winner role.WinningTeam `json:"winner,omitempty"`

	// History is the append-only event journal.
	History []event.Event `json:"history"`
}

// Clone deep-copies the state so resolvers never mutate the caller's copy.
func (s State) Clone() State {
	clone := s
	clone.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		clone.Players[i] = p.clone()
	}
	clone.History = append([]event.Event(nil), s.History...)
	return clone
}

// PlayerBySeat returns the player at the given seat, or nil. The
// receiver is a value so the helper works on snapshot copies too; the
// returned pointer still addresses the receiver's player slice.
func (s State) PlayerBySeat(seat int) *Player {
	if seat < 1 || seat > len(s.Players) {
		return nil
	}
	return &s.Players[seat-1]
}

// AlivePlayers returns the living players in seat order.
func (s *State) AlivePlayers() []Player {
	var alive []Player
	for _, p := range s.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

// AliveSeats returns the seats of living players in seat order.
func (s *State) AliveSeats() []int {
	var seats []int
	for _, p := range s.Players {
		if p.Alive {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// AliveByRole returns living players holding the given role.
func (s *State) AliveByRole(r role.Role) []Player {
	var players []Player
	for _, p := range s.Players {
		if p.Alive && p.Role == r {
			players = append(players, p)
		}
	}
	return players
}

// AliveByAlignment returns living players on the given team.
func (s *State) AliveByAlignment(a role.Alignment) []Player {
	var players []Player
	for _, p := range s.Players {
		if p.Alive && p.Alignment == a {
			players = append(players, p)
		}
	}
	return players
}

// AliveSpecials returns living special (god) role players.
func (s *State) AliveSpecials() []Player {
	var players []Player
	for _, p := range s.Players {
		if p.Alive && p.Role.IsSpecial() {
			players = append(players, p)
		}
	}
	return players
}

// WerewolfSeats returns every werewolf seat, dead or alive.
func (s *State) WerewolfSeats() []int {
	var seats []int
	for _, p := range s.Players {
		if p.Role == role.Werewolf {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// Sheriff returns the current badge holder, or nil.
func (s *State) Sheriff() *Player {
	if s.SheriffSeat == 0 {
		return nil
	}
	return s.PlayerBySeat(s.SheriffSeat)
}

// Ended reports whether the game has reached a terminal outcome.
func (s State) Ended() bool {
	return s.Phase == PhaseEnded
}

// IsFirstNight reports whether the state is still in the first night.
func (s *State) IsFirstNight() bool {
	return s.Phase == PhaseNight && s.Day == 0
}

// AppendEvents appends events to the journal. Events are never mutated
// or removed once appended.
func (s *State) AppendEvents(events ...event.Event) {
	s.History = append(s.History, events...)
}
