// Package projection builds per-player views of a game. A player sees
// their own role and private results, every public event, and, for
// werewolves, their teammates. Nothing else leaks: the projection is
// the only surface handed to decision sources and connected clients.
package projection

import (
	"fmt"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// SeatView is what any player may know about another seat.
type SeatView struct {
	Seat    int    `json:"seat"`
	Name    string `json:"name"`
	Alive   bool   `json:"alive"`
	Sheriff bool   `json:"sheriff"`
	// RevealedRole is set only for publicly revealed roles (the
	// village idiot after surviving a lynch).
	RevealedRole role.Role `json:"revealed_role,omitempty"`
}

// PlayerView is one player's complete knowledge of the game.
type PlayerView struct {
	GameID string    `json:"game_id"`
	Seat   int       `json:"seat"`
	Role   role.Role `json:"role"`
	Alive  bool      `json:"alive"`

	Day         int              `json:"day"`
	Phase       string           `json:"phase"`
	SheriffSeat int              `json:"sheriff_seat"`
	BadgeTorn   bool             `json:"badge_torn"`
	Winner      role.WinningTeam `json:"winner,omitempty"`

	Seats []SeatView `json:"seats"`

	// Teammates lists fellow werewolf seats; empty for the good side.
	Teammates []int `json:"teammates,omitempty"`

	// SeerChecks holds the seer's own accumulated results.
	SeerChecks []domain.SeerCheck `json:"seer_checks,omitempty"`

	// Witch potion inventory, witch only.
	HasCure   bool `json:"has_cure,omitempty"`
	HasPoison bool `json:"has_poison,omitempty"`

	Events []event.Event `json:"events"`
}

// View builds the projection for one seat.
func View(state *domain.State, seat int) (PlayerView, error) {
	viewer := state.PlayerBySeat(seat)
	if viewer == nil {
		return PlayerView{}, apperrors.New(apperrors.CodeNotFound,
			fmt.Sprintf("no player at seat %d", seat))
	}

	view := PlayerView{
		GameID:      state.ID,
		Seat:        viewer.Seat,
		Role:        viewer.Role,
		Alive:       viewer.Alive,
		Day:         state.Day,
		Phase:       string(state.Phase),
		SheriffSeat: state.SheriffSeat,
		BadgeTorn:   state.BadgeTorn,
		Winner:      state.Winner,
		Seats:       seatViews(state),
	}

	isWolf := viewer.Role == role.Werewolf
	if isWolf {
		for _, teammate := range state.WerewolfSeats() {
			if teammate != viewer.Seat {
				view.Teammates = append(view.Teammates, teammate)
			}
		}
	}

	switch viewer.Role {
	case role.Seer:
		view.SeerChecks = append([]domain.SeerCheck(nil), viewer.SeerChecks...)
	case role.Witch:
		view.HasCure = viewer.WitchHasCure
		view.HasPoison = viewer.WitchHasPoison
	}

	for _, evt := range state.History {
		if evt.VisibleTo(viewer.Seat, isWolf) {
			view.Events = append(view.Events, evt)
		}
	}
	return view, nil
}

// Public builds the spectator projection: public events only, no roles.
func Public(state *domain.State) PlayerView {
	view := PlayerView{
		GameID:      state.ID,
		Day:         state.Day,
		Phase:       string(state.Phase),
		SheriffSeat: state.SheriffSeat,
		BadgeTorn:   state.BadgeTorn,
		Winner:      state.Winner,
		Seats:       seatViews(state),
	}
	for _, evt := range state.History {
		if evt.Visibility == event.VisibilityPublic {
			view.Events = append(view.Events, evt)
		}
	}
	return view
}

func seatViews(state *domain.State) []SeatView {
	views := make([]SeatView, 0, len(state.Players))
	for _, p := range state.Players {
		sv := SeatView{
			Seat:    p.Seat,
			Name:    p.Name,
			Alive:   p.Alive,
			Sheriff: p.Seat == state.SheriffSeat && state.SheriffSeat != 0,
		}
		if p.IdiotRevealed {
			sv.RevealedRole = p.Role
		}
		views = append(views, sv)
	}
	return views
}
