// Package win evaluates terminal conditions. The village is checked
// before the werewolves so a simultaneous elimination resolves in the
// village's favor.
package win

import (
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// Check returns the winning team, or "" when the game continues.
//
// The village wins when every werewolf is dead. Under side elimination
// the werewolves win when either every plain villager or every special
// role is dead; under city elimination they must wipe out the entire
// good side.
func Check(state *domain.State) role.WinningTeam {
	wolves := 0
	villagers := 0
	specials := 0
	for _, p := range state.Players {
		if !p.Alive {
			continue
		}
		switch {
		case p.Role == role.Werewolf:
			wolves++
		case p.Role == role.Villager:
			villagers++
		default:
			specials++
		}
	}

	if wolves == 0 {
		return role.TeamVillage
	}

	switch state.Config.Variants.WinMode {
	case domain.WinModeCityElimination:
		if villagers == 0 && specials == 0 {
			return role.TeamWerewolf
		}
	default:
		if villagers == 0 || specials == 0 {
			return role.TeamWerewolf
		}
	}
	return ""
}
