package win

import (
	"testing"

	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/role"
)

func stateWith(mode domain.WinMode, alive map[int]bool) domain.State {
	roles := []role.Role{
		role.Werewolf, role.Werewolf, role.Werewolf, role.Werewolf,
		role.Seer, role.Witch, role.Hunter, role.Guard,
		role.Villager, role.Villager, role.Villager, role.Villager,
	}
	cfg := domain.DefaultGameConfig()
	cfg.Variants.WinMode = mode
	state := domain.State{Config: cfg, Phase: domain.PhaseDay, Day: 1}
	for i, r := range roles {
		living, ok := alive[i+1]
		if !ok {
			living = true
		}
		state.Players = append(state.Players, domain.Player{
			Seat:      i + 1,
			Role:      r,
			Alignment: role.AlignmentOf(r),
			Alive:     living,
		})
	}
	return state
}

func TestCheck(t *testing.T) {
	allWolvesDead := map[int]bool{1: false, 2: false, 3: false, 4: false}
	allSpecialsDead := map[int]bool{5: false, 6: false, 7: false, 8: false}
	allVillagersDead := map[int]bool{9: false, 10: false, 11: false, 12: false}
	allGoodDead := map[int]bool{
		5: false, 6: false, 7: false, 8: false,
		9: false, 10: false, 11: false, 12: false,
	}

	tests := []struct {
		name  string
		mode  domain.WinMode
		alive map[int]bool
		want  role.WinningTeam
	}{
		{name: "ongoing", mode: domain.WinModeSideElimination, alive: nil, want: ""},
		{name: "village wins when wolves gone", mode: domain.WinModeSideElimination, alive: allWolvesDead, want: role.TeamVillage},
		{name: "side mode wolves win on specials", mode: domain.WinModeSideElimination, alive: allSpecialsDead, want: role.TeamWerewolf},
		{name: "side mode wolves win on villagers", mode: domain.WinModeSideElimination, alive: allVillagersDead, want: role.TeamWerewolf},
		{name: "city mode needs every good player", mode: domain.WinModeCityElimination, alive: allVillagersDead, want: ""},
		{name: "city mode wolves win on full wipe", mode: domain.WinModeCityElimination, alive: allGoodDead, want: role.TeamWerewolf},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := stateWith(tc.mode, tc.alive)
			if got := Check(&state); got != tc.want {
				t.Errorf("winner = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCheck_VillageFirstOnSimultaneousElimination(t *testing.T) {
	// Every wolf and every special dead at once: the village takes it.
	alive := map[int]bool{
		1: false, 2: false, 3: false, 4: false,
		5: false, 6: false, 7: false, 8: false,
	}
	state := stateWith(domain.WinModeSideElimination, alive)
	if got := Check(&state); got != role.TeamVillage {
		t.Errorf("winner = %q, want village-first resolution", got)
	}
}
