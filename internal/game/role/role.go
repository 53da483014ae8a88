// Package role defines the closed set of roles for a 12-player game,
// their team alignments, and the two supported compositions.
package role

// Role identifies a player's role.
type Role string

const (
	// Werewolf is the wolf team killer role.
	Werewolf Role = "werewolf"
	// Villager is a plain good-aligned role with no night ability.
	Villager Role = "villager"
	// Seer checks one player's alignment each night.
	Seer Role = "seer"
	// Witch holds a single-use cure and a single-use poison.
	Witch Role = "witch"
	// Hunter may shoot one player upon dying, unless poisoned.
	Hunter Role = "hunter"
	// Guard protects one player each night.
	Guard Role = "guard"
	// VillageIdiot survives a lynch by revealing, losing voting rights.
	VillageIdiot Role = "village_idiot"
)

// IsValid reports whether the role is one of the enumerated roles.
func (r Role) IsValid() bool {
	switch r {
	case Werewolf, Villager, Seer, Witch, Hunter, Guard, VillageIdiot:
		return true
	}
	return false
}

// IsSpecial reports whether the role is a special (god) role.
func (r Role) IsSpecial() bool {
	switch r {
	case Seer, Witch, Hunter, Guard, VillageIdiot:
		return true
	}
	return false
}

// Alignment identifies the team a role belongs to.
type Alignment string

const (
	// AlignmentWerewolf is the wolf team.
	AlignmentWerewolf Alignment = "werewolf"
	// AlignmentGood is the village team, including special roles.
	AlignmentGood Alignment = "good"
)

// AlignmentOf returns the team alignment derived from a role.
func AlignmentOf(r Role) Alignment {
	if r == Werewolf {
		return AlignmentWerewolf
	}
	return AlignmentGood
}

// WinningTeam identifies the declared winner of a finished game.
type WinningTeam string

const (
	// TeamVillage wins when every werewolf is dead.
	TeamVillage WinningTeam = "village"
	// TeamWerewolf wins per the configured win mode.
	TeamWerewolf WinningTeam = "werewolf"
)
