package role

import "fmt"

// Set identifies one of the two supported 12-player compositions.
type Set string

const (
	// SetA fields Seer, Witch, Hunter, and Guard as the special roles.
	SetA Set = "A"
	// SetB replaces the Guard with the Village Idiot.
	SetB Set = "B"
)

// IsValid reports whether the set is a supported composition.
func (s Set) IsValid() bool {
	return s == SetA || s == SetB
}

// Fixed counts for the standard 12-player game.
const (
	WerewolfCount = 4
	VillagerCount = 4
	SpecialCount  = 4
	PlayerCount   = 12
)

var (
	setASpecials = []Role{Seer, Witch, Hunter, Guard}
	setBSpecials = []Role{Seer, Witch, Hunter, VillageIdiot}
)

// Composition returns the full 12-role multiset for a set, in canonical
// order (werewolves, villagers, specials). Callers shuffle before seating.
func Composition(s Set) ([]Role, error) {
	var specials []Role
	switch s {
	case SetA:
		specials = setASpecials
	case SetB:
		specials = setBSpecials
	default:
		return nil, fmt.Errorf("unknown role set %q", s)
	}

	roles := make([]Role, 0, PlayerCount)
	for i := 0; i < WerewolfCount; i++ {
		roles = append(roles, Werewolf)
	}
	for i := 0; i < VillagerCount; i++ {
		roles = append(roles, Villager)
	}
	roles = append(roles, specials...)
	return roles, nil
}

// ValidateComposition reports whether roles form exactly the multiset of
// the given set: 12 roles total, 4 of them werewolves.
func ValidateComposition(roles []Role, s Set) error {
	expected, err := Composition(s)
	if err != nil {
		return err
	}
	if len(roles) != len(expected) {
		return fmt.Errorf("expected %d roles, got %d", len(expected), len(roles))
	}

	counts := make(map[Role]int, len(roles))
	for _, r := range roles {
		counts[r]++
	}
	want := make(map[Role]int, len(expected))
	for _, r := range expected {
		want[r]++
	}
	for r, n := range want {
		if counts[r] != n {
			return fmt.Errorf("expected %d %s, got %d", n, r, counts[r])
		}
	}
	return nil
}

// NightOrder returns the roles with night abilities in resolution
// precedence order.
func NightOrder() []Role {
	return []Role{Guard, Werewolf, Witch, Seer}
}
