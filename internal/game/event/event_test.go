package event

import "testing"

func TestType_Domain(t *testing.T) {
	tests := []struct {
		eventType Type
		want      string
	}{
		{TypeGameStarted, "game"},
		{TypeNightKill, "night"},
		{TypeVoteCast, "day"},
		{TypeSheriffElected, "sheriff"},
		{TypeHunterShot, "role"},
		{TypePhaseChanged, "phase"},
		{"nodot", "nodot"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			if got := tt.eventType.Domain(); got != tt.want {
				t.Errorf("Type(%q).Domain() = %q, want %q", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestClassify_Total(t *testing.T) {
	all := []Type{
		TypeGameStarted, TypeGameEnded, TypePhaseChanged,
		TypeNightKill, TypeSaved, TypeSeerCheck, TypeWitchAction, TypeGuardAction,
		TypeDeathAnnounced, TypeSpeech, TypeLastWords, TypeVoteCast, TypeVoteResult, TypeLynch,
		TypeSheriffElected, TypeBadgePassed, TypeBadgeTorn,
		TypeHunterShot, TypeIdiotRevealed, TypeWolfSelfExploded,
	}

	for _, eventType := range all {
		t.Run(string(eventType), func(t *testing.T) {
			switch Classify(eventType) {
			case VisibilityPublic, VisibilityPrivate, VisibilityTeam:
			default:
				t.Errorf("Classify(%q) returned no classification", eventType)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		eventType Type
		want      Visibility
	}{
		{TypeSeerCheck, VisibilityPrivate},
		{TypeWitchAction, VisibilityPrivate},
		{TypeGuardAction, VisibilityPrivate},
		{TypeSaved, VisibilityPrivate},
		{TypeNightKill, VisibilityTeam},
		{TypeLynch, VisibilityPublic},
		{TypeDeathAnnounced, VisibilityPublic},
		{TypeHunterShot, VisibilityPublic},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			if got := Classify(tt.eventType); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.eventType, got, tt.want)
			}
		})
	}
}

func TestEvent_VisibleTo(t *testing.T) {
	tests := []struct {
		name       string
		evt        Event
		seat       int
		isWerewolf bool
		want       bool
	}{
		{"public to anyone", Event{Visibility: VisibilityPublic}, 5, false, true},
		{"team to werewolf", Event{Visibility: VisibilityTeam}, 2, true, true},
		{"team hidden from good", Event{Visibility: VisibilityTeam}, 2, false, false},
		{"private to recipient", Event{Visibility: VisibilityPrivate, Recipients: []int{7}}, 7, false, true},
		{"private hidden from others", Event{Visibility: VisibilityPrivate, Recipients: []int{7}}, 8, false, false},
		{"private hidden from werewolf", Event{Visibility: VisibilityPrivate, Recipients: []int{7}}, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.evt.VisibleTo(tt.seat, tt.isWerewolf); got != tt.want {
				t.Errorf("VisibleTo(%d, %v) = %v, want %v", tt.seat, tt.isWerewolf, got, tt.want)
			}
		})
	}
}
