package event

// GameStartedPayload captures the payload for game.started events.
type GameStartedPayload struct {
	RoleSet     string `json:"role_set"`
	PlayerCount int    `json:"player_count"`
	Seed        int64  `json:"seed"`
}

// GameEndedPayload captures the payload for game.ended events.
type GameEndedPayload struct {
	Winner string `json:"winner"`
	Day    int    `json:"day"`
}

// PhaseChangedPayload captures the payload for phase.changed events.
type PhaseChangedPayload struct {
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
	Day       int    `json:"day"`
}

// NightKillPayload captures the payload for night.kill events.
type NightKillPayload struct {
	// Cause is "attack" for the werewolf kill or "poison" for the witch.
	Cause string `json:"cause"`
}

// Night kill causes.
const (
	KillCauseAttack = "attack"
	KillCausePoison = "poison"
)

// SavedPayload captures the payload for night.saved events.
type SavedPayload struct {
	ByGuard bool `json:"by_guard"`
	ByWitch bool `json:"by_witch"`
}

// SeerCheckPayload captures the payload for night.seer_check events.
type SeerCheckPayload struct {
	Result string `json:"result"`
}

// WitchActionPayload captures the payload for night.witch_action events.
type WitchActionPayload struct {
	Cure   bool `json:"cure"`
	Poison bool `json:"poison"`
}

// Death causes recorded internally beyond the night kill causes.
// day.death_announced events deliberately carry no cause; at dawn the
// village learns who died, never how.
const (
	DeathCauseLynch       = "lynch"
	DeathCauseHunterShot  = "hunter_shot"
	DeathCauseSelfExplode = "self_explode"
)

// SpeechPayload captures the payload for day.speech and day.last_words events.
type SpeechPayload struct {
	Content string `json:"content"`
}

// VoteCastPayload captures the payload for day.vote_cast events.
type VoteCastPayload struct {
	// WeightHalves is the vote weight in halves: 2 for a normal vote,
	// 3 for the sheriff. Totals compare exactly, never as floats.
	WeightHalves int `json:"weight_halves"`
}

// VoteResultPayload captures the payload for day.vote_result events.
type VoteResultPayload struct {
	TotalsHalves map[int]int `json:"totals_halves"`
	Tie          bool        `json:"tie"`
	TiedSeats    []int       `json:"tied_seats,omitempty"`
	LynchedSeat  int         `json:"lynched_seat,omitempty"`
	Revote       bool        `json:"revote,omitempty"`
}

// SheriffElectedPayload captures the payload for sheriff.elected events.
type SheriffElectedPayload struct {
	Counts    map[int]int `json:"counts"`
	Tie       bool        `json:"tie"`
	TiedSeats []int       `json:"tied_seats,omitempty"`
}
