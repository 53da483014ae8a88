// Package event defines the immutable game journal records. Events are
// the only externally consumable record of state change; every mutation
// a resolver performs is mirrored by at least one appended event.
package event

import (
	"strings"
	"time"
)

// Type identifies the type of a game event.
type Type string

// Game lifecycle events.
const (
	// TypeGameStarted records the creation of a game with seated roles.
	TypeGameStarted Type = "game.started"
	// TypeGameEnded records the terminal outcome of a game.
	TypeGameEnded Type = "game.ended"
	// TypePhaseChanged records a night/day phase transition.
	TypePhaseChanged Type = "phase.changed"
)

// Night events.
const (
	// TypeNightKill records a death during the night, by attack or poison.
	TypeNightKill Type = "night.kill"
	// TypeSaved records a werewolf attack that was blocked or cured.
	TypeSaved Type = "night.saved"
	// TypeSeerCheck records a seer's alignment check and its result.
	TypeSeerCheck Type = "night.seer_check"
	// TypeWitchAction records the witch spending a cure or poison.
	TypeWitchAction Type = "night.witch_action"
	// TypeGuardAction records the guard's protection choice.
	TypeGuardAction Type = "night.guard_action"
)

// Day events.
const (
	// TypeDeathAnnounced records a death made public at dawn.
	TypeDeathAnnounced Type = "day.death_announced"
	// TypeSpeech records a daytime speech.
	TypeSpeech Type = "day.speech"
	// TypeLastWords records a dying player's final statement.
	TypeLastWords Type = "day.last_words"
	// TypeVoteCast records a single lynch vote.
	TypeVoteCast Type = "day.vote_cast"
	// TypeVoteResult records the tally outcome of a voting round.
	TypeVoteResult Type = "day.vote_result"
	// TypeLynch records a player dying to the day vote.
	TypeLynch Type = "day.lynch"
)

// Sheriff events.
const (
	// TypeSheriffElected records the day-1 election outcome.
	TypeSheriffElected Type = "sheriff.elected"
	// TypeBadgePassed records the badge moving to a named living player.
	TypeBadgePassed Type = "sheriff.badge_passed"
	// TypeBadgeTorn records the badge's permanent destruction.
	TypeBadgeTorn Type = "sheriff.badge_torn"
)

// Reactive role events.
const (
	// TypeHunterShot records the hunter's dying shot.
	TypeHunterShot Type = "role.hunter_shot"
	// TypeIdiotRevealed records the village idiot surviving a lynch.
	TypeIdiotRevealed Type = "role.idiot_revealed"
	// TypeWolfSelfExploded records a werewolf ending the day by self-explosion.
	TypeWolfSelfExploded Type = "role.wolf_self_exploded"
)

// Visibility classifies who may observe an event. Every event type has
// exactly one default classification; the projection layer relies on
// this being total.
type Visibility string

const (
	// VisibilityPublic events are visible to every player.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate events are visible only to the listed recipients.
	VisibilityPrivate Visibility = "private"
	// VisibilityTeam events are visible to the werewolf team.
	VisibilityTeam Visibility = "team"
)

// Event represents an immutable record in the game journal.
type Event struct {
	// GameID is the game this event belongs to.
	GameID string
	// Seq is the event sequence number within the game (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Type identifies the kind of event.
	Type Type
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Day is the day counter at the time of the event (0 = first night).
	Day int
	// Phase is the phase the event occurred in ("night", "day", "ended").
	Phase string
	// ActorSeat is the seat of the player who caused the event (0 = none).
	ActorSeat int
	// TargetSeat is the seat of the affected player (0 = none).
	TargetSeat int
	// Visibility classifies who may observe the event.
	Visibility Visibility
	// Recipients lists the seats a private event is visible to.
	Recipients []int
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// New builds an event envelope with the default visibility for its
// type. Resolvers fill in actor, target, recipients, and payload.
func New(gameID string, t Type, day int, phase string, timestamp time.Time) Event {
	return Event{
		GameID:     gameID,
		Type:       t,
		Timestamp:  timestamp.UTC(),
		Day:        day,
		Phase:      phase,
		Visibility: Classify(t),
	}
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g., "night", "day").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}

// Classify returns the default visibility for an event type. Night role
// actions and their results are private to the acting role; werewolf
// kills are team-visible; everything announced by the moderator is public.
func Classify(t Type) Visibility {
	switch t {
	case TypeSeerCheck, TypeWitchAction, TypeGuardAction, TypeSaved:
		return VisibilityPrivate
	case TypeNightKill:
		return VisibilityTeam
	default:
		return VisibilityPublic
	}
}

// VisibleTo reports whether a viewer may observe the event. Werewolf
// viewers see team events; private events require the viewer to be a
// listed recipient.
func (e Event) VisibleTo(seat int, isWerewolf bool) bool {
	switch e.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityTeam:
		return isWerewolf
	case VisibilityPrivate:
		for _, recipient := range e.Recipients {
			if recipient == seat {
				return true
			}
		}
		return false
	}
	return false
}
