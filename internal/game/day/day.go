// Package day resolves the discussion-phase operations: the day-1
// sheriff election, the lynch vote with weighted tallies, the lynch
// itself, badge succession, and the reactive role effects that can
// fire during the day.
package day

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/action"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// NormalVoteWeightHalves is a regular player's vote weight in halves.
const NormalVoteWeightHalves = 2

// Death records one fatality produced by a day resolution.
type Death struct {
	Seat  int
	Cause string
}

// ElectionResult is the outcome of one sheriff election round.
type ElectionResult struct {
	State       domain.State
	Events      []event.Event
	SheriffSeat int // 0 when no sheriff was elected
	Tie         bool
	TiedSeats   []int
}

// VoteResult is the outcome of tallying one voting round. The lynch
// itself is applied separately by ResolveLynch so reactive effects can
// be sequenced by the caller.
type VoteResult struct {
	State        domain.State
	Events       []event.Event
	TotalsHalves map[int]int
	TopSeat      int // 0 when nobody was voted out
	Tie          bool
	TiedSeats    []int
}

// LynchResult is the outcome of applying a lynch to one seat.
type LynchResult struct {
	State         domain.State
	Events        []event.Event
	Death         *Death // nil when the idiot reveal substituted
	IdiotRevealed bool
}

// Resolution is the generic outcome for badge, hunter shot, and
// self-explosion operations.
type Resolution struct {
	State  domain.State
	Events []event.Event
	Deaths []Death
}

// ResolveSheriffElection tallies one election round. Candidates may not
// vote; each ballot counts once regardless of later vote weighting. A
// plurality winner takes the badge. A tie in the first round leaves the
// election open for one re-vote among the tied candidates; a tie in the
// re-vote closes the election with no sheriff, as does an empty
// candidate list.
func ResolveSheriffElection(state domain.State, candidates []int, ballots []action.Action, revote bool, now func() time.Time) (ElectionResult, error) {
	if now == nil {
		now = time.Now
	}
	if err := guardDayPhase(&state); err != nil {
		return ElectionResult{}, err
	}
	if state.ElectionHeld {
		return ElectionResult{}, apperrors.New(apperrors.CodeElectionAlreadyHeld, "sheriff election already held")
	}
	if state.Day != 1 {
		return ElectionResult{}, apperrors.New(apperrors.CodeElectionWrongDay,
			fmt.Sprintf("sheriff election is held on day 1, not day %d", state.Day))
	}

	running := make(map[int]bool, len(candidates))
	for _, seat := range candidates {
		candidate := state.PlayerBySeat(seat)
		if candidate == nil || !candidate.Alive {
			return ElectionResult{}, apperrors.New(apperrors.CodeCandidateIneligible,
				fmt.Sprintf("seat %d cannot run for sheriff", seat))
		}
		running[seat] = true
	}

	counts := make(map[int]int)
	voted := make(map[int]bool)
	for _, ballot := range ballots {
		if err := ballot.Validate(); err != nil {
			return ElectionResult{}, err
		}
		if ballot.Type != action.TypeSheriffVote {
			return ElectionResult{}, apperrors.New(apperrors.CodePhaseMismatch,
				fmt.Sprintf("%s is not an election ballot", ballot.Type))
		}
		voter := state.PlayerBySeat(ballot.ActorSeat)
		if voter == nil || !voter.CanVote() {
			return ElectionResult{}, apperrors.New(apperrors.CodeVoterIneligible,
				fmt.Sprintf("seat %d cannot vote", ballot.ActorSeat))
		}
		if running[voter.Seat] {
			return ElectionResult{}, apperrors.New(apperrors.CodeVoterIneligible,
				fmt.Sprintf("candidate seat %d cannot vote in the election", voter.Seat))
		}
		if voted[voter.Seat] {
			return ElectionResult{}, apperrors.New(apperrors.CodeDuplicateAction,
				fmt.Sprintf("seat %d already voted", voter.Seat))
		}
		if !running[ballot.TargetSeat] {
			return ElectionResult{}, apperrors.New(apperrors.CodeVoteTargetInvalid,
				fmt.Sprintf("seat %d is not a candidate", ballot.TargetSeat))
		}
		voted[voter.Seat] = true
		counts[ballot.TargetSeat]++
	}

	resolved := state.Clone()
	result := ElectionResult{}

	winner, tied := plurality(counts)
	switch {
	case len(candidates) == 0 || (revote && len(tied) > 1) || (winner == 0 && len(tied) == 0):
		// Nobody runs, a re-vote ties again, or nobody votes: the
		// village plays without a sheriff.
		resolved.ElectionHeld = true
	case len(tied) > 1:
		result.Tie = true
		result.TiedSeats = tied
	default:
		resolved.ElectionHeld = true
		resolved.SheriffSeat = winner
		resolved.PlayerBySeat(winner).Sheriff = true
		result.SheriffSeat = winner
	}

	evt := event.New(state.ID, event.TypeSheriffElected, state.Day, string(domain.PhaseDay), now())
	evt.TargetSeat = result.SheriffSeat
	evt.PayloadJSON = marshalPayload(event.SheriffElectedPayload{
		Counts:    counts,
		Tie:       result.Tie,
		TiedSeats: result.TiedSeats,
	})
	events := []event.Event{evt}

	resolved.AppendEvents(events...)
	result.State = resolved
	result.Events = events
	return result, nil
}

// ResolveVotes tallies one lynch voting round using exact half-vote
// arithmetic. A sitting sheriff's ballot weighs
// Variants.SheriffVoteWeightHalves; everyone else's weighs
// NormalVoteWeightHalves. Abstaining is legal: a missing ballot simply
// contributes nothing. When restrictTo is non-empty (a re-vote), only
// the listed seats are valid targets.
func ResolveVotes(state domain.State, ballots []action.Action, restrictTo []int, now func() time.Time) (VoteResult, error) {
	if now == nil {
		now = time.Now
	}
	if err := guardDayPhase(&state); err != nil {
		return VoteResult{}, err
	}

	restricted := make(map[int]bool, len(restrictTo))
	for _, seat := range restrictTo {
		restricted[seat] = true
	}

	totals := make(map[int]int)
	voted := make(map[int]bool)
	var events []event.Event
	for _, ballot := range ballots {
		if err := ballot.Validate(); err != nil {
			return VoteResult{}, err
		}
		if ballot.Type != action.TypeVote {
			return VoteResult{}, apperrors.New(apperrors.CodePhaseMismatch,
				fmt.Sprintf("%s is not a lynch vote", ballot.Type))
		}
		voter := state.PlayerBySeat(ballot.ActorSeat)
		if voter == nil || !voter.CanVote() {
			return VoteResult{}, apperrors.New(apperrors.CodeVoterIneligible,
				fmt.Sprintf("seat %d cannot vote", ballot.ActorSeat))
		}
		if voted[voter.Seat] {
			return VoteResult{}, apperrors.New(apperrors.CodeDuplicateAction,
				fmt.Sprintf("seat %d already voted", voter.Seat))
		}
		if ballot.TargetSeat == voter.Seat {
			return VoteResult{}, apperrors.New(apperrors.CodeSelfVoteForbidden,
				fmt.Sprintf("seat %d voted for themselves", voter.Seat))
		}
		target := state.PlayerBySeat(ballot.TargetSeat)
		if target == nil || !target.Alive {
			return VoteResult{}, apperrors.New(apperrors.CodeVoteTargetInvalid,
				fmt.Sprintf("seat %d is not a living vote target", ballot.TargetSeat))
		}
		if len(restricted) > 0 && !restricted[ballot.TargetSeat] {
			return VoteResult{}, apperrors.New(apperrors.CodeVoteTargetInvalid,
				fmt.Sprintf("seat %d is not among the tied candidates", ballot.TargetSeat))
		}

		weight := NormalVoteWeightHalves
		if voter.Seat == state.SheriffSeat && !state.BadgeTorn {
			weight = state.Config.Variants.SheriffVoteWeightHalves
		}
		voted[voter.Seat] = true
		totals[ballot.TargetSeat] += weight

		cast := event.New(state.ID, event.TypeVoteCast, state.Day, string(domain.PhaseDay), now())
		cast.ActorSeat = voter.Seat
		cast.TargetSeat = ballot.TargetSeat
		cast.PayloadJSON = marshalPayload(event.VoteCastPayload{WeightHalves: weight})
		events = append(events, cast)
	}

	resolved := state.Clone()
	result := VoteResult{TotalsHalves: totals}

	top, tied := plurality(totals)
	revote := false
	switch {
	case top != 0:
		result.TopSeat = top
	case len(tied) > 1:
		result.Tie = true
		result.TiedSeats = tied
		revote = len(restricted) == 0
	}

	outcome := event.New(state.ID, event.TypeVoteResult, state.Day, string(domain.PhaseDay), now())
	outcome.TargetSeat = result.TopSeat
	outcome.PayloadJSON = marshalPayload(event.VoteResultPayload{
		TotalsHalves: totals,
		Tie:          result.Tie,
		TiedSeats:    result.TiedSeats,
		LynchedSeat:  result.TopSeat,
		Revote:       revote,
	})
	events = append(events, outcome)

	resolved.AppendEvents(events...)
	result.State = resolved
	result.Events = events
	return result, nil
}

// ResolveLynch applies the day vote's outcome to one seat. An
// unrevealed village idiot survives the lynch: the role is revealed
// publicly and the idiot keeps living but permanently loses the vote.
// Everyone else dies. A lynched hunter keeps the dying shot.
func ResolveLynch(state domain.State, seat int, now func() time.Time) (LynchResult, error) {
	if now == nil {
		now = time.Now
	}
	if err := guardDayPhase(&state); err != nil {
		return LynchResult{}, err
	}
	target := state.PlayerBySeat(seat)
	if target == nil {
		return LynchResult{}, apperrors.New(apperrors.CodeTargetNotFound,
			fmt.Sprintf("no player at seat %d", seat))
	}
	if !target.Alive {
		return LynchResult{}, apperrors.New(apperrors.CodeTargetDead,
			fmt.Sprintf("seat %d is already dead", seat))
	}

	resolved := state.Clone()
	result := LynchResult{}
	var events []event.Event

	if target.Role == role.VillageIdiot && !target.IdiotRevealed {
		resolved.PlayerBySeat(seat).IdiotRevealed = true
		result.IdiotRevealed = true
		evt := event.New(state.ID, event.TypeIdiotRevealed, state.Day, string(domain.PhaseDay), now())
		evt.TargetSeat = seat
		events = append(events, evt)
	} else {
		resolved.PlayerBySeat(seat).Alive = false
		result.Death = &Death{Seat: seat, Cause: event.DeathCauseLynch}
		evt := event.New(state.ID, event.TypeLynch, state.Day, string(domain.PhaseDay), now())
		evt.TargetSeat = seat
		events = append(events, evt)
	}

	resolved.AppendEvents(events...)
	result.State = resolved
	result.Events = events
	return result, nil
}

// ResolveBadge applies a dead sheriff's succession decision: pass the
// badge to a named living player, or tear it so the sheriff seat stays
// vacant for the rest of the game.
func ResolveBadge(state domain.State, act action.Action, now func() time.Time) (Resolution, error) {
	if now == nil {
		now = time.Now
	}
	if state.Ended() {
		return Resolution{}, apperrors.New(apperrors.CodeGameEnded, "game has ended")
	}
	if err := act.Validate(); err != nil {
		return Resolution{}, err
	}
	if state.BadgeTorn {
		return Resolution{}, apperrors.New(apperrors.CodeBadgeTorn, "the badge has been torn")
	}
	if act.ActorSeat != state.SheriffSeat {
		return Resolution{}, apperrors.New(apperrors.CodeBadgeHolderMismatch,
			fmt.Sprintf("seat %d does not hold the badge", act.ActorSeat))
	}

	resolved := state.Clone()
	var events []event.Event

	switch act.Type {
	case action.TypePassBadge:
		heir := state.PlayerBySeat(act.TargetSeat)
		if heir == nil || !heir.Alive {
			return Resolution{}, apperrors.New(apperrors.CodeTargetDead,
				fmt.Sprintf("seat %d cannot inherit the badge", act.TargetSeat))
		}
		resolved.PlayerBySeat(state.SheriffSeat).Sheriff = false
		resolved.SheriffSeat = heir.Seat
		resolved.PlayerBySeat(heir.Seat).Sheriff = true
		evt := event.New(state.ID, event.TypeBadgePassed, state.Day, string(state.Phase), now())
		evt.ActorSeat = act.ActorSeat
		evt.TargetSeat = heir.Seat
		events = append(events, evt)
	case action.TypeTearBadge:
		resolved.PlayerBySeat(state.SheriffSeat).Sheriff = false
		resolved.SheriffSeat = 0
		resolved.BadgeTorn = true
		evt := event.New(state.ID, event.TypeBadgeTorn, state.Day, string(state.Phase), now())
		evt.ActorSeat = act.ActorSeat
		events = append(events, evt)
	default:
		return Resolution{}, apperrors.New(apperrors.CodePhaseMismatch,
			fmt.Sprintf("%s is not a badge decision", act.Type))
	}

	resolved.AppendEvents(events...)
	return Resolution{State: resolved, Events: events}, nil
}

// ResolveHunterShot applies the hunter's dying shot. The shot fires
// from a dead, still-armed hunter at a living target. A shot sheriff
// never chooses an heir; the badge tears automatically.
func ResolveHunterShot(state domain.State, act action.Action, now func() time.Time) (Resolution, error) {
	if now == nil {
		now = time.Now
	}
	if state.Ended() {
		return Resolution{}, apperrors.New(apperrors.CodeGameEnded, "game has ended")
	}
	if err := act.Validate(); err != nil {
		return Resolution{}, err
	}
	if act.Type != action.TypeHunterShoot {
		return Resolution{}, apperrors.New(apperrors.CodePhaseMismatch,
			fmt.Sprintf("%s is not a hunter shot", act.Type))
	}
	hunter := state.PlayerBySeat(act.ActorSeat)
	if hunter == nil || hunter.Role != role.Hunter {
		return Resolution{}, apperrors.New(apperrors.CodeRoleMismatch,
			fmt.Sprintf("seat %d is not the hunter", act.ActorSeat))
	}
	if hunter.Alive {
		return Resolution{}, apperrors.New(apperrors.CodePhaseMismatch,
			"the hunter shoots only on death")
	}
	if !hunter.HunterArmed {
		return Resolution{}, apperrors.New(apperrors.CodeHunterDisarmed,
			"the hunter's shot was disarmed")
	}
	if act.TargetSeat == 0 {
		return Resolution{}, apperrors.New(apperrors.CodeTargetRequired, "the shot requires a target")
	}
	target := state.PlayerBySeat(act.TargetSeat)
	if target == nil || !target.Alive {
		return Resolution{}, apperrors.New(apperrors.CodeTargetDead,
			fmt.Sprintf("seat %d is not a living target", act.TargetSeat))
	}
	if target.Seat == hunter.Seat {
		return Resolution{}, apperrors.New(apperrors.CodeVoteTargetInvalid,
			"the hunter cannot shoot their own seat")
	}

	resolved := state.Clone()
	resolved.PlayerBySeat(hunter.Seat).HunterArmed = false
	resolved.PlayerBySeat(target.Seat).Alive = false

	evt := event.New(state.ID, event.TypeHunterShot, state.Day, string(state.Phase), now())
	evt.ActorSeat = hunter.Seat
	evt.TargetSeat = target.Seat
	events := []event.Event{evt}
	deaths := []Death{{Seat: target.Seat, Cause: event.DeathCauseHunterShot}}

	if target.Seat == state.SheriffSeat && !state.BadgeTorn {
		resolved.PlayerBySeat(target.Seat).Sheriff = false
		resolved.SheriffSeat = 0
		resolved.BadgeTorn = true
		torn := event.New(state.ID, event.TypeBadgeTorn, state.Day, string(state.Phase), now())
		torn.TargetSeat = target.Seat
		events = append(events, torn)
	}

	resolved.AppendEvents(events...)
	return Resolution{State: resolved, Events: events, Deaths: deaths}, nil
}

// ResolveWolfSelfExplode applies a werewolf's self-explosion: the actor
// reveals and dies immediately, cutting the day short. The caller skips
// the remaining speeches and the vote and advances straight to night.
func ResolveWolfSelfExplode(state domain.State, act action.Action, now func() time.Time) (Resolution, error) {
	if now == nil {
		now = time.Now
	}
	if err := guardDayPhase(&state); err != nil {
		return Resolution{}, err
	}
	if err := act.Validate(); err != nil {
		return Resolution{}, err
	}
	if act.Type != action.TypeWolfSelfExplode {
		return Resolution{}, apperrors.New(apperrors.CodePhaseMismatch,
			fmt.Sprintf("%s is not a self-explosion", act.Type))
	}
	if !state.Config.Variants.AllowWolfSelfExplode {
		return Resolution{}, apperrors.New(apperrors.CodeSelfExplodeForbidden, "self-explosion is disabled")
	}
	actor := state.PlayerBySeat(act.ActorSeat)
	if actor == nil || !actor.Alive {
		return Resolution{}, apperrors.New(apperrors.CodeActorDead,
			fmt.Sprintf("seat %d is dead and cannot act", act.ActorSeat))
	}
	if actor.Role != role.Werewolf {
		return Resolution{}, apperrors.New(apperrors.CodeRoleMismatch,
			fmt.Sprintf("seat %d is not a werewolf", act.ActorSeat))
	}

	resolved := state.Clone()
	resolved.PlayerBySeat(actor.Seat).Alive = false

	evt := event.New(state.ID, event.TypeWolfSelfExploded, state.Day, string(domain.PhaseDay), now())
	evt.ActorSeat = actor.Seat
	events := []event.Event{evt}

	resolved.AppendEvents(events...)
	return Resolution{
		State:  resolved,
		Events: events,
		Deaths: []Death{{Seat: actor.Seat, Cause: event.DeathCauseSelfExplode}},
	}, nil
}

func guardDayPhase(state *domain.State) error {
	if state.Ended() {
		return apperrors.New(apperrors.CodeGameEnded, "game has ended")
	}
	if state.Phase != domain.PhaseDay {
		return apperrors.New(apperrors.CodePhaseMismatch,
			fmt.Sprintf("day actions submitted during %s", state.Phase))
	}
	return nil
}

// plurality returns the unique top-count seat, or 0 with the tied seats
// in ascending order. An empty tally yields 0 and no tied seats.
func plurality(counts map[int]int) (int, []int) {
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return 0, nil
	}
	var top []int
	for seat, n := range counts {
		if n == best {
			top = append(top, seat)
		}
	}
	sort.Ints(top)
	if len(top) == 1 {
		return top[0], nil
	}
	return 0, top
}

func marshalPayload(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal payload: %v", err))
	}
	return payload
}
