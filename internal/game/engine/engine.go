// Package engine owns the mutable game state and sequences the
// night/day cycle. Resolvers stay pure; the engine is the single place
// where their outputs are committed, win conditions are checked, and
// phase transitions happen. Engine instances are fully independent;
// there is no process-global state.
package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/action"
	"github.com/louisbranch/werewolf/internal/game/day"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/night"
	"github.com/louisbranch/werewolf/internal/game/role"
	"github.com/louisbranch/werewolf/internal/game/win"
	"github.com/louisbranch/werewolf/internal/random"
)

// Death records a fatality committed by an engine operation.
type Death struct {
	Seat  int
	Cause string
}

// Outcome reports what one engine operation changed: the events it
// appended, any deaths it committed, and whether it ended the game.
type Outcome struct {
	Events []event.Event
	Deaths []Death
	Winner role.WinningTeam
	Ended  bool
}

// Engine drives one game from the first night to a terminal state.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	state domain.State
	now   func() time.Time
	idGen func() (string, error)
	rng   *rand.Rand

	// Transients, cleared on phase entry.
	staged         []action.Action
	pendingDeaths  []Death
	revoteSeats    []int
	electionTie    []int
	announcedSeats map[int]bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator injects the id source used at game creation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(e *Engine) { e.idGen = gen }
}

// New creates a game and the engine that owns it. The configuration is
// validated up front; a bad configuration produces no game at all.
func New(config domain.GameConfig, names []string, opts ...Option) (*Engine, error) {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}

	state, err := domain.NewGame(config, names, e.now, e.idGen)
	if err != nil {
		return nil, err
	}
	e.state = state
	e.rng = random.New(config.Seed)
	e.announcedSeats = make(map[int]bool)
	return e, nil
}

// Restore rebuilds an engine around a persisted snapshot. Staged
// actions and unannounced deaths are transient and do not survive a
// restore; callers resume from a phase boundary.
func Restore(state domain.State, opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	e.state = state.Clone()
	e.rng = random.New(state.Config.Seed)
	e.announcedSeats = make(map[int]bool)
	for _, p := range state.Players {
		if !p.Alive {
			e.announcedSeats[p.Seat] = true
		}
	}
	return e
}

// State returns a deep copy of the current game state.
func (e *Engine) State() domain.State {
	return e.state.Clone()
}

// StageNightAction records one night action for the pending batch
// without resolving anything. Only envelope and phase checks run here;
// full validation happens atomically at ResolveNight.
func (e *Engine) StageNightAction(act action.Action) error {
	if err := e.guardPhase(domain.PhaseNight); err != nil {
		return err
	}
	if err := act.Validate(); err != nil {
		return err
	}
	e.staged = append(e.staged, act)
	return nil
}

// StagedAttackTarget returns the werewolf attack target recorded in
// the pending batch, or 0. The witch's cure decision depends on it.
func (e *Engine) StagedAttackTarget() int {
	for _, act := range e.staged {
		if act.Type == action.TypeWolfKill {
			return act.TargetSeat
		}
	}
	return 0
}

// ResolveNight resolves the staged batch. The staged actions are
// consumed whether or not resolution succeeds; a rejected batch is
// restaged from scratch by the caller.
func (e *Engine) ResolveNight() (Outcome, error) {
	staged := e.staged
	e.staged = nil
	return e.SubmitNightActions(staged)
}

// SubmitNightActions resolves a complete night batch in one call. Any
// invalid action rejects the whole batch; nothing is applied.
func (e *Engine) SubmitNightActions(actions []action.Action) (Outcome, error) {
	res, err := night.Resolve(e.state, actions, e.now)
	if err != nil {
		return Outcome{}, err
	}
	e.state = res.State

	outcome := Outcome{Events: res.Events}
	for _, d := range res.Deaths {
		death := Death{Seat: d.Seat, Cause: d.Cause}
		outcome.Deaths = append(outcome.Deaths, death)
		e.pendingDeaths = append(e.pendingDeaths, death)
	}
	e.checkWin(&outcome)
	return outcome, nil
}

// AdvanceToDay transitions night to day: the day counter increments,
// deaths from the night are announced publicly, and night transients
// are dropped. The announced deaths come back so the caller can run
// last words and reactions.
func (e *Engine) AdvanceToDay() (Outcome, error) {
	if err := e.guardPhase(domain.PhaseNight); err != nil {
		return Outcome{}, err
	}

	fromPhase := e.state.Phase
	e.state.Phase = domain.PhaseDay
	e.state.Day++
	e.clearTransients()

	outcome := Outcome{}
	changed := e.newEvent(event.TypePhaseChanged)
	changed.PayloadJSON = marshalPayload(event.PhaseChangedPayload{
		FromPhase: string(fromPhase),
		ToPhase:   string(domain.PhaseDay),
		Day:       e.state.Day,
	})
	outcome.Events = append(outcome.Events, changed)
	outcome.Events = append(outcome.Events, e.announceDeaths()...)

	e.state.AppendEvents(outcome.Events...)
	return outcome, nil
}

// AdvanceToNight transitions day to night, dropping day transients.
func (e *Engine) AdvanceToNight() (Outcome, error) {
	if err := e.guardPhase(domain.PhaseDay); err != nil {
		return Outcome{}, err
	}

	fromPhase := e.state.Phase
	e.state.Phase = domain.PhaseNight
	e.clearTransients()

	changed := e.newEvent(event.TypePhaseChanged)
	changed.PayloadJSON = marshalPayload(event.PhaseChangedPayload{
		FromPhase: string(fromPhase),
		ToPhase:   string(domain.PhaseNight),
		Day:       e.state.Day,
	})
	e.state.AppendEvents(changed)
	return Outcome{Events: []event.Event{changed}}, nil
}

// SubmitSheriffElection runs one election round. After a first-round
// tie the next call is treated as the re-vote and its candidates must
// be exactly the previously tied seats.
func (e *Engine) SubmitSheriffElection(candidates []int, ballots []action.Action) (day.ElectionResult, error) {
	revote := len(e.electionTie) > 0
	if revote {
		tied := make(map[int]bool, len(e.electionTie))
		for _, seat := range e.electionTie {
			tied[seat] = true
		}
		for _, seat := range candidates {
			if !tied[seat] {
				return day.ElectionResult{}, apperrors.New(apperrors.CodeCandidateIneligible,
					fmt.Sprintf("seat %d was not in the tied round", seat))
			}
		}
	}

	res, err := day.ResolveSheriffElection(e.state, candidates, ballots, revote, e.now)
	if err != nil {
		return day.ElectionResult{}, err
	}
	e.state = res.State
	e.electionTie = res.TiedSeats
	return res, nil
}

// SubmitSpeeches appends daytime speeches from living players.
func (e *Engine) SubmitSpeeches(speeches []action.Action) ([]event.Event, error) {
	if err := e.guardPhase(domain.PhaseDay); err != nil {
		return nil, err
	}

	var events []event.Event
	for _, speech := range speeches {
		if err := speech.Validate(); err != nil {
			return nil, err
		}
		if speech.Type != action.TypeSpeech {
			return nil, apperrors.New(apperrors.CodePhaseMismatch,
				fmt.Sprintf("%s is not a speech", speech.Type))
		}
		speaker := e.state.PlayerBySeat(speech.ActorSeat)
		if speaker == nil || !speaker.Alive {
			return nil, apperrors.New(apperrors.CodeActorDead,
				fmt.Sprintf("seat %d cannot speak", speech.ActorSeat))
		}
		evt := e.newEvent(event.TypeSpeech)
		evt.ActorSeat = speech.ActorSeat
		evt.PayloadJSON = marshalPayload(event.SpeechPayload{Content: speech.Content})
		events = append(events, evt)
	}

	e.state.AppendEvents(events...)
	return events, nil
}

// SubmitLastWords appends a dying player's final statement. The
// speaker must be dead; last words are the one speech a dead player
// gets.
func (e *Engine) SubmitLastWords(seat int, content string) (event.Event, error) {
	if e.state.Ended() {
		return event.Event{}, apperrors.New(apperrors.CodeGameEnded, "game has ended")
	}
	speaker := e.state.PlayerBySeat(seat)
	if speaker == nil {
		return event.Event{}, apperrors.New(apperrors.CodeActorNotFound,
			fmt.Sprintf("no player at seat %d", seat))
	}
	if speaker.Alive {
		return event.Event{}, apperrors.New(apperrors.CodePhaseMismatch,
			"last words are reserved for the dead")
	}

	evt := e.newEvent(event.TypeLastWords)
	evt.ActorSeat = seat
	evt.PayloadJSON = marshalPayload(event.SpeechPayload{Content: content})
	e.state.AppendEvents(evt)
	return evt, nil
}

// SubmitVotes tallies the day's lynch vote and, when a single seat
// tops the tally, commits the lynch. A tie leaves a re-vote pending
// among the tied seats.
func (e *Engine) SubmitVotes(ballots []action.Action) (Outcome, day.VoteResult, error) {
	if len(e.revoteSeats) > 0 {
		return Outcome{}, day.VoteResult{}, apperrors.New(apperrors.CodePhaseMismatch,
			"a re-vote is pending; use SubmitRevotes")
	}
	return e.runVoteRound(ballots, nil)
}

// SubmitRevotes tallies the re-vote among the tied seats from the
// previous round. A second tie ends the day with no lynch.
func (e *Engine) SubmitRevotes(ballots []action.Action) (Outcome, day.VoteResult, error) {
	if len(e.revoteSeats) == 0 {
		return Outcome{}, day.VoteResult{}, apperrors.New(apperrors.CodeNoRevotePending, "no re-vote is pending")
	}
	restrict := e.revoteSeats
	e.revoteSeats = nil
	return e.runVoteRound(ballots, restrict)
}

func (e *Engine) runVoteRound(ballots []action.Action, restrict []int) (Outcome, day.VoteResult, error) {
	res, err := day.ResolveVotes(e.state, ballots, restrict, e.now)
	if err != nil {
		return Outcome{}, day.VoteResult{}, err
	}
	e.state = res.State

	outcome := Outcome{Events: res.Events}
	if res.Tie && restrict == nil {
		e.revoteSeats = res.TiedSeats
		return outcome, res, nil
	}
	if res.TopSeat == 0 {
		return outcome, res, nil
	}

	lynch, err := day.ResolveLynch(e.state, res.TopSeat, e.now)
	if err != nil {
		return Outcome{}, day.VoteResult{}, err
	}
	e.state = lynch.State
	outcome.Events = append(outcome.Events, lynch.Events...)
	if lynch.Death != nil {
		e.markAnnounced(lynch.Death.Seat)
		outcome.Deaths = append(outcome.Deaths, Death{Seat: lynch.Death.Seat, Cause: lynch.Death.Cause})
		e.checkWin(&outcome)
	}
	return outcome, res, nil
}

// RevotePending returns the tied seats awaiting a re-vote, or nil.
func (e *Engine) RevotePending() []int {
	return append([]int(nil), e.revoteSeats...)
}

// SubmitHunterShot commits the hunter's dying shot.
func (e *Engine) SubmitHunterShot(act action.Action) (Outcome, error) {
	res, err := day.ResolveHunterShot(e.state, act, e.now)
	if err != nil {
		return Outcome{}, err
	}
	e.state = res.State

	outcome := Outcome{Events: res.Events}
	for _, d := range res.Deaths {
		e.markAnnounced(d.Seat)
		outcome.Deaths = append(outcome.Deaths, Death{Seat: d.Seat, Cause: d.Cause})
	}
	e.checkWin(&outcome)
	return outcome, nil
}

// SubmitBadgeDecision commits a dead sheriff's pass-or-tear choice.
func (e *Engine) SubmitBadgeDecision(act action.Action) ([]event.Event, error) {
	res, err := day.ResolveBadge(e.state, act, e.now)
	if err != nil {
		return nil, err
	}
	e.state = res.State
	return res.Events, nil
}

// SubmitSelfExplode commits a werewolf self-explosion. The day is cut
// short; the caller advances straight to night unless the game ended.
func (e *Engine) SubmitSelfExplode(act action.Action) (Outcome, error) {
	res, err := day.ResolveWolfSelfExplode(e.state, act, e.now)
	if err != nil {
		return Outcome{}, err
	}
	e.state = res.State
	e.revoteSeats = nil

	outcome := Outcome{Events: res.Events}
	for _, d := range res.Deaths {
		e.markAnnounced(d.Seat)
		outcome.Deaths = append(outcome.Deaths, Death{Seat: d.Seat, Cause: d.Cause})
	}
	e.checkWin(&outcome)
	return outcome, nil
}

// ForceEnd terminates the game with the given winner. Used for
// out-of-band endings such as the maximum-day failsafe.
func (e *Engine) ForceEnd(winner role.WinningTeam) (Outcome, error) {
	if e.state.Ended() {
		return Outcome{}, apperrors.New(apperrors.CodeGameEnded, "game has ended")
	}
	outcome := Outcome{}
	e.endGame(&outcome, winner)
	return outcome, nil
}

// BreakTie picks one of the tied seats with the engine's seeded RNG.
// The engine never breaks a tie on its own; callers opt in explicitly
// and the choice stays reproducible through the game seed.
func (e *Engine) BreakTie(seats []int) (int, error) {
	if len(seats) == 0 {
		return 0, apperrors.New(apperrors.CodeVoteTargetInvalid, "no seats to pick from")
	}
	return seats[e.rng.Intn(len(seats))], nil
}

// Legal-target helpers for decision sources and fallbacks.

// ValidWolfTargets lists the seats the werewolves may attack.
func (e *Engine) ValidWolfTargets() []int { return e.state.ValidWolfTargets() }

// ValidGuardTargets lists the seats the guard may protect tonight.
func (e *Engine) ValidGuardTargets(guardSeat int) []int {
	return e.state.ValidGuardTargets(guardSeat)
}

// ValidSeerTargets lists the seats the seer may still check.
func (e *Engine) ValidSeerTargets(seerSeat int) []int {
	return e.state.ValidSeerTargets(seerSeat)
}

// ValidVoteTargets lists the seats a voter may vote against.
func (e *Engine) ValidVoteTargets(voterSeat int) []int {
	return e.state.ValidVoteTargets(voterSeat)
}

// ValidHunterTargets lists the seats the hunter may shoot.
func (e *Engine) ValidHunterTargets(hunterSeat int) []int {
	return e.state.ValidHunterTargets(hunterSeat)
}

// CanWitchCure reports whether the witch may cure tonight's attack target.
func (e *Engine) CanWitchCure(witchSeat, attackSeat int) bool {
	return e.state.CanWitchCure(witchSeat, attackSeat)
}

// CanWitchPoison reports whether the witch still holds the poison.
func (e *Engine) CanWitchPoison(witchSeat int) bool {
	return e.state.CanWitchPoison(witchSeat)
}

func (e *Engine) guardPhase(want domain.Phase) error {
	if e.state.Ended() {
		return apperrors.New(apperrors.CodeGameEnded, "game has ended")
	}
	if e.state.Phase != want {
		return apperrors.New(apperrors.CodePhaseMismatch,
			fmt.Sprintf("operation requires %s, game is in %s", want, e.state.Phase))
	}
	return nil
}

func (e *Engine) clearTransients() {
	e.staged = nil
	e.revoteSeats = nil
	e.electionTie = nil
}

// announceDeaths emits one public day.death_announced per death not
// yet made public, in seat order. The announcement names only the
// seat; the cause stays in the engine's death records so the village
// cannot tell an attack from the witch's poison.
func (e *Engine) announceDeaths() []event.Event {
	var events []event.Event
	for _, d := range e.pendingDeaths {
		if e.announcedSeats[d.Seat] {
			continue
		}
		e.announcedSeats[d.Seat] = true
		evt := e.newEvent(event.TypeDeathAnnounced)
		evt.TargetSeat = d.Seat
		events = append(events, evt)
	}
	e.pendingDeaths = nil
	return events
}

func (e *Engine) markAnnounced(seat int) {
	e.announcedSeats[seat] = true
}

// checkWin evaluates terminal conditions after a death batch and ends
// the game when a side has won.
func (e *Engine) checkWin(outcome *Outcome) {
	if e.state.Ended() {
		return
	}
	winner := win.Check(&e.state)
	if winner == "" {
		return
	}
	e.endGame(outcome, winner)
}

func (e *Engine) endGame(outcome *Outcome, winner role.WinningTeam) {
	e.state.Winner = winner
	e.state.Phase = domain.PhaseEnded
	e.clearTransients()

	evt := e.newEvent(event.TypeGameEnded)
	evt.PayloadJSON = marshalPayload(event.GameEndedPayload{
		Winner: string(winner),
		Day:    e.state.Day,
	})
	e.state.AppendEvents(evt)
	outcome.Events = append(outcome.Events, evt)
	outcome.Winner = winner
	outcome.Ended = true
}

func (e *Engine) newEvent(t event.Type) event.Event {
	return event.New(e.state.ID, t, e.state.Day, string(e.state.Phase), e.now())
}

func marshalPayload(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal payload: %v", err))
	}
	return payload
}
