// Package orchestrator drives a full game from the first night to a
// terminal state, collecting every decision from per-seat sources.
// The engine stays the sole rules authority; the orchestrator only
// asks questions in the right order and commits the answers. A source
// that errors or answers illegally is overridden with a random legal
// choice drawn from the game seed, so one bad brain never stalls or
// corrupts a game.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/louisbranch/werewolf/internal/agent"
	"github.com/louisbranch/werewolf/internal/game/action"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/engine"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/projection"
	"github.com/louisbranch/werewolf/internal/game/role"
	"github.com/louisbranch/werewolf/internal/telemetry"
)

// DefaultMaxDays is the failsafe day limit. A game still running at
// the limit ends with a werewolf win; the village failed to close it
// out.
const DefaultMaxDays = 15

// Orchestrator runs one game. It is not safe for concurrent use.
type Orchestrator struct {
	eng     *engine.Engine
	sources map[int]agent.Source
	maxDays int
	emitter *telemetry.Emitter
	games   GameStore
	events  EventStore
	logger  *log.Logger
}

// GameStore persists snapshots after each committed step.
type GameStore interface {
	PutGame(ctx context.Context, state domain.State) error
}

// EventStore journals events after each committed step.
type EventStore interface {
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxDays overrides the failsafe day limit.
func WithMaxDays(days int) Option {
	return func(o *Orchestrator) { o.maxDays = days }
}

// WithTelemetry wires the operational event emitter.
func WithTelemetry(emitter *telemetry.Emitter) Option {
	return func(o *Orchestrator) { o.emitter = emitter }
}

// WithStores wires snapshot and journal persistence. Either may be
// nil; the orchestrator persists whatever it is given.
func WithStores(games GameStore, events EventStore) Option {
	return func(o *Orchestrator) {
		o.games = games
		o.events = events
	}
}

// WithLogger wires progress logging.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New builds an orchestrator around an engine and per-seat decision
// sources. Seats missing from the map always play the random legal
// fallback.
func New(eng *engine.Engine, sources map[int]agent.Source, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		eng:     eng,
		sources: sources,
		maxDays: DefaultMaxDays,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run plays the game to its end and returns the final state. Context
// cancellation aborts between decisions; the last committed state is
// returned alongside the context error.
func (o *Orchestrator) Run(ctx context.Context) (domain.State, error) {
	state := o.eng.State()
	if err := o.persist(ctx, state, nil); err != nil {
		return state, err
	}
	if o.emitter != nil {
		_ = o.emitter.GameEvent(ctx, state.ID, telemetry.EventGameCreated, map[string]string{
			"role_set": string(state.Config.RoleSet),
		})
	}

	for {
		if err := ctx.Err(); err != nil {
			return o.eng.State(), err
		}
		state = o.eng.State()
		if state.Ended() {
			break
		}

		var err error
		switch state.Phase {
		case domain.PhaseNight:
			err = o.runNight(ctx)
		case domain.PhaseDay:
			err = o.runDay(ctx)
		default:
			err = fmt.Errorf("game %s stuck in phase %s", state.ID, state.Phase)
		}
		if err != nil {
			return o.eng.State(), err
		}
	}

	final := o.eng.State()
	o.logger.Printf("game %s ended on day %d, winner %s", final.ID, final.Day, final.Winner)
	if o.emitter != nil {
		_ = o.emitter.GameEvent(ctx, final.ID, telemetry.EventGameEnded, map[string]string{
			"winner": string(final.Winner),
			"day":    fmt.Sprintf("%d", final.Day),
		})
	}
	return final, nil
}

// runNight collects the night batch in waking order, resolves it, and
// advances into the next day.
func (o *Orchestrator) runNight(ctx context.Context) error {
	state := o.eng.State()
	o.logger.Printf("game %s: night of day %d", state.ID, state.Day)

	if err := o.stageGuard(ctx, &state); err != nil {
		return err
	}
	if err := o.stageWolfKill(ctx, &state); err != nil {
		return err
	}
	if err := o.stageWitch(ctx, &state); err != nil {
		return err
	}
	if err := o.stageSeer(ctx, &state); err != nil {
		return err
	}

	outcome, err := o.eng.ResolveNight()
	if err != nil {
		return fmt.Errorf("resolve night: %w", err)
	}
	if o.emitter != nil {
		_ = o.emitter.GameEvent(ctx, state.ID, telemetry.EventNightResolved, map[string]string{
			"deaths": fmt.Sprintf("%d", len(outcome.Deaths)),
		})
	}
	if err := o.persist(ctx, o.eng.State(), outcome.Events); err != nil {
		return err
	}
	if outcome.Ended {
		return nil
	}

	dawn, err := o.eng.AdvanceToDay()
	if err != nil {
		return fmt.Errorf("advance to day: %w", err)
	}
	return o.persist(ctx, o.eng.State(), dawn.Events)
}

func (o *Orchestrator) stageGuard(ctx context.Context, state *domain.State) error {
	seat := aliveSeat(state, role.Guard)
	if seat == 0 {
		return nil
	}
	target, err := o.chooseSeat(ctx, seat, o.eng.ValidGuardTargets(seat), false, o.source(seat).GuardProtect)
	if err != nil {
		return err
	}
	if target == 0 {
		return nil
	}
	return o.eng.StageNightAction(action.Action{
		Type: action.TypeGuardProtect, ActorSeat: seat, TargetSeat: target,
	})
}

// stageWolfKill asks the pack's lowest living seat for the consensus
// target. The kill is mandatory while any wolf lives.
func (o *Orchestrator) stageWolfKill(ctx context.Context, state *domain.State) error {
	seat := aliveSeat(state, role.Werewolf)
	if seat == 0 {
		return nil
	}
	target, err := o.chooseSeat(ctx, seat, o.eng.ValidWolfTargets(), true, o.source(seat).WolfKill)
	if err != nil {
		return err
	}
	if target == 0 {
		return nil
	}
	return o.eng.StageNightAction(action.Action{
		Type: action.TypeWolfKill, ActorSeat: seat, TargetSeat: target,
	})
}

// stageWitch runs after the kill is staged so the witch learns the
// attack target before deciding on her potions.
func (o *Orchestrator) stageWitch(ctx context.Context, state *domain.State) error {
	seat := aliveSeat(state, role.Witch)
	if seat == 0 {
		return nil
	}

	attackSeat := o.eng.StagedAttackTarget()
	canCure := attackSeat != 0 && o.eng.CanWitchCure(seat, attackSeat)
	var poisonTargets []int
	if o.eng.CanWitchPoison(seat) {
		poisonTargets = state.AliveSeats()
	}
	if !canCure && len(poisonTargets) == 0 {
		return nil
	}

	view, err := projection.View(state, seat)
	if err != nil {
		return err
	}
	decision, err := o.source(seat).WitchAct(ctx, view, attackSeat, canCure, poisonTargets)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		o.fallbackNote(ctx, state.ID, seat, err)
		decision = agent.WitchDecision{}
	}
	if decision.Cure && !canCure {
		o.fallbackNote(ctx, state.ID, seat, fmt.Errorf("cure is not available"))
		decision.Cure = false
	}
	if decision.PoisonSeat != 0 && !containsSeat(poisonTargets, decision.PoisonSeat) {
		o.fallbackNote(ctx, state.ID, seat, fmt.Errorf("illegal poison seat %d", decision.PoisonSeat))
		decision.PoisonSeat = 0
	}
	if decision.Cure && decision.PoisonSeat != 0 && !state.Config.Variants.WitchCanUseBothPotions {
		o.fallbackNote(ctx, state.ID, seat, fmt.Errorf("both potions in one night"))
		decision.PoisonSeat = 0
	}

	if decision.Cure {
		if err := o.eng.StageNightAction(action.Action{
			Type: action.TypeWitchCure, ActorSeat: seat, TargetSeat: attackSeat,
		}); err != nil {
			return err
		}
	}
	if decision.PoisonSeat != 0 {
		if err := o.eng.StageNightAction(action.Action{
			Type: action.TypeWitchPoison, ActorSeat: seat, TargetSeat: decision.PoisonSeat,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) stageSeer(ctx context.Context, state *domain.State) error {
	seat := aliveSeat(state, role.Seer)
	if seat == 0 {
		return nil
	}
	targets := o.eng.ValidSeerTargets(seat)
	if len(targets) == 0 {
		return nil
	}
	target, err := o.chooseSeat(ctx, seat, targets, true, o.source(seat).SeerCheck)
	if err != nil {
		return err
	}
	if target == 0 {
		return nil
	}
	return o.eng.StageNightAction(action.Action{
		Type: action.TypeSeerCheck, ActorSeat: seat, TargetSeat: target,
	})
}

// runDay plays one full day: dawn reactions, the day-1 election,
// speeches, the vote, and the lynch cascade, then advances to night.
func (o *Orchestrator) runDay(ctx context.Context) error {
	state := o.eng.State()
	o.logger.Printf("game %s: day %d", state.ID, state.Day)

	// Dawn reactions to the announced night deaths. Only first-night
	// deaths get last words, and only when the table rule allows them.
	lastWords := state.Day == 1 && state.Config.Variants.FirstNightDeathHasLastWords
	for _, seat := range o.unreactedDeaths(&state) {
		if err := o.deathReactions(ctx, seat, lastWords); err != nil {
			return err
		}
		if o.eng.State().Ended() {
			return o.persist(ctx, o.eng.State(), nil)
		}
	}

	if state.Day == 1 && !state.ElectionHeld {
		if err := o.runElection(ctx); err != nil {
			return err
		}
		if o.eng.State().Ended() {
			return nil
		}
	}

	exploded, err := o.runSpeeches(ctx)
	if err != nil {
		return err
	}
	if o.eng.State().Ended() {
		return nil
	}

	if !exploded {
		if err := o.runVote(ctx); err != nil {
			return err
		}
		if o.eng.State().Ended() {
			return nil
		}
	}

	if o.eng.State().Day >= o.maxDays {
		outcome, err := o.eng.ForceEnd(role.TeamWerewolf)
		if err != nil {
			return err
		}
		return o.persist(ctx, o.eng.State(), outcome.Events)
	}

	night, err := o.eng.AdvanceToNight()
	if err != nil {
		return fmt.Errorf("advance to night: %w", err)
	}
	return o.persist(ctx, o.eng.State(), night.Events)
}

// unreactedDeaths lists dead seats whose dawn reactions have not run:
// the deaths announced entering this day, in seat order.
func (o *Orchestrator) unreactedDeaths(state *domain.State) []int {
	var seats []int
	for _, evt := range state.History {
		if evt.Type != event.TypeDeathAnnounced || evt.Day != state.Day {
			continue
		}
		seats = append(seats, evt.TargetSeat)
	}
	return seats
}

// deathReactions runs last words, the badge decision, and the hunter's
// shot for one death, then for any death the shot causes. Only the
// seat that started the cascade may speak; hunter-shot victims get the
// badge and shot reactions but no last words.
func (o *Orchestrator) deathReactions(ctx context.Context, seat int, lastWords bool) error {
	queue := []int{seat}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		state := o.eng.State()
		player := state.PlayerBySeat(current)
		if player == nil || player.Alive {
			continue
		}

		if lastWords && current == seat {
			if err := o.collectLastWords(ctx, &state, current); err != nil {
				return err
			}
		}

		if state.SheriffSeat == current && !state.BadgeTorn {
			if err := o.runBadgeDecision(ctx, current); err != nil {
				return err
			}
		}

		if player.Role == role.Hunter && player.HunterArmed {
			shot, err := o.runHunterShot(ctx, current)
			if err != nil {
				return err
			}
			if shot != 0 {
				queue = append(queue, shot)
			}
			if o.eng.State().Ended() {
				return nil
			}
		}
	}
	return nil
}

func (o *Orchestrator) collectLastWords(ctx context.Context, state *domain.State, seat int) error {
	view, err := projection.View(state, seat)
	if err != nil {
		return err
	}
	content, err := o.source(seat).LastWords(ctx, view)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		o.fallbackNote(ctx, state.ID, seat, err)
		return nil
	}
	if content == "" {
		return nil
	}
	evt, err := o.eng.SubmitLastWords(seat, content)
	if err != nil {
		return err
	}
	return o.persist(ctx, o.eng.State(), []event.Event{evt})
}

func (o *Orchestrator) runBadgeDecision(ctx context.Context, seat int) error {
	state := o.eng.State()
	heirs := state.AliveSeats()

	view, err := projection.View(&state, seat)
	if err != nil {
		return err
	}
	heir, err := o.source(seat).BadgeDecision(ctx, view, heirs)
	if err != nil || (heir != 0 && !containsSeat(heirs, heir)) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err == nil {
			err = fmt.Errorf("illegal badge heir %d", heir)
		}
		o.fallbackNote(ctx, state.ID, seat, err)
		heir = 0
	}

	act := action.Action{Type: action.TypeTearBadge, ActorSeat: seat}
	if heir != 0 {
		act = action.Action{Type: action.TypePassBadge, ActorSeat: seat, TargetSeat: heir}
	}
	events, err := o.eng.SubmitBadgeDecision(act)
	if err != nil {
		return err
	}
	return o.persist(ctx, o.eng.State(), events)
}

// runHunterShot returns the seat the hunter took down, or 0.
func (o *Orchestrator) runHunterShot(ctx context.Context, seat int) (int, error) {
	targets := o.eng.ValidHunterTargets(seat)
	target, err := o.chooseSeat(ctx, seat, targets, false, o.source(seat).HunterShoot)
	if err != nil {
		return 0, err
	}
	if target == 0 {
		return 0, nil
	}
	outcome, err := o.eng.SubmitHunterShot(action.Action{
		Type: action.TypeHunterShoot, ActorSeat: seat, TargetSeat: target,
	})
	if err != nil {
		return 0, err
	}
	if err := o.persist(ctx, o.eng.State(), outcome.Events); err != nil {
		return 0, err
	}
	return target, nil
}

// runElection holds the day-1 sheriff election, including the single
// re-vote among tied candidates.
func (o *Orchestrator) runElection(ctx context.Context) error {
	state := o.eng.State()

	var candidates []int
	for _, seat := range state.AliveSeats() {
		view, err := projection.View(&state, seat)
		if err != nil {
			return err
		}
		run, err := o.source(seat).RunForSheriff(ctx, view)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			o.fallbackNote(ctx, state.ID, seat, err)
			continue
		}
		if run {
			candidates = append(candidates, seat)
		}
	}

	res, err := o.electionRound(ctx, candidates)
	if err != nil {
		return err
	}
	if res.Tie {
		res, err = o.electionRound(ctx, res.TiedSeats)
		if err != nil {
			return err
		}
	}
	if res.SheriffSeat != 0 {
		o.logger.Printf("game %s: seat %d elected sheriff", state.ID, res.SheriffSeat)
	}
	return nil
}

func (o *Orchestrator) electionRound(ctx context.Context, candidates []int) (engineElection, error) {
	state := o.eng.State()

	var ballots []action.Action
	for _, seat := range state.AliveSeats() {
		if containsSeat(candidates, seat) {
			continue
		}
		target, err := o.chooseSeat(ctx, seat, candidates, false, o.source(seat).SheriffVote)
		if err != nil {
			return engineElection{}, err
		}
		if target == 0 {
			continue
		}
		ballots = append(ballots, action.Action{
			Type: action.TypeSheriffVote, ActorSeat: seat, TargetSeat: target,
		})
	}

	res, err := o.eng.SubmitSheriffElection(candidates, ballots)
	if err != nil {
		return engineElection{}, err
	}
	if err := o.persist(ctx, o.eng.State(), res.Events); err != nil {
		return engineElection{}, err
	}
	return engineElection{SheriffSeat: res.SheriffSeat, Tie: res.Tie, TiedSeats: res.TiedSeats}, nil
}

type engineElection struct {
	SheriffSeat int
	Tie         bool
	TiedSeats   []int
}

// runSpeeches collects speeches in seat order. A living wolf may
// self-explode instead of speaking, which ends discussion on the spot;
// the return value reports whether that happened.
func (o *Orchestrator) runSpeeches(ctx context.Context) (bool, error) {
	state := o.eng.State()
	allowExplode := state.Config.Variants.AllowWolfSelfExplode

	var speeches []action.Action
	for _, player := range state.AlivePlayers() {
		view, err := projection.View(&state, player.Seat)
		if err != nil {
			return false, err
		}
		src := o.source(player.Seat)

		if allowExplode && player.Role == role.Werewolf {
			explode, err := src.SelfExplode(ctx, view)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return false, ctxErr
				}
				o.fallbackNote(ctx, state.ID, player.Seat, err)
				explode = false
			}
			if explode {
				if len(speeches) > 0 {
					events, err := o.eng.SubmitSpeeches(speeches)
					if err != nil {
						return false, err
					}
					if err := o.persist(ctx, o.eng.State(), events); err != nil {
						return false, err
					}
				}
				outcome, err := o.eng.SubmitSelfExplode(action.Action{
					Type: action.TypeWolfSelfExplode, ActorSeat: player.Seat,
				})
				if err != nil {
					return false, err
				}
				if err := o.persist(ctx, o.eng.State(), outcome.Events); err != nil {
					return false, err
				}
				if !o.eng.State().Ended() {
					if err := o.deathReactions(ctx, player.Seat, false); err != nil {
						return false, err
					}
				}
				return true, nil
			}
		}

		content, err := src.Speech(ctx, view)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return false, ctxErr
			}
			o.fallbackNote(ctx, state.ID, player.Seat, err)
			continue
		}
		if content == "" {
			continue
		}
		speeches = append(speeches, action.Action{
			Type: action.TypeSpeech, ActorSeat: player.Seat, Content: content,
		})
	}

	if len(speeches) == 0 {
		return false, nil
	}
	events, err := o.eng.SubmitSpeeches(speeches)
	if err != nil {
		return false, err
	}
	return false, o.persist(ctx, o.eng.State(), events)
}

// runVote tallies the lynch vote, runs the single re-vote on a tie,
// and plays out the lynch cascade.
func (o *Orchestrator) runVote(ctx context.Context) error {
	ballots, err := o.collectBallots(ctx, nil)
	if err != nil {
		return err
	}
	outcome, res, err := o.eng.SubmitVotes(ballots)
	if err != nil {
		return err
	}
	if err := o.persist(ctx, o.eng.State(), outcome.Events); err != nil {
		return err
	}

	if res.Tie && len(o.eng.RevotePending()) > 0 {
		ballots, err = o.collectBallots(ctx, res.TiedSeats)
		if err != nil {
			return err
		}
		outcome, res, err = o.eng.SubmitRevotes(ballots)
		if err != nil {
			return err
		}
		if err := o.persist(ctx, o.eng.State(), outcome.Events); err != nil {
			return err
		}
	}

	if o.emitter != nil {
		state := o.eng.State()
		_ = o.emitter.GameEvent(ctx, state.ID, telemetry.EventDayResolved, map[string]string{
			"day":     fmt.Sprintf("%d", state.Day),
			"lynched": fmt.Sprintf("%d", res.TopSeat),
		})
	}

	if res.TopSeat == 0 || o.eng.State().Ended() {
		return nil
	}
	lynched := o.eng.State().PlayerBySeat(res.TopSeat)
	if lynched != nil && !lynched.Alive {
		return o.deathReactions(ctx, res.TopSeat, true)
	}
	return nil
}

// collectBallots gathers lynch votes from every living voter. A nil
// restriction means the full vote; otherwise targets are limited to
// the tied seats.
func (o *Orchestrator) collectBallots(ctx context.Context, restrict []int) ([]action.Action, error) {
	state := o.eng.State()

	var ballots []action.Action
	for _, player := range state.AlivePlayers() {
		if !player.CanVote() {
			continue
		}
		targets := o.eng.ValidVoteTargets(player.Seat)
		if restrict != nil {
			targets = intersectSeats(targets, restrict)
		}
		if len(targets) == 0 {
			continue
		}
		target, err := o.chooseSeat(ctx, player.Seat, targets, false, o.source(player.Seat).Vote)
		if err != nil {
			return nil, err
		}
		if target == 0 {
			continue
		}
		ballots = append(ballots, action.Action{
			Type: action.TypeVote, ActorSeat: player.Seat, TargetSeat: target,
		})
	}
	return ballots, nil
}

// chooseSeat asks one seat-number question and enforces legality. An
// error or illegal answer falls back: a required choice gets a random
// legal seat from the game seed, an optional one is skipped.
func (o *Orchestrator) chooseSeat(ctx context.Context, seat int, targets []int, required bool,
	decide func(context.Context, projection.PlayerView, []int) (int, error)) (int, error) {
	if len(targets) == 0 {
		return 0, nil
	}
	state := o.eng.State()
	view, err := projection.View(&state, seat)
	if err != nil {
		return 0, err
	}

	got, err := decide(ctx, view, targets)
	if err == nil {
		if got == 0 && !required {
			return 0, nil
		}
		if containsSeat(targets, got) {
			return got, nil
		}
		err = fmt.Errorf("illegal seat %d", got)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	o.fallbackNote(ctx, state.ID, seat, err)
	if !required {
		return 0, nil
	}
	return o.eng.BreakTie(targets)
}

// source returns the seat's decision source, or a fallback that
// always errors so chooseSeat substitutes a random legal choice.
func (o *Orchestrator) source(seat int) agent.Source {
	if src, ok := o.sources[seat]; ok && src != nil {
		return src
	}
	return missingSource{}
}

func (o *Orchestrator) fallbackNote(ctx context.Context, gameID string, seat int, cause error) {
	o.logger.Printf("game %s: seat %d fell back to a random choice: %v", gameID, seat, cause)
	if o.emitter != nil {
		_ = o.emitter.AgentFallback(ctx, gameID, seat, cause)
	}
}

// persist journals events and stores the snapshot when stores are
// configured. A persistence failure aborts the game; the journal must
// never silently diverge from play.
func (o *Orchestrator) persist(ctx context.Context, state domain.State, events []event.Event) error {
	if o.events != nil {
		for _, evt := range events {
			if _, err := o.events.AppendEvent(ctx, evt); err != nil {
				return fmt.Errorf("append event: %w", err)
			}
		}
	}
	if o.games != nil {
		if err := o.games.PutGame(ctx, state); err != nil {
			return fmt.Errorf("put game: %w", err)
		}
	}
	return nil
}

func aliveSeat(state *domain.State, r role.Role) int {
	for _, p := range state.AliveByRole(r) {
		return p.Seat
	}
	return 0
}

func containsSeat(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

func intersectSeats(a, b []int) []int {
	var out []int
	for _, s := range a {
		if containsSeat(b, s) {
			out = append(out, s)
		}
	}
	return out
}

// missingSource substitutes for an unconfigured seat; every decision
// errors, which routes straight to the random legal fallback.
type missingSource struct{}

func (missingSource) err() error { return fmt.Errorf("no decision source configured") }

func (m missingSource) WolfKill(context.Context, projection.PlayerView, []int) (int, error) {
	return 0, m.err()
}
func (m missingSource) GuardProtect(context.Context, projection.PlayerView, []int) (int, error) {
	return 0, m.err()
}
func (m missingSource) SeerCheck(context.Context, projection.PlayerView, []int) (int, error) {
	return 0, m.err()
}
func (m missingSource) WitchAct(context.Context, projection.PlayerView, int, bool, []int) (agent.WitchDecision, error) {
	return agent.WitchDecision{}, m.err()
}
func (m missingSource) RunForSheriff(context.Context, projection.PlayerView) (bool, error) {
	return false, m.err()
}
func (m missingSource) SheriffVote(context.Context, projection.PlayerView, []int) (int, error) {
	return 0, m.err()
}
func (m missingSource) Speech(context.Context, projection.PlayerView) (string, error) {
	return "", m.err()
}
func (m missingSource) LastWords(context.Context, projection.PlayerView) (string, error) {
	return "", m.err()
}
func (m missingSource) Vote(context.Context, projection.PlayerView, []int) (int, error) {
	return 0, m.err()
}
func (m missingSource) HunterShoot(context.Context, projection.PlayerView, []int) (int, error) {
	return 0, m.err()
}
func (m missingSource) BadgeDecision(context.Context, projection.PlayerView, []int) (int, error) {
	return 0, m.err()
}
func (m missingSource) SelfExplode(context.Context, projection.PlayerView) (bool, error) {
	return false, m.err()
}
