// Package night resolves one night's submitted actions as a single
// atomic batch. All inputs are collected before any resolution step
// runs; no resolver output is visible to another role's decision within
// the same night.
package night

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/action"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// Death records one fatality produced by night resolution.
type Death struct {
	Seat  int
	Cause string // event.KillCauseAttack or event.KillCausePoison
}

// Resolution is the outcome of resolving one night.
type Resolution struct {
	State      domain.State
	Events     []event.Event
	Deaths     []Death
	AttackSeat int
	SavedSeat  int // 0 when the attack went through or no attack occurred
}

// batch holds at most one action per night role, extracted and
// validated before anything mutates.
type batch struct {
	wolfKill  *action.Action
	seerCheck *action.Action
	cure      *action.Action
	poison    *action.Action
	guard     *action.Action
}

// Resolve validates the whole batch against the pre-night state and, if
// every action is legal, applies the fixed precedence order: werewolf
// attack, guard block, witch cure, witch poison, death finalization.
// Any invalid action rejects the entire batch before mutation.
func Resolve(state domain.State, actions []action.Action, now func() time.Time) (Resolution, error) {
	if now == nil {
		now = time.Now
	}
	if state.Ended() {
		return Resolution{}, apperrors.New(apperrors.CodeGameEnded, "game has ended")
	}
	if state.Phase != domain.PhaseNight {
		return Resolution{}, apperrors.New(apperrors.CodePhaseMismatch,
			fmt.Sprintf("night actions submitted during %s", state.Phase))
	}

	b, err := extract(actions)
	if err != nil {
		return Resolution{}, err
	}
	if err := validate(&state, b); err != nil {
		return Resolution{}, err
	}

	resolved := state.Clone()
	resolution := Resolution{}
	var events []event.Event

	newEvent := func(t event.Type) event.Event {
		return event.New(state.ID, t, state.Day, string(domain.PhaseNight), now())
	}

	// Guard protection.
	protectedSeat := 0
	if b.guard != nil {
		protectedSeat = b.guard.TargetSeat
		evt := newEvent(event.TypeGuardAction)
		evt.ActorSeat = b.guard.ActorSeat
		evt.TargetSeat = b.guard.TargetSeat
		evt.Recipients = []int{b.guard.ActorSeat}
		events = append(events, evt)
	}
	// Repeat-target tracking covers only the immediately preceding night.
	for i := range resolved.Players {
		if resolved.Players[i].Role == role.Guard {
			resolved.Players[i].GuardLastProtected = protectedSeat
		}
	}

	// Werewolf attack target.
	attackSeat := 0
	if b.wolfKill != nil {
		attackSeat = b.wolfKill.TargetSeat
	}
	resolution.AttackSeat = attackSeat

	// Witch decisions.
	curedSeat := 0
	poisonedSeat := 0
	if b.cure != nil || b.poison != nil {
		witch := witchPlayer(&resolved)
		if b.cure != nil {
			curedSeat = b.cure.TargetSeat
			witch.WitchHasCure = false
		}
		if b.poison != nil {
			poisonedSeat = b.poison.TargetSeat
			witch.WitchHasPoison = false
		}
		evt := newEvent(event.TypeWitchAction)
		evt.ActorSeat = witch.Seat
		if b.cure != nil {
			evt.TargetSeat = curedSeat
		} else {
			evt.TargetSeat = poisonedSeat
		}
		evt.Recipients = []int{witch.Seat}
		evt.PayloadJSON = marshalPayload(event.WitchActionPayload{
			Cure:   b.cure != nil,
			Poison: b.poison != nil,
		})
		events = append(events, evt)
	}

	// Seer check: result stored privately, never exposed to other roles.
	if b.seerCheck != nil {
		seer := resolved.PlayerBySeat(b.seerCheck.ActorSeat)
		target := resolved.PlayerBySeat(b.seerCheck.TargetSeat)
		seer.SeerChecks = append(seer.SeerChecks, domain.SeerCheck{
			TargetSeat: target.Seat,
			Result:     target.Alignment,
			Night:      state.Day,
		})
		evt := newEvent(event.TypeSeerCheck)
		evt.ActorSeat = seer.Seat
		evt.TargetSeat = target.Seat
		evt.Recipients = []int{seer.Seat}
		evt.PayloadJSON = marshalPayload(event.SeerCheckPayload{Result: string(target.Alignment)})
		events = append(events, evt)
	}

	// Death finalization. The attack resolves against guard block and
	// witch cure; poison is an independent, unblockable kill.
	variants := state.Config.Variants
	if attackSeat != 0 {
		target := resolved.PlayerBySeat(attackSeat)
		blocked := protectedSeat == attackSeat
		cured := curedSeat == attackSeat

		switch {
		case blocked && cured && variants.SameGuardSameSaveKills:
			// Double-marked death: protection and cure cancel out.
			target.Alive = false
			resolution.Deaths = append(resolution.Deaths, Death{Seat: attackSeat, Cause: event.KillCauseAttack})
			if target.Role == role.Hunter && !variants.HunterCanShootIfNightKilled {
				target.HunterArmed = false
			}
			kill := newEvent(event.TypeNightKill)
			kill.TargetSeat = attackSeat
			kill.PayloadJSON = marshalPayload(event.NightKillPayload{Cause: event.KillCauseAttack})
			events = append(events, kill)
		case blocked || cured:
			resolution.SavedSeat = attackSeat
			payload := marshalPayload(event.SavedPayload{ByGuard: blocked, ByWitch: cured})
			saved := newEvent(event.TypeSaved)
			saved.TargetSeat = attackSeat
			saved.PayloadJSON = payload
			if blocked && b.guard != nil {
				saved.Recipients = append(saved.Recipients, b.guard.ActorSeat)
			}
			if cured && b.cure != nil {
				saved.Recipients = append(saved.Recipients, b.cure.ActorSeat)
			}
			events = append(events, saved)
		default:
			target.Alive = false
			resolution.Deaths = append(resolution.Deaths, Death{Seat: attackSeat, Cause: event.KillCauseAttack})
			if target.Role == role.Hunter {
				if poisonedSeat == attackSeat {
					if !variants.HunterCanShootIfPoisoned {
						target.HunterArmed = false
					}
				} else if !variants.HunterCanShootIfNightKilled {
					target.HunterArmed = false
				}
			}
			kill := newEvent(event.TypeNightKill)
			kill.TargetSeat = attackSeat
			kill.PayloadJSON = marshalPayload(event.NightKillPayload{Cause: event.KillCauseAttack})
			events = append(events, kill)
		}
	}

	if poisonedSeat != 0 {
		target := resolved.PlayerBySeat(poisonedSeat)
		if target.Alive {
			target.Alive = false
			resolution.Deaths = append(resolution.Deaths, Death{Seat: poisonedSeat, Cause: event.KillCausePoison})
			if target.Role == role.Hunter && !variants.HunterCanShootIfPoisoned {
				target.HunterArmed = false
			}
			kill := newEvent(event.TypeNightKill)
			kill.TargetSeat = poisonedSeat
			kill.Visibility = event.VisibilityPrivate
			kill.Recipients = []int{witchPlayer(&resolved).Seat}
			kill.PayloadJSON = marshalPayload(event.NightKillPayload{Cause: event.KillCausePoison})
			events = append(events, kill)
		}
	}

	resolved.AppendEvents(events...)
	resolution.State = resolved
	resolution.Events = events
	return resolution, nil
}

func marshalPayload(v any) []byte {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal payload: %v", err))
	}
	return payload
}

func witchPlayer(state *domain.State) *domain.Player {
	for i := range state.Players {
		if state.Players[i].Role == role.Witch {
			return &state.Players[i]
		}
	}
	return nil
}
