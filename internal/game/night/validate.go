package night

import (
	"fmt"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/action"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// extract sorts the batch into per-role slots, rejecting duplicates and
// non-night action types. Arrival order within the batch carries no
// meaning; precedence is fixed by role.
func extract(actions []action.Action) (*batch, error) {
	b := &batch{}
	for _, act := range actions {
		if err := act.Validate(); err != nil {
			return nil, err
		}

		var slot **action.Action
		switch act.Type {
		case action.TypeWolfKill:
			slot = &b.wolfKill
		case action.TypeSeerCheck:
			slot = &b.seerCheck
		case action.TypeWitchCure:
			slot = &b.cure
		case action.TypeWitchPoison:
			slot = &b.poison
		case action.TypeGuardProtect:
			slot = &b.guard
		default:
			return nil, apperrors.New(apperrors.CodePhaseMismatch,
				fmt.Sprintf("%s is not a night action", act.Type))
		}
		if *slot != nil {
			return nil, apperrors.New(apperrors.CodeDuplicateAction,
				fmt.Sprintf("duplicate %s in night batch", act.Type))
		}
		copied := act
		*slot = &copied
	}
	return b, nil
}

// validate checks every action in the batch against the pre-night
// state. Nothing mutates until the whole batch is legal.
func validate(state *domain.State, b *batch) error {
	if b.wolfKill != nil {
		if err := requireActor(state, b.wolfKill, role.Werewolf); err != nil {
			return err
		}
		target, err := requireLivingTarget(state, b.wolfKill)
		if err != nil {
			return err
		}
		if target.Role == role.Werewolf && !state.Config.Variants.AllowWolfSelfKnife {
			return apperrors.New(apperrors.CodeSelfKnifeForbidden,
				fmt.Sprintf("seat %d is a werewolf and self-knifing is disabled", target.Seat))
		}
	}

	if b.guard != nil {
		guard, err := requireActorPlayer(state, b.guard, role.Guard)
		if err != nil {
			return err
		}
		target, err := requireLivingTarget(state, b.guard)
		if err != nil {
			return err
		}
		if target.Seat == guard.GuardLastProtected {
			return apperrors.WithMetadata(apperrors.CodeGuardRepeatTarget,
				fmt.Sprintf("seat %d was protected last night", target.Seat),
				map[string]string{"seat": fmt.Sprint(target.Seat)})
		}
		if target.Seat == guard.Seat && !state.Config.Variants.GuardCanSelfGuard {
			return apperrors.New(apperrors.CodeSelfGuardForbidden, "self-guarding is disabled")
		}
	}

	if b.cure != nil || b.poison != nil {
		if b.cure != nil && b.poison != nil && !state.Config.Variants.WitchCanUseBothPotions {
			return apperrors.New(apperrors.CodeBothPotionsSameNight,
				"witch cannot use both potions in one night")
		}
	}

	if b.cure != nil {
		witch, err := requireActorPlayer(state, b.cure, role.Witch)
		if err != nil {
			return err
		}
		if !witch.WitchHasCure {
			return apperrors.New(apperrors.CodePotionConsumed, "cure already used")
		}
		attackSeat := 0
		if b.wolfKill != nil {
			attackSeat = b.wolfKill.TargetSeat
		}
		if b.cure.TargetSeat != attackSeat || attackSeat == 0 {
			return apperrors.New(apperrors.CodeCureTargetMismatch,
				fmt.Sprintf("cure target %d is not the attack target", b.cure.TargetSeat))
		}
		if b.cure.TargetSeat == witch.Seat {
			allowed := state.Config.Variants.WitchCanSelfHeal
			if state.IsFirstNight() {
				allowed = state.Config.Variants.WitchCanSelfHealN1
			}
			if !allowed {
				return apperrors.New(apperrors.CodeSelfHealForbidden, "witch self-heal is disabled")
			}
		}
	}

	if b.poison != nil {
		witch, err := requireActorPlayer(state, b.poison, role.Witch)
		if err != nil {
			return err
		}
		if !witch.WitchHasPoison {
			return apperrors.New(apperrors.CodePotionConsumed, "poison already used")
		}
		if _, err := requireLivingTarget(state, b.poison); err != nil {
			return err
		}
	}

	if b.seerCheck != nil {
		seer, err := requireActorPlayer(state, b.seerCheck, role.Seer)
		if err != nil {
			return err
		}
		target, err := requireLivingTarget(state, b.seerCheck)
		if err != nil {
			return err
		}
		if target.Seat == seer.Seat {
			return apperrors.New(apperrors.CodeVoteTargetInvalid, "seer cannot check their own seat")
		}
		if seer.SeerHasChecked(target.Seat) {
			return apperrors.New(apperrors.CodeDuplicateAction,
				fmt.Sprintf("seat %d was already checked", target.Seat))
		}
	}

	return nil
}

func requireActor(state *domain.State, act *action.Action, want role.Role) error {
	_, err := requireActorPlayer(state, act, want)
	return err
}

func requireActorPlayer(state *domain.State, act *action.Action, want role.Role) (*domain.Player, error) {
	actor := state.PlayerBySeat(act.ActorSeat)
	if actor == nil {
		return nil, apperrors.New(apperrors.CodeActorNotFound,
			fmt.Sprintf("no player at seat %d", act.ActorSeat))
	}
	if !actor.Alive {
		return nil, apperrors.New(apperrors.CodeActorDead,
			fmt.Sprintf("seat %d is dead and cannot act", act.ActorSeat))
	}
	if actor.Role != want {
		return nil, apperrors.New(apperrors.CodeRoleMismatch,
			fmt.Sprintf("%s submitted by seat %d holding %s", act.Type, act.ActorSeat, actor.Role))
	}
	return actor, nil
}

func requireLivingTarget(state *domain.State, act *action.Action) (*domain.Player, error) {
	if act.TargetSeat == 0 {
		return nil, apperrors.New(apperrors.CodeTargetRequired,
			fmt.Sprintf("%s requires a target", act.Type))
	}
	target := state.PlayerBySeat(act.TargetSeat)
	if target == nil {
		return nil, apperrors.New(apperrors.CodeTargetNotFound,
			fmt.Sprintf("no player at seat %d", act.TargetSeat))
	}
	if !target.Alive {
		return nil, apperrors.New(apperrors.CodeTargetDead,
			fmt.Sprintf("seat %d is dead and cannot be targeted", act.TargetSeat))
	}
	return target, nil
}
