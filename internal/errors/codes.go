package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Invalid action errors
	CodeActorNotFound       Code = "ACTION_ACTOR_NOT_FOUND"
	CodeActorDead           Code = "ACTION_ACTOR_DEAD"
	CodeTargetNotFound      Code = "ACTION_TARGET_NOT_FOUND"
	CodeTargetDead          Code = "ACTION_TARGET_DEAD"
	CodeRoleMismatch        Code = "ACTION_ROLE_MISMATCH"
	CodeTargetRequired      Code = "ACTION_TARGET_REQUIRED"
	CodeDuplicateAction     Code = "ACTION_DUPLICATE"
	CodeSelfVoteForbidden   Code = "VOTE_SELF_FORBIDDEN"
	CodeVoterIneligible     Code = "VOTE_VOTER_INELIGIBLE"
	CodeVoteTargetInvalid   Code = "VOTE_TARGET_INVALID"
	CodePotionConsumed      Code = "WITCH_POTION_CONSUMED"
	CodeBothPotionsSameNight Code = "WITCH_BOTH_POTIONS_SAME_NIGHT"
	CodeCureTargetMismatch  Code = "WITCH_CURE_TARGET_MISMATCH"
	CodeSelfHealForbidden   Code = "WITCH_SELF_HEAL_FORBIDDEN"
	CodeGuardRepeatTarget   Code = "GUARD_REPEAT_TARGET"
	CodeSelfGuardForbidden  Code = "GUARD_SELF_FORBIDDEN"
	CodeSelfKnifeForbidden  Code = "WOLF_SELF_KNIFE_FORBIDDEN"
	CodeSelfExplodeForbidden Code = "WOLF_SELF_EXPLODE_FORBIDDEN"
	CodeHunterDisarmed      Code = "HUNTER_DISARMED"
	CodeCandidateIneligible Code = "SHERIFF_CANDIDATE_INELIGIBLE"
	CodeBadgeTorn           Code = "SHERIFF_BADGE_TORN"
	CodeBadgeHolderMismatch Code = "SHERIFF_BADGE_HOLDER_MISMATCH"

	// Configuration errors (fatal at game creation)
	CodeConfigPlayerCount Code = "CONFIG_PLAYER_COUNT"
	CodeConfigRoleSet     Code = "CONFIG_ROLE_SET"
	CodeConfigComposition Code = "CONFIG_COMPOSITION"
	CodeConfigVoteWeight  Code = "CONFIG_VOTE_WEIGHT"
	CodeConfigWinMode     Code = "CONFIG_WIN_MODE"
	CodeConfigPlayerNames Code = "CONFIG_PLAYER_NAMES"

	// Lifecycle errors
	CodeGameEnded           Code = "GAME_ENDED"
	CodePhaseMismatch       Code = "GAME_PHASE_MISMATCH"
	CodeElectionAlreadyHeld Code = "SHERIFF_ELECTION_ALREADY_HELD"
	CodeElectionWrongDay    Code = "SHERIFF_ELECTION_WRONG_DAY"
	CodeNoRevotePending     Code = "VOTE_NO_REVOTE_PENDING"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeActorNotFound,
		CodeActorDead,
		CodeTargetNotFound,
		CodeTargetDead,
		CodeRoleMismatch,
		CodeTargetRequired,
		CodeDuplicateAction,
		CodeSelfVoteForbidden,
		CodeVoterIneligible,
		CodeVoteTargetInvalid,
		CodePotionConsumed,
		CodeBothPotionsSameNight,
		CodeCureTargetMismatch,
		CodeSelfHealForbidden,
		CodeGuardRepeatTarget,
		CodeSelfGuardForbidden,
		CodeSelfKnifeForbidden,
		CodeSelfExplodeForbidden,
		CodeHunterDisarmed,
		CodeCandidateIneligible,
		CodeConfigPlayerCount,
		CodeConfigRoleSet,
		CodeConfigComposition,
		CodeConfigVoteWeight,
		CodeConfigWinMode,
		CodeConfigPlayerNames:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow the operation
	case CodeGameEnded,
		CodePhaseMismatch,
		CodeBadgeTorn,
		CodeBadgeHolderMismatch,
		CodeElectionAlreadyHeld,
		CodeElectionWrongDay,
		CodeNoRevotePending:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
