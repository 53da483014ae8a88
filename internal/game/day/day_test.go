package day

import (
	"testing"
	"time"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/action"
	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
)

// Fixed seating used across day tests: seats 1-4 werewolves, 5 seer,
// 6 witch, 7 hunter, 8 village idiot, 9-12 villagers.
const (
	seatWolf  = 1
	seatSeer  = 5
	seatWitch = 6
	seatHunt  = 7
	seatIdiot = 8
	seatVill  = 9
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
}

func testState() domain.State {
	roles := []role.Role{
		role.Werewolf, role.Werewolf, role.Werewolf, role.Werewolf,
		role.Seer, role.Witch, role.Hunter, role.VillageIdiot,
		role.Villager, role.Villager, role.Villager, role.Villager,
	}
	cfg := domain.DefaultGameConfig()
	cfg.RoleSet = role.SetB
	state := domain.State{
		ID:     "game-day-test",
		Config: cfg,
		Day:    1,
		Phase:  domain.PhaseDay,
	}
	for i, r := range roles {
		p := domain.Player{
			ID:        "p",
			Name:      "Player",
			Seat:      i + 1,
			Role:      r,
			Alignment: role.AlignmentOf(r),
			Alive:     true,
		}
		switch r {
		case role.Witch:
			p.WitchHasCure = true
			p.WitchHasPoison = true
		case role.Hunter:
			p.HunterArmed = true
		}
		state.Players = append(state.Players, p)
	}
	return state
}

func ballot(voter, target int) action.Action {
	return action.Action{Type: action.TypeSheriffVote, ActorSeat: voter, TargetSeat: target}
}

func vote(voter, target int) action.Action {
	return action.Action{Type: action.TypeVote, ActorSeat: voter, TargetSeat: target}
}

func TestResolveSheriffElection_PluralityWinner(t *testing.T) {
	candidates := []int{seatVill, seatVill + 1}
	ballots := []action.Action{
		ballot(seatWolf, seatVill),
		ballot(seatWolf+1, seatVill),
		ballot(seatSeer, seatVill+1),
	}

	res, err := ResolveSheriffElection(testState(), candidates, ballots, false, fixedNow)
	if err != nil {
		t.Fatalf("election: %v", err)
	}

	if res.SheriffSeat != seatVill {
		t.Fatalf("expected sheriff seat %d, got %d", seatVill, res.SheriffSeat)
	}
	if !res.State.ElectionHeld || res.State.SheriffSeat != seatVill {
		t.Error("election outcome not applied to state")
	}
	if !res.State.PlayerBySeat(seatVill).Sheriff {
		t.Error("winner not marked sheriff")
	}
}

func TestResolveSheriffElection_Tie(t *testing.T) {
	candidates := []int{seatVill, seatVill + 1}
	ballots := []action.Action{
		ballot(seatWolf, seatVill),
		ballot(seatWolf+1, seatVill+1),
	}

	res, err := ResolveSheriffElection(testState(), candidates, ballots, false, fixedNow)
	if err != nil {
		t.Fatalf("election: %v", err)
	}

	if !res.Tie || len(res.TiedSeats) != 2 {
		t.Fatalf("expected two-way tie, got %+v", res)
	}
	if res.State.ElectionHeld {
		t.Error("first-round tie must leave the election open for one re-vote")
	}

	// A tied re-vote closes the election with no sheriff.
	res2, err := ResolveSheriffElection(res.State, res.TiedSeats, ballots, true, fixedNow)
	if err != nil {
		t.Fatalf("re-vote: %v", err)
	}
	if !res2.State.ElectionHeld || res2.State.SheriffSeat != 0 {
		t.Errorf("tied re-vote should close election without a sheriff: %+v", res2)
	}
}

func TestResolveSheriffElection_NoCandidates(t *testing.T) {
	res, err := ResolveSheriffElection(testState(), nil, nil, false, fixedNow)
	if err != nil {
		t.Fatalf("election: %v", err)
	}
	if !res.State.ElectionHeld || res.SheriffSeat != 0 {
		t.Errorf("empty ballot should close the election with no sheriff: %+v", res)
	}
}

func TestResolveSheriffElection_Guards(t *testing.T) {
	state := testState()
	state.ElectionHeld = true
	if _, err := ResolveSheriffElection(state, nil, nil, false, fixedNow); !apperrors.IsCode(err, apperrors.CodeElectionAlreadyHeld) {
		t.Fatalf("expected already-held rejection, got %v", err)
	}

	state = testState()
	state.Day = 2
	if _, err := ResolveSheriffElection(state, nil, nil, false, fixedNow); !apperrors.IsCode(err, apperrors.CodeElectionWrongDay) {
		t.Fatalf("expected wrong-day rejection, got %v", err)
	}

	state = testState()
	state.PlayerBySeat(seatVill).Alive = false
	if _, err := ResolveSheriffElection(state, []int{seatVill}, nil, false, fixedNow); !apperrors.IsCode(err, apperrors.CodeCandidateIneligible) {
		t.Fatalf("expected ineligible-candidate rejection, got %v", err)
	}

	// Candidates cannot cast ballots.
	candidates := []int{seatVill}
	if _, err := ResolveSheriffElection(testState(), candidates, []action.Action{ballot(seatVill, seatVill)}, false, fixedNow); !apperrors.IsCode(err, apperrors.CodeVoterIneligible) {
		t.Fatalf("expected candidate-voter rejection, got %v", err)
	}
}

func TestResolveVotes_SheriffWeightBreaksTie(t *testing.T) {
	state := testState()
	state.ElectionHeld = true
	state.SheriffSeat = seatSeer
	state.PlayerBySeat(seatSeer).Sheriff = true

	// One normal vote each way plus the sheriff: 2 vs 2+3 halves.
	ballots := []action.Action{
		vote(seatWolf, seatVill),
		vote(seatVill, seatWolf),
		vote(seatSeer, seatWolf),
	}

	res, err := ResolveVotes(state, ballots, nil, fixedNow)
	if err != nil {
		t.Fatalf("votes: %v", err)
	}

	if res.TopSeat != seatWolf {
		t.Fatalf("expected seat %d voted out, got %d", seatWolf, res.TopSeat)
	}
	if res.TotalsHalves[seatWolf] != 5 || res.TotalsHalves[seatVill] != 2 {
		t.Errorf("unexpected totals %v", res.TotalsHalves)
	}
}

func TestResolveVotes_TornBadgeLosesWeight(t *testing.T) {
	state := testState()
	state.ElectionHeld = true
	state.SheriffSeat = 0
	state.BadgeTorn = true

	res, err := ResolveVotes(state, []action.Action{vote(seatSeer, seatWolf)}, nil, fixedNow)
	if err != nil {
		t.Fatalf("votes: %v", err)
	}
	if res.TotalsHalves[seatWolf] != NormalVoteWeightHalves {
		t.Errorf("expected normal weight after torn badge, got %v", res.TotalsHalves)
	}
}

func TestResolveVotes_TieRequestsRevote(t *testing.T) {
	ballots := []action.Action{
		vote(seatWolf, seatVill),
		vote(seatVill, seatWolf),
	}

	res, err := ResolveVotes(testState(), ballots, nil, fixedNow)
	if err != nil {
		t.Fatalf("votes: %v", err)
	}
	if !res.Tie || res.TopSeat != 0 {
		t.Fatalf("expected tie, got %+v", res)
	}
	if len(res.TiedSeats) != 2 {
		t.Fatalf("expected two tied seats, got %v", res.TiedSeats)
	}

	// Re-vote restricted to the tied seats rejects other targets.
	_, err = ResolveVotes(res.State, []action.Action{vote(seatSeer, seatVill+1)}, res.TiedSeats, fixedNow)
	if !apperrors.IsCode(err, apperrors.CodeVoteTargetInvalid) {
		t.Fatalf("expected restricted-target rejection, got %v", err)
	}

	// A tied re-vote ends with nobody voted out.
	res2, err := ResolveVotes(res.State, ballots, res.TiedSeats, fixedNow)
	if err != nil {
		t.Fatalf("re-vote: %v", err)
	}
	if !res2.Tie || res2.TopSeat != 0 {
		t.Fatalf("expected unresolved re-vote, got %+v", res2)
	}
}

func TestResolveVotes_AbstentionsAllowed(t *testing.T) {
	res, err := ResolveVotes(testState(), nil, nil, fixedNow)
	if err != nil {
		t.Fatalf("votes: %v", err)
	}
	if res.TopSeat != 0 || res.Tie {
		t.Errorf("expected empty round with no outcome, got %+v", res)
	}
}

func TestResolveVotes_Eligibility(t *testing.T) {
	state := testState()
	state.PlayerBySeat(seatVill).Alive = false
	if _, err := ResolveVotes(state, []action.Action{vote(seatVill, seatWolf)}, nil, fixedNow); !apperrors.IsCode(err, apperrors.CodeVoterIneligible) {
		t.Fatalf("expected dead-voter rejection, got %v", err)
	}

	state = testState()
	state.PlayerBySeat(seatIdiot).IdiotRevealed = true
	if _, err := ResolveVotes(state, []action.Action{vote(seatIdiot, seatWolf)}, nil, fixedNow); !apperrors.IsCode(err, apperrors.CodeVoterIneligible) {
		t.Fatalf("expected revealed-idiot rejection, got %v", err)
	}

	if _, err := ResolveVotes(testState(), []action.Action{vote(seatVill, seatVill)}, nil, fixedNow); !apperrors.IsCode(err, apperrors.CodeSelfVoteForbidden) {
		t.Fatalf("expected self-vote rejection, got %v", err)
	}

	if _, err := ResolveVotes(testState(), []action.Action{vote(seatVill, seatWolf), vote(seatVill, seatWolf+1)}, nil, fixedNow); !apperrors.IsCode(err, apperrors.CodeDuplicateAction) {
		t.Fatalf("expected duplicate-voter rejection, got %v", err)
	}
}

func TestResolveLynch_Death(t *testing.T) {
	res, err := ResolveLynch(testState(), seatWolf, fixedNow)
	if err != nil {
		t.Fatalf("lynch: %v", err)
	}

	if res.State.PlayerBySeat(seatWolf).Alive {
		t.Error("lynched player survived")
	}
	if res.Death == nil || res.Death.Cause != event.DeathCauseLynch {
		t.Fatalf("expected lynch death, got %+v", res.Death)
	}
}

func TestResolveLynch_IdiotRevealInsteadOfDeath(t *testing.T) {
	res, err := ResolveLynch(testState(), seatIdiot, fixedNow)
	if err != nil {
		t.Fatalf("lynch: %v", err)
	}

	idiot := res.State.PlayerBySeat(seatIdiot)
	if !idiot.Alive {
		t.Error("idiot died on first lynch")
	}
	if !idiot.IdiotRevealed {
		t.Error("idiot not revealed")
	}
	if idiot.CanVote() {
		t.Error("revealed idiot kept the vote")
	}
	if res.Death != nil || !res.IdiotRevealed {
		t.Errorf("expected reveal outcome, got %+v", res)
	}

	// A second lynch kills the revealed idiot normally.
	res2, err := ResolveLynch(res.State, seatIdiot, fixedNow)
	if err != nil {
		t.Fatalf("second lynch: %v", err)
	}
	if res2.State.PlayerBySeat(seatIdiot).Alive {
		t.Error("revealed idiot survived a second lynch")
	}
}

func TestResolveLynch_HunterKeepsShot(t *testing.T) {
	res, err := ResolveLynch(testState(), seatHunt, fixedNow)
	if err != nil {
		t.Fatalf("lynch: %v", err)
	}
	if !res.State.PlayerBySeat(seatHunt).HunterArmed {
		t.Error("lynched hunter lost the dying shot")
	}
}

func TestResolveBadge_PassAndTear(t *testing.T) {
	state := testState()
	state.ElectionHeld = true
	state.SheriffSeat = seatSeer
	state.PlayerBySeat(seatSeer).Sheriff = true
	state.PlayerBySeat(seatSeer).Alive = false

	res, err := ResolveBadge(state, action.Action{Type: action.TypePassBadge, ActorSeat: seatSeer, TargetSeat: seatVill}, fixedNow)
	if err != nil {
		t.Fatalf("pass badge: %v", err)
	}
	if res.State.SheriffSeat != seatVill || !res.State.PlayerBySeat(seatVill).Sheriff {
		t.Errorf("badge not passed: sheriff seat %d", res.State.SheriffSeat)
	}
	if res.State.PlayerBySeat(seatSeer).Sheriff {
		t.Error("dead sheriff kept the badge flag")
	}

	res2, err := ResolveBadge(res.State, action.Action{Type: action.TypeTearBadge, ActorSeat: seatVill}, fixedNow)
	if err != nil {
		t.Fatalf("tear badge: %v", err)
	}
	if res2.State.SheriffSeat != 0 || !res2.State.BadgeTorn {
		t.Errorf("badge not torn: %+v", res2.State)
	}

	// Torn is permanent.
	if _, err := ResolveBadge(res2.State, action.Action{Type: action.TypePassBadge, ActorSeat: seatVill, TargetSeat: seatWolf}, fixedNow); !apperrors.IsCode(err, apperrors.CodeBadgeTorn) {
		t.Fatalf("expected torn-badge rejection, got %v", err)
	}
}

func TestResolveBadge_HolderMismatch(t *testing.T) {
	state := testState()
	state.ElectionHeld = true
	state.SheriffSeat = seatSeer

	_, err := ResolveBadge(state, action.Action{Type: action.TypeTearBadge, ActorSeat: seatVill}, fixedNow)
	if !apperrors.IsCode(err, apperrors.CodeBadgeHolderMismatch) {
		t.Fatalf("expected holder mismatch, got %v", err)
	}
}

func TestResolveBadge_PassToDeadRejected(t *testing.T) {
	state := testState()
	state.ElectionHeld = true
	state.SheriffSeat = seatSeer
	state.PlayerBySeat(seatVill).Alive = false

	_, err := ResolveBadge(state, action.Action{Type: action.TypePassBadge, ActorSeat: seatSeer, TargetSeat: seatVill}, fixedNow)
	if !apperrors.IsCode(err, apperrors.CodeTargetDead) {
		t.Fatalf("expected dead-heir rejection, got %v", err)
	}
}

func TestResolveHunterShot(t *testing.T) {
	state := testState()
	state.PlayerBySeat(seatHunt).Alive = false

	res, err := ResolveHunterShot(state, action.Action{Type: action.TypeHunterShoot, ActorSeat: seatHunt, TargetSeat: seatWolf}, fixedNow)
	if err != nil {
		t.Fatalf("hunter shot: %v", err)
	}

	if res.State.PlayerBySeat(seatWolf).Alive {
		t.Error("shot target survived")
	}
	if res.State.PlayerBySeat(seatHunt).HunterArmed {
		t.Error("hunter still armed after shooting")
	}
	if len(res.Deaths) != 1 || res.Deaths[0].Cause != event.DeathCauseHunterShot {
		t.Fatalf("expected hunter-shot death, got %v", res.Deaths)
	}
}

func TestResolveHunterShot_ShotSheriffTearsBadge(t *testing.T) {
	state := testState()
	state.ElectionHeld = true
	state.SheriffSeat = seatWolf
	state.PlayerBySeat(seatWolf).Sheriff = true
	state.PlayerBySeat(seatHunt).Alive = false

	res, err := ResolveHunterShot(state, action.Action{Type: action.TypeHunterShoot, ActorSeat: seatHunt, TargetSeat: seatWolf}, fixedNow)
	if err != nil {
		t.Fatalf("hunter shot: %v", err)
	}

	if !res.State.BadgeTorn || res.State.SheriffSeat != 0 {
		t.Error("shot sheriff's badge should tear automatically")
	}
	var torn bool
	for _, evt := range res.Events {
		if evt.Type == event.TypeBadgeTorn {
			torn = true
		}
	}
	if !torn {
		t.Error("no badge-torn event emitted")
	}
}

func TestResolveHunterShot_Guards(t *testing.T) {
	// A living hunter has no shot to fire.
	_, err := ResolveHunterShot(testState(), action.Action{Type: action.TypeHunterShoot, ActorSeat: seatHunt, TargetSeat: seatWolf}, fixedNow)
	if !apperrors.IsCode(err, apperrors.CodePhaseMismatch) {
		t.Fatalf("expected living-hunter rejection, got %v", err)
	}

	state := testState()
	state.PlayerBySeat(seatHunt).Alive = false
	state.PlayerBySeat(seatHunt).HunterArmed = false
	_, err = ResolveHunterShot(state, action.Action{Type: action.TypeHunterShoot, ActorSeat: seatHunt, TargetSeat: seatWolf}, fixedNow)
	if !apperrors.IsCode(err, apperrors.CodeHunterDisarmed) {
		t.Fatalf("expected disarmed rejection, got %v", err)
	}
}

func TestResolveWolfSelfExplode(t *testing.T) {
	res, err := ResolveWolfSelfExplode(testState(), action.Action{Type: action.TypeWolfSelfExplode, ActorSeat: seatWolf}, fixedNow)
	if err != nil {
		t.Fatalf("self-explode: %v", err)
	}

	if res.State.PlayerBySeat(seatWolf).Alive {
		t.Error("exploded werewolf survived")
	}
	if len(res.Deaths) != 1 || res.Deaths[0].Cause != event.DeathCauseSelfExplode {
		t.Fatalf("expected self-explode death, got %v", res.Deaths)
	}
}

func TestResolveWolfSelfExplode_Guards(t *testing.T) {
	state := testState()
	state.Config.Variants.AllowWolfSelfExplode = false
	_, err := ResolveWolfSelfExplode(state, action.Action{Type: action.TypeWolfSelfExplode, ActorSeat: seatWolf}, fixedNow)
	if !apperrors.IsCode(err, apperrors.CodeSelfExplodeForbidden) {
		t.Fatalf("expected variant rejection, got %v", err)
	}

	_, err = ResolveWolfSelfExplode(testState(), action.Action{Type: action.TypeWolfSelfExplode, ActorSeat: seatVill}, fixedNow)
	if !apperrors.IsCode(err, apperrors.CodeRoleMismatch) {
		t.Fatalf("expected role rejection, got %v", err)
	}
}

func TestDayResolversRejectWrongPhase(t *testing.T) {
	state := testState()
	state.Phase = domain.PhaseNight

	if _, err := ResolveVotes(state, nil, nil, fixedNow); !apperrors.IsCode(err, apperrors.CodePhaseMismatch) {
		t.Fatalf("expected phase rejection, got %v", err)
	}
	if _, err := ResolveLynch(state, seatWolf, fixedNow); !apperrors.IsCode(err, apperrors.CodePhaseMismatch) {
		t.Fatalf("expected phase rejection, got %v", err)
	}
}
