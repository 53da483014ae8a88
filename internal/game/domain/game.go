package domain

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	apperrors "github.com/louisbranch/werewolf/internal/errors"
	"github.com/louisbranch/werewolf/internal/game/event"
	"github.com/louisbranch/werewolf/internal/game/role"
	"github.com/louisbranch/werewolf/internal/platform/id"
)

// NewGame validates the configuration, seats 12 players with a seeded
// role shuffle, and returns the initial night-0 state. A configuration
// error aborts creation entirely; no partial game is produced.
//
// The shuffle is deterministic with respect to config.Seed: a single
// seed produces a single seating.
func NewGame(config GameConfig, names []string, now func() time.Time, idGenerator func() (string, error)) (State, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	if err := config.Validate(); err != nil {
		return State{}, err
	}

	if names == nil {
		names = make([]string, config.Players)
		for i := range names {
			names[i] = fmt.Sprintf("Player %d", i+1)
		}
	}
	if len(names) != config.Players {
		return State{}, apperrors.New(apperrors.CodeConfigPlayerNames,
			fmt.Sprintf("expected %d player names, got %d", config.Players, len(names)))
	}

	roles, err := role.Composition(config.RoleSet)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeConfigRoleSet, "build composition", err)
	}

	rng := rand.New(rand.NewSource(config.Seed))
	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	gameID, err := idGenerator()
	if err != nil {
		return State{}, fmt.Errorf("generate game id: %w", err)
	}

	players := make([]Player, config.Players)
	for i := range players {
		playerID, err := idGenerator()
		if err != nil {
			return State{}, fmt.Errorf("generate player id: %w", err)
		}
		r := roles[i]
		players[i] = Player{
			ID:        playerID,
			Name:      names[i],
			Seat:      i + 1,
			Role:      r,
			Alignment: role.AlignmentOf(r),
			Alive:     true,
		}
		switch r {
		case role.Witch:
			players[i].WitchHasCure = true
			players[i].WitchHasPoison = true
		case role.Hunter:
			players[i].HunterArmed = true
		}
	}

	state := State{
		ID:      gameID,
		Config:  config,
		Day:     0,
		Phase:   PhaseNight,
		Players: players,
	}

	payload, err := json.Marshal(event.GameStartedPayload{
		RoleSet:     string(config.RoleSet),
		PlayerCount: config.Players,
		Seed:        config.Seed,
	})
	if err != nil {
		return State{}, fmt.Errorf("marshal start payload: %w", err)
	}
	state.AppendEvents(event.Event{
		GameID:      gameID,
		Type:        event.TypeGameStarted,
		Timestamp:   now().UTC(),
		Day:         0,
		Phase:       string(PhaseNight),
		Visibility:  event.Classify(event.TypeGameStarted),
		PayloadJSON: payload,
	})

	return state, nil
}

// ValidateSeating checks a seated game against its configured
// composition: 12 roles, exactly 4 werewolves, matching the set.
func ValidateSeating(state State) error {
	roles := make([]role.Role, len(state.Players))
	for i, p := range state.Players {
		roles[i] = p.Role
	}
	if err := role.ValidateComposition(roles, state.Config.RoleSet); err != nil {
		return apperrors.Wrap(apperrors.CodeConfigComposition, "invalid seating", err)
	}
	return nil
}
