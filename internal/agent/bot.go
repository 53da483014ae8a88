package agent

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/louisbranch/werewolf/internal/game/projection"
	"github.com/louisbranch/werewolf/internal/random"
)

// Bot picks uniformly among legal choices using a seeded source, so a
// game of bots replays identically from the same seeds. It is also the
// fallback brain when a richer source returns garbage.
type Bot struct {
	rng *rand.Rand
}

// NewBot returns a bot whose choices are deterministic for the seed.
func NewBot(seed int64) *Bot {
	return &Bot{rng: random.New(seed)}
}

func (b *Bot) pick(targets []int) int {
	if len(targets) == 0 {
		return 0
	}
	return targets[b.rng.Intn(len(targets))]
}

func (b *Bot) WolfKill(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.pick(targets), nil
}

func (b *Bot) GuardProtect(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.pick(targets), nil
}

func (b *Bot) SeerCheck(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.pick(targets), nil
}

func (b *Bot) WitchAct(ctx context.Context, view projection.PlayerView, attackSeat int, canCure bool, poisonTargets []int) (WitchDecision, error) {
	if err := ctx.Err(); err != nil {
		return WitchDecision{}, err
	}
	var decision WitchDecision
	if canCure && attackSeat != 0 {
		decision.Cure = true
	}
	// Poison sparingly; a random living target one night in four.
	if !decision.Cure && len(poisonTargets) > 0 && b.rng.Intn(4) == 0 {
		decision.PoisonSeat = b.pick(poisonTargets)
	}
	return decision, nil
}

func (b *Bot) RunForSheriff(ctx context.Context, view projection.PlayerView) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return b.rng.Intn(3) == 0, nil
}

func (b *Bot) SheriffVote(ctx context.Context, view projection.PlayerView, candidates []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.pick(candidates), nil
}

func (b *Bot) Speech(ctx context.Context, view projection.PlayerView) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("seat %d has nothing to add", view.Seat), nil
}

func (b *Bot) LastWords(ctx context.Context, view projection.PlayerView) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("seat %d says goodbye", view.Seat), nil
}

func (b *Bot) Vote(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.pick(targets), nil
}

func (b *Bot) HunterShoot(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.pick(targets), nil
}

func (b *Bot) BadgeDecision(ctx context.Context, view projection.PlayerView, heirs []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(heirs) == 0 || b.rng.Intn(3) == 0 {
		return 0, nil
	}
	return b.pick(heirs), nil
}

func (b *Bot) SelfExplode(ctx context.Context, view projection.PlayerView) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	// Explosions are rare; roughly one wolf-day in twenty.
	return b.rng.Intn(20) == 0, nil
}
