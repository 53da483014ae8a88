package agent

import (
	"context"
	"testing"

	"github.com/louisbranch/werewolf/internal/game/projection"
)

var (
	_ Source = (*Bot)(nil)
	_ Source = (*Scripted)(nil)
	_ Source = (*OpenAI)(nil)
)

func TestBot_Deterministic(t *testing.T) {
	ctx := context.Background()
	view := projection.PlayerView{Seat: 3}
	targets := []int{1, 2, 4, 5, 6, 7, 8}

	first := NewBot(42)
	second := NewBot(42)
	for i := 0; i < 20; i++ {
		a, err := first.Vote(ctx, view, targets)
		if err != nil {
			t.Fatal(err)
		}
		b, err := second.Vote(ctx, view, targets)
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Fatalf("draw %d: same seed chose %d and %d", i, a, b)
		}
	}
}

func TestBot_LegalChoices(t *testing.T) {
	ctx := context.Background()
	view := projection.PlayerView{Seat: 3}
	targets := []int{2, 5, 9}
	bot := NewBot(7)

	for i := 0; i < 50; i++ {
		seat, err := bot.Vote(ctx, view, targets)
		if err != nil {
			t.Fatal(err)
		}
		if !containsSeat(targets, seat) {
			t.Fatalf("bot chose illegal seat %d", seat)
		}
	}

	seat, err := bot.GuardProtect(ctx, view, nil)
	if err != nil {
		t.Fatal(err)
	}
	if seat != 0 {
		t.Fatalf("empty target list should skip, got seat %d", seat)
	}
}

func TestBot_WitchCuresWhenPossible(t *testing.T) {
	ctx := context.Background()
	bot := NewBot(1)

	decision, err := bot.WitchAct(ctx, projection.PlayerView{Seat: 6}, 4, true, []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !decision.Cure {
		t.Fatal("witch bot should cure a known victim while the cure is held")
	}
	if decision.PoisonSeat != 0 {
		t.Fatal("cure night should not also poison")
	}
}

func TestBot_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bot := NewBot(1)
	if _, err := bot.Vote(ctx, projection.PlayerView{Seat: 1}, []int{2}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestScripted_ReplaysQueues(t *testing.T) {
	ctx := context.Background()
	view := projection.PlayerView{Seat: 1}
	src := &Scripted{
		WolfKills: []int{9, 10},
		Votes:     []int{5},
		Speeches:  []string{"trust me"},
		WitchChoices: []WitchDecision{
			{Cure: true},
			{PoisonSeat: 3},
		},
	}

	for i, want := range []int{9, 10, 0} {
		got, err := src.WolfKill(ctx, view, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("wolf kill %d: got %d, want %d", i, got, want)
		}
	}

	if got, _ := src.Vote(ctx, view, nil); got != 5 {
		t.Fatalf("vote: got %d, want 5", got)
	}
	if got, _ := src.Vote(ctx, view, nil); got != 0 {
		t.Fatalf("exhausted vote queue should abstain, got %d", got)
	}

	if got, _ := src.Speech(ctx, view); got != "trust me" {
		t.Fatalf("speech: got %q", got)
	}

	first, _ := src.WitchAct(ctx, view, 4, true, nil)
	if !first.Cure {
		t.Fatal("first witch choice should cure")
	}
	second, _ := src.WitchAct(ctx, view, 0, false, nil)
	if second.PoisonSeat != 3 {
		t.Fatalf("second witch choice: got poison seat %d, want 3", second.PoisonSeat)
	}
	third, _ := src.WitchAct(ctx, view, 0, false, nil)
	if third.Cure || third.PoisonSeat != 0 {
		t.Fatal("exhausted witch queue should pass")
	}
}

func TestParseSeat(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "7", want: 7},
		{in: " seat 12, please", want: 12},
		{in: "I vote for seat 3.", want: 3},
		{in: "0", want: 0},
		{in: "nobody", wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseSeat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseSeat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSeat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseSeat(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
