package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/louisbranch/werewolf/internal/game/projection"
)

const defaultCompletionsURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are playing a seat in a 12 player werewolf game. " +
	"Answer every question with exactly the format it asks for and nothing else."

// OpenAIConfig configures the hosted-model decision source.
type OpenAIConfig struct {
	// APIKey is required. It is sent only as an Authorization header
	// and never echoed in errors.
	APIKey string
	// Model defaults to gpt-4o-mini.
	Model string
	// CompletionsURL overrides the chat completions endpoint, mainly
	// for tests.
	CompletionsURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// OpenAI asks a hosted model for each decision over the chat
// completions API. Replies that do not parse to a legal choice return
// an error; callers are expected to fall back to a Bot.
type OpenAI struct {
	cfg OpenAIConfig
}

// NewOpenAI validates the config and applies defaults.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if strings.TrimSpace(cfg.CompletionsURL) == "" {
		cfg.CompletionsURL = defaultCompletionsURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &OpenAI{cfg: cfg}, nil
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	requestBody, err := json.Marshal(map[string]any{
		"model": o.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.CompletionsURL, bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	res, err := o.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
		if err != nil {
			return "", fmt.Errorf("read completion error body: %w", err)
		}
		return "", fmt.Errorf("completion request status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	for _, choice := range payload.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("completion response missing content")
}

// decideSeat asks one seat-number question and validates the reply
// against the legal targets. A zero reply is accepted only when
// allowZero is set.
func (o *OpenAI) decideSeat(ctx context.Context, view projection.PlayerView, question string, targets []int, allowZero bool) (int, error) {
	var b strings.Builder
	b.WriteString(describeView(view))
	b.WriteString(question)
	fmt.Fprintf(&b, "\nLegal seats: %s.", joinSeats(targets))
	if allowZero {
		b.WriteString(" Reply with one seat number, or 0 to skip.")
	} else {
		b.WriteString(" Reply with exactly one seat number.")
	}
	text, err := o.complete(ctx, b.String())
	if err != nil {
		return 0, err
	}
	seat, err := parseSeat(text)
	if err != nil {
		return 0, err
	}
	if seat == 0 {
		if !allowZero {
			return 0, fmt.Errorf("model skipped a mandatory choice")
		}
		return 0, nil
	}
	if !containsSeat(targets, seat) {
		return 0, fmt.Errorf("model chose illegal seat %d", seat)
	}
	return seat, nil
}

func (o *OpenAI) WolfKill(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return o.decideSeat(ctx, view, "Your pack must pick tonight's kill.", targets, false)
}

func (o *OpenAI) GuardProtect(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return o.decideSeat(ctx, view, "Pick a seat to protect tonight.", targets, true)
}

func (o *OpenAI) SeerCheck(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return o.decideSeat(ctx, view, "Pick a seat to check tonight.", targets, false)
}

func (o *OpenAI) WitchAct(ctx context.Context, view projection.PlayerView, attackSeat int, canCure bool, poisonTargets []int) (WitchDecision, error) {
	var b strings.Builder
	b.WriteString(describeView(view))
	if attackSeat != 0 {
		fmt.Fprintf(&b, "The wolves attacked seat %d tonight.", attackSeat)
	} else {
		b.WriteString("You do not know tonight's attack target.")
	}
	if canCure {
		b.WriteString(" You may reply CURE to save the victim.")
	}
	if len(poisonTargets) > 0 {
		fmt.Fprintf(&b, " You may reply POISON <seat> with one of: %s.", joinSeats(poisonTargets))
	}
	b.WriteString(" Otherwise reply PASS.")

	text, err := o.complete(ctx, b.String())
	if err != nil {
		return WitchDecision{}, err
	}
	fields := strings.Fields(strings.ToUpper(text))
	if len(fields) == 0 {
		return WitchDecision{}, fmt.Errorf("empty witch reply")
	}
	switch fields[0] {
	case "PASS":
		return WitchDecision{}, nil
	case "CURE":
		if !canCure {
			return WitchDecision{}, fmt.Errorf("model chose an unavailable cure")
		}
		return WitchDecision{Cure: true}, nil
	case "POISON":
		if len(fields) < 2 {
			return WitchDecision{}, fmt.Errorf("poison reply missing seat")
		}
		seat, err := parseSeat(fields[1])
		if err != nil {
			return WitchDecision{}, err
		}
		if !containsSeat(poisonTargets, seat) {
			return WitchDecision{}, fmt.Errorf("model chose illegal poison seat %d", seat)
		}
		return WitchDecision{PoisonSeat: seat}, nil
	}
	return WitchDecision{}, fmt.Errorf("unrecognized witch reply %q", text)
}

func (o *OpenAI) RunForSheriff(ctx context.Context, view projection.PlayerView) (bool, error) {
	text, err := o.complete(ctx, describeView(view)+
		"The sheriff election is open. Reply YES to run for sheriff or NO to stay out.")
	if err != nil {
		return false, err
	}
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized candidacy reply %q", text)
}

func (o *OpenAI) SheriffVote(ctx context.Context, view projection.PlayerView, candidates []int) (int, error) {
	return o.decideSeat(ctx, view, "Vote for a sheriff candidate.", candidates, true)
}

func (o *OpenAI) Speech(ctx context.Context, view projection.PlayerView) (string, error) {
	return o.complete(ctx, describeView(view)+
		"It is your turn to speak. Reply with a short in-character statement, two sentences at most.")
}

func (o *OpenAI) LastWords(ctx context.Context, view projection.PlayerView) (string, error) {
	return o.complete(ctx, describeView(view)+
		"You have died and may leave last words. Reply with a short in-character farewell.")
}

func (o *OpenAI) Vote(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return o.decideSeat(ctx, view, "Vote for a seat to lynch.", targets, true)
}

func (o *OpenAI) HunterShoot(ctx context.Context, view projection.PlayerView, targets []int) (int, error) {
	return o.decideSeat(ctx, view, "You died with your gun loaded and may take one seat with you.", targets, true)
}

func (o *OpenAI) BadgeDecision(ctx context.Context, view projection.PlayerView, heirs []int) (int, error) {
	return o.decideSeat(ctx, view, "You died as sheriff. Pass the badge to a seat, or reply 0 to tear it.", heirs, true)
}

func (o *OpenAI) SelfExplode(ctx context.Context, view projection.PlayerView) (bool, error) {
	text, err := o.complete(ctx, describeView(view)+
		"You may reveal yourself as a werewolf and die to end the day's discussion. Reply YES to explode or NO to stay hidden.")
	if err != nil {
		return false, err
	}
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized explode reply %q", text)
}

// describeView renders the seat's knowledge as the prompt preamble.
func describeView(view projection.PlayerView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are seat %d, role %s, on day %d during the %s phase.\n", view.Seat, view.Role, view.Day, view.Phase)
	var alive []int
	for _, s := range view.Seats {
		if s.Alive {
			alive = append(alive, s.Seat)
		}
	}
	fmt.Fprintf(&b, "Living seats: %s.\n", joinSeats(alive))
	if view.SheriffSeat != 0 {
		fmt.Fprintf(&b, "Seat %d holds the sheriff badge.\n", view.SheriffSeat)
	}
	if len(view.Teammates) > 0 {
		fmt.Fprintf(&b, "Your fellow werewolves sit at: %s.\n", joinSeats(view.Teammates))
	}
	for _, check := range view.SeerChecks {
		fmt.Fprintf(&b, "Your night %d check: seat %d is %s.\n", check.Night, check.TargetSeat, check.Result)
	}
	return b.String()
}

func joinSeats(seats []int) string {
	if len(seats) == 0 {
		return "none"
	}
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ", ")
}

// parseSeat extracts the first integer in a reply, tolerating
// surrounding prose and punctuation.
func parseSeat(text string) (int, error) {
	start := -1
	for i, r := range text {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return strconv.Atoi(text[start:i])
		}
	}
	if start >= 0 {
		return strconv.Atoi(text[start:])
	}
	return 0, fmt.Errorf("no seat number in reply %q", text)
}
