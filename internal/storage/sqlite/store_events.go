package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/werewolf/internal/game/event"
)

// AppendEvent atomically appends an event and returns it with the
// per-game sequence number assigned.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.GameID) == "" {
		return event.Event{}, fmt.Errorf("game id is required")
	}
	if !evt.Type.IsValid() {
		return event.Event{}, fmt.Errorf("event type is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)

	recipients, err := encodeRecipients(evt.Recipients)
	if err != nil {
		return event.Event{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	row := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM game_events WHERE game_id = ?", evt.GameID)
	if err := row.Scan(&seq); err != nil {
		return event.Event{}, fmt.Errorf("next event seq: %w", err)
	}
	evt.Seq = uint64(seq)

	if _, err := tx.ExecContext(ctx, `
INSERT INTO game_events (
    game_id, seq, event_type, timestamp, day, phase,
    actor_seat, target_seat, visibility, recipients_json, payload_json
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		evt.GameID, seq, string(evt.Type), toMillis(evt.Timestamp), evt.Day, evt.Phase,
		evt.ActorSeat, evt.TargetSeat, string(evt.Visibility), recipients, evt.PayloadJSON,
	); err != nil {
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit event: %w", err)
	}
	return evt, nil
}

// ListEvents returns events for a game with seq greater than afterSeq,
// in sequence order. A limit of 0 means no limit.
func (s *Store) ListEvents(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT seq, event_type, timestamp, day, phase,
       actor_seat, target_seat, visibility, recipients_json, payload_json
FROM game_events
WHERE game_id = ? AND seq > ?
ORDER BY seq
LIMIT ?
`, gameID, int64(afterSeq), limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var (
			evt        event.Event
			seq        int64
			eventType  string
			timestamp  int64
			visibility string
			recipients string
		)
		if err := rows.Scan(&seq, &eventType, &timestamp, &evt.Day, &evt.Phase,
			&evt.ActorSeat, &evt.TargetSeat, &visibility, &recipients, &evt.PayloadJSON); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		evt.GameID = gameID
		evt.Seq = uint64(seq)
		evt.Type = event.Type(eventType)
		evt.Timestamp = fromMillis(timestamp)
		evt.Visibility = event.Visibility(visibility)
		evt.Recipients, err = decodeRecipients(recipients)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}

func encodeRecipients(recipients []int) (string, error) {
	if len(recipients) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(recipients)
	if err != nil {
		return "", fmt.Errorf("marshal recipients: %w", err)
	}
	return string(encoded), nil
}

func decodeRecipients(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "[]" {
		return nil, nil
	}
	var recipients []int
	if err := json.Unmarshal([]byte(value), &recipients); err != nil {
		return nil, fmt.Errorf("unmarshal recipients: %w", err)
	}
	return recipients, nil
}
