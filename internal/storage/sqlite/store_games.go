package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/werewolf/internal/game/domain"
	"github.com/louisbranch/werewolf/internal/storage"
)

// PutGame upserts a full game snapshot.
func (s *Store) PutGame(ctx context.Context, state domain.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(state.ID) == "" {
		return fmt.Errorf("game id is required")
	}

	snapshot, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal game snapshot: %w", err)
	}

	now := toMillis(time.Now())
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO games (id, day, phase, winner, snapshot_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    day = excluded.day,
    phase = excluded.phase,
    winner = excluded.winner,
    snapshot_json = excluded.snapshot_json,
    updated_at = excluded.updated_at
`, state.ID, state.Day, string(state.Phase), string(state.Winner), snapshot, now, now)
	if err != nil {
		return fmt.Errorf("put game: %w", err)
	}
	return nil
}

// GetGame loads a game snapshot by id.
func (s *Store) GetGame(ctx context.Context, id string) (domain.State, error) {
	if err := ctx.Err(); err != nil {
		return domain.State{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.State{}, fmt.Errorf("storage is not configured")
	}

	var snapshot []byte
	row := s.sqlDB.QueryRowContext(ctx, "SELECT snapshot_json FROM games WHERE id = ?", id)
	if err := row.Scan(&snapshot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.State{}, storage.ErrNotFound
		}
		return domain.State{}, fmt.Errorf("get game: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(snapshot, &state); err != nil {
		return domain.State{}, fmt.Errorf("unmarshal game snapshot: %w", err)
	}
	return state, nil
}

// ListGames returns stored game summaries, most recently updated first.
func (s *Store) ListGames(ctx context.Context) ([]storage.GameSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, day, phase, winner, updated_at
FROM games
ORDER BY updated_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var summaries []storage.GameSummary
	for rows.Next() {
		var (
			summary   storage.GameSummary
			updatedAt int64
		)
		if err := rows.Scan(&summary.ID, &summary.Day, &summary.Phase, &summary.Winner, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		summary.UpdatedAt = fromMillis(updatedAt)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game rows: %w", err)
	}
	return summaries, nil
}
