package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"predecessor-tracker/internal/constants"
	"predecessor-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// PlayerMatchCursorRepository tracks the last-seen match end time per tracked
// player, enabling incremental polling.
type PlayerMatchCursorRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerMatchCursorRepository(db *sql.DB, logger zerolog.Logger) *PlayerMatchCursorRepository {
	return &PlayerMatchCursorRepository{db: db, logger: logger}
}

// LastMatchTime returns a player's cursor, or nil when none exists yet.
func (r *PlayerMatchCursorRepository) LastMatchTime(ctx context.Context, playerUUID string) (*time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var t time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT last_match_end_time FROM player_match_cursors WHERE player_uuid = $1`,
		playerUUID).Scan(&t)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cursor: %w", err)
	}
	return &t, nil
}

// Update upserts a player's cursor.
func (r *PlayerMatchCursorRepository) Update(ctx context.Context, playerUUID string, lastMatchEndTime time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player_match_cursors (player_uuid, last_match_end_time, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (player_uuid) DO UPDATE
		SET last_match_end_time = EXCLUDED.last_match_end_time,
		    updated_at = NOW()`,
		playerUUID, lastMatchEndTime)
	if err != nil {
		return fmt.Errorf("failed to update cursor: %w", err)
	}
	return nil
}

// All returns every cursor, most recently updated first.
func (r *PlayerMatchCursorRepository) All(ctx context.Context) ([]domain.PlayerMatchCursor, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT player_uuid, last_match_end_time, updated_at
		FROM player_match_cursors
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cursors: %w", err)
	}
	defer rows.Close()

	var cursors []domain.PlayerMatchCursor
	for rows.Next() {
		var c domain.PlayerMatchCursor
		if err := rows.Scan(&c.PlayerUUID, &c.LastMatchEndTime, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cursors = append(cursors, c)
	}
	return cursors, rows.Err()
}

// Delete removes a player's cursor. Returns false when none existed.
func (r *PlayerMatchCursorRepository) Delete(ctx context.Context, playerUUID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		DELETE FROM player_match_cursors WHERE player_uuid = $1`,
		playerUUID)
	if err != nil {
		return false, fmt.Errorf("failed to delete cursor: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
