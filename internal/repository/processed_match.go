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

// ProcessedMatchRepository is the dedup ledger for the polling worker. It is
// safe under at-least-once delivery; marking the same match twice is a no-op.
type ProcessedMatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewProcessedMatchRepository(db *sql.DB, logger zerolog.Logger) *ProcessedMatchRepository {
	return &ProcessedMatchRepository{db: db, logger: logger}
}

// IsProcessed reports whether a match is already in the ledger.
func (r *ProcessedMatchRepository) IsProcessed(ctx context.Context, matchUUID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM processed_matches WHERE match_uuid = $1)`,
		matchUUID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check processed match: %w", err)
	}
	return exists, nil
}

// MarkProcessed records a match in the ledger. Conflicts on match_uuid are
// ignored.
func (r *ProcessedMatchRepository) MarkProcessed(ctx context.Context, matchUUID, matchID string, endTime time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processed_matches (match_uuid, match_id, end_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_uuid) DO NOTHING`,
		matchUUID, matchID, endTime)
	if err != nil {
		return fmt.Errorf("failed to mark match processed: %w", err)
	}
	return nil
}

// MarkNotified flags a ledger row as delivered to the bot.
func (r *ProcessedMatchRepository) MarkNotified(ctx context.Context, matchUUID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		UPDATE processed_matches SET notified_bot = TRUE WHERE match_uuid = $1`,
		matchUUID)
	if err != nil {
		return fmt.Errorf("failed to mark match notified: %w", err)
	}
	return nil
}

// Get returns one ledger row, or nil when the match was never processed.
func (r *ProcessedMatchRepository) Get(ctx context.Context, matchUUID string) (*domain.ProcessedMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var m domain.ProcessedMatch
	err := r.db.QueryRowContext(ctx, `
		SELECT match_uuid, match_id, end_time, processed_at, notified_bot
		FROM processed_matches
		WHERE match_uuid = $1`,
		matchUUID).Scan(&m.MatchUUID, &m.MatchID, &m.EndTime, &m.ProcessedAt, &m.NotifiedBot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get processed match: %w", err)
	}
	return &m, nil
}

// Unnotified returns ledger rows not yet delivered, oldest first.
func (r *ProcessedMatchRepository) Unnotified(ctx context.Context, limit int) ([]domain.ProcessedMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	query := `
		SELECT match_uuid, match_id, end_time, processed_at, notified_bot
		FROM processed_matches
		WHERE notified_bot = FALSE
		ORDER BY processed_at ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unnotified matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.ProcessedMatch
	for rows.Next() {
		var m domain.ProcessedMatch
		if err := rows.Scan(&m.MatchUUID, &m.MatchID, &m.EndTime, &m.ProcessedAt, &m.NotifiedBot); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
