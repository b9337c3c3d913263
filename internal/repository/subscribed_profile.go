package repository

import (
	"context"
	"database/sql"
	"fmt"

	"predecessor-tracker/internal/constants"
	"predecessor-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// SubscribedProfileRepository stores per-guild player subscriptions.
type SubscribedProfileRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSubscribedProfileRepository(db *sql.DB, logger zerolog.Logger) *SubscribedProfileRepository {
	return &SubscribedProfileRepository{db: db, logger: logger}
}

// Add subscribes a guild to a player. Returns false when the subscription
// already existed.
func (r *SubscribedProfileRepository) Add(ctx context.Context, guildID int64, playerUUID, playerName string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var name sql.NullString
	if playerName != "" {
		name = sql.NullString{String: playerName, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO subscribed_profiles (guild_id, player_uuid, player_name, subscribed_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (guild_id, player_uuid) DO NOTHING`,
		guildID, playerUUID, name)
	if err != nil {
		r.logger.Error().Err(err).Int64("guild_id", guildID).Str("player_uuid", playerUUID).Msg("failed to add subscription")
		return false, fmt.Errorf("failed to add subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// UpdatePlayerName refreshes the display name cached on an existing
// subscription. Returns false when the subscription does not exist.
func (r *SubscribedProfileRepository) UpdatePlayerName(ctx context.Context, guildID int64, playerUUID, playerName string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE subscribed_profiles
		SET player_name = $3
		WHERE guild_id = $1 AND player_uuid = $2`,
		guildID, playerUUID, playerName)
	if err != nil {
		return false, fmt.Errorf("failed to update player name: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Remove unsubscribes a guild from a player. Returns false when there was no
// subscription to remove.
func (r *SubscribedProfileRepository) Remove(ctx context.Context, guildID int64, playerUUID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		DELETE FROM subscribed_profiles
		WHERE guild_id = $1 AND player_uuid = $2`,
		guildID, playerUUID)
	if err != nil {
		return false, fmt.Errorf("failed to remove subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// List returns a guild's subscriptions in subscription order.
func (r *SubscribedProfileRepository) List(ctx context.Context, guildID int64) ([]domain.SubscribedProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT guild_id, player_uuid, player_name, subscribed_at
		FROM subscribed_profiles
		WHERE guild_id = $1
		ORDER BY subscribed_at ASC`,
		guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// ListAll returns every subscription across all guilds.
func (r *SubscribedProfileRepository) ListAll(ctx context.Context) ([]domain.SubscribedProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT guild_id, player_uuid, player_name, subscribed_at
		FROM subscribed_profiles
		ORDER BY guild_id, subscribed_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all subscriptions: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// IsSubscribed reports whether a guild is subscribed to a player.
func (r *SubscribedProfileRepository) IsSubscribed(ctx context.Context, guildID int64, playerUUID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM subscribed_profiles
			WHERE guild_id = $1 AND player_uuid = $2
		)`,
		guildID, playerUUID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return exists, nil
}

// ClearGuild removes all of a guild's subscriptions and returns how many
// rows were deleted.
func (r *SubscribedProfileRepository) ClearGuild(ctx context.Context, guildID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM subscribed_profiles WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear subscriptions: %w", err)
	}
	return result.RowsAffected()
}

func scanProfiles(rows *sql.Rows) ([]domain.SubscribedProfile, error) {
	var profiles []domain.SubscribedProfile
	for rows.Next() {
		var p domain.SubscribedProfile
		var name sql.NullString
		if err := rows.Scan(&p.GuildID, &p.PlayerUUID, &name, &p.SubscribedAt); err != nil {
			return nil, err
		}
		p.PlayerName = name.String
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
