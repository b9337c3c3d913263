package repository

import (
	"context"
	"database/sql"
	"fmt"

	"predecessor-tracker/internal/constants"
	"predecessor-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// TargetChannelRepository stores the channels each guild routes match
// notifications to.
type TargetChannelRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTargetChannelRepository(db *sql.DB, logger zerolog.Logger) *TargetChannelRepository {
	return &TargetChannelRepository{db: db, logger: logger}
}

// Add configures a notification channel. Returns false when the channel was
// already configured.
func (r *TargetChannelRepository) Add(ctx context.Context, guildID, channelID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO target_channels (guild_id, channel_id, configured_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (guild_id, channel_id) DO NOTHING`,
		guildID, channelID)
	if err != nil {
		r.logger.Error().Err(err).Int64("guild_id", guildID).Int64("channel_id", channelID).Msg("failed to add target channel")
		return false, fmt.Errorf("failed to add target channel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Remove drops a configured channel. Returns false when it was not
// configured.
func (r *TargetChannelRepository) Remove(ctx context.Context, guildID, channelID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		DELETE FROM target_channels
		WHERE guild_id = $1 AND channel_id = $2`,
		guildID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to remove target channel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// IsTarget reports whether a channel is configured for a guild.
func (r *TargetChannelRepository) IsTarget(ctx context.Context, guildID, channelID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM target_channels
			WHERE guild_id = $1 AND channel_id = $2
		)`,
		guildID, channelID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check target channel: %w", err)
	}
	return exists, nil
}

// ClearGuild removes all of a guild's configured channels and returns how
// many rows were deleted.
func (r *TargetChannelRepository) ClearGuild(ctx context.Context, guildID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM target_channels WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear target channels: %w", err)
	}
	return result.RowsAffected()
}

// List returns a guild's configured channels in configuration order.
func (r *TargetChannelRepository) List(ctx context.Context, guildID int64) ([]domain.TargetChannel, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT guild_id, channel_id, configured_at
		FROM target_channels
		WHERE guild_id = $1
		ORDER BY configured_at ASC`,
		guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list target channels: %w", err)
	}
	defer rows.Close()

	return scanChannels(rows)
}

// ListAll returns every configured channel across all guilds.
func (r *TargetChannelRepository) ListAll(ctx context.Context) ([]domain.TargetChannel, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT guild_id, channel_id, configured_at
		FROM target_channels
		ORDER BY guild_id, configured_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all target channels: %w", err)
	}
	defer rows.Close()

	return scanChannels(rows)
}

func scanChannels(rows *sql.Rows) ([]domain.TargetChannel, error) {
	var channels []domain.TargetChannel
	for rows.Next() {
		var c domain.TargetChannel
		if err := rows.Scan(&c.GuildID, &c.ChannelID, &c.ConfiguredAt); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, rows.Err()
}
