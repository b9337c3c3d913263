package service

import (
	"context"
	"time"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/constants"

	"github.com/rs/zerolog"
)

// PlayerMatchesService fetches recent matches per player. Per-player failures
// are logged and skipped so one broken profile cannot stall a polling tick.
type PlayerMatchesService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewPlayerMatchesService(client *api.Client, logger zerolog.Logger) *PlayerMatchesService {
	return &PlayerMatchesService{
		client: client,
		logger: logger.With().Str("component", "player_matches_service").Logger(),
	}
}

// FetchPlayerMatches fetches matches for one player within an optional time
// window. A failed fetch returns an empty slice.
func (s *PlayerMatchesService) FetchPlayerMatches(ctx context.Context, playerUUID string, startTime, endTime *time.Time) []api.RawMatch {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	matches, err := s.client.FetchPlayerMatches(ctx, playerUUID, startTime, endTime, constants.PlayerMatchFetchLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("player_uuid", playerUUID).Msg("failed to fetch player matches")
		return nil
	}
	return matches
}

// FetchPlayerName resolves a player's current display name, or "" when the
// lookup fails or the player is unknown.
func (s *PlayerMatchesService) FetchPlayerName(ctx context.Context, playerUUID string) string {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	player, err := s.client.FetchPlayer(ctx, playerUUID)
	if err != nil {
		s.logger.Warn().Err(err).Str("player_uuid", playerUUID).Msg("failed to fetch player profile")
		return ""
	}
	if player == nil {
		return ""
	}
	return player.Name
}

// FetchMatchesForPlayers fetches matches for several players sequentially and
// deduplicates by match UUID.
func (s *PlayerMatchesService) FetchMatchesForPlayers(ctx context.Context, playerUUIDs []string, startTime, endTime *time.Time) []api.RawMatch {
	var all []api.RawMatch
	seen := make(map[string]struct{})

	for _, playerUUID := range playerUUIDs {
		for _, match := range s.FetchPlayerMatches(ctx, playerUUID, startTime, endTime) {
			if match.UUID == "" {
				continue
			}
			if _, ok := seen[match.UUID]; ok {
				continue
			}
			seen[match.UUID] = struct{}{}
			all = append(all, match)
		}
	}
	return all
}
