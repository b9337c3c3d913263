package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/constants"
	"predecessor-tracker/internal/domain"
	"predecessor-tracker/internal/registry"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// MatchService fetches raw matches from the API and transforms them into
// domain Match values.
type MatchService struct {
	client *api.Client
	heroes *registry.HeroRegistry
	logger zerolog.Logger

	// Unknown enum values are mapped to defaults; these counters monitor
	// upstream schema drift that would otherwise be masked.
	unknownGameModes atomic.Int64
	unknownRegions   atomic.Int64
	unknownTeams     atomic.Int64
	unknownRoles     atomic.Int64
}

func NewMatchService(client *api.Client, heroes *registry.HeroRegistry, logger zerolog.Logger) *MatchService {
	return &MatchService{
		client: client,
		heroes: heroes,
		logger: logger.With().Str("component", "match_service").Logger(),
	}
}

// FetchMatch fetches and transforms the summary view of a match. Returns nil
// without error when the API knows no such match.
func (s *MatchService) FetchMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.client.FetchMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetch match %s: %w", matchID, err)
	}
	if raw == nil {
		return nil, nil
	}

	match := s.Transform(raw)
	return &match, nil
}

// FetchDetailedMatch fetches the full per-player stat view and returns both
// the transformed match and the raw payload the renderer consumes.
func (s *MatchService) FetchDetailedMatch(ctx context.Context, matchID string) (*domain.Match, *api.RawMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	raw, err := s.client.FetchDetailedMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch detailed match %s: %w", matchID, err)
	}
	if raw == nil {
		return nil, nil, nil
	}

	match := s.Transform(raw)
	return &match, raw, nil
}

// Transform maps a raw GraphQL match into a domain Match. It is total:
// missing optional fields resolve to documented defaults and sentinels,
// never to an error.
func (s *MatchService) Transform(raw *api.RawMatch) domain.Match {
	endTime, err := time.Parse(time.RFC3339, raw.EndTime)
	if err != nil {
		endTime = time.Now().UTC()
	}

	gameMode, ok := domain.MapGameMode(raw.GameMode)
	if !ok {
		s.unknownGameModes.Add(1)
		s.logger.Warn().Str("game_mode", raw.GameMode).Str("match_uuid", raw.UUID).Msg("unknown game mode, defaulting to Standard")
	}
	region, ok := domain.MapRegion(raw.Region)
	if !ok {
		s.unknownRegions.Add(1)
		s.logger.Warn().Str("region", raw.Region).Str("match_uuid", raw.UUID).Msg("unknown region, defaulting to North America")
	}
	winningTeam, ok := domain.MapTeamSide(raw.WinningTeam)
	if !ok {
		s.unknownTeams.Add(1)
		s.logger.Warn().Str("winning_team", raw.WinningTeam).Str("match_uuid", raw.UUID).Msg("unknown winning team, defaulting to Dawn")
	}

	matchID := raw.ID
	if matchID == "" {
		matchID = raw.UUID
	}

	var dawnKills, duskKills int
	players := make([]domain.MatchPlayer, 0, len(raw.MatchPlayers))
	for _, mp := range raw.MatchPlayers {
		player := s.transformPlayer(raw.UUID, mp)
		switch player.Team {
		case domain.TeamDawn:
			dawnKills += player.Kills
		case domain.TeamDusk:
			duskKills += player.Kills
		}
		players = append(players, player)
	}

	return domain.Match{
		MatchUUID:       raw.UUID,
		MatchID:         matchID,
		DurationSeconds: raw.Duration,
		GameMode:        gameMode,
		Region:          region,
		WinningTeam:     winningTeam,
		DawnScore:       dawnKills,
		DuskScore:       duskKills,
		EndTime:         endTime,
		Players:         players,
	}
}

func (s *MatchService) transformPlayer(matchUUID string, mp api.RawMatchPlayer) domain.MatchPlayer {
	playerName := "Unknown"
	playerUUID := ""
	if mp.Player != nil {
		if mp.Player.Name != "" {
			playerName = mp.Player.Name
		}
		playerUUID = mp.Player.UUID
	}

	// Prefer version-specific hero data over the bare hero reference.
	heroName := "Unknown"
	switch {
	case mp.HeroData != nil && mp.HeroData.DisplayName != "":
		heroName = mp.HeroData.DisplayName
	case mp.HeroData != nil && mp.HeroData.Name != "":
		heroName = mp.HeroData.Name
	case mp.Hero != nil && mp.Hero.Name != "":
		heroName = mp.Hero.Name
	default:
		s.logger.Warn().Str("player", playerName).Str("match_uuid", matchUUID).Msg("no hero data for player")
	}

	team, ok := domain.MapTeamSide(mp.Team)
	if !ok {
		s.unknownTeams.Add(1)
		s.logger.Warn().Str("team", mp.Team).Str("match_uuid", matchUUID).Msg("unknown player team, defaulting to Dawn")
	}
	role, ok := domain.MapRole(mp.Role)
	if !ok && mp.Role != "" {
		s.unknownRoles.Add(1)
		s.logger.Warn().Str("role", mp.Role).Str("match_uuid", matchUUID).Msg("unknown player role")
	}

	var mmrChange *int
	if mp.Rating != nil && mp.Rating.Points != nil && mp.Rating.NewPoints != nil {
		delta := *mp.Rating.NewPoints - *mp.Rating.Points
		mmrChange = &delta
	}

	var heroIconURL string
	if mp.HeroData != nil && mp.HeroData.Icon != "" {
		heroIconURL = domain.HeroIconURL(mp.HeroData.Icon, "")
	} else {
		heroIconURL = s.heroes.IconURL(heroName)
	}

	return domain.MatchPlayer{
		PlayerName:       playerName,
		PlayerUUID:       playerUUID,
		HeroName:         heroName,
		HeroIconURL:      heroIconURL,
		Team:             team,
		Role:             role,
		Kills:            mp.Kills,
		Deaths:           mp.Deaths,
		Assists:          mp.Assists,
		MinionsKilled:    mp.MinionsKilled,
		Gold:             mp.Gold,
		MMRChange:        mmrChange,
		PerformanceScore: mp.PerformanceScore,
	}
}

// UnknownEnumCounts reports how many unrecognized enum values were mapped to
// defaults since startup.
func (s *MatchService) UnknownEnumCounts() (gameModes, regions, teams, roles int64) {
	return s.unknownGameModes.Load(), s.unknownRegions.Load(), s.unknownTeams.Load(), s.unknownRoles.Load()
}

var Module = fx.Provide(NewMatchService, NewPlayerMatchesService)
