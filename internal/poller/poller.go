package poller

import (
	"context"
	"sort"
	"sync"
	"time"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/config"
	"predecessor-tracker/internal/constants"
	"predecessor-tracker/internal/repository"
	"predecessor-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const unnotifiedRetryLimit = 20

// Poller periodically fetches recent matches for tracked players, records
// them in the processed-match ledger, and pushes new ones to the bot.
type Poller struct {
	cfg           *config.Config
	playerMatches *service.PlayerMatchesService
	client        *api.Client
	notifier      *Notifier
	profiles      *repository.SubscribedProfileRepository
	processed     *repository.ProcessedMatchRepository
	cursors       *repository.PlayerMatchCursorRepository
	logger        zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Params struct {
	fx.In

	Config        *config.Config
	PlayerMatches *service.PlayerMatchesService
	Client        *api.Client
	Notifier      *Notifier
	Profiles      *repository.SubscribedProfileRepository
	Processed     *repository.ProcessedMatchRepository
	Cursors       *repository.PlayerMatchCursorRepository
	Logger        zerolog.Logger
}

func New(p Params) *Poller {
	return &Poller{
		cfg:           p.Config,
		playerMatches: p.PlayerMatches,
		client:        p.Client,
		notifier:      p.Notifier,
		profiles:      p.Profiles,
		processed:     p.Processed,
		cursors:       p.Cursors,
		logger:        p.Logger.With().Str("component", "poller").Logger(),
	}
}

// Start launches the polling loop. The first tick runs immediately.
func (p *Poller) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.cfg.PollInterval)
		defer ticker.Stop()

		p.tick(runCtx)
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				p.tick(runCtx)
			}
		}
	}()

	p.logger.Info().Dur("interval", p.cfg.PollInterval).Msg("poller started")
	return nil
}

// Stop cancels the loop and waits for an in-flight tick to finish.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.logger.Info().Msg("poller stopped")
	return nil
}

func (p *Poller) tick(ctx context.Context) {
	start := time.Now()

	p.retryUnnotified(ctx)

	players := p.trackedPlayers(ctx)
	if len(players) == 0 {
		p.logger.Debug().Msg("no tracked players, skipping tick")
		return
	}

	var newMatches int
	for _, playerUUID := range players {
		if ctx.Err() != nil {
			return
		}
		newMatches += p.pollPlayer(ctx, playerUUID)
	}

	p.logger.Info().
		Int("players", len(players)).
		Int("new_matches", newMatches).
		Dur("elapsed", time.Since(start)).
		Msg("poll tick completed")
}

// trackedPlayers merges the statically configured UUIDs with every player any
// guild is subscribed to.
func (p *Poller) trackedPlayers(ctx context.Context) []string {
	seen := make(map[string]struct{})
	var players []string

	for _, id := range p.cfg.TrackedPlayerUUIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			players = append(players, id)
		}
	}

	profiles, err := p.profiles.ListAll(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to list subscriptions, polling configured players only")
		return players
	}
	for _, profile := range profiles {
		if _, ok := seen[profile.PlayerUUID]; !ok {
			seen[profile.PlayerUUID] = struct{}{}
			players = append(players, profile.PlayerUUID)
		}
	}
	return players
}

// pollPlayer fetches matches newer than the player's cursor, processes them,
// and advances the cursor. The cursor only moves after every match in the
// batch is durably recorded, so a crash mid-batch re-fetches rather than
// skips.
func (p *Poller) pollPlayer(ctx context.Context, playerUUID string) int {
	cursor, err := p.cursors.LastMatchTime(ctx, playerUUID)
	if err != nil {
		p.logger.Error().Err(err).Str("player_uuid", playerUUID).Msg("failed to read cursor")
		return 0
	}

	startTime := time.Now().UTC().Add(-constants.CursorLookback)
	if cursor != nil {
		startTime = *cursor
	}

	matches := p.playerMatches.FetchPlayerMatches(ctx, playerUUID, &startTime, nil)
	if len(matches) == 0 {
		return 0
	}

	// Oldest first so partial progress still moves notifications forward in
	// match order.
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].EndTime < matches[j].EndTime
	})

	var newMatches int
	var latestEnd time.Time
	batchOK := true

	for _, raw := range matches {
		endTime, err := time.Parse(time.RFC3339, raw.EndTime)
		if err != nil {
			endTime = time.Now().UTC()
		}
		if endTime.After(latestEnd) {
			latestEnd = endTime
		}

		done, err := p.processed.IsProcessed(ctx, raw.UUID)
		if err != nil {
			p.logger.Error().Err(err).Str("match_uuid", raw.UUID).Msg("failed to check ledger")
			batchOK = false
			continue
		}
		if done {
			continue
		}

		if err := p.processed.MarkProcessed(ctx, raw.UUID, raw.ID, endTime); err != nil {
			p.logger.Error().Err(err).Str("match_uuid", raw.UUID).Msg("failed to record match")
			batchOK = false
			continue
		}
		newMatches++

		if err := p.notifier.Notify(ctx, &raw); err != nil {
			// Left unnotified in the ledger; retried on a later tick.
			p.logger.Warn().Err(err).Str("match_uuid", raw.UUID).Msg("failed to notify bot")
			continue
		}
		if err := p.processed.MarkNotified(ctx, raw.UUID); err != nil {
			p.logger.Error().Err(err).Str("match_uuid", raw.UUID).Msg("failed to mark match notified")
		}
	}

	if batchOK && !latestEnd.IsZero() {
		if err := p.cursors.Update(ctx, playerUUID, latestEnd); err != nil {
			p.logger.Error().Err(err).Str("player_uuid", playerUUID).Msg("failed to advance cursor")
		}
	}

	return newMatches
}

// retryUnnotified redelivers ledger rows whose push to the bot failed.
func (p *Poller) retryUnnotified(ctx context.Context) {
	pending, err := p.processed.Unnotified(ctx, unnotifiedRetryLimit)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to list unnotified matches")
		return
	}

	for _, m := range pending {
		if ctx.Err() != nil {
			return
		}
		raw, err := p.client.FetchMatch(ctx, m.MatchUUID)
		if err != nil || raw == nil {
			p.logger.Warn().Err(err).Str("match_uuid", m.MatchUUID).Msg("failed to refetch unnotified match")
			continue
		}
		if err := p.notifier.Notify(ctx, raw); err != nil {
			p.logger.Warn().Err(err).Str("match_uuid", m.MatchUUID).Msg("redelivery failed")
			continue
		}
		if err := p.processed.MarkNotified(ctx, m.MatchUUID); err != nil {
			p.logger.Error().Err(err).Str("match_uuid", m.MatchUUID).Msg("failed to mark match notified")
		}
	}
}

// Lifecycle wires the poller into application startup and shutdown.
func Lifecycle(lc fx.Lifecycle, p *Poller) {
	lc.Append(fx.Hook{
		OnStart: p.Start,
		OnStop:  p.Stop,
	})
}

var Module = fx.Options(
	fx.Provide(New, NewNotifier),
	fx.Invoke(Lifecycle),
)
