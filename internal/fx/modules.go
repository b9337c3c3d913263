package fx

import (
	"context"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/bot"
	"predecessor-tracker/internal/config"
	"predecessor-tracker/internal/database"
	"predecessor-tracker/internal/logger"
	"predecessor-tracker/internal/registry"
	"predecessor-tracker/internal/render"
	"predecessor-tracker/internal/repository"
	"predecessor-tracker/internal/server"
	"predecessor-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// populateRegistries fills the hero and item caches once at startup. A failed
// population is non-fatal; lookups fall back to slug-derived URLs.
func populateRegistries(lc fx.Lifecycle, client *api.Client, heroes *registry.HeroRegistry, items *registry.ItemRegistry, log zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			registry.Populate(ctx, client, heroes, items, log)
			return nil
		},
	})
}

// Core carries everything shared by the bot and poller binaries.
var Core = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	repository.Module,
	// api client
	fx.Provide(api.NewClient),
	registry.Module,
	fx.Invoke(populateRegistries),
	// svc
	service.Module,
)

// BotModule assembles the Discord bot with its renderer and notification
// server.
var BotModule = fx.Options(
	Core,
	render.Module,
	bot.Module,
	server.Module,
)
