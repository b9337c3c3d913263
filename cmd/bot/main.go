package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"predecessor-tracker/internal/config"
	"predecessor-tracker/internal/constants"
	fxmodules "predecessor-tracker/internal/fx"
	"predecessor-tracker/internal/middleware"
	"predecessor-tracker/internal/server"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.BotModule,
		fx.Invoke(runServer),
	).Run()
}

// runServer exposes the notification endpoint the polling worker pushes
// completed matches to, alongside the Discord gateway connection the bot
// module manages.
func runServer(
	lc fx.Lifecycle,
	notificationServer *server.NotificationServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	handler := middleware.RequestID(logger)(c.Handler(notificationServer.Mux()))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("notification server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("notification server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down notification server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("notification server shutdown failed")
				return err
			}
			logger.Info().Msg("notification server stopped gracefully")
			return nil
		},
	})
}
