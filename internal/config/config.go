package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	// Predecessor GraphQL API
	APIURL string

	// OAuth2 client-credentials grant (optional; enabled when all three set)
	OAuthTokenURL     string
	OAuthClientID     string
	OAuthClientSecret string

	// Postgres
	DatabaseURL string

	// Discord
	DiscordToken string

	// Notification HTTP server
	HTTPPort string

	// Polling worker
	PollInterval       time.Duration
	BotNotifyURL       string
	TrackedPlayerUUIDs []string

	// Renderer assets
	IconsDir   string
	FontsDir   string
	ImageScale float64

	LogLevel string
}

// HasOAuth reports whether OAuth2 client-credentials auth is configured.
func (c *Config) HasOAuth() bool {
	return c.OAuthTokenURL != "" && c.OAuthClientID != "" && c.OAuthClientSecret != ""
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		APIURL:            getEnv("PRED_API_URL", ""),
		OAuthTokenURL:     getEnv("OAUTH_TOKEN_URL", ""),
		OAuthClientID:     getEnv("OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DiscordToken:      getEnv("DISCORD_BOT_TOKEN", ""),
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		BotNotifyURL:      getEnv("BOT_NOTIFY_URL", "http://localhost:8080"),
		IconsDir:          getEnv("ICONS_DIR", "icons"),
		FontsDir:          getEnv("FONTS_DIR", "fonts"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("PRED_API_URL is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	pollSeconds, err := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS: %w", err)
	}
	cfg.PollInterval = time.Duration(pollSeconds) * time.Second

	cfg.ImageScale, err = strconv.ParseFloat(getEnv("IMAGE_SCALE", "1.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_SCALE: %w", err)
	}

	if raw := getEnv("TRACKED_PLAYER_UUIDS", ""); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.TrackedPlayerUUIDs = append(cfg.TrackedPlayerUUIDs, id)
			}
		}
	}

	logger.Info().
		Str("api_url", cfg.APIURL).
		Bool("oauth_enabled", cfg.HasOAuth()).
		Str("http_port", cfg.HTTPPort).
		Dur("poll_interval", cfg.PollInterval).
		Float64("image_scale", cfg.ImageScale).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
