package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	NotifyTimeout      = 30 * time.Second
)

const (
	// TokenRefreshMargin refreshes the OAuth token this long before expiry.
	TokenRefreshMargin = 60 * time.Second
	// DefaultTokenTTL applies when the token endpoint omits expires_in.
	DefaultTokenTTL = 1800 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	// PlayerMatchFetchLimit caps matches fetched per player per poll tick.
	PlayerMatchFetchLimit = 100
	// CursorLookback bounds the first fetch for a player without a cursor.
	CursorLookback = 24 * time.Hour
)

const (
	ShutdownTimeout = 5 * time.Second
)
