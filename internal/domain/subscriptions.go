package domain

import "time"

// SubscribedProfile is a guild's subscription to a player's matches.
type SubscribedProfile struct {
	GuildID      int64
	PlayerUUID   string
	PlayerName   string
	SubscribedAt time.Time
}

// TargetChannel is a channel configured to receive match notifications.
type TargetChannel struct {
	GuildID      int64
	ChannelID    int64
	ConfiguredAt time.Time
}

// ProcessedMatch is one row in the dedup ledger the polling worker keeps.
type ProcessedMatch struct {
	MatchUUID   string
	MatchID     string
	EndTime     time.Time
	ProcessedAt time.Time
	NotifiedBot bool
}

// PlayerMatchCursor records the last-seen match end time per tracked player.
type PlayerMatchCursor struct {
	PlayerUUID       string
	LastMatchEndTime time.Time
	UpdatedAt        time.Time
}
