package domain

import (
	"fmt"
	"strings"
	"time"
)

// MatchPlayer is one of the ten players in a match. Values are built once by
// the transformation service and never mutated.
type MatchPlayer struct {
	PlayerName  string
	PlayerUUID  string
	HeroName    string
	HeroIconURL string
	Team        TeamSide
	Role        Role
	Kills       int
	Deaths      int
	Assists     int
	MinionsKilled int
	Gold        int

	// MMRChange is nil for unranked matches.
	MMRChange *int
	// PerformanceScore is nil when the API omits it.
	PerformanceScore *float64

	// OptedIn is never set by the API layer; the presentation layer attaches
	// it from guild subscription state.
	OptedIn bool
}

// ProfileURL is the pred.gg profile page for this player.
func (p MatchPlayer) ProfileURL() string {
	return "https://pred.gg/players/" + p.PlayerUUID
}

// KDAString renders kills/deaths/assists, e.g. "14/4/4".
func (p MatchPlayer) KDAString() string {
	return fmt.Sprintf("%d/%d/%d", p.Kills, p.Deaths, p.Assists)
}

// MMRChangeString renders the signed MMR delta ("+29", "-15"), or "" when
// the match was unranked.
func (p MatchPlayer) MMRChangeString() string {
	if p.MMRChange == nil {
		return ""
	}
	if *p.MMRChange >= 0 {
		return fmt.Sprintf("+%d", *p.MMRChange)
	}
	return fmt.Sprintf("%d", *p.MMRChange)
}

// Match is a fully transformed Predecessor match.
type Match struct {
	MatchUUID       string
	MatchID         string
	DurationSeconds int
	GameMode        GameMode
	Region          Region
	WinningTeam     TeamSide
	DawnScore       int
	DuskScore       int
	EndTime         time.Time
	Players         []MatchPlayer
}

// MatchURL is the pred.gg match details page (UUID without dashes).
func (m Match) MatchURL() string {
	return "https://pred.gg/matches/" + strings.ReplaceAll(m.MatchUUID, "-", "")
}

// DurationMinutes is the match length in minutes, rounded.
func (m Match) DurationMinutes() int {
	return int(float64(m.DurationSeconds)/60 + 0.5)
}

// ScoreString renders the kill totals, e.g. "Dusk (39) vs Dawn (35)".
func (m Match) ScoreString() string {
	return fmt.Sprintf("Dusk (%d) vs Dawn (%d)", m.DuskScore, m.DawnScore)
}

// DawnPlayers returns the players on the Dawn side.
func (m Match) DawnPlayers() []MatchPlayer {
	return m.teamPlayers(TeamDawn)
}

// DuskPlayers returns the players on the Dusk side.
func (m Match) DuskPlayers() []MatchPlayer {
	return m.teamPlayers(TeamDusk)
}

// WinningPlayers returns the players on the winning side.
func (m Match) WinningPlayers() []MatchPlayer {
	return m.teamPlayers(m.WinningTeam)
}

// LosingPlayers returns the players on the losing side.
func (m Match) LosingPlayers() []MatchPlayer {
	if m.WinningTeam == TeamDawn {
		return m.teamPlayers(TeamDusk)
	}
	return m.teamPlayers(TeamDawn)
}

func (m Match) teamPlayers(side TeamSide) []MatchPlayer {
	var out []MatchPlayer
	for _, p := range m.Players {
		if p.Team == side {
			out = append(out, p)
		}
	}
	return out
}
