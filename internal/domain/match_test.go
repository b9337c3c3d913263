package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestMatchPlayerStrings(t *testing.T) {
	p := MatchPlayer{
		PlayerName: "Shade",
		PlayerUUID: "b16d580e-087c-4cbd-83ee-e9d8e3a8f84c",
		Kills:      14, Deaths: 4, Assists: 4,
	}
	if got := p.KDAString(); got != "14/4/4" {
		t.Errorf("KDAString = %q", got)
	}
	if got := p.MMRChangeString(); got != "" {
		t.Errorf("MMRChangeString for unranked = %q, want empty", got)
	}

	p.MMRChange = intPtr(29)
	if got := p.MMRChangeString(); got != "+29" {
		t.Errorf("MMRChangeString = %q, want +29", got)
	}
	p.MMRChange = intPtr(-15)
	if got := p.MMRChangeString(); got != "-15" {
		t.Errorf("MMRChangeString = %q, want -15", got)
	}
	if got := p.ProfileURL(); got != "https://pred.gg/players/b16d580e-087c-4cbd-83ee-e9d8e3a8f84c" {
		t.Errorf("ProfileURL = %q", got)
	}
}

func TestMatchDerived(t *testing.T) {
	m := Match{
		MatchUUID:       "440d3105-6a25-465c-9c47-23129ec6d453",
		DurationSeconds: 2820,
		WinningTeam:     TeamDusk,
		DawnScore:       35,
		DuskScore:       39,
		EndTime:         time.Now(),
		Players: []MatchPlayer{
			{PlayerName: "a", Team: TeamDawn},
			{PlayerName: "b", Team: TeamDusk},
			{PlayerName: "c", Team: TeamDusk},
		},
	}

	if got := m.MatchURL(); got != "https://pred.gg/matches/440d31056a25465c9c4723129ec6d453" {
		t.Errorf("MatchURL = %q", got)
	}
	if got := m.DurationMinutes(); got != 47 {
		t.Errorf("DurationMinutes = %d, want 47", got)
	}
	if got := m.ScoreString(); got != "Dusk (39) vs Dawn (35)" {
		t.Errorf("ScoreString = %q", got)
	}
	if got := len(m.DawnPlayers()); got != 1 {
		t.Errorf("DawnPlayers = %d, want 1", got)
	}
	if got := len(m.WinningPlayers()); got != 2 {
		t.Errorf("WinningPlayers = %d, want 2", got)
	}
	if got := m.LosingPlayers(); len(got) != 1 || got[0].PlayerName != "a" {
		t.Errorf("LosingPlayers = %+v", got)
	}
}

func TestEnumMappingDefaults(t *testing.T) {
	if mode, ok := MapGameMode("RANKED"); !ok || mode != ModeRanked {
		t.Errorf("MapGameMode(RANKED) = %v, %v", mode, ok)
	}
	if mode, ok := MapGameMode("BRAWL"); ok || mode != ModeStandard {
		t.Errorf("unknown game mode should default to Standard, got %v, %v", mode, ok)
	}
	if region, ok := MapRegion("EUROPE"); !ok || region != RegionEurope {
		t.Errorf("MapRegion(EUROPE) = %v, %v", region, ok)
	}
	if region, ok := MapRegion("MOON"); ok || region != RegionNA {
		t.Errorf("unknown region should default to North America, got %v, %v", region, ok)
	}
	if side, ok := MapTeamSide("DUSK"); !ok || side != TeamDusk {
		t.Errorf("MapTeamSide(DUSK) = %v, %v", side, ok)
	}
	if side, ok := MapTeamSide("NONE"); ok || side != TeamDawn {
		t.Errorf("unknown team should default to Dawn, got %v, %v", side, ok)
	}
	if role, ok := MapRole("JUNGLE"); !ok || role != RoleJungle {
		t.Errorf("MapRole(JUNGLE) = %v, %v", role, ok)
	}
	if role, ok := MapRole("GOALIE"); ok || role != RoleNone {
		t.Errorf("unknown role should default to none, got %v, %v", role, ok)
	}
}
