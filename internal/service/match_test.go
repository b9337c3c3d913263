package service

import (
	"testing"
	"time"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/domain"
	"predecessor-tracker/internal/registry"

	"github.com/rs/zerolog"
)

func newTestService() *MatchService {
	return NewMatchService(nil, registry.NewHeroRegistry(), zerolog.Nop())
}

func ratingPtr(points, newPoints int) *api.RawRating {
	return &api.RawRating{Points: &points, NewPoints: &newPoints}
}

func TestTransformFullMatch(t *testing.T) {
	s := newTestService()

	raw := &api.RawMatch{
		ID:          "12345",
		UUID:        "440d3105-6a25-465c-9c47-23129ec6d453",
		Duration:    2820,
		EndTime:     "2025-06-01T18:30:00Z",
		GameMode:    "RANKED",
		Region:      "EUROPE",
		WinningTeam: "DUSK",
		MatchPlayers: []api.RawMatchPlayer{
			{
				Player:   &api.RawPlayerRef{UUID: "p1", Name: "Shade"},
				HeroData: &api.RawHeroData{Name: "Countess", DisplayName: "Countess", Icon: "asset1"},
				Team:     "DUSK",
				Role:     "CARRY",
				Kills:    14, Deaths: 4, Assists: 4,
				Rating: ratingPtr(1200, 1229),
			},
			{
				Player: &api.RawPlayerRef{UUID: "p2", Name: "Rook"},
				Hero:   &api.RawHeroRef{Name: "Steel"},
				Team:   "DAWN",
				Role:   "SUPPORT",
				Kills:  3, Deaths: 9, Assists: 12,
			},
		},
	}

	m := s.Transform(raw)

	if m.MatchUUID != raw.UUID || m.MatchID != "12345" {
		t.Errorf("identifiers = %q / %q", m.MatchUUID, m.MatchID)
	}
	if m.GameMode != domain.ModeRanked || m.Region != domain.RegionEurope || m.WinningTeam != domain.TeamDusk {
		t.Errorf("enums = %v / %v / %v", m.GameMode, m.Region, m.WinningTeam)
	}
	if m.DuskScore != 14 || m.DawnScore != 3 {
		t.Errorf("scores = dusk %d, dawn %d", m.DuskScore, m.DawnScore)
	}
	want := time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	if !m.EndTime.Equal(want) {
		t.Errorf("EndTime = %v", m.EndTime)
	}

	p1 := m.Players[0]
	if p1.HeroName != "Countess" {
		t.Errorf("HeroName = %q", p1.HeroName)
	}
	if p1.HeroIconURL != "https://pred.gg/assets/asset1.png" {
		t.Errorf("HeroIconURL = %q", p1.HeroIconURL)
	}
	if p1.MMRChange == nil || *p1.MMRChange != 29 {
		t.Errorf("MMRChange = %v", p1.MMRChange)
	}
	if p1.Role != domain.RoleCarry {
		t.Errorf("Role = %v", p1.Role)
	}

	p2 := m.Players[1]
	if p2.HeroName != "Steel" {
		t.Errorf("legacy hero fallback: HeroName = %q", p2.HeroName)
	}
	if p2.MMRChange != nil {
		t.Errorf("unranked player should have nil MMRChange, got %v", *p2.MMRChange)
	}
	if p2.OptedIn {
		t.Error("OptedIn must default to false")
	}
}

func TestTransformIsTotal(t *testing.T) {
	s := newTestService()

	// Entirely empty players and unparseable metadata must still produce a
	// Match with documented defaults.
	raw := &api.RawMatch{
		UUID:         "abc",
		EndTime:      "not-a-timestamp",
		GameMode:     "BRAWL",
		Region:       "MOON",
		WinningTeam:  "NEITHER",
		MatchPlayers: []api.RawMatchPlayer{{}, {Team: "DUSK"}},
	}

	m := s.Transform(raw)

	if m.GameMode != domain.ModeStandard {
		t.Errorf("GameMode default = %v", m.GameMode)
	}
	if m.Region != domain.RegionNA {
		t.Errorf("Region default = %v", m.Region)
	}
	if m.WinningTeam != domain.TeamDawn {
		t.Errorf("WinningTeam default = %v", m.WinningTeam)
	}
	if m.MatchID != "abc" {
		t.Errorf("MatchID should fall back to UUID, got %q", m.MatchID)
	}
	if m.EndTime.IsZero() {
		t.Error("unparseable endTime should fall back to now, not zero")
	}

	p := m.Players[0]
	if p.PlayerName != "Unknown" || p.HeroName != "Unknown" {
		t.Errorf("sentinels = %q / %q", p.PlayerName, p.HeroName)
	}
	if p.Team != domain.TeamDawn {
		t.Errorf("player team default = %v", p.Team)
	}
	if p.Role != domain.RoleNone {
		t.Errorf("player role default = %v", p.Role)
	}

	modes, regions, teams, _ := s.UnknownEnumCounts()
	if modes != 1 || regions != 1 || teams != 2 {
		t.Errorf("unknown enum counts = %d modes, %d regions, %d teams", modes, regions, teams)
	}
}

func TestTransformTeamPartition(t *testing.T) {
	s := newTestService()

	raw := &api.RawMatch{UUID: "m", GameMode: "RANKED", Region: "NA", WinningTeam: "DAWN", EndTime: "2025-06-01T00:00:00Z"}
	for i := 0; i < 10; i++ {
		team := "DAWN"
		if i >= 5 {
			team = "DUSK"
		}
		raw.MatchPlayers = append(raw.MatchPlayers, api.RawMatchPlayer{
			Player: &api.RawPlayerRef{UUID: "p", Name: "p"},
			Team:   team,
			Kills:  i,
		})
	}

	m := s.Transform(raw)

	var dawn, dusk int
	for _, p := range m.Players {
		switch p.Team {
		case domain.TeamDawn:
			dawn += p.Kills
		case domain.TeamDusk:
			dusk += p.Kills
		default:
			t.Fatalf("player on unexpected team %v", p.Team)
		}
	}
	if m.DawnScore != dawn || m.DuskScore != dusk {
		t.Errorf("stored scores (%d, %d) disagree with summation (%d, %d)", m.DawnScore, m.DuskScore, dawn, dusk)
	}
	if len(m.DawnPlayers()) != 5 || len(m.DuskPlayers()) != 5 {
		t.Errorf("partition = %d dawn, %d dusk", len(m.DawnPlayers()), len(m.DuskPlayers()))
	}
}

func TestMatchKeyNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dashed uuid", "440d3105-6a25-465c-9c47-23129ec6d453", "440d3105-6a25-465c-9c47-23129ec6d453"},
		{"undashed uuid", "440d31056a25465c9c4723129ec6d453", "440d3105-6a25-465c-9c47-23129ec6d453"},
		{"numeric id", "12345", "12345"},
		{"padded", " 12345 ", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := api.MatchKey(tt.in)
			if got := key["id"]; got != tt.want {
				t.Errorf("MatchKey(%q)[id] = %v, want %q", tt.in, got, tt.want)
			}
		})
	}
}
