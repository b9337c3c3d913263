package bot

import (
	"strings"
	"testing"
	"time"

	"predecessor-tracker/internal/domain"

	"github.com/bwmarrin/discordgo"
)

func intPtr(v int) *int { return &v }

func testMatch() domain.Match {
	return domain.Match{
		MatchUUID:       "440d3105-6a25-465c-9c47-23129ec6d453",
		MatchID:         "440d3105-6a25-465c-9c47-23129ec6d453",
		DurationSeconds: 2820,
		GameMode:        domain.ModeRanked,
		WinningTeam:     domain.TeamDusk,
		DuskScore:       39,
		DawnScore:       35,
		EndTime:         time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC),
		Players: []domain.MatchPlayer{
			{
				PlayerName: "Shade",
				PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000001",
				HeroName:   "Countess",
				Team:       domain.TeamDusk,
				Role:       domain.RoleMidlane,
				Kills:      14, Deaths: 4, Assists: 4,
				MinionsKilled: 180, Gold: 14000,
				MMRChange: intPtr(29),
			},
			{
				PlayerName: "Rook",
				PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000002",
				HeroName:   "Steel",
				Team:       domain.TeamDawn,
				Role:       domain.RoleSupport,
				Kills:      2, Deaths: 9, Assists: 15,
				MinionsKilled: 40, Gold: 8000,
				MMRChange: intPtr(-15),
			},
		},
	}
}

func newFormatter(match domain.Match, subscribed []domain.SubscribedProfile) *MatchFormatter {
	return NewMatchFormatter(match, subscribed, &EmojiResolver{byName: nil})
}

func TestEmbedColorFollowsSubscribedTeam(t *testing.T) {
	match := testMatch()

	tests := []struct {
		name       string
		subscribed []domain.SubscribedProfile
		want       int
	}{
		{
			name: "subscribed player won",
			subscribed: []domain.SubscribedProfile{
				{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000001"},
			},
			want: victoryColor,
		},
		{
			name: "subscribed player lost",
			subscribed: []domain.SubscribedProfile{
				{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000002"},
			},
			want: defeatColor,
		},
		{
			name: "subscribed players on both teams",
			subscribed: []domain.SubscribedProfile{
				{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000001"},
				{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000002"},
			},
			want: neutralColor,
		},
		{
			name:       "no subscriptions",
			subscribed: nil,
			want:       neutralColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFormatter(match, tt.subscribed)
			if got := f.Embed().Color; got != tt.want {
				t.Errorf("embed color = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestEmbedStructure(t *testing.T) {
	match := testMatch()
	subscribed := []domain.SubscribedProfile{
		{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000001"},
		{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000002"},
	}

	embed := newFormatter(match, subscribed).Embed()

	if embed.Title != "Click here to view more" {
		t.Errorf("title = %q", embed.Title)
	}
	if want := "https://pred.gg/matches/440d31056a25465c9c4723129ec6d453"; embed.URL != want {
		t.Errorf("url = %q, want %q", embed.URL, want)
	}
	if embed.Footer.Text != "440d31056a25465c9c4723129ec6d453" {
		t.Errorf("footer = %q", embed.Footer.Text)
	}
	if !strings.Contains(embed.Description, "Dusk (39) vs Dawn (35)") {
		t.Errorf("description missing score: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "Duration:** 47 Minutes") {
		t.Errorf("description missing duration: %q", embed.Description)
	}

	if len(embed.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[0].Name, "Dusk") || !strings.Contains(embed.Fields[0].Name, "Victory") {
		t.Errorf("winner field name = %q", embed.Fields[0].Name)
	}
	if !strings.Contains(embed.Fields[1].Name, "Dawn") || !strings.Contains(embed.Fields[1].Name, "Defeat") {
		t.Errorf("loser field name = %q", embed.Fields[1].Name)
	}

	if !strings.Contains(embed.Fields[0].Value, "`14/4/4`") {
		t.Errorf("winner section missing kda: %q", embed.Fields[0].Value)
	}
	if !strings.Contains(embed.Fields[0].Value, "+29") {
		t.Errorf("winner section missing mmr delta: %q", embed.Fields[0].Value)
	}
	if !strings.Contains(embed.Fields[1].Value, "-15") {
		t.Errorf("loser section missing mmr delta: %q", embed.Fields[1].Value)
	}
}

func TestEmbedOmitsUnsubscribedPlayers(t *testing.T) {
	match := testMatch()
	subscribed := []domain.SubscribedProfile{
		{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000001"},
	}

	embed := newFormatter(match, subscribed).Embed()

	if len(embed.Fields) != 1 {
		t.Fatalf("fields = %d, want 1 (losing side has no subscribed players)", len(embed.Fields))
	}
	if strings.Contains(embed.Fields[0].Value, "Rook") {
		t.Errorf("unsubscribed player leaked into embed: %q", embed.Fields[0].Value)
	}
}

func TestDisplayNameUsesStoredSubscriptionName(t *testing.T) {
	match := testMatch()
	match.Players[0].PlayerName = ""

	subscribed := []domain.SubscribedProfile{
		{PlayerUUID: "aaaaaaaa-0000-0000-0000-000000000001", PlayerName: "Shade"},
	}

	embed := newFormatter(match, subscribed).Embed()
	if !strings.Contains(embed.Fields[0].Value, "Shade") {
		t.Errorf("stored subscription name not used: %q", embed.Fields[0].Value)
	}
}

func TestScoreboardButtonCarriesMatchUUID(t *testing.T) {
	f := newFormatter(testMatch(), nil)
	components := f.Components()
	if len(components) != 1 {
		t.Fatalf("components = %d, want 1 row", len(components))
	}

	row, ok := components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("component is %T, want ActionsRow", components[0])
	}
	if len(row.Components) != 2 {
		t.Fatalf("row has %d buttons, want 2", len(row.Components))
	}
	button, ok := row.Components[1].(discordgo.Button)
	if !ok {
		t.Fatalf("second component is %T, want Button", row.Components[1])
	}
	if want := "scoreboard:440d3105-6a25-465c-9c47-23129ec6d453"; button.CustomID != want {
		t.Errorf("custom id = %q, want %q", button.CustomID, want)
	}
}
