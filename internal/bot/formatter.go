package bot

import (
	"fmt"
	"strings"

	"predecessor-tracker/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// Embed colors.
const (
	victoryColor = 0x57BB8A
	defeatColor  = 0xED4245
	neutralColor = 0x808080
)

const (
	victoryEmoji = "\U0001F3C6"
	defeatEmoji  = "☠️"
)

// MatchFormatter renders a domain Match into a Discord embed plus buttons.
// Only opted-in or guild-subscribed players appear in the team sections.
type MatchFormatter struct {
	match           domain.Match
	subscribedUUIDs map[string]struct{}
	subscribedNames map[string]string
	emojis          *EmojiResolver
}

func NewMatchFormatter(match domain.Match, subscribed []domain.SubscribedProfile, emojis *EmojiResolver) *MatchFormatter {
	uuids := make(map[string]struct{}, len(subscribed))
	names := make(map[string]string)
	for _, p := range subscribed {
		uuids[p.PlayerUUID] = struct{}{}
		if p.PlayerName != "" {
			names[p.PlayerUUID] = p.PlayerName
		}
	}
	return &MatchFormatter{
		match:           match,
		subscribedUUIDs: uuids,
		subscribedNames: names,
		emojis:          emojis,
	}
}

// Embed builds the match summary embed.
func (f *MatchFormatter) Embed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Click here to view more",
		URL:         f.match.MatchURL(),
		Color:       f.embedColor(),
		Description: f.overview(),
		Footer:      &discordgo.MessageEmbedFooter{Text: strings.ReplaceAll(f.match.MatchUUID, "-", "")},
		Timestamp:   f.match.EndTime.Format("2006-01-02T15:04:05Z07:00"),
	}

	winningTeam := f.match.WinningTeam
	if section := f.teamSection(f.match.WinningPlayers()); section != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s - %s Victory", winningTeam, victoryEmoji),
			Value: section,
		})
	}

	losingTeam := domain.TeamDawn
	if winningTeam == domain.TeamDawn {
		losingTeam = domain.TeamDusk
	}
	if section := f.teamSection(f.match.LosingPlayers()); section != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s - %s Defeat", losingTeam, defeatEmoji),
			Value: section,
		})
	}

	return embed
}

// Components builds the Open link button and the scoreboard button. The
// scoreboard custom id carries the match UUID so clicks survive restarts.
func (f *MatchFormatter) Components() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Style: discordgo.LinkButton,
					Label: "Open",
					Emoji: &discordgo.ComponentEmoji{Name: "\U0001F517"},
					URL:   f.match.MatchURL(),
				},
				discordgo.Button{
					Style:    discordgo.SecondaryButton,
					Label:    "View Scoreboard",
					CustomID: "scoreboard:" + f.match.MatchUUID,
				},
			},
		},
	}
}

// embedColor reflects how the guild's subscribed players fared. Mixed teams
// and unsubscribed matches render neutral.
func (f *MatchFormatter) embedColor() int {
	if len(f.subscribedUUIDs) == 0 {
		return neutralColor
	}

	teams := make(map[domain.TeamSide]struct{})
	for _, p := range f.match.Players {
		if _, ok := f.subscribedUUIDs[p.PlayerUUID]; ok {
			teams[p.Team] = struct{}{}
		}
	}
	if len(teams) != 1 {
		return neutralColor
	}
	for team := range teams {
		if team == f.match.WinningTeam {
			return victoryColor
		}
	}
	return defeatColor
}

func (f *MatchFormatter) overview() string {
	return fmt.Sprintf("**%s**\n**Duration:** %d Minutes\n**Gamemode:** %s",
		f.match.ScoreString(), f.match.DurationMinutes(), f.match.GameMode)
}

func (f *MatchFormatter) teamSection(players []domain.MatchPlayer) string {
	var lines []string
	for _, p := range players {
		if !p.OptedIn {
			if _, ok := f.subscribedUUIDs[p.PlayerUUID]; !ok {
				continue
			}
		}
		lines = append(lines, f.playerLine(p))
	}
	return strings.Join(lines, "\n")
}

// playerLine formats one player, e.g.
// `+29` <:countess:1> <:carry:2> [**Shade**](url) `7/7/3` - `12.7CS/m` - `451G/m`
func (f *MatchFormatter) playerLine(p domain.MatchPlayer) string {
	var parts []string

	if mmr := p.MMRChangeString(); mmr != "" {
		parts = append(parts, fmt.Sprintf("`%4s`", mmr))
	}

	parts = append(parts, f.emojis.Hero(p.HeroName))
	if role := f.emojis.Role(p.Role); role != "" {
		parts = append(parts, role)
	}

	name := f.displayName(p)
	parts = append(parts, fmt.Sprintf("[**%s**](%s)", name, p.ProfileURL()))
	parts = append(parts, "`"+p.KDAString()+"`")

	csPerMin := domain.CalculatePerMinute(float64(p.MinionsKilled), f.match.DurationSeconds)
	goldPerMin := domain.CalculatePerMinute(float64(p.Gold), f.match.DurationSeconds)
	parts = append(parts, fmt.Sprintf("- `%.1fCS/m` - `%.0fG/m`", csPerMin, goldPerMin))

	if p.PerformanceScore != nil {
		parts = append(parts, fmt.Sprintf("**%.2f** PS", *p.PerformanceScore))
	}

	return strings.Join(parts, " ")
}

// displayName swaps a UUID-derived fallback name for the name stored at
// subscription time, when one exists.
func (f *MatchFormatter) displayName(p domain.MatchPlayer) string {
	name := domain.FormatPlayerDisplayName(p.PlayerName, p.PlayerUUID)
	if strings.HasPrefix(name, "user-") && strings.HasSuffix(name, "...") {
		if stored, ok := f.subscribedNames[p.PlayerUUID]; ok {
			return stored
		}
	}
	return name
}
