package bot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"predecessor-tracker/internal/domain"

	"github.com/bwmarrin/discordgo"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "match",
			Description: "Show a match summary",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "match_id",
					Description: "Match ID or UUID",
					Required:    true,
				},
			},
		},
		{
			Name:        "scoreboard",
			Description: "Render the full scoreboard image for a match",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "match_id",
					Description: "Match ID or UUID",
					Required:    true,
				},
			},
		},
		{
			Name:        "subscribe",
			Description: "Subscribe this server to a player's matches",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "player_uuid",
					Description: "Player UUID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Display name to use in notifications",
					Required:    false,
				},
			},
		},
		{
			Name:        "unsubscribe",
			Description: "Unsubscribe this server from a player's matches",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "player_uuid",
					Description: "Player UUID",
					Required:    true,
				},
			},
		},
		{
			Name:        "subscriptions",
			Description: "List this server's player subscriptions",
		},
		{
			Name:        "notify-channel",
			Description: "Send match notifications to a channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to notify",
					Required:    true,
				},
			},
		},
		{
			Name:        "notify-channels",
			Description: "List the channels receiving match notifications",
		},
		{
			Name:        "notify-channel-remove",
			Description: "Stop sending match notifications to a channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "clear-subscriptions",
			Description: "Remove all of this server's player subscriptions",
		},
	}
}

func (b *Bot) dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	b.logger.Debug().Str("command", data.Name).Str("guild_id", i.GuildID).Msg("command received")

	switch data.Name {
	case "match":
		b.handleMatch(s, i)
	case "scoreboard":
		b.handleScoreboard(s, i)
	case "subscribe":
		b.handleSubscribe(s, i)
	case "unsubscribe":
		b.handleUnsubscribe(s, i)
	case "subscriptions":
		b.handleSubscriptions(s, i)
	case "notify-channel":
		b.handleNotifyChannel(s, i)
	case "notify-channels":
		b.handleNotifyChannels(s, i)
	case "notify-channel-remove":
		b.handleNotifyChannelRemove(s, i)
	case "clear-subscriptions":
		b.handleClearSubscriptions(s, i)
	default:
		b.logger.Warn().Str("command", data.Name).Msg("unknown command")
	}
}

func (b *Bot) handleMatch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	matchID := optionString(i, "match_id")
	if !b.deferResponse(s, i) {
		return
	}

	ctx := context.Background()
	match, err := b.matches.FetchMatch(ctx, matchID)
	if err != nil {
		b.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to fetch match")
		b.editResponse(s, i, "Could not fetch that match. Try again later.")
		return
	}
	if match == nil {
		b.editResponse(s, i, fmt.Sprintf("No match found for `%s`.", matchID))
		return
	}

	subscribed, err := b.guildSubscriptions(ctx, i.GuildID)
	if err != nil {
		b.logger.Error().Err(err).Str("guild_id", i.GuildID).Msg("failed to load subscriptions")
	}

	// Explicit lookups show every player, not just subscribed ones.
	shown := *match
	shown.Players = make([]domain.MatchPlayer, len(match.Players))
	copy(shown.Players, match.Players)
	for idx := range shown.Players {
		shown.Players[idx].OptedIn = true
	}

	formatter := NewMatchFormatter(shown, subscribed, b.emojis)
	embed := formatter.Embed()
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &[]discordgo.MessageComponent{formatter.Components()[0]},
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to edit match response")
	}
}

func (b *Bot) handleScoreboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	matchID := optionString(i, "match_id")
	if !b.deferResponse(s, i) {
		return
	}

	ctx := context.Background()
	_, raw, err := b.matches.FetchDetailedMatch(ctx, matchID)
	if err != nil {
		b.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to fetch detailed match")
		b.editResponse(s, i, "Could not fetch that match. Try again later.")
		return
	}
	if raw == nil {
		b.editResponse(s, i, fmt.Sprintf("No match found for `%s`.", matchID))
		return
	}

	image, err := b.renderer.Generate(raw)
	if err != nil {
		b.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to render scoreboard")
		b.editResponse(s, i, "Could not render the scoreboard for this match.")
		return
	}

	b.editResponseWithImage(s, i, raw.UUID, image)
}

func (b *Bot) handleSubscribe(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := b.requireGuild(s, i)
	if !ok {
		return
	}

	playerUUID, err := domain.NormalizeUUID(optionString(i, "player_uuid"))
	if err != nil {
		b.respondWithMessage(s, i, "That does not look like a valid player UUID.")
		return
	}
	// The name lookup hits the API, so acknowledge the interaction first.
	if !b.deferResponse(s, i) {
		return
	}

	ctx := context.Background()
	playerName := optionString(i, "name")
	if playerName == "" {
		playerName = b.players.FetchPlayerName(ctx, playerUUID)
	}

	added, err := b.profiles.Add(ctx, guildID, playerUUID, playerName)
	if err != nil {
		b.editResponse(s, i, "Something went wrong saving the subscription.")
		return
	}
	if !added {
		if playerName != "" {
			if _, err := b.profiles.UpdatePlayerName(ctx, guildID, playerUUID, playerName); err != nil {
				b.logger.Warn().Err(err).Str("player_uuid", playerUUID).Msg("failed to refresh cached player name")
			}
		}
		b.editResponse(s, i, "This server is already subscribed to that player.")
		return
	}

	label := playerUUID
	if playerName != "" {
		label = fmt.Sprintf("%s (`%s`)", playerName, playerUUID)
	}
	b.editResponse(s, i, fmt.Sprintf("Subscribed to %s. New matches will be posted to the configured channels.", label))
}

func (b *Bot) handleUnsubscribe(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := b.requireGuild(s, i)
	if !ok {
		return
	}

	playerUUID, err := domain.NormalizeUUID(optionString(i, "player_uuid"))
	if err != nil {
		b.respondWithMessage(s, i, "That does not look like a valid player UUID.")
		return
	}

	removed, err := b.profiles.Remove(context.Background(), guildID, playerUUID)
	if err != nil {
		b.respondWithMessage(s, i, "Something went wrong removing the subscription.")
		return
	}
	if !removed {
		b.respondWithMessage(s, i, "This server was not subscribed to that player.")
		return
	}
	b.respondWithMessage(s, i, fmt.Sprintf("Unsubscribed from `%s`.", playerUUID))
}

func (b *Bot) handleSubscriptions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := b.requireGuild(s, i)
	if !ok {
		return
	}

	profiles, err := b.profiles.List(context.Background(), guildID)
	if err != nil {
		b.respondWithMessage(s, i, "Something went wrong loading subscriptions.")
		return
	}
	if len(profiles) == 0 {
		b.respondWithMessage(s, i, "This server has no player subscriptions. Use `/subscribe` to add one.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%d subscribed player(s):**\n", len(profiles))
	for _, p := range profiles {
		if p.PlayerName != "" {
			fmt.Fprintf(&sb, "- %s (`%s`)\n", p.PlayerName, p.PlayerUUID)
		} else {
			fmt.Fprintf(&sb, "- `%s`\n", p.PlayerUUID)
		}
	}
	b.respondWithMessage(s, i, sb.String())
}

func (b *Bot) handleNotifyChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := b.requireGuild(s, i)
	if !ok {
		return
	}

	channel := optionChannel(i, "channel")
	if channel == nil {
		b.respondWithMessage(s, i, "Pick a channel to notify.")
		return
	}
	channelID, err := strconv.ParseInt(channel.ID, 10, 64)
	if err != nil {
		b.respondWithMessage(s, i, "Could not read that channel.")
		return
	}

	added, err := b.channels.Add(context.Background(), guildID, channelID)
	if err != nil {
		b.respondWithMessage(s, i, "Something went wrong saving the channel.")
		return
	}
	if !added {
		b.respondWithMessage(s, i, fmt.Sprintf("<#%s> is already receiving match notifications.", channel.ID))
		return
	}
	b.respondWithMessage(s, i, fmt.Sprintf("Match notifications will be posted to <#%s>.", channel.ID))
}

func (b *Bot) handleNotifyChannels(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := b.requireGuild(s, i)
	if !ok {
		return
	}

	channels, err := b.channels.List(context.Background(), guildID)
	if err != nil {
		b.respondWithMessage(s, i, "Something went wrong loading the notification channels.")
		return
	}
	if len(channels) == 0 {
		b.respondWithMessage(s, i, "No notification channels are configured. Use `/notify-channel` to add one.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%d notification channel(s):**\n", len(channels))
	for _, ch := range channels {
		fmt.Fprintf(&sb, "- <#%d>\n", ch.ChannelID)
	}
	b.respondWithMessage(s, i, sb.String())
}

func (b *Bot) handleNotifyChannelRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := b.requireGuild(s, i)
	if !ok {
		return
	}

	channel := optionChannel(i, "channel")
	if channel == nil {
		b.respondWithMessage(s, i, "Pick a channel to remove.")
		return
	}
	channelID, err := strconv.ParseInt(channel.ID, 10, 64)
	if err != nil {
		b.respondWithMessage(s, i, "Could not read that channel.")
		return
	}

	removed, err := b.channels.Remove(context.Background(), guildID, channelID)
	if err != nil {
		b.respondWithMessage(s, i, "Something went wrong removing the channel.")
		return
	}
	if !removed {
		b.respondWithMessage(s, i, fmt.Sprintf("<#%s> was not configured for notifications.", channel.ID))
		return
	}
	b.respondWithMessage(s, i, fmt.Sprintf("<#%s> will no longer receive match notifications.", channel.ID))
}

func (b *Bot) handleClearSubscriptions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := b.requireGuild(s, i)
	if !ok {
		return
	}

	cleared, err := b.profiles.ClearGuild(context.Background(), guildID)
	if err != nil {
		b.respondWithMessage(s, i, "Something went wrong clearing subscriptions.")
		return
	}
	b.respondWithMessage(s, i, fmt.Sprintf("Removed %d subscription(s).", cleared))
}

// guildSubscriptions loads a guild's subscriptions; outside guilds (DMs) it
// returns an empty list.
func (b *Bot) guildSubscriptions(ctx context.Context, guildID string) ([]domain.SubscribedProfile, error) {
	if guildID == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return nil, err
	}
	return b.profiles.List(ctx, id)
}

func (b *Bot) requireGuild(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	if i.GuildID == "" {
		b.respondWithMessage(s, i, "This command only works inside a server.")
		return 0, false
	}
	id, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		b.respondWithMessage(s, i, "Could not read this server's ID.")
		return 0, false
	}
	return id, true
}

func optionString(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func optionChannel(i *discordgo.InteractionCreate, name string) *discordgo.Channel {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionChannel {
			return opt.ChannelValue(nil)
		}
	}
	return nil
}

func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to defer response")
		return false
	}
	return true
}

func (b *Bot) respondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to respond to interaction")
	}
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to edit response")
	}
}

func (b *Bot) editResponseWithImage(s *discordgo.Session, i *discordgo.InteractionCreate, matchUUID string, image []byte) {
	filename := fmt.Sprintf("scoreboard-%s.png", strings.ReplaceAll(matchUUID, "-", ""))
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Files: []*discordgo.File{
			{
				Name:        filename,
				ContentType: "image/png",
				Reader:      bytes.NewReader(image),
			},
		},
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to attach scoreboard image")
	}
}
