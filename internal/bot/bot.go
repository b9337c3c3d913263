package bot

import (
	"context"
	"fmt"
	"strings"

	"predecessor-tracker/internal/api"
	"predecessor-tracker/internal/config"
	"predecessor-tracker/internal/domain"
	"predecessor-tracker/internal/render"
	"predecessor-tracker/internal/repository"
	"predecessor-tracker/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Bot owns the Discord session, slash command handling, and delivery of match
// notifications pushed in by the HTTP server.
type Bot struct {
	session  *discordgo.Session
	logger   zerolog.Logger
	matches  *service.MatchService
	players  *service.PlayerMatchesService
	renderer *render.Generator
	emojis   *EmojiResolver

	profiles  *repository.SubscribedProfileRepository
	channels  *repository.TargetChannelRepository
	processed *repository.ProcessedMatchRepository

	registeredCommands []*discordgo.ApplicationCommand
}

type Params struct {
	fx.In

	Config    *config.Config
	Logger    zerolog.Logger
	Matches   *service.MatchService
	Players   *service.PlayerMatchesService
	Renderer  *render.Generator
	Profiles  *repository.SubscribedProfileRepository
	Channels  *repository.TargetChannelRepository
	Processed *repository.ProcessedMatchRepository
}

func New(p Params) (*Bot, error) {
	session, err := discordgo.New("Bot " + p.Config.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{
		session:   session,
		logger:    p.Logger.With().Str("component", "bot").Logger(),
		matches:   p.Matches,
		players:   p.Players,
		renderer:  p.Renderer,
		emojis:    NewEmojiResolver(session),
		profiles:  p.Profiles,
		channels:  p.Channels,
		processed: p.Processed,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Start opens the gateway connection and registers slash commands.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	appID := b.session.State.User.ID
	for _, cmd := range commandDefinitions() {
		registered, err := b.session.ApplicationCommandCreate(appID, "", cmd)
		if err != nil {
			return fmt.Errorf("register command %s: %w", cmd.Name, err)
		}
		b.registeredCommands = append(b.registeredCommands, registered)
	}

	if err := b.emojis.Refresh(); err != nil {
		b.logger.Warn().Err(err).Msg("failed to load application emojis, falling back to text")
	}

	b.logger.Info().Int("commands", len(b.registeredCommands)).Msg("bot started")
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop(ctx context.Context) error {
	b.logger.Info().Msg("bot stopping")
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info().
		Str("username", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("discord gateway ready")
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.dispatchComponent(s, i)
	}
}

func (b *Bot) dispatchComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if matchUUID, ok := strings.CutPrefix(customID, "scoreboard:"); ok {
		b.handleScoreboardButton(s, i, matchUUID)
		return
	}
	b.logger.Warn().Str("custom_id", customID).Msg("unknown component interaction")
}

// handleScoreboardButton renders the leaderboard image for a notification's
// scoreboard button and attaches it to the deferred response.
func (b *Bot) handleScoreboardButton(s *discordgo.Session, i *discordgo.InteractionCreate, matchUUID string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		b.logger.Error().Err(err).Msg("failed to defer component response")
		return
	}

	ctx := context.Background()
	_, raw, err := b.matches.FetchDetailedMatch(ctx, matchUUID)
	if err != nil || raw == nil {
		b.logger.Error().Err(err).Str("match_uuid", matchUUID).Msg("failed to fetch match for scoreboard")
		b.editResponse(s, i, "Could not load the scoreboard for this match.")
		return
	}

	image, err := b.renderer.Generate(raw)
	if err != nil {
		b.logger.Error().Err(err).Str("match_uuid", matchUUID).Msg("failed to render scoreboard")
		b.editResponse(s, i, "Could not render the scoreboard for this match.")
		return
	}

	b.editResponseWithImage(s, i, raw.UUID, image)
}

// NotifyMatch fans a completed match out to every guild with a subscribed
// player in it. Guilds without configured channels are skipped. Returns the
// match UUID for the caller's acknowledgement.
func (b *Bot) NotifyMatch(ctx context.Context, raw *api.RawMatch) (string, error) {
	match := b.matches.Transform(raw)

	profiles, err := b.profiles.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("list subscriptions: %w", err)
	}

	inMatch := make(map[string]struct{}, len(match.Players))
	for _, p := range match.Players {
		inMatch[p.PlayerUUID] = struct{}{}
	}

	byGuild := make(map[int64][]domain.SubscribedProfile)
	for _, profile := range profiles {
		if _, ok := inMatch[profile.PlayerUUID]; ok {
			byGuild[profile.GuildID] = append(byGuild[profile.GuildID], profile)
		}
	}

	for guildID, subscribed := range byGuild {
		channels, err := b.channels.List(ctx, guildID)
		if err != nil {
			b.logger.Error().Err(err).Int64("guild_id", guildID).Msg("failed to list target channels")
			continue
		}
		if len(channels) == 0 {
			continue
		}

		formatter := NewMatchFormatter(match, subscribed, b.emojis)
		message := &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{formatter.Embed()},
			Components: formatter.Components(),
		}
		for _, ch := range channels {
			if _, err := b.session.ChannelMessageSendComplex(fmt.Sprintf("%d", ch.ChannelID), message); err != nil {
				b.logger.Error().Err(err).
					Int64("guild_id", guildID).
					Int64("channel_id", ch.ChannelID).
					Str("match_uuid", match.MatchUUID).
					Msg("failed to send match notification")
				continue
			}
			b.logger.Info().
				Int64("guild_id", guildID).
				Int64("channel_id", ch.ChannelID).
				Str("match_uuid", match.MatchUUID).
				Int("subscribed_players", len(subscribed)).
				Msg("match notification sent")
		}
	}

	return match.MatchUUID, nil
}

// Lifecycle wires the bot into application startup and shutdown.
func Lifecycle(lc fx.Lifecycle, b *Bot) {
	lc.Append(fx.Hook{
		OnStart: b.Start,
		OnStop:  b.Stop,
	})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(Lifecycle),
)
