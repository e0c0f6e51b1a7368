package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/radionet/internal/bot"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/usecases"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorInfo    = 0x3498DB
	colorError   = 0xE74C3C
)

// maxListedRefs is the number of entries shown in a listing embed.
const maxListedRefs = 20

// maxTitleLength is Discord's limit for embed titles.
const maxTitleLength = 256

// CommandHandlers holds all the command handlers.
type CommandHandlers struct {
	library  usecases.LibraryProvider
	playback *usecases.PlaybackService
}

// NewCommandHandlers creates new CommandHandlers.
// playback may be nil when no audio backend is configured.
func NewCommandHandlers(
	library usecases.LibraryProvider,
	playback *usecases.PlaybackService,
) *CommandHandlers {
	return &CommandHandlers{
		library:  library,
		playback: playback,
	}
}

// HandleRadio handles the /radio command.
func (h *CommandHandlers) HandleRadio(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return respondError(r, "Invalid subcommand")
	}

	subCmd := options[0]
	switch subCmd.Name {
	case "browse":
		return h.handleBrowse(r, subCmd.Options)
	case "lookup":
		return h.handleLookup(r, subCmd.Options)
	case "search":
		return h.handleSearch(r, subCmd.Options)
	case "play":
		return h.handlePlay(i, r, subCmd.Options)
	case "stop":
		return h.handleStop(i, r)
	case "nowplaying":
		return h.handleNowPlaying(i, r)
	default:
		return respondError(r, "Unknown subcommand")
	}
}

func (h *CommandHandlers) handleBrowse(
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	uri := stringOption(options, "uri")
	if uri == "" {
		uri = h.library.Root().URI
	}

	// Browsing refreshes every station list.
	if err := bot.Defer(r); err != nil {
		return err
	}

	refs, err := h.library.Browse(context.Background(), uri)
	if err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondRefs(r, uri, refs)
}

func (h *CommandHandlers) handleLookup(
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	uri := stringOption(options, "uri")

	if err := bot.Defer(r); err != nil {
		return err
	}

	tracks, ok, err := h.library.Lookup(context.Background(), uri)
	if err != nil {
		return respondError(r, errorMessage(err))
	}
	if !ok {
		return respondError(r, fmt.Sprintf("`%s` is not a Radio.net URI.", uri))
	}
	if len(tracks) == 0 {
		return respondError(r, fmt.Sprintf("`%s` does not address a station.", uri))
	}

	return respondStation(r, "Station", tracks[0])
}

func (h *CommandHandlers) handleSearch(
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	query := strings.TrimSpace(stringOption(options, "query"))
	if query == "" {
		return respondError(r, "Search query must not be empty")
	}

	if err := bot.Defer(r); err != nil {
		return err
	}

	result, err := h.library.Search(
		context.Background(),
		usecases.Query{domain.QueryFieldAny: strings.Fields(query)},
		nil,
		false,
	)
	if err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondSearchResult(r, query, result.Tracks)
}

func (h *CommandHandlers) handlePlay(
	i *discordgo.InteractionCreate,
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	if h.playback == nil {
		return respondError(r, errorMessage(usecases.ErrPlaybackDisabled))
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return respondError(r, "Invalid user")
	}

	// Joining a voice channel can take several seconds.
	if err := bot.Defer(r); err != nil {
		return err
	}

	output, err := h.playback.Play(context.Background(), usecases.PlayInput{
		GuildID:       guildID,
		UserID:        userID,
		URI:           stationURI(stringOption(options, "station")),
		RequesterName: getDisplayName(i.Member),
	})
	if err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondPlaying(r, output)
}

func (h *CommandHandlers) handleStop(i *discordgo.InteractionCreate, r bot.Responder) error {
	if h.playback == nil {
		return respondError(r, errorMessage(usecases.ErrPlaybackDisabled))
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.playback.Stop(context.Background(), usecases.StopInput{GuildID: guildID}); err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondMessage(r, "Stopped playback.", colorSuccess)
}

func (h *CommandHandlers) handleNowPlaying(i *discordgo.InteractionCreate, r bot.Responder) error {
	if h.playback == nil {
		return respondError(r, errorMessage(usecases.ErrPlaybackDisabled))
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	np, err := h.playback.NowPlaying(context.Background(), guildID)
	if err != nil {
		return respondError(r, errorMessage(err))
	}

	return respondNowPlaying(r, np)
}

// stationURI accepts either a radionet URI or a bare station name.
func stationURI(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, domain.Scheme+":") {
		return value
	}
	return domain.StationByNameURI(value).String()
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// errorMessage maps an error to the text shown to the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrStationNotFound):
		return "Station not found."
	case errors.Is(err, domain.ErrInvalidStationID):
		return "Invalid station ID."
	case errors.Is(err, usecases.ErrNotAStation),
		errors.Is(err, usecases.ErrUserNotInVoice),
		errors.Is(err, usecases.ErrNotPlaying),
		errors.Is(err, usecases.ErrStreamUnavailable),
		errors.Is(err, usecases.ErrPlaybackDisabled):
		return capitalize(err.Error()) + "."
	default:
		slog.Error("radionet command failed", "error", err)
		return "Failed to reach Radio.net. Please try again later."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondMessage(r bot.Responder, message string, color int) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: message,
					Color:       color,
				},
			},
		},
	})
}

func respondRefs(r bot.Responder, uri string, refs []usecases.Ref) error {
	if len(refs) == 0 {
		return respondMessage(r, fmt.Sprintf("Nothing found under `%s`.", uri), colorInfo)
	}

	var sb strings.Builder
	for idx, ref := range refs {
		if idx >= maxListedRefs {
			fmt.Fprintf(&sb, "...and %d more", len(refs)-maxListedRefs)
			break
		}
		icon := "📻"
		if ref.Kind == domain.RefDirectory {
			icon = "📁"
		}
		fmt.Fprintf(&sb, "%s **%s** `%s`\n", icon, ref.Name, ref.URI)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       truncate(uri, maxTitleLength),
					Description: sb.String(),
					Color:       colorInfo,
				},
			},
		},
	})
}

func respondSearchResult(r bot.Responder, query string, tracks []usecases.Track) error {
	if len(tracks) == 0 {
		return respondMessage(r, fmt.Sprintf("No stations found for **%s**.", query), colorInfo)
	}

	var sb strings.Builder
	for idx, track := range tracks {
		if idx >= maxListedRefs {
			fmt.Fprintf(&sb, "...and %d more", len(tracks)-maxListedRefs)
			break
		}
		fmt.Fprintf(&sb, "%d. **%s** `%s`\n", idx+1, track.Name, track.Album.URI)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       truncate("Search: "+query, maxTitleLength),
					Description: sb.String(),
					Color:       colorInfo,
				},
			},
		},
	})
}

func trackFields(track usecases.Track) []*discordgo.MessageEmbedField {
	var fields []*discordgo.MessageEmbedField
	if track.Genre != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Genre",
			Value:  track.Genre,
			Inline: true,
		})
	}
	if track.Comment != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Description",
			Value: track.Comment,
		})
	}
	if track.Album.Name != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Location",
			Value: track.Album.Name,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Stream",
		Value: track.URI,
	})
	return fields
}

func respondStation(r bot.Responder, title string, track usecases.Track) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       title,
					Description: fmt.Sprintf("**%s**", track.Name),
					Color:       colorInfo,
					Fields:      trackFields(track),
				},
			},
		},
	})
}

func respondPlaying(r bot.Responder, output *usecases.PlayOutput) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: fmt.Sprintf(
						"Playing **%s** in <#%d>.",
						output.Track.Name,
						output.VoiceChannelID,
					),
					Color: colorSuccess,
				},
			},
		},
	})
}

func respondNowPlaying(r bot.Responder, np *usecases.NowPlaying) error {
	fields := trackFields(np.Track)
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "Requested by",
		Value:  fmt.Sprintf("<@%d>", np.RequesterID),
		Inline: true,
	}, &discordgo.MessageEmbedField{
		Name:   "Since",
		Value:  fmt.Sprintf("<t:%d:R>", np.StartedAt.Unix()),
		Inline: true,
	})

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Now Playing",
					Description: fmt.Sprintf("**%s** in <#%d>", np.Track.Name, np.VoiceChannelID),
					Color:       colorInfo,
					Fields:      fields,
				},
			},
		},
	})
}

// getDisplayName returns the effective display name for a guild member.
// Priority: guild nickname > global display name > username.
func getDisplayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}
