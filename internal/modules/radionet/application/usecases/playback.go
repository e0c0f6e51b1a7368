package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/ports"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// PlaybackService plays radionet stations in Discord voice channels.
type PlaybackService struct {
	repo            domain.NowPlayingRepository
	library         ports.LibraryProvider
	voiceConnection ports.VoiceConnection
	voiceState      ports.VoiceStateProvider
	resolver        ports.StreamResolver
	player          ports.AudioPlayer
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	repo domain.NowPlayingRepository,
	library ports.LibraryProvider,
	voiceConnection ports.VoiceConnection,
	voiceState ports.VoiceStateProvider,
	resolver ports.StreamResolver,
	player ports.AudioPlayer,
) *PlaybackService {
	return &PlaybackService{
		repo:            repo,
		library:         library,
		voiceConnection: voiceConnection,
		voiceState:      voiceState,
		resolver:        resolver,
		player:          player,
	}
}

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID       snowflake.ID
	UserID        snowflake.ID
	URI           string
	RequesterName string
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Track          Track
	VoiceChannelID snowflake.ID
}

// Play looks up the station addressed by the URI and plays its stream
// in the requester's voice channel, replacing whatever was playing.
func (s *PlaybackService) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	tracks, ok, err := s.library.Lookup(ctx, input.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", input.URI, err)
	}
	if !ok || len(tracks) != 1 {
		return nil, ErrNotAStation
	}
	track := tracks[0]

	channelID, err := s.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}
	if channelID == 0 {
		return nil, ErrUserNotInVoice
	}

	stream, err := s.resolver.ResolveStream(ctx, track.URI)
	if err != nil {
		return nil, err
	}
	if stream == nil || stream.Encoded == "" {
		return nil, ErrStreamUnavailable
	}

	current := s.repo.Get(input.GuildID)
	if current == nil || current.VoiceChannelID != channelID {
		if err := s.voiceConnection.JoinChannel(ctx, input.GuildID, channelID); err != nil {
			return nil, err
		}
	}

	if err := s.player.Play(ctx, input.GuildID, stream.Encoded); err != nil {
		return nil, err
	}

	s.repo.Save(domain.NewNowPlaying(
		input.GuildID,
		channelID,
		input.URI,
		track,
		input.UserID,
		input.RequesterName,
	))

	slog.Info("playing station",
		"guild", input.GuildID,
		"station", track.Name,
		"uri", input.URI,
		"stream_title", stream.Title,
		"live", stream.IsStream,
	)

	return &PlayOutput{
		Track:          track,
		VoiceChannelID: channelID,
	}, nil
}

// StopInput contains the input for the Stop use case.
type StopInput struct {
	GuildID snowflake.ID
}

// Stop stops playback and leaves the voice channel.
func (s *PlaybackService) Stop(ctx context.Context, input StopInput) error {
	if s.repo.Get(input.GuildID) == nil {
		return ErrNotPlaying
	}

	if err := s.player.Stop(ctx, input.GuildID); err != nil {
		return err
	}

	s.repo.Delete(input.GuildID)

	if err := s.voiceConnection.LeaveChannel(ctx, input.GuildID); err != nil {
		return err
	}

	return nil
}

// NowPlaying returns what is playing in the guild.
func (s *PlaybackService) NowPlaying(_ context.Context, guildID snowflake.ID) (*NowPlaying, error) {
	np := s.repo.Get(guildID)
	if np == nil {
		return nil, ErrNotPlaying
	}
	return np, nil
}

// OnStreamEnded clears the guild's record and leaves voice when the stream
// died on its own. Ends caused by Stop or by a new Play are ignored.
func (s *PlaybackService) OnStreamEnded(ctx context.Context, event domain.StreamEndedEvent) {
	if !event.Reason.IsTerminal() {
		return
	}

	np := s.repo.Get(event.GuildID)
	if np == nil {
		return
	}
	s.repo.Delete(event.GuildID)

	slog.Info("station stream ended",
		"guild", event.GuildID,
		"station", np.Track.Name,
		"reason", event.Reason,
	)

	if err := s.voiceConnection.LeaveChannel(ctx, event.GuildID); err != nil {
		slog.Warn("failed to leave voice channel after stream ended",
			"guild", event.GuildID,
			"error", err,
		)
	}
}

// OnVoiceChannelChanged keeps the guild's record in step with where the bot
// actually is. A disconnect clears it; a move updates its channel.
func (s *PlaybackService) OnVoiceChannelChanged(
	_ context.Context,
	event domain.VoiceChannelChangedEvent,
) {
	np := s.repo.Get(event.GuildID)
	if np == nil {
		return
	}

	if event.Left() {
		s.repo.Delete(event.GuildID)
		slog.Info("left voice, cleared now playing",
			"guild", event.GuildID,
			"station", np.Track.Name,
		)
		return
	}

	if np.VoiceChannelID != event.ChannelID {
		moved := *np
		moved.VoiceChannelID = event.ChannelID
		s.repo.Save(&moved)
		slog.Debug("moved to another voice channel",
			"guild", event.GuildID,
			"channel", event.ChannelID,
		)
	}
}

// Ensure PlaybackService implements ports.PlaybackEventHandler.
var _ ports.PlaybackEventHandler = (*PlaybackService)(nil)
