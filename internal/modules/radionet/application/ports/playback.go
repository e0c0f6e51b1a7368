package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// StreamInfo describes a station stream loaded by the audio backend.
type StreamInfo struct {
	// Encoded is the backend's handle for the loaded stream.
	Encoded  string
	Title    string
	IsStream bool
}

// StreamResolver loads a station's stream URL into the audio backend.
type StreamResolver interface {
	// ResolveStream returns the loaded stream, or nil if the URL yields nothing playable.
	ResolveStream(ctx context.Context, url string) (*StreamInfo, error)
}

// AudioPlayer plays loaded streams in a guild. There is one stream per guild.
type AudioPlayer interface {
	// Play replaces whatever the guild is playing with the encoded stream.
	Play(ctx context.Context, guildID snowflake.ID, encoded string) error

	// Stop silences the guild's player.
	Stop(ctx context.Context, guildID snowflake.ID) error
}

// VoiceConnection moves the bot in and out of voice channels.
type VoiceConnection interface {
	// JoinChannel returns once the bot is connected and the backend can play.
	JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error

	// LeaveChannel tears down the guild's player and disconnects.
	LeaveChannel(ctx context.Context, guildID snowflake.ID) error
}

// VoiceStateProvider reports where listeners are.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the user's voice channel, or 0 if they are not in one.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
}

// PlaybackEventHandler reacts to changes the audio backend reports on its own,
// such as streams dying or the bot being disconnected.
type PlaybackEventHandler interface {
	OnStreamEnded(ctx context.Context, event domain.StreamEndedEvent)
	OnVoiceChannelChanged(ctx context.Context, event domain.VoiceChannelChangedEvent)
}
