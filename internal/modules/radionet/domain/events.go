package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// StreamEndReason represents why a station stream ended.
type StreamEndReason string

const (
	// StreamEndFinished means the remote stream closed.
	StreamEndFinished StreamEndReason = "finished"
	// StreamEndLoadFailed means the stream failed to load or broke while playing.
	StreamEndLoadFailed StreamEndReason = "load_failed"
	// StreamEndStopped means the stream was stopped by the user.
	StreamEndStopped StreamEndReason = "stopped"
	// StreamEndReplaced means another station started in its place.
	StreamEndReplaced StreamEndReason = "replaced"
	// StreamEndCleanup means the audio backend tore the player down.
	StreamEndCleanup StreamEndReason = "cleanup"
)

// IsTerminal reports whether the guild is left with nothing playing.
// Stopped and Replaced ends are caused by our own Stop and Play.
func (r StreamEndReason) IsTerminal() bool {
	switch r {
	case StreamEndFinished, StreamEndLoadFailed, StreamEndCleanup:
		return true
	default:
		return false
	}
}

// StreamEndedEvent is reported when a guild's stream ends.
type StreamEndedEvent struct {
	GuildID snowflake.ID
	Reason  StreamEndReason
}

// VoiceChannelChangedEvent is reported when the bot joins, moves or leaves voice.
// ChannelID is 0 when the bot left.
type VoiceChannelChangedEvent struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
}

// Left reports whether the bot is no longer in a voice channel.
func (e VoiceChannelChangedEvent) Left() bool {
	return e.ChannelID == 0
}
