package domain

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// NowPlaying records the station being played in a guild.
type NowPlaying struct {
	GuildID        snowflake.ID
	VoiceChannelID snowflake.ID
	StationURI     string
	Track          Track
	RequesterID    snowflake.ID
	RequesterName  string
	StartedAt      time.Time
}

// NewNowPlaying creates a NowPlaying record starting now.
func NewNowPlaying(
	guildID, voiceChannelID snowflake.ID,
	stationURI string,
	track Track,
	requesterID snowflake.ID,
	requesterName string,
) *NowPlaying {
	return &NowPlaying{
		GuildID:        guildID,
		VoiceChannelID: voiceChannelID,
		StationURI:     stationURI,
		Track:          track,
		RequesterID:    requesterID,
		RequesterName:  requesterName,
		StartedAt:      time.Now().UTC(),
	}
}
