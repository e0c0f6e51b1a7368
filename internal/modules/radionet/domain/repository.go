package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// NowPlayingRepository stores the station played in each guild.
type NowPlayingRepository interface {
	// Get returns the NowPlaying record for the given guild, or nil if not exists.
	Get(guildID snowflake.ID) *NowPlaying

	// Save stores the NowPlaying record.
	Save(np *NowPlaying)

	// Delete removes the NowPlaying record for the given guild.
	Delete(guildID snowflake.ID)
}
