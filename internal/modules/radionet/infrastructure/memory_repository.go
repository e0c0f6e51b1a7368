package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// MemoryRepository is an in-memory implementation of NowPlayingRepository.
type MemoryRepository struct {
	mu      sync.RWMutex
	playing map[snowflake.ID]*domain.NowPlaying
}

// NewMemoryRepository creates a new MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		playing: make(map[snowflake.ID]*domain.NowPlaying),
	}
}

// Get returns the NowPlaying record for the given guild, or nil if not exists.
func (r *MemoryRepository) Get(guildID snowflake.ID) *domain.NowPlaying {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.playing[guildID]
}

// Save stores the NowPlaying record, replacing the guild's previous one.
func (r *MemoryRepository) Save(np *domain.NowPlaying) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playing[np.GuildID] = np
}

// Delete removes the NowPlaying record for the given guild.
func (r *MemoryRepository) Delete(guildID snowflake.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.playing, guildID)
}

// Count returns the number of guilds currently playing.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.playing)
}

// Ensure MemoryRepository implements NowPlayingRepository.
var _ domain.NowPlayingRepository = (*MemoryRepository)(nil)
