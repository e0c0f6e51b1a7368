package bot

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`

	// GuildID registers commands on one guild instead of globally.
	GuildID string `env:"DISCORD_GUILD_ID"`

	// Modules limits loading to the named modules. Empty loads all of them.
	Modules []string `env:"BOT_MODULES" envSeparator:","`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing or malformed.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.GuildID != "" {
		if _, err := snowflake.Parse(cfg.GuildID); err != nil {
			return nil, fmt.Errorf("invalid DISCORD_GUILD_ID %q: %w", cfg.GuildID, err)
		}
	}

	return cfg, nil
}
