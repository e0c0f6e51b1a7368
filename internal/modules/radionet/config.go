package radionet

import (
	"strings"
	"time"

	"github.com/sglre6355/radionet/internal/modules/radionet/infrastructure"
)

// Config holds the radionet module configuration.
type Config struct {
	APIURL    string        `env:"RADIONET_API_URL"   envDefault:"https://api.radio.net/info/v2"`
	APIKey    string        `env:"RADIONET_API_KEY"`
	PageSize  int           `env:"RADIONET_PAGE_SIZE" envDefault:"100"`
	Timeout   time.Duration `env:"RADIONET_TIMEOUT"   envDefault:"10s"`
	Favorites []string      `env:"RADIONET_FAVORITES" envSeparator:","`
	Genres    []string      `env:"RADIONET_GENRES"    envSeparator:","`

	// HTTPAddress enables the HTTP API when set, e.g. ":8080".
	HTTPAddress string `env:"RADIONET_HTTP_ADDRESS"`

	LavalinkAddress  string `env:"LAVALINK_ADDRESS"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE"`
}

// PlaybackEnabled reports whether a Lavalink node is configured.
func (c *Config) PlaybackEnabled() bool {
	return c.LavalinkAddress != "" && c.LavalinkPassword != ""
}

func (c *Config) radioNetConfig() infrastructure.RadioNetConfig {
	return infrastructure.RadioNetConfig{
		BaseURL:   c.APIURL,
		APIKey:    c.APIKey,
		PageSize:  c.PageSize,
		Timeout:   c.Timeout,
		Favorites: trimAll(c.Favorites),
		Genres:    trimAll(c.Genres),
	}
}

func (c *Config) lavalinkConfig() infrastructure.LavalinkConfig {
	return infrastructure.LavalinkConfig{
		Address:  c.LavalinkAddress,
		Password: c.LavalinkPassword,
		Secure:   c.LavalinkSecure,
	}
}

// trimAll trims list entries and drops empty ones.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
