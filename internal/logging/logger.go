package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// Config holds the logging configuration loaded from environment variables.
type Config struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig loads logging configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewLogger creates a slog logger writing to w through a charmbracelet/log handler.
func NewLogger(cfg *Config, w io.Writer) (*slog.Logger, error) {
	var formatter log.Formatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "text":
		formatter = log.TextFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "radionet",
		Formatter:       formatter,
		Level:           level,
	})

	return slog.New(handler), nil
}

// Setup installs the configured logger as the slog default.
func Setup(cfg *Config) error {
	logger, err := NewLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)
	return nil
}
