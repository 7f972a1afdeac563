// Package config loads process settings from flags, the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Prefix is the environment variable prefix, e.g. GARDEROBA_DB_PATH.
const Prefix = "GARDEROBA"

// ErrHelpWanted is returned by Load when -h or --help was passed.
var ErrHelpWanted = conf.ErrHelpWanted

// Config holds all configuration for the application.
type Config struct {
	DB struct {
		Path string `conf:"default:garderoba.sqlite3,short:d,help:SQLite database path"`
	}
	HTTP struct {
		Addr              string        `conf:"default::8080,short:a,help:listen address"`
		ReadHeaderTimeout time.Duration `conf:"default:10s"`
		ReadTimeout       time.Duration `conf:"default:30s"`
		WriteTimeout      time.Duration `conf:"default:60s"`
		IdleTimeout       time.Duration `conf:"default:120s"`
		ShutdownTimeout   time.Duration `conf:"default:5s"`
		MaxUploadBytes    int64         `conf:"default:10485760,help:largest accepted image upload in bytes"`
		RateLimit         int           `conf:"default:100,help:requests per client IP per rate window"`
		RateWindow        time.Duration `conf:"default:1m"`
		CORSOrigins       string        `conf:"help:comma-separated allowed origins (all when empty)"`
		Development       bool          `conf:"default:false,help:relax security headers for local work"`
	}
	Log struct {
		Path  string `conf:"short:l,help:log file path (stdout/stderr only when empty)"`
		Level string `conf:"default:info,enum:debug|info|warn|error"`
	}
}

// Load reads configuration. Values from .env are applied first so that real
// environment variables and flags override them. When help is requested the
// usage text is returned together with ErrHelpWanted.
func Load() (*Config, string, error) {
	var cfg Config
	_ = godotenv.Load()

	help, err := conf.Parse(Prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil, help, err
		}
		return nil, "", fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, "", nil
}

// Validate checks values the tag parser cannot.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.DB.Path) == "" {
		errs = append(errs, "db path must not be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Sprintf("max upload bytes must be positive (got %d)", c.HTTP.MaxUploadBytes))
	}
	if c.HTTP.RateLimit <= 0 || c.HTTP.RateWindow <= 0 {
		errs = append(errs, "rate limit and rate window must be positive")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, "shutdown timeout must be positive")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String renders the config for logging.
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return out
}
