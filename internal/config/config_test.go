package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	var c Config
	c.DB.Path = "garderoba.sqlite3"
	c.HTTP.Addr = ":8080"
	c.HTTP.MaxUploadBytes = 10 << 20
	c.HTTP.ShutdownTimeout = 5 * time.Second
	c.HTTP.RateLimit = 100
	c.HTTP.RateWindow = time.Minute
	c.Log.Level = "info"
	return &c
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	c := validConfig()
	c.DB.Path = "  "
	c.HTTP.MaxUploadBytes = 0
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "db path") || !strings.Contains(err.Error(), "max upload bytes") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestValidateRateLimit(t *testing.T) {
	c := validConfig()
	c.HTTP.RateWindow = 0
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "rate") {
		t.Errorf("expected rate limit error, got %v", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		c := validConfig()
		c.Log.Level = tt.level
		if got := c.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
