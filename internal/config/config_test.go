package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "DATA_SOURCE", "LIVE_POLL_INTERVAL", "FETCH_TIMEOUT",
		"SESSION_IDLE_TIMEOUT", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DataSource != SourceMock {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, SourceMock)
	}
	if cfg.LivePollInterval != 30*time.Second {
		t.Errorf("LivePollInterval = %v, want 30s", cfg.LivePollInterval)
	}
	if cfg.SessionIdleTimeout != 30*time.Minute {
		t.Errorf("SessionIdleTimeout = %v, want 30m", cfg.SessionIdleTimeout)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.TelegramEnabled() {
		t.Error("TelegramEnabled() = true without a token")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATA_SOURCE", "Remote")
	t.Setenv("REMOTE_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("LIVE_POLL_INTERVAL", "15s")
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("TELEGRAM_DESTRUCTIVE_ONLY", "false")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataSource != SourceRemote {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, SourceRemote)
	}
	if cfg.RemoteBaseURL != "https://api.example.com/v1" {
		t.Errorf("RemoteBaseURL = %q", cfg.RemoteBaseURL)
	}
	if cfg.LivePollInterval != 15*time.Second {
		t.Errorf("LivePollInterval = %v, want 15s", cfg.LivePollInterval)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want default 10s", cfg.FetchTimeout)
	}
	if cfg.TelegramChatID != -100200300 || cfg.TelegramDestructiveOnly {
		t.Errorf("telegram = %d destructiveOnly=%v", cfg.TelegramChatID, cfg.TelegramDestructiveOnly)
	}
	if !cfg.TelegramEnabled() {
		t.Error("TelegramEnabled() = false")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://app.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			DataSource:       SourceMock,
			LivePollInterval: 30 * time.Second,
			FetchTimeout:     10 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"mock", func(*Config) {}, ""},
		{"postgres", func(c *Config) { c.DataSource = SourcePostgres; c.DBHost = "db"; c.DBName = "predictions" }, ""},
		{"postgres without host", func(c *Config) { c.DataSource = SourcePostgres; c.DBName = "predictions" }, "DB_HOST"},
		{"remote without url", func(c *Config) { c.DataSource = SourceRemote }, "REMOTE_BASE_URL"},
		{"unknown source", func(c *Config) { c.DataSource = "csv" }, "unknown DATA_SOURCE"},
		{"telegram without chat", func(c *Config) { c.TelegramBotToken = "123:abc" }, "TELEGRAM_CHAT_ID"},
		{"zero poll interval", func(c *Config) { c.LivePollInterval = 0 }, "LIVE_POLL_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
