package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Data sources the dashboard can read from
const (
	SourceMock     = "mock"
	SourcePostgres = "postgres"
	SourceRemote   = "remote"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"console"`

	DataSource string `env:"DATA_SOURCE" envDefault:"mock"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"predictions"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RemoteBaseURL    string `env:"REMOTE_BASE_URL"`
	RemoteToken      string `env:"REMOTE_TOKEN"`
	RemoteRPS        int    `env:"REMOTE_RPS" envDefault:"5"`
	RemoteMaxRetries int    `env:"REMOTE_MAX_RETRIES" envDefault:"3"`

	RedisURL string `env:"REDIS_URL"`

	StripeAPIKey     string `env:"STRIPE_API_KEY"`
	StripeCustomerID string `env:"STRIPE_CUSTOMER_ID"`

	TelegramBotToken        string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID          int64  `env:"TELEGRAM_CHAT_ID"`
	TelegramDestructiveOnly bool   `env:"TELEGRAM_DESTRUCTIVE_ONLY" envDefault:"true"`

	LivePollInterval   time.Duration `env:"LIVE_POLL_INTERVAL" envDefault:"30s"`
	FetchTimeout       time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	ExpiryCheckPeriod  time.Duration `env:"EXPIRY_CHECK_INTERVAL" envDefault:"1h"`
	MockLatency        time.Duration `env:"MOCK_LATENCY" envDefault:"0s"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.HTTPAddr = getEnvWithDefault("HTTP_ADDR", ":8080")
	cfg.CORSOrigins = splitList(getEnvWithDefault("CORS_ORIGINS", "*"))
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvWithDefault("LOG_FORMAT", "console")

	cfg.DataSource = strings.ToLower(getEnvWithDefault("DATA_SOURCE", SourceMock))

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "predictions")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.RemoteBaseURL = strings.TrimRight(os.Getenv("REMOTE_BASE_URL"), "/")
	cfg.RemoteToken = os.Getenv("REMOTE_TOKEN")
	cfg.RemoteRPS = getEnvIntWithDefault("REMOTE_RPS", 5)
	cfg.RemoteMaxRetries = getEnvIntWithDefault("REMOTE_MAX_RETRIES", 3)

	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.StripeAPIKey = os.Getenv("STRIPE_API_KEY")
	cfg.StripeCustomerID = os.Getenv("STRIPE_CUSTOMER_ID")

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)
	cfg.TelegramDestructiveOnly = getEnvBoolWithDefault("TELEGRAM_DESTRUCTIVE_ONLY", true)

	cfg.LivePollInterval = getEnvDurationWithDefault("LIVE_POLL_INTERVAL", 30*time.Second)
	cfg.FetchTimeout = getEnvDurationWithDefault("FETCH_TIMEOUT", 10*time.Second)
	cfg.SessionIdleTimeout = getEnvDurationWithDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	cfg.ExpiryCheckPeriod = getEnvDurationWithDefault("EXPIRY_CHECK_INTERVAL", time.Hour)
	cfg.MockLatency = getEnvDurationWithDefault("MOCK_LATENCY", 0)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the selected data source depends on
func (c *Config) Validate() error {
	var errs []error

	switch c.DataSource {
	case SourceMock:
	case SourcePostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres data source"))
		}
	case SourceRemote:
		if c.RemoteBaseURL == "" {
			errs = append(errs, errors.New("REMOTE_BASE_URL is required for the remote data source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATA_SOURCE %q", c.DataSource))
	}

	if c.TelegramBotToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set"))
	}
	if c.LivePollInterval <= 0 {
		errs = append(errs, errors.New("LIVE_POLL_INTERVAL must be positive"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("FETCH_TIMEOUT must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// TelegramEnabled reports whether chat notifications are configured
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
