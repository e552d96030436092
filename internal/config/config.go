package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	ModePublic = "public"
	ModeAPI    = "api"
	ModeMock   = "mock"
)

type AppConfig struct {
	Port            string
	CollectorMode   string // ModePublic, ModeAPI or ModeMock
	UserAgent       string
	BaseURL         string
	ClientID        string
	ClientSecret    string
	Username        string
	Password        string
	ProxyURL        string
	HTTPTimeout     time.Duration // 0 disables the timeout
	RequestInterval time.Duration // 0 disables pacing
	SuggestionsFile string
	LogLevel        slog.Level
}

// Load reads the configuration from the environment. Call godotenv first
// when a .env file should be honoured.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Port:            loadOptional("PORT", "8080"),
		CollectorMode:   loadOptional("COLLECTOR_MODE", ModePublic),
		UserAgent:       loadOptional("REDDIT_USER_AGENT", "subreddit-analyzer/1.0"),
		BaseURL:         loadOptional("REDDIT_BASE_URL", "https://www.reddit.com"),
		ClientID:        os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret:    os.Getenv("REDDIT_CLIENT_SECRET"),
		Username:        os.Getenv("REDDIT_USERNAME"),
		Password:        os.Getenv("REDDIT_PASSWORD"),
		ProxyURL:        os.Getenv("PROXY_URL"),
		SuggestionsFile: loadOptional("SUGGESTIONS_FILE", "input/subreddits.csv"),
	}

	var err error
	if cfg.HTTPTimeout, err = loadDuration("HTTP_TIMEOUT"); err != nil {
		return cfg, err
	}
	if cfg.RequestInterval, err = loadDuration("REQUEST_INTERVAL"); err != nil {
		return cfg, err
	}

	cfg.LogLevel, err = parseLogLevel(loadOptional("LOG_LEVEL", "INFO"))
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func loadDuration(key string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
