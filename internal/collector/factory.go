package collector

import (
	"fmt"

	"github.com/qepting91/subreddit-analyzer/internal/config"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
)

// NewCollector selects the correct implementation based on the mode
func NewCollector(cfg config.AppConfig) (domain.Collector, error) {
	httpClient, err := NewHTTPClient(cfg.HTTPTimeout, cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}
	limiter := NewLimiter(cfg.RequestInterval)

	switch cfg.CollectorMode {
	case config.ModeAPI:
		return NewAPIClient(
			httpClient,
			limiter,
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.Username,
			cfg.Password,
			cfg.UserAgent,
		)
	case config.ModePublic:
		if cfg.UserAgent == "" {
			return nil, fmt.Errorf("REDDIT_USER_AGENT is required for public mode")
		}
		return NewPublicClient(httpClient, limiter, cfg.BaseURL, cfg.UserAgent), nil
	case config.ModeMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.CollectorMode)
	}
}
