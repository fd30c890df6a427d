package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"go-simpler.org/env"
)

var ErrMissingCredentials = errors.New("missing reddit credentials")

type Config struct {
	AppEnv string `env:"APP_ENV" default:"dev"`

	RedditClientID     string `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET"`
	RedditUserAgent    string `env:"REDDIT_USER_AGENT"`

	RedditRequestsPerMinute int `env:"REDDIT_REQUESTS_PER_MINUTE" default:"60"`

	LogLevel string `env:"LOG_LEVEL" default:"info"`
	LogFile  string `env:"LOG_FILE" default:"reddit_analyzer.log"`

	ValkeyAddress  string        `env:"VALKEY_INIT_ADDRESS"`
	ValkeyPassword string        `env:"VALKEY_PASSWORD"`
	ValkeyTLS      bool          `env:"VALKEY_TLS" default:"false"`
	CacheTTL       time.Duration `env:"CACHE_TTL" default:"5m"`
}

// LoadEnv reads config/envs/.env.<env> into the process environment.
// Variables already set in the environment win.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Debug("No .env file found, using OS environment", slog.String("file", envFile))
	}
}

// Load builds the Config from the environment and fails fast when the
// Reddit credentials are missing.
func Load(appEnv string) (*Config, error) {
	LoadEnv(appEnv)

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"REDDIT_CLIENT_ID":     cfg.RedditClientID,
		"REDDIT_CLIENT_SECRET": cfg.RedditClientSecret,
		"REDDIT_USER_AGENT":    cfg.RedditUserAgent,
	}

	var missing []string
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s must be set", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	if cfg.RedditRequestsPerMinute <= 0 {
		return fmt.Errorf("REDDIT_REQUESTS_PER_MINUTE must be positive, got %d", cfg.RedditRequestsPerMinute)
	}
	return nil
}

// CacheEnabled reports whether a Valkey listing cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyAddress != ""
}
