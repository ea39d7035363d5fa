package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultAppURL is the IcoMoon app entry point.
const DefaultAppURL = "https://icomoon.io/app/#/select"

// Browser configures the automation session.
type Browser struct {
	Visible       bool          `env:"VISIBLE, default=false"`
	RemoteURL     string        `env:"REMOTE_URL"`
	ActionTimeout time.Duration `env:"ACTION_TIMEOUT, default=30s"`
}

// Wait configures the element and download polls.
type Wait struct {
	Timeout          time.Duration `env:"WAIT_TIMEOUT, default=60s"`
	Interval         time.Duration `env:"WAIT_INTERVAL, default=500ms"`
	DownloadTimeout  time.Duration `env:"DOWNLOAD_TIMEOUT, default=60s"`
	DownloadInterval time.Duration `env:"DOWNLOAD_INTERVAL, default=1s"`
}

type Config struct {
	AppURL  string `env:"APP_URL, default=https://icomoon.io/app/#/select"`
	Browser Browser
	Wait    Wait
}

// Load reads the configuration from ICOMOON_* environment variables.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.PrefixLookuper("ICOMOON_", envconfig.OsLookuper()))
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if cfg.Wait.Interval <= 0 || cfg.Wait.DownloadInterval <= 0 {
		return nil, fmt.Errorf("poll intervals must be positive")
	}

	return &cfg, nil
}
