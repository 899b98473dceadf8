package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration read from VALSWITCH_* environment variables.
type Config struct {
	DataDir        string        `envconfig:"DATA_DIR"`
	KeyringService string        `envconfig:"KEYRING_SERVICE" default:"valswitch"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	SettleDelay    time.Duration `envconfig:"SETTLE_DELAY" default:"1500ms"`
	Locale         string        `envconfig:"LOCALE" default:"en_US"`
	RiotDataRoot   string        `envconfig:"RIOT_DATA_ROOT"`
	RiotManifest   string        `envconfig:"RIOT_MANIFEST"`
}

// LoadConfig reads the environment and fills in the data directory default
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("valswitch", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("VALSWITCH_POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}
	if cfg.SettleDelay < 0 {
		return nil, fmt.Errorf("VALSWITCH_SETTLE_DELAY must not be negative, got %s", cfg.SettleDelay)
	}

	return &cfg, nil
}

// DefaultDataDir returns <user config dir>/valswitch
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(base, "valswitch"), nil
}
