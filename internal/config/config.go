package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything the engine reads from the environment.
type Config struct {
	// CSVDir is the directory the device-sync executable writes export
	// files into. Required for serve and ingest.
	CSVDir string `env:"PUNCHCARD_CSV_DIR"`

	// DataDir holds the sqlite database and the checkpoint document.
	// Defaults to ~/.punchcard.
	DataDir string `env:"PUNCHCARD_DATA_DIR"`

	ListenAddr string `env:"PUNCHCARD_LISTEN_ADDR, default=127.0.0.1:47832"`

	// InternalToken guards the query API. Requests without it are refused.
	InternalToken string `env:"PUNCHCARD_INTERNAL_TOKEN"`

	Debounce time.Duration `env:"PUNCHCARD_DEBOUNCE, default=300ms"`
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = filepath.Join(home, ".punchcard")
	}

	return &cfg, nil
}

// DatabasePath returns the path to the sqlite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "punchcard.db")
}

// CheckpointPath returns the path to the checkpoint document.
func (c *Config) CheckpointPath() string {
	return filepath.Join(c.DataDir, "csv_ingest_state.json")
}
