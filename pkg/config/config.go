package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for training commands.
type Config struct {
	Train   TrainConfig   `json:"train"`
	History HistoryConfig `json:"history"`
	Log     LogConfig     `json:"log"`
}

// TrainConfig configures the optimization loop.
type TrainConfig struct {
	Epochs    int     `json:"epochs"`
	LR        float64 `json:"lr"`
	LogEvery  int     `json:"log_every"`
	Optimizer string  `json:"optimizer"` // "sgd" or "adamw"
}

// HistoryConfig configures run persistence.
type HistoryConfig struct {
	Path string `json:"path"` // SQLite file; empty disables
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text or json
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Train: TrainConfig{
			Epochs:    50,
			LR:        0.1,
			LogEvery:  10,
			Optimizer: "sgd",
		},
		History: HistoryConfig{
			Path: "",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the defaults overridden by the environment.
// A .env file found in the working directory or one of its parents is
// applied first; variables already set in the process win over it.
func Load() (*Config, error) {
	_ = loadEnvFile()

	cfg := DefaultConfig()

	if v := os.Getenv("SCALARGRAD_EPOCHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse SCALARGRAD_EPOCHS: %w", err)
		}
		cfg.Train.Epochs = n
	}
	if v := os.Getenv("SCALARGRAD_LR"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse SCALARGRAD_LR: %w", err)
		}
		cfg.Train.LR = f
	}
	if v := os.Getenv("SCALARGRAD_LOG_EVERY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse SCALARGRAD_LOG_EVERY: %w", err)
		}
		cfg.Train.LogEvery = n
	}
	if v := os.Getenv("SCALARGRAD_OPTIMIZER"); v != "" {
		cfg.Train.Optimizer = v
	}
	if v := os.Getenv("SCALARGRAD_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("SCALARGRAD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SCALARGRAD_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	return cfg, nil
}

// loadEnvFile looks for a .env file in the working directory and up to
// five parent levels.
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil
}
