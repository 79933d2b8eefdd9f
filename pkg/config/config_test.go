package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	// Test Train config
	if cfg.Train.Epochs <= 0 {
		t.Error("Expected Train Epochs to be positive")
	}

	if cfg.Train.LR <= 0 {
		t.Error("Expected Train LR to be positive")
	}

	if cfg.Train.LogEvery <= 0 {
		t.Error("Expected Train LogEvery to be positive")
	}

	if cfg.Train.Optimizer != "sgd" {
		t.Errorf("Expected Train Optimizer to be sgd, got %s", cfg.Train.Optimizer)
	}

	// Test History config
	if cfg.History.Path != "" {
		t.Errorf("Expected History Path to default to disabled, got %s", cfg.History.Path)
	}

	// Test Log config
	if cfg.Log.Level != "info" {
		t.Errorf("Expected Log Level to be info, got %s", cfg.Log.Level)
	}

	if cfg.Log.Format != "text" {
		t.Errorf("Expected Log Format to be text, got %s", cfg.Log.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCALARGRAD_EPOCHS", "200")
	t.Setenv("SCALARGRAD_LR", "0.05")
	t.Setenv("SCALARGRAD_OPTIMIZER", "adamw")
	t.Setenv("SCALARGRAD_HISTORY_PATH", "runs.db")
	t.Setenv("SCALARGRAD_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Train.Epochs != 200 {
		t.Errorf("Expected Epochs 200, got %d", cfg.Train.Epochs)
	}

	if cfg.Train.LR != 0.05 {
		t.Errorf("Expected LR 0.05, got %f", cfg.Train.LR)
	}

	if cfg.Train.Optimizer != "adamw" {
		t.Errorf("Expected Optimizer adamw, got %s", cfg.Train.Optimizer)
	}

	if cfg.History.Path != "runs.db" {
		t.Errorf("Expected History Path runs.db, got %s", cfg.History.Path)
	}

	if cfg.Log.Format != "json" {
		t.Errorf("Expected Log Format json, got %s", cfg.Log.Format)
	}

	// Untouched fields keep their defaults.
	if cfg.Train.LogEvery != DefaultConfig().Train.LogEvery {
		t.Errorf("Expected LogEvery default, got %d", cfg.Train.LogEvery)
	}
}

func TestLoadBadNumericEnv(t *testing.T) {
	t.Setenv("SCALARGRAD_EPOCHS", "many")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for non-numeric SCALARGRAD_EPOCHS")
	}

	t.Setenv("SCALARGRAD_EPOCHS", "10")
	t.Setenv("SCALARGRAD_LR", "fast")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for non-numeric SCALARGRAD_LR")
	}
}
