package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/djeday123/scalargrad/nn"
	"github.com/djeday123/scalargrad/pkg/config"
	"github.com/djeday123/scalargrad/pkg/experiment"
	"github.com/djeday123/scalargrad/train"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, logW io.Writer) error {
	fs := flag.NewFlagSet("mlptrain", flag.ContinueOnError)
	expPath := fs.String("experiment", "", "path to an HCL experiment file (required)")
	expName := fs.String("name", "", "experiment to run when the file has several (default: first)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "log format: text or json")
	historyPath := fs.String("history", "", "SQLite file for run history (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags win over config and environment.
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *historyPath != "" {
		cfg.History.Path = *historyPath
	}

	logger := newLogger(cfg.Log.Level, cfg.Log.Format, logW)
	slog.SetDefault(logger)

	if *expPath == "" {
		return fmt.Errorf("mlptrain: -experiment is required")
	}

	defaults := experiment.Defaults{
		Epochs:    cfg.Train.Epochs,
		LR:        cfg.Train.LR,
		Optimizer: cfg.Train.Optimizer,
	}
	file, err := experiment.Load(*expPath, defaults)
	if err != nil {
		return err
	}
	exp, err := file.Get(*expName)
	if err != nil {
		return err
	}

	model := nn.NewMLP(exp.InputWidth(), exp.Hidden)
	logger.Info("model built",
		"experiment", exp.Name,
		"inputs", exp.InputWidth(),
		"layers", exp.Hidden,
		"parameters", model.CountParameters(),
	)

	samples := make([]train.Sample, len(exp.Points))
	for i, p := range exp.Points {
		samples[i] = train.Sample{Inputs: p.In, Target: p.Out}
	}

	tcfg := train.TrainConfig{
		Epochs:       exp.Epochs,
		LR:           exp.LR,
		WarmupEpochs: exp.Warmup,
		MinLR:        exp.MinLR,
		LogEvery:     cfg.Train.LogEvery,
		Optimizer:    exp.Optimizer,
		HistoryPath:  cfg.History.Path,
	}

	tr, err := train.NewTrainer(model, samples, tcfg)
	if err != nil {
		return err
	}
	tr.Logger = logger
	tr.Name = exp.Name

	result, err := tr.Train(context.Background())
	if err != nil {
		return err
	}

	logger.Info("done", "experiment", exp.Name, "final_loss", result.FinalLoss)
	return nil
}

// newLogger builds the slog logger from the configured level and format.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}
