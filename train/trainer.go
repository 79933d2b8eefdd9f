package train

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/djeday123/scalargrad/autograd"
	"github.com/djeday123/scalargrad/nn"
	"github.com/djeday123/scalargrad/optim"
	"github.com/djeday123/scalargrad/value"
)

// TrainConfig holds training hyperparameters.
type TrainConfig struct {
	Epochs       int
	LR           float64
	WarmupEpochs int     // >0 enables linear warmup then cosine decay
	MinLR        float64 // cosine floor, reached at the final epoch
	LogEvery     int
	Optimizer    string // "sgd" or "adamw"
	HistoryPath  string // empty disables run persistence
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:    50,
		LR:        0.1,
		LogEvery:  10,
		Optimizer: "sgd",
	}
}

// Sample is one training example: an input vector and a scalar target.
type Sample struct {
	Inputs []float64
	Target float64
}

// EpochStat records one epoch's loss and learning rate.
type EpochStat struct {
	Epoch int
	Loss  float64
	LR    float64
}

// Result summarizes a completed training run.
type Result struct {
	FinalLoss float64
	History   []EpochStat
}

// Trainer drives full-batch gradient descent over a fixed dataset.
type Trainer struct {
	Model     *nn.MLP
	Optimizer optim.Optimizer
	Config    TrainConfig
	Logger    *slog.Logger
	Name      string

	samples []Sample
}

// NewTrainer validates the dataset against the model and picks the
// optimizer named in cfg.
func NewTrainer(model *nn.MLP, samples []Sample, cfg TrainConfig) (*Trainer, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("train: empty dataset")
	}

	if len(model.Layers) == 0 {
		return nil, fmt.Errorf("train: model has no layers")
	}
	for i, l := range model.Layers {
		if len(l.Neurons) == 0 {
			return nil, fmt.Errorf("train: layer %d has no neurons", i)
		}
	}

	out := model.Layers[len(model.Layers)-1]
	if len(out.Neurons) != 1 {
		return nil, fmt.Errorf("train: model outputs %d values, want 1", len(out.Neurons))
	}

	nin := len(model.Layers[0].Neurons[0].W)
	for i, s := range samples {
		if len(s.Inputs) != nin {
			return nil, fmt.Errorf("train: sample %d has %d inputs, model takes %d", i, len(s.Inputs), nin)
		}
	}

	if cfg.WarmupEpochs < 0 {
		return nil, fmt.Errorf("train: negative warmup epochs %d", cfg.WarmupEpochs)
	}
	if cfg.WarmupEpochs > 0 {
		if cfg.WarmupEpochs >= cfg.Epochs {
			return nil, fmt.Errorf("train: warmup epochs %d must be below epochs %d", cfg.WarmupEpochs, cfg.Epochs)
		}
		if cfg.MinLR < 0 {
			return nil, fmt.Errorf("train: negative min lr %v", cfg.MinLR)
		}
	}

	var opt optim.Optimizer
	switch cfg.Optimizer {
	case "", "sgd":
		opt = optim.NewSGD(model.Parameters(), cfg.LR)
	case "adamw":
		opt = optim.NewAdamW(model.Parameters(), cfg.LR)
	default:
		return nil, fmt.Errorf("train: unknown optimizer %q", cfg.Optimizer)
	}

	return &Trainer{
		Model:     model,
		Optimizer: opt,
		Config:    cfg,
		Logger:    slog.Default(),
		Name:      "run",
		samples:   samples,
	}, nil
}

// Train runs Config.Epochs full-batch epochs and returns the loss history.
// Each epoch rebuilds the loss graph from the current parameter values.
// A positive WarmupEpochs drives the learning rate through warmup and
// cosine decay; otherwise it stays at Config.LR.
// Cancellation is checked between epochs; a started epoch runs to
// completion.
func (t *Trainer) Train(ctx context.Context) (*Result, error) {
	cfg := t.Config
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var hist *History
	var runID int64
	if cfg.HistoryPath != "" {
		var err error
		hist, err = OpenHistory(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		defer hist.Close()

		runID, err = hist.StartRun(t.Name, cfg)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("training started",
		"run", t.Name,
		"samples", len(t.samples),
		"parameters", t.Model.CountParameters(),
		"epochs", cfg.Epochs,
		"lr", cfg.LR,
		"optimizer", cfg.Optimizer,
	)

	result := &Result{History: make([]EpochStat, 0, cfg.Epochs)}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if cfg.WarmupEpochs > 0 {
			lr := optim.CosineSchedule(epoch, cfg.WarmupEpochs, cfg.Epochs, cfg.LR, cfg.MinLR)
			t.Optimizer.SetLR(lr)
		}

		loss := t.epochLoss()

		t.Optimizer.ZeroGrad()
		autograd.Backward(loss)
		t.Optimizer.Step()

		stat := EpochStat{Epoch: epoch, Loss: loss.Data(), LR: t.Optimizer.GetLR()}
		result.History = append(result.History, stat)
		result.FinalLoss = stat.Loss

		if hist != nil {
			if err := hist.RecordEpoch(runID, stat); err != nil {
				return nil, err
			}
		}

		if cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0 {
			logger.Info("epoch", "epoch", epoch, "loss", stat.Loss, "lr", stat.LR)
		}
	}

	if hist != nil {
		if err := hist.FinishRun(runID, result.FinalLoss); err != nil {
			return nil, err
		}
	}

	logger.Info("training complete", "run", t.Name, "final_loss", result.FinalLoss)
	return result, nil
}

// epochLoss builds the mean-squared-error graph over the whole dataset.
func (t *Trainer) epochLoss() *value.Value {
	preds := make([]*value.Value, len(t.samples))
	targets := make([]*value.Value, len(t.samples))

	for i, s := range t.samples {
		out := t.Model.Forward(nn.Leaves(s.Inputs))
		preds[i] = out[0]
		targets[i] = value.New(s.Target)
	}

	return nn.MSELoss(preds, targets)
}
