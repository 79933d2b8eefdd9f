package optim

import (
	"math"

	"github.com/djeday123/scalargrad/value"
)

// AdamW implements the AdamW optimizer (decoupled weight decay) over
// scalar leaf parameters.
type AdamW struct {
	Params      []*value.Value
	LR          float64 // learning rate
	Beta1       float64 // first moment decay (default 0.9)
	Beta2       float64 // second moment decay (default 0.999)
	Eps         float64 // numerical stability (default 1e-8)
	WeightDecay float64 // decoupled decay (0 = plain Adam)
	MaxGradNorm float64 // gradient clipping (0 = disabled)

	// State
	m    []float64 // first moment (mean of gradients)
	v    []float64 // second moment (mean of squared gradients)
	step int
}

// NewAdamW creates an optimizer with classic defaults. Weight decay and
// gradient clipping start disabled.
func NewAdamW(params []*value.Value, lr float64) *AdamW {
	return &AdamW{
		Params: params,
		LR:     lr,
		Beta1:  0.9,
		Beta2:  0.999,
		Eps:    1e-8,
		m:      make([]float64, len(params)),
		v:      make([]float64, len(params)),
	}
}

// Step performs one optimization step.
// Gradients must be set on each parameter before calling.
func (opt *AdamW) Step() {
	opt.step++

	// Gradient clipping (global norm)
	if opt.MaxGradNorm > 0 {
		opt.clipGradNorm()
	}

	// Bias correction factors
	bc1 := 1.0 - math.Pow(opt.Beta1, float64(opt.step))
	bc2 := 1.0 - math.Pow(opt.Beta2, float64(opt.step))

	for i, p := range opt.Params {
		g := p.Grad()

		// Update moments
		opt.m[i] = opt.Beta1*opt.m[i] + (1-opt.Beta1)*g
		opt.v[i] = opt.Beta2*opt.v[i] + (1-opt.Beta2)*g*g

		// Bias-corrected moments
		mHat := opt.m[i] / bc1
		vHat := opt.v[i] / bc2

		// Adam update
		update := mHat / (math.Sqrt(vHat) + opt.Eps)

		// Decoupled weight decay (AdamW)
		p.SetData(p.Data() - opt.LR*(update+opt.WeightDecay*p.Data()))
	}
}

// ZeroGrad clears all parameter gradients.
func (opt *AdamW) ZeroGrad() {
	for _, p := range opt.Params {
		p.SetGrad(0)
	}
}

// clipGradNorm clips gradients by global L2 norm.
func (opt *AdamW) clipGradNorm() {
	totalNorm := float64(0)
	for _, p := range opt.Params {
		g := p.Grad()
		totalNorm += g * g
	}
	totalNorm = math.Sqrt(totalNorm)

	if totalNorm <= opt.MaxGradNorm {
		return
	}

	scale := opt.MaxGradNorm / totalNorm
	for _, p := range opt.Params {
		p.SetGrad(p.Grad() * scale)
	}
}

// GetLR returns the current learning rate.
func (opt *AdamW) GetLR() float64 {
	return opt.LR
}

// SetLR updates the learning rate (for scheduling).
func (opt *AdamW) SetLR(lr float64) {
	opt.LR = lr
}

// CosineSchedule computes the learning rate with warmup + cosine decay.
func CosineSchedule(step, warmupSteps, totalSteps int, maxLR, minLR float64) float64 {
	if step < warmupSteps {
		// Linear warmup
		return maxLR * float64(step) / float64(warmupSteps)
	}

	// Cosine decay
	progress := float64(step-warmupSteps) / float64(totalSteps-warmupSteps)
	if progress > 1.0 {
		progress = 1.0
	}
	return minLR + 0.5*(maxLR-minLR)*(1.0+math.Cos(math.Pi*progress))
}
