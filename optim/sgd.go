package optim

import "github.com/djeday123/scalargrad/value"

// SGD performs plain gradient descent over leaf parameters.
type SGD struct {
	Params []*value.Value
	LR     float64
}

func NewSGD(params []*value.Value, lr float64) *SGD {
	return &SGD{Params: params, LR: lr}
}

// Step applies p -= lr * p.grad to every parameter.
// Gradients must be set on each parameter before calling.
func (opt *SGD) Step() {
	for _, p := range opt.Params {
		p.SetData(p.Data() - opt.LR*p.Grad())
	}
}

// ZeroGrad clears all parameter gradients.
func (opt *SGD) ZeroGrad() {
	for _, p := range opt.Params {
		p.SetGrad(0)
	}
}

// GetLR returns the current learning rate.
func (opt *SGD) GetLR() float64 {
	return opt.LR
}

// SetLR updates the learning rate (for scheduling).
func (opt *SGD) SetLR(lr float64) {
	opt.LR = lr
}
