package optim

// Optimizer is the surface the training loop drives.
type Optimizer interface {
	Step()
	ZeroGrad()
	GetLR() float64
	SetLR(lr float64)
}
