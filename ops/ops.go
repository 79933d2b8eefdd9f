package ops

import (
	"math"

	"github.com/djeday123/scalargrad/value"
)

// ---- Autograd rule implementations ----

type addRule struct {
	a, b *value.Value
}

func (r *addRule) Name() string           { return "AddBackward" }
func (r *addRule) Inputs() []*value.Value { return []*value.Value{r.a, r.b} }
func (r *addRule) Backward(grad float64) []float64 {
	// d(a+b)/da = 1, d(a+b)/db = 1
	return []float64{grad, grad}
}

type subRule struct {
	a, b *value.Value
}

func (r *subRule) Name() string           { return "SubBackward" }
func (r *subRule) Inputs() []*value.Value { return []*value.Value{r.a, r.b} }
func (r *subRule) Backward(grad float64) []float64 {
	// d(a-b)/da = 1, d(a-b)/db = -1
	return []float64{grad, -grad}
}

type mulRule struct {
	a, b *value.Value
}

func (r *mulRule) Name() string           { return "MulBackward" }
func (r *mulRule) Inputs() []*value.Value { return []*value.Value{r.a, r.b} }
func (r *mulRule) Backward(grad float64) []float64 {
	// d(a*b)/da = b, d(a*b)/db = a
	return []float64{r.b.Data() * grad, r.a.Data() * grad}
}

type tanhRule struct {
	a *value.Value
}

func (r *tanhRule) Name() string           { return "TanhBackward" }
func (r *tanhRule) Inputs() []*value.Value { return []*value.Value{r.a} }
func (r *tanhRule) Backward(grad float64) []float64 {
	// d(tanh a)/da = 1 - tanh(a)^2
	t := math.Tanh(r.a.Data())
	return []float64{(1 - t*t) * grad}
}

// ---- Public API ----
//
// Constructors are pure: operands are never mutated, every call returns a
// fresh value with its forward result already computed.

// Add returns a + b.
func Add(a, b *value.Value) *value.Value {
	out := value.New(a.Data() + b.Data())
	out.SetGradFn(&addRule{a: a, b: b})
	return out
}

// Sub returns a - b.
func Sub(a, b *value.Value) *value.Value {
	out := value.New(a.Data() - b.Data())
	out.SetGradFn(&subRule{a: a, b: b})
	return out
}

// Mul returns a * b.
func Mul(a, b *value.Value) *value.Value {
	out := value.New(a.Data() * b.Data())
	out.SetGradFn(&mulRule{a: a, b: b})
	return out
}

// Tanh returns tanh(a).
func Tanh(a *value.Value) *value.Value {
	out := value.New(math.Tanh(a.Data()))
	out.SetGradFn(&tanhRule{a: a})
	return out
}

// Square returns a*a. Both rule inputs alias a, so the backward pass
// delivers the sum of the two product-rule contributions to it.
func Square(a *value.Value) *value.Value {
	return Mul(a, a)
}

// ---- Scalar-mixed helpers ----
//
// Sugar over the binary ops: the constant is wrapped in a fresh leaf and
// delegated, no separate backward logic.

// AddScalar returns a + s.
func AddScalar(a *value.Value, s float64) *value.Value { return Add(a, value.New(s)) }

// SubScalar returns a - s.
func SubScalar(a *value.Value, s float64) *value.Value { return Sub(a, value.New(s)) }

// ScalarSub returns s - a.
func ScalarSub(s float64, a *value.Value) *value.Value { return Sub(value.New(s), a) }

// MulScalar returns a * s.
func MulScalar(a *value.Value, s float64) *value.Value { return Mul(a, value.New(s)) }
