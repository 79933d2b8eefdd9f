package value

import "fmt"

// Value is a scalar node in a computation graph.
// It holds the eagerly computed forward result and accumulates the
// gradient of the graph output with respect to itself during a
// backward pass.
type Value struct {
	data float64
	grad float64

	gradFn GradFn // rule that produced this value; nil for leaves
}

// GradFn is the backward rule attached by the op that produced a value.
type GradFn interface {
	Backward(outGrad float64) []float64 // one contribution per input, aligned with Inputs
	Inputs() []*Value
	Name() string
}

// ---- Constructors ----

// New creates a leaf value. Leaves carry graph inputs and trainable
// parameters; they have no backward rule.
func New(x float64) *Value {
	return &Value{data: x}
}

// ---- Accessors ----

func (v *Value) Data() float64  { return v.data }
func (v *Value) Grad() float64  { return v.grad }
func (v *Value) GradFn() GradFn { return v.gradFn }
func (v *Value) IsLeaf() bool   { return v.gradFn == nil }

// SetGradFn attaches the producing rule. Op constructors call this once,
// right after computing the forward value.
func (v *Value) SetGradFn(fn GradFn) { v.gradFn = fn }

// SetData overwrites the forward value. The engine never mutates data
// itself; this exists for parameter updates on leaves between backward
// passes.
func (v *Value) SetData(x float64) { v.data = x }

// SetGrad overwrites the gradient accumulator.
func (v *Value) SetGrad(g float64) { v.grad = g }

// AddGrad accumulates a contribution into the gradient. Contributions
// sum; a value feeding several children receives all of them.
func (v *Value) AddGrad(g float64) { v.grad += g }

func (v *Value) String() string {
	op := "Leaf"
	if v.gradFn != nil {
		op = v.gradFn.Name()
	}
	return fmt.Sprintf("Value(data=%.4f, grad=%.4f, op=%s)", v.data, v.grad, op)
}
