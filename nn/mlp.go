package nn

import (
	"math"
	"math/rand"

	"github.com/djeday123/scalargrad/ops"
	"github.com/djeday123/scalargrad/value"
)

// Neuron computes tanh(w·x + b), or the raw affine sum when linear.
type Neuron struct {
	W      []*value.Value
	B      *value.Value
	Linear bool
}

// NewNeuron creates a neuron with nin inputs.
// Weights use Kaiming init: scale = sqrt(2 / fan_in). Bias starts at zero.
func NewNeuron(nin int, linear bool) *Neuron {
	scale := math.Sqrt(2.0 / float64(nin))

	w := make([]*value.Value, nin)
	for i := range w {
		w[i] = value.New(rand.NormFloat64() * scale)
	}

	return &Neuron{W: w, B: value.New(0), Linear: linear}
}

// Forward computes the neuron output for input x.
func (n *Neuron) Forward(x []*value.Value) *value.Value {
	if len(x) != len(n.W) {
		panic("nn: input width does not match neuron weights")
	}

	act := n.B
	for i, wi := range n.W {
		act = ops.Add(act, ops.Mul(wi, x[i]))
	}

	if n.Linear {
		return act
	}
	return ops.Tanh(act)
}

// Parameters returns the neuron's weights followed by its bias.
func (n *Neuron) Parameters() []*value.Value {
	params := make([]*value.Value, len(n.W)+1)
	copy(params, n.W)
	params[len(n.W)] = n.B
	return params
}

// ZeroGrad clears the gradients of all parameters.
func (n *Neuron) ZeroGrad() {
	for _, p := range n.Parameters() {
		p.SetGrad(0)
	}
}

// Layer is a set of neurons sharing an input width.
type Layer struct {
	Neurons []*Neuron
}

// NewLayer creates nout neurons with nin inputs each.
func NewLayer(nin, nout int, linear bool) *Layer {
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(nin, linear)
	}
	return &Layer{Neurons: neurons}
}

// Forward maps the input through every neuron in the layer.
func (l *Layer) Forward(x []*value.Value) []*value.Value {
	outs := make([]*value.Value, len(l.Neurons))
	for i, n := range l.Neurons {
		outs[i] = n.Forward(x)
	}
	return outs
}

func (l *Layer) Parameters() []*value.Value {
	var params []*value.Value
	for _, n := range l.Neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

func (l *Layer) ZeroGrad() {
	for _, p := range l.Parameters() {
		p.SetGrad(0)
	}
}

// MLP is a stack of layers. Every layer but the last applies tanh; the
// last is linear.
type MLP struct {
	Layers []*Layer
}

// NewMLP creates a perceptron with nin inputs and one layer per entry of
// nouts (each entry is that layer's width).
func NewMLP(nin int, nouts []int) *MLP {
	sizes := append([]int{nin}, nouts...)

	layers := make([]*Layer, len(nouts))
	for i := 0; i < len(nouts); i++ {
		linear := i == len(nouts)-1
		layers[i] = NewLayer(sizes[i], sizes[i+1], linear)
	}
	return &MLP{Layers: layers}
}

// Forward runs the input through all layers.
func (m *MLP) Forward(x []*value.Value) []*value.Value {
	for _, l := range m.Layers {
		x = l.Forward(x)
	}
	return x
}

func (m *MLP) Parameters() []*value.Value {
	var params []*value.Value
	for _, l := range m.Layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

func (m *MLP) ZeroGrad() {
	for _, p := range m.Parameters() {
		p.SetGrad(0)
	}
}

// CountParameters returns the number of trainable scalars.
func (m *MLP) CountParameters() int {
	return len(m.Parameters())
}
