package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djeday123/scalargrad/autograd"
)

var (
	_ Module = (*Neuron)(nil)
	_ Module = (*Layer)(nil)
	_ Module = (*MLP)(nil)
)

func TestNeuronParameterCount(t *testing.T) {
	n := NewNeuron(3, false)
	assert.Len(t, n.W, 3)
	require.NotNil(t, n.B)
	assert.Equal(t, 0.0, n.B.Data())
	assert.Len(t, n.Parameters(), 4)
}

func TestNeuronForward(t *testing.T) {
	n := NewNeuron(2, true)
	n.W[0].SetData(2)
	n.W[1].SetData(-1)
	n.B.SetData(0.5)

	out := n.Forward(Leaves([]float64{3, 4}))
	// 2*3 + (-1)*4 + 0.5
	assert.InDelta(t, 2.5, out.Data(), 1e-12)
	assert.Equal(t, "AddBackward", out.GradFn().Name())
}

func TestNeuronActivation(t *testing.T) {
	n := NewNeuron(1, false)
	out := n.Forward(Leaves([]float64{1}))
	assert.Equal(t, "TanhBackward", out.GradFn().Name())
	assert.Less(t, out.Data(), 1.0)
	assert.Greater(t, out.Data(), -1.0)
}

func TestNeuronInputWidthPanics(t *testing.T) {
	n := NewNeuron(2, false)
	assert.Panics(t, func() { n.Forward(Leaves([]float64{1})) })
}

func TestMLPShape(t *testing.T) {
	m := NewMLP(3, []int{4, 4, 1})

	require.Len(t, m.Layers, 3)
	assert.Len(t, m.Layers[0].Neurons, 4)
	assert.Len(t, m.Layers[2].Neurons, 1)

	// (3+1)*4 + (4+1)*4 + (4+1)*1
	assert.Equal(t, 41, m.CountParameters())

	out := m.Forward(Leaves([]float64{0.1, 0.2, 0.3}))
	assert.Len(t, out, 1)
}

func TestMLPLastLayerLinear(t *testing.T) {
	m := NewMLP(2, []int{3, 1})

	for _, n := range m.Layers[0].Neurons {
		assert.False(t, n.Linear)
	}
	for _, n := range m.Layers[1].Neurons {
		assert.True(t, n.Linear)
	}
}

func TestMLPForwardDeterministic(t *testing.T) {
	m := NewMLP(2, []int{4, 1})
	in := []float64{0.5, -0.5}

	a := m.Forward(Leaves(in))[0].Data()
	b := m.Forward(Leaves(in))[0].Data()
	assert.Equal(t, a, b)
}

func TestMLPGradientsFlow(t *testing.T) {
	m := NewMLP(2, []int{3, 1})
	out := m.Forward(Leaves([]float64{1, 2}))[0]

	autograd.Backward(out)

	// Every bias on the path must see a gradient; the output layer's
	// bias has derivative exactly 1.
	lastBias := m.Layers[1].Neurons[0].B
	assert.InDelta(t, 1.0, lastBias.Grad(), 1e-12)

	nonZero := 0
	for _, p := range m.Parameters() {
		if p.Grad() != 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, 1)
}

func TestZeroGrad(t *testing.T) {
	m := NewMLP(2, []int{2, 1})
	out := m.Forward(Leaves([]float64{1, -1}))[0]
	autograd.Backward(out)

	m.ZeroGrad()
	for _, p := range m.Parameters() {
		assert.Equal(t, 0.0, p.Grad())
	}
}

func TestSumSquaredError(t *testing.T) {
	preds := Leaves([]float64{1, 2, 3})
	targets := Leaves([]float64{1, 0, 6})

	loss := SumSquaredError(preds, targets)
	// 0 + 4 + 9
	assert.InDelta(t, 13.0, loss.Data(), 1e-12)

	autograd.Backward(loss)
	// d/dpred_i = 2*(pred_i - target_i)
	assert.InDelta(t, 0.0, preds[0].Grad(), 1e-12)
	assert.InDelta(t, 4.0, preds[1].Grad(), 1e-12)
	assert.InDelta(t, -6.0, preds[2].Grad(), 1e-12)
}

func TestMSELoss(t *testing.T) {
	preds := Leaves([]float64{1, 2, 3})
	targets := Leaves([]float64{1, 0, 6})

	loss := MSELoss(preds, targets)
	assert.InDelta(t, 13.0/3.0, loss.Data(), 1e-12)

	autograd.Backward(loss)
	assert.InDelta(t, 4.0/3.0, preds[1].Grad(), 1e-12)
}

func TestLossPanics(t *testing.T) {
	assert.Panics(t, func() { SumSquaredError(Leaves([]float64{1}), nil) })
	assert.Panics(t, func() { MSELoss(nil, nil) })
}

func TestLeaves(t *testing.T) {
	vs := Leaves([]float64{1.5, -2})
	require.Len(t, vs, 2)
	assert.Equal(t, 1.5, vs[0].Data())
	assert.Equal(t, -2.0, vs[1].Data())
	assert.True(t, vs[0].IsLeaf())
}
