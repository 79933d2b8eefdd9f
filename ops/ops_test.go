package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djeday123/scalargrad/value"
)

func TestForward(t *testing.T) {
	tests := []struct {
		name string
		got  func() *value.Value
		want float64
	}{
		{"add", func() *value.Value { return Add(value.New(2), value.New(3)) }, 5},
		{"sub", func() *value.Value { return Sub(value.New(2), value.New(3)) }, -1},
		{"mul", func() *value.Value { return Mul(value.New(2), value.New(3)) }, 6},
		{"tanh", func() *value.Value { return Tanh(value.New(0.5)) }, math.Tanh(0.5)},
		{"square", func() *value.Value { return Square(value.New(-3)) }, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.got()
			assert.InDelta(t, tt.want, out.Data(), 1e-12)
			assert.False(t, out.IsLeaf())
		})
	}
}

func TestRuleNames(t *testing.T) {
	a, b := value.New(2), value.New(3)
	assert.Equal(t, "AddBackward", Add(a, b).GradFn().Name())
	assert.Equal(t, "SubBackward", Sub(a, b).GradFn().Name())
	assert.Equal(t, "MulBackward", Mul(a, b).GradFn().Name())
	assert.Equal(t, "TanhBackward", Tanh(a).GradFn().Name())
	// Square is Mul with aliased operands, not a fifth rule kind.
	assert.Equal(t, "MulBackward", Square(a).GradFn().Name())
}

func TestLocalDerivatives(t *testing.T) {
	a := value.New(2)
	b := value.New(3)

	t.Run("add", func(t *testing.T) {
		grads := Add(a, b).GradFn().Backward(1.5)
		require.Len(t, grads, 2)
		assert.Equal(t, 1.5, grads[0])
		assert.Equal(t, 1.5, grads[1])
	})

	t.Run("sub", func(t *testing.T) {
		grads := Sub(a, b).GradFn().Backward(1.5)
		require.Len(t, grads, 2)
		assert.Equal(t, 1.5, grads[0])
		assert.Equal(t, -1.5, grads[1])
	})

	t.Run("mul", func(t *testing.T) {
		grads := Mul(a, b).GradFn().Backward(2)
		require.Len(t, grads, 2)
		assert.Equal(t, 6.0, grads[0]) // b.Data() * grad
		assert.Equal(t, 4.0, grads[1]) // a.Data() * grad
	})

	t.Run("tanh", func(t *testing.T) {
		grads := Tanh(a).GradFn().Backward(1)
		require.Len(t, grads, 1)
		th := math.Tanh(2)
		assert.InDelta(t, 1-th*th, grads[0], 1e-12)
	})
}

func TestInputsOrder(t *testing.T) {
	a, b := value.New(2), value.New(3)
	inputs := Sub(a, b).GradFn().Inputs()
	require.Len(t, inputs, 2)
	assert.Same(t, a, inputs[0])
	assert.Same(t, b, inputs[1])
}

func TestConstructorsArePure(t *testing.T) {
	a, b := value.New(2), value.New(3)
	Add(a, b)
	Sub(a, b)
	Mul(a, b)
	Tanh(a)
	Square(a)

	assert.Equal(t, 2.0, a.Data())
	assert.Equal(t, 3.0, b.Data())
	assert.Equal(t, 0.0, a.Grad())
	assert.Equal(t, 0.0, b.Grad())
	assert.True(t, a.IsLeaf())
	assert.True(t, b.IsLeaf())
}

func TestSquareAliasesOperand(t *testing.T) {
	a := value.New(4)
	s := Square(a)
	inputs := s.GradFn().Inputs()
	require.Len(t, inputs, 2)
	assert.Same(t, a, inputs[0])
	assert.Same(t, a, inputs[1])
	assert.Equal(t, 16.0, s.Data())
}

func TestScalarHelpers(t *testing.T) {
	a := value.New(2)

	add := AddScalar(a, 3)
	assert.Equal(t, 5.0, add.Data())
	assert.Equal(t, "AddBackward", add.GradFn().Name())

	sub := SubScalar(a, 3)
	assert.Equal(t, -1.0, sub.Data())

	rsub := ScalarSub(3, a)
	assert.Equal(t, 1.0, rsub.Data())

	mul := MulScalar(a, 3)
	assert.Equal(t, 6.0, mul.Data())

	// The wrapped constant is a real leaf in the graph.
	leaf := add.GradFn().Inputs()[1]
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, 3.0, leaf.Data())
}
