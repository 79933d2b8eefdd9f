package nn

import (
	"github.com/djeday123/scalargrad/ops"
	"github.com/djeday123/scalargrad/value"
)

// SumSquaredError builds the graph for Σ (pred_i - target_i)^2.
// The returned node differentiates like any other.
func SumSquaredError(preds, targets []*value.Value) *value.Value {
	if len(preds) != len(targets) {
		panic("nn: prediction/target length mismatch")
	}
	if len(preds) == 0 {
		panic("nn: empty prediction set")
	}

	var loss *value.Value
	for i := range preds {
		sq := ops.Square(ops.Sub(preds[i], targets[i]))
		if loss == nil {
			loss = sq
		} else {
			loss = ops.Add(loss, sq)
		}
	}
	return loss
}

// MSELoss builds the graph for the mean of the squared errors.
func MSELoss(preds, targets []*value.Value) *value.Value {
	sum := SumSquaredError(preds, targets)
	return ops.MulScalar(sum, 1.0/float64(len(preds)))
}

// Leaves wraps plain floats as graph leaves, in order.
func Leaves(xs []float64) []*value.Value {
	vs := make([]*value.Value, len(xs))
	for i, x := range xs {
		vs[i] = value.New(x)
	}
	return vs
}
