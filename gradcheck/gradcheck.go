// Package gradcheck verifies analytic gradients against central
// difference estimates.
package gradcheck

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/djeday123/scalargrad/autograd"
	"github.com/djeday123/scalargrad/value"
)

// Threshold is the relative error above which a check fails.
const Threshold = 1e-2

// Result compares one analytic partial derivative with its numeric
// estimate.
type Result struct {
	Analytic float64
	Numeric  float64
	RelErr   float64
}

// OK reports whether the two derivatives agree within Threshold.
func (r Result) OK() bool { return r.RelErr <= Threshold }

func relErr(num, ana float64) float64 {
	return math.Abs(num-ana) / (math.Abs(num) + math.Abs(ana) + 1e-8)
}

// Scalar checks d(f)/dx at x for a single-input graph builder. The
// analytic side runs a real backward pass over the graph f builds; the
// numeric side is a central difference over fresh graphs.
func Scalar(f func(x *value.Value) *value.Value, x float64) Result {
	leaf := value.New(x)
	autograd.Backward(f(leaf))
	ana := leaf.Grad()

	num := fd.Derivative(func(x float64) float64 {
		return f(value.New(x)).Data()
	}, x, &fd.Settings{Formula: fd.Central})

	return Result{Analytic: ana, Numeric: num, RelErr: relErr(num, ana)}
}

// Partials checks every partial derivative of a multi-input graph
// builder at the given point. Results align with the input order.
func Partials(f func(xs []*value.Value) *value.Value, at []float64) []Result {
	leaves := make([]*value.Value, len(at))
	for i, x := range at {
		leaves[i] = value.New(x)
	}
	autograd.Backward(f(leaves))

	numeric := make([]float64, len(at))
	fd.Gradient(numeric, func(xs []float64) float64 {
		vs := make([]*value.Value, len(xs))
		for i, x := range xs {
			vs[i] = value.New(x)
		}
		return f(vs).Data()
	}, at, &fd.Settings{Formula: fd.Central})

	results := make([]Result, len(at))
	for i := range at {
		results[i] = Result{
			Analytic: leaves[i].Grad(),
			Numeric:  numeric[i],
			RelErr:   relErr(numeric[i], leaves[i].Grad()),
		}
	}
	return results
}
