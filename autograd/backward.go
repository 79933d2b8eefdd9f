package autograd

import (
	"github.com/djeday123/scalargrad/value"
)

// TopoSort returns every value reachable from out through rule inputs,
// ordered so that each value appears strictly after all of its inputs.
// Visits are keyed on node identity; two values holding equal data are
// distinct graph positions. Termination assumes the graph is acyclic,
// which the op constructors guarantee structurally.
func TopoSort(out *value.Value) []*value.Value {
	visited := make(map[*value.Value]bool)
	var order []*value.Value
	var visit func(v *value.Value)
	visit = func(v *value.Value) {
		if visited[v] {
			return
		}
		visited[v] = true
		if v.GradFn() != nil {
			for _, input := range v.GradFn().Inputs() {
				if input == nil {
					continue
				}
				visit(input)
			}
		}
		order = append(order, v)
	}
	visit(out)
	return order
}

// Backward computes d(out)/d(v) for every value v reachable from out and
// stores it in v's gradient accumulator.
//
// The pass seeds out with gradient 1 and walks the topological order in
// reverse, so a rule fires only after every downstream contribution to
// its node's gradient has already landed. Gradients of all reachable
// nodes are reset to zero first; repeated calls on the same graph yield
// identical results.
func Backward(out *value.Value) {
	order := TopoSort(out)

	// Clear residue from any previous pass sharing these nodes.
	for _, v := range order {
		v.SetGrad(0)
	}
	out.SetGrad(1)

	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		fn := v.GradFn()
		if fn == nil {
			continue
		}

		inputGrads := fn.Backward(v.Grad())
		inputs := fn.Inputs()

		for j, input := range inputs {
			if j >= len(inputGrads) || input == nil {
				continue
			}
			input.AddGrad(inputGrads[j])
		}
	}
}
