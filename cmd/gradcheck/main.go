package main

import (
	"fmt"
	"os"

	"github.com/djeday123/scalargrad/gradcheck"
	"github.com/djeday123/scalargrad/ops"
	"github.com/djeday123/scalargrad/value"
)

func main() {
	fmt.Println("=== Gradient Check ===")

	failed := false

	// Test 1: unary ops across a few points
	fmt.Println("\n--- Unary ops ---")
	unary := []struct {
		name string
		f    func(*value.Value) *value.Value
	}{
		{"tanh", ops.Tanh},
		{"square", ops.Square},
		{"add 2.5", func(a *value.Value) *value.Value { return ops.AddScalar(a, 2.5) }},
		{"sub 1.5", func(a *value.Value) *value.Value { return ops.SubScalar(a, 1.5) }},
		{"scale 3", func(a *value.Value) *value.Value { return ops.MulScalar(a, 3.0) }},
	}
	points := []float64{-2.0, -0.5, 0.1, 1.0, 3.0}

	for _, u := range unary {
		maxErr := float64(0)
		for _, x := range points {
			res := gradcheck.Scalar(u.f, x)
			if res.RelErr > maxErr {
				maxErr = res.RelErr
			}
		}
		status := "✓"
		if maxErr > gradcheck.Threshold {
			status = "✗ BAD"
			failed = true
		}
		fmt.Printf("%-8s max_rel_err=%.2e %s\n", u.name, maxErr, status)
	}

	// Test 2: both partials of each binary op
	fmt.Println("\n--- Binary ops at (1.3, -0.7) ---")
	binary := []struct {
		name string
		f    func(a, b *value.Value) *value.Value
	}{
		{"add", ops.Add},
		{"sub", ops.Sub},
		{"mul", ops.Mul},
	}

	for _, bop := range binary {
		f := bop.f
		results := gradcheck.Partials(func(vs []*value.Value) *value.Value {
			return f(vs[0], vs[1])
		}, []float64{1.3, -0.7})

		for i, res := range results {
			status := "✓"
			if !res.OK() {
				status = "✗ BAD"
				failed = true
			}
			fmt.Printf("%-4s d/dx%d: ana=%.6f num=%.6f rel_err=%.2e %s\n",
				bop.name, i, res.Analytic, res.Numeric, res.RelErr, status)
		}
	}

	// Test 3: composite graph exercises the chain rule end to end
	fmt.Println("\n--- Composite z = x*y + tanh(x) at (2, 3) ---")
	results := gradcheck.Partials(func(vs []*value.Value) *value.Value {
		return ops.Add(ops.Mul(vs[0], vs[1]), ops.Tanh(vs[0]))
	}, []float64{2.0, 3.0})

	names := []string{"dz/dx", "dz/dy"}
	for i, res := range results {
		status := "✓"
		if !res.OK() {
			status = "✗ BAD"
			failed = true
		}
		fmt.Printf("%s: ana=%.6f num=%.6f rel_err=%.2e %s\n",
			names[i], res.Analytic, res.Numeric, res.RelErr, status)
	}

	if failed {
		fmt.Println("\n✗ Some gradients do NOT match")
		os.Exit(1)
	}
	fmt.Println("\n✓ All gradients match")
}
