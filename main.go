package main

import (
	"fmt"

	"github.com/djeday123/scalargrad/autograd"
	"github.com/djeday123/scalargrad/gradcheck"
	"github.com/djeday123/scalargrad/nn"
	"github.com/djeday123/scalargrad/ops"
	"github.com/djeday123/scalargrad/optim"
	"github.com/djeday123/scalargrad/value"
)

func main() {
	fmt.Println("=== scalargrad Engine Test ===")

	// Test 1: Leaf values
	fmt.Println("\n--- Test 1: Leaves ---")
	x := value.New(2.0)
	y := value.New(3.0)
	fmt.Println("x:", x)
	fmt.Println("y:", y)

	// Test 2: Arithmetic forward values
	fmt.Println("\n--- Test 2: Add/Sub/Mul ---")
	fmt.Println("x + y =", ops.Add(x, y).Data()) // 5
	fmt.Println("x - y =", ops.Sub(x, y).Data()) // -1
	fmt.Println("x * y =", ops.Mul(x, y).Data()) // 6

	// Test 3: Tanh
	fmt.Println("\n--- Test 3: Tanh ---")
	fmt.Printf("tanh(x) = %.4f\n", ops.Tanh(x).Data()) // 0.9640

	// Test 4: Square
	fmt.Println("\n--- Test 4: Square ---")
	fmt.Println("y^2 =", ops.Square(y).Data()) // 9

	// Test 5: Chain rule through a composite graph
	fmt.Println("\n--- Test 5: Backward on z = x*y + tanh(x) ---")
	z := ops.Add(ops.Mul(x, y), ops.Tanh(x))
	autograd.Backward(z)
	fmt.Printf("z     = %.4f\n", z.Data()) // 6.9640
	fmt.Printf("dz/dx = %.4f\n", x.Grad()) // 3.0707 = y + (1 - tanh(x)^2)
	fmt.Printf("dz/dy = %.4f\n", y.Grad()) // 2.0000 = x

	// Test 6: Shared subexpression accumulates
	fmt.Println("\n--- Test 6: Gradient accumulation ---")
	a := value.New(3.0)
	autograd.Backward(ops.Square(a))
	fmt.Println("d(a*a)/da =", a.Grad()) // 6 = 2a, both operand slots contribute

	// Test 7: Backward resets gradients between calls
	fmt.Println("\n--- Test 7: Repeated backward ---")
	autograd.Backward(z)
	fmt.Printf("dz/dx again = %.4f (unchanged)\n", x.Grad())
	fmt.Printf("dz/dy again = %.4f (unchanged)\n", y.Grad())

	// Test 8: Topological order
	fmt.Println("\n--- Test 8: TopoSort ---")
	order := autograd.TopoSort(z)
	fmt.Println("nodes reachable from z:", len(order)) // 5: x, y, x*y, tanh(x), z
	fmt.Println("last node is z itself:", order[len(order)-1] == z)

	// Test 9: Gradient descent on (w-1)^2
	fmt.Println("\n--- Test 9: Leaf mutation between passes ---")
	w := value.New(0.0)
	for step := 1; step <= 3; step++ {
		loss := ops.Square(ops.SubScalar(w, 1.0))
		autograd.Backward(loss)
		w.SetData(w.Data() - 0.1*w.Grad())
		fmt.Printf("step %d: loss = %.4f, w = %.4f\n", step, loss.Data(), w.Data())
	}

	// Test 10: MLP forward and backward
	fmt.Println("\n--- Test 10: MLP ---")
	mlp := nn.NewMLP(3, []int{4, 4, 1})
	fmt.Println("parameters:", mlp.CountParameters()) // 41
	out := mlp.Forward(nn.Leaves([]float64{2, 3, -1}))
	autograd.Backward(out[0])
	fmt.Printf("output = %.4f\n", out[0].Data())
	fmt.Printf("first weight grad = %.4f\n", mlp.Layers[0].Neurons[0].W[0].Grad())

	// Test 11: One SGD step
	fmt.Println("\n--- Test 11: SGD ---")
	p := value.New(1.0)
	p.SetGrad(2.0)
	sgd := optim.NewSGD([]*value.Value{p}, 0.1)
	sgd.Step()
	fmt.Printf("p after step = %.4f\n", p.Data()) // 0.8 = 1 - 0.1*2

	// Test 12: Numeric gradient check
	fmt.Println("\n--- Test 12: Gradient check ---")
	res := gradcheck.Scalar(ops.Tanh, 0.5)
	fmt.Printf("tanh'(0.5): analytic %.6f, numeric %.6f, relerr %.2e, ok=%v\n",
		res.Analytic, res.Numeric, res.RelErr, res.OK())

	fmt.Println("\n=== All tests passed! ===")
}
