package main

import (
	"fmt"

	"github.com/djeday123/scalargrad/autograd"
	"github.com/djeday123/scalargrad/nn"
	"github.com/djeday123/scalargrad/ops"
	"github.com/djeday123/scalargrad/value"
)

func main() {
	fmt.Println("=== Fit y = 2x + 1 with gradient descent ===")

	// Tiny dataset on the exact line
	xs := []float64{-1, 0, 1, 2, 3}
	ys := []float64{-1, 1, 3, 5, 7}

	w := value.New(0.0)
	b := value.New(0.0)

	lr := 0.1
	epochs := 50

	for epoch := 1; epoch <= epochs; epoch++ {
		// Rebuild the loss graph each epoch from the current w, b
		preds := make([]*value.Value, len(xs))
		targets := make([]*value.Value, len(xs))
		for i := range xs {
			x := value.New(xs[i])
			preds[i] = ops.Add(ops.Mul(w, x), b)
			targets[i] = value.New(ys[i])
		}
		loss := nn.MSELoss(preds, targets)

		autograd.Backward(loss)

		w.SetData(w.Data() - lr*w.Grad())
		b.SetData(b.Data() - lr*b.Grad())

		fmt.Printf("Epoch %2d | loss = %.6f | w = %.4f | b = %.4f\n",
			epoch, loss.Data(), w.Data(), b.Data())
	}

	fmt.Println("\nFinal parameters:")
	fmt.Printf("w = %.4f (target 2.0)\n", w.Data())
	fmt.Printf("b = %.4f (target 1.0)\n", b.Data())
}
