package nn

import "github.com/djeday123/scalargrad/value"

// Module is anything holding trainable parameters.
type Module interface {
	Parameters() []*value.Value
	ZeroGrad()
}
