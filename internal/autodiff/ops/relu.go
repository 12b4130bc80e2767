package ops

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// ReLUOp records y = max(0, x).
type ReLUOp struct {
	in, out *tensor.RawTensor
}

// NewReLU creates a ReLUOp from the forward pass operand and result.
func NewReLU(in, out *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{in: in, out: out}
}

func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *ReLUOp) Output() *tensor.RawTensor   { return op.out }

// Backward passes the gradient through where the input was positive and
// zeroes it elsewhere. The gradient at exactly zero is zero.
func (op *ReLUOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	result, err := tensor.NewRaw(op.in.Shape(), grad.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("relu backward: %v", err))
	}

	switch grad.DType() {
	case tensor.Float32:
		in, gd, rd := op.in.AsFloat32(), grad.AsFloat32(), result.AsFloat32()
		for i := range rd {
			if in[i] > 0 {
				rd[i] = gd[i]
			}
		}
	case tensor.Float64:
		in, gd, rd := op.in.AsFloat64(), grad.AsFloat64(), result.AsFloat64()
		for i := range rd {
			if in[i] > 0 {
				rd[i] = gd[i]
			}
		}
	default:
		panic(fmt.Sprintf("relu backward: unsupported dtype %s", grad.DType()))
	}
	return []*tensor.RawTensor{result}
}
