package ops

import "github.com/sprout-ml/sprout/internal/tensor"

// TransposeOp records a dimension permutation.
type TransposeOp struct {
	in, out *tensor.RawTensor
	axes    []int
}

// NewTranspose creates a TransposeOp. The axes slice holds the resolved
// permutation used in the forward pass (never empty).
func NewTranspose(in, out *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{in: in, out: out, axes: axes}
}

func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *TransposeOp) Output() *tensor.RawTensor   { return op.out }

// Backward applies the inverse permutation to the output gradient.
func (op *TransposeOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	return []*tensor.RawTensor{backend.Transpose(grad, inverse...)}
}

// ReshapeOp records a shape change that preserves element order.
type ReshapeOp struct {
	in, out *tensor.RawTensor
}

// NewReshape creates a ReshapeOp from the forward pass operand and result.
func NewReshape(in, out *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{in: in, out: out}
}

func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *ReshapeOp) Output() *tensor.RawTensor   { return op.out }

// Backward reshapes the gradient back to the input's shape.
func (op *ReshapeOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(grad, op.in.Shape())}
}
