package ops

import "github.com/sprout-ml/sprout/internal/tensor"

// MatMulOp records c = a @ b for 2D matrices.
type MatMulOp struct {
	a, b, out *tensor.RawTensor
}

// NewMatMul creates a MatMulOp from the forward pass operands and result.
func NewMatMul(a, b, out *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{a: a, b: b, out: out}
}

func (op *MatMulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MatMulOp) Output() *tensor.RawTensor   { return op.out }

// Backward for c = a @ b:
//
//	dL/da = dL/dc @ b^T
//	dL/db = a^T @ dL/dc
func (op *MatMulOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradA := backend.MatMul(grad, backend.Transpose(op.b))
	gradB := backend.MatMul(backend.Transpose(op.a), grad)
	return []*tensor.RawTensor{gradA, gradB}
}
