package ops

import "github.com/sprout-ml/sprout/internal/tensor"

// SumOp records the scalar sum y = sum(x).
type SumOp struct {
	in, out *tensor.RawTensor
}

// NewSum creates a SumOp from the forward pass operand and result.
func NewSum(in, out *tensor.RawTensor) *SumOp {
	return &SumOp{in: in, out: out}
}

func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *SumOp) Output() *tensor.RawTensor   { return op.out }

// Backward: every element contributes with weight 1, so the scalar
// gradient is broadcast over the input's shape.
func (op *SumOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{fill(op.in.Shape(), op.in.DType(), scalarValue(grad), backend)}
}

// MeanOp records the scalar mean y = mean(x).
type MeanOp struct {
	in, out *tensor.RawTensor
}

// NewMean creates a MeanOp from the forward pass operand and result.
func NewMean(in, out *tensor.RawTensor) *MeanOp {
	return &MeanOp{in: in, out: out}
}

func (op *MeanOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *MeanOp) Output() *tensor.RawTensor   { return op.out }

// Backward: every element contributes with weight 1/n.
func (op *MeanOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	n := float64(op.in.NumElements())
	return []*tensor.RawTensor{fill(op.in.Shape(), op.in.DType(), scalarValue(grad)/n, backend)}
}
