package ops

import "github.com/sprout-ml/sprout/internal/tensor"

// ExpOp records y = exp(x).
type ExpOp struct {
	in, out *tensor.RawTensor
}

// NewExp creates an ExpOp from the forward pass operand and result.
func NewExp(in, out *tensor.RawTensor) *ExpOp {
	return &ExpOp{in: in, out: out}
}

func (op *ExpOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *ExpOp) Output() *tensor.RawTensor   { return op.out }

// Backward: d(exp(x))/dx = exp(x), which is the stored output.
func (op *ExpOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(grad, op.out)}
}

// PowOp records y = x^p for a scalar exponent p.
type PowOp struct {
	in, out  *tensor.RawTensor
	exponent float64
}

// NewPow creates a PowOp from the forward pass operand, result and exponent.
func NewPow(in, out *tensor.RawTensor, exponent float64) *PowOp {
	return &PowOp{in: in, out: out, exponent: exponent}
}

func (op *PowOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *PowOp) Output() *tensor.RawTensor   { return op.out }

// Backward: d(x^p)/dx = p * x^(p-1).
func (op *PowOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	deriv := backend.MulScalar(backend.Pow(op.in, op.exponent-1), op.exponent)
	return []*tensor.RawTensor{backend.Mul(grad, deriv)}
}

// MulScalarOp records y = x * s.
type MulScalarOp struct {
	in, out *tensor.RawTensor
	scalar  float64
}

// NewMulScalar creates a MulScalarOp from the forward pass operand, result
// and scalar.
func NewMulScalar(in, out *tensor.RawTensor, scalar float64) *MulScalarOp {
	return &MulScalarOp{in: in, out: out, scalar: scalar}
}

func (op *MulScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *MulScalarOp) Output() *tensor.RawTensor   { return op.out }

func (op *MulScalarOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(grad, op.scalar)}
}

// AddScalarOp records y = x + s.
type AddScalarOp struct {
	in, out *tensor.RawTensor
}

// NewAddScalar creates an AddScalarOp from the forward pass operand and result.
func NewAddScalar(in, out *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{in: in, out: out}
}

func (op *AddScalarOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *AddScalarOp) Output() *tensor.RawTensor   { return op.out }

func (op *AddScalarOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{grad}
}
