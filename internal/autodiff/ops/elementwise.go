package ops

import "github.com/sprout-ml/sprout/internal/tensor"

// AddOp records c = a + b with broadcasting.
type AddOp struct {
	a, b, out *tensor.RawTensor
}

// NewAdd creates an AddOp from the forward pass operands and result.
func NewAdd(a, b, out *tensor.RawTensor) *AddOp {
	return &AddOp{a: a, b: b, out: out}
}

func (op *AddOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *AddOp) Output() *tensor.RawTensor   { return op.out }

// Backward: d(a+b)/da = 1, d(a+b)/db = 1. Broadcast dimensions are summed
// out so each gradient matches its input's shape.
func (op *AddOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(grad, op.a.Shape(), backend),
		reduceBroadcast(grad, op.b.Shape(), backend),
	}
}

// SubOp records c = a - b with broadcasting.
type SubOp struct {
	a, b, out *tensor.RawTensor
}

// NewSub creates a SubOp from the forward pass operands and result.
func NewSub(a, b, out *tensor.RawTensor) *SubOp {
	return &SubOp{a: a, b: b, out: out}
}

func (op *SubOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *SubOp) Output() *tensor.RawTensor   { return op.out }

func (op *SubOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(grad, op.a.Shape(), backend),
		reduceBroadcast(backend.MulScalar(grad, -1), op.b.Shape(), backend),
	}
}

// MulOp records c = a * b (element-wise) with broadcasting.
type MulOp struct {
	a, b, out *tensor.RawTensor
}

// NewMul creates a MulOp from the forward pass operands and result.
func NewMul(a, b, out *tensor.RawTensor) *MulOp {
	return &MulOp{a: a, b: b, out: out}
}

func (op *MulOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *MulOp) Output() *tensor.RawTensor   { return op.out }

// Backward: d(a*b)/da = b, d(a*b)/db = a.
func (op *MulOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{
		reduceBroadcast(backend.Mul(grad, op.b), op.a.Shape(), backend),
		reduceBroadcast(backend.Mul(grad, op.a), op.b.Shape(), backend),
	}
}

// DivOp records c = a / b (element-wise) with broadcasting.
type DivOp struct {
	a, b, out *tensor.RawTensor
}

// NewDiv creates a DivOp from the forward pass operands and result.
func NewDiv(a, b, out *tensor.RawTensor) *DivOp {
	return &DivOp{a: a, b: b, out: out}
}

func (op *DivOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.a, op.b} }
func (op *DivOp) Output() *tensor.RawTensor   { return op.out }

// Backward: d(a/b)/da = 1/b, d(a/b)/db = -a/b^2 = -(a/b)/b.
// The stored output a/b avoids recomputing the quotient.
func (op *DivOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradOverB := backend.Div(grad, op.b)
	gradB := backend.MulScalar(backend.Mul(gradOverB, op.out), -1)
	return []*tensor.RawTensor{
		reduceBroadcast(gradOverB, op.a.Shape(), backend),
		reduceBroadcast(gradB, op.b.Shape(), backend),
	}
}
