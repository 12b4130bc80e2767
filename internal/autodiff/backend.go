package autodiff

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/autodiff/ops"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Backend decorates a compute backend with gradient tracking.
//
// Every operation is delegated to the wrapped backend for the actual
// computation and, while the tape is recording, registered on the tape for
// the backward pass.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New wraps a backend with a fresh gradient tape.
func New[B tensor.Backend](inner B) *Backend[B] {
	return &Backend[B]{
		inner: inner,
		tape:  NewTape(),
	}
}

// Tape returns the gradient tape.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "autodiff(" + b.inner.Name() + ")"
}

// Device returns the wrapped backend's device.
func (b *Backend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Add(x, y)
	b.tape.Record(ops.NewAdd(x, y, out))
	return out
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSub(x, y, out))
	return out
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMul(x, y, out))
	return out
}

// Div performs element-wise division and records the operation.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Div(x, y)
	b.tape.Record(ops.NewDiv(x, y, out))
	return out
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMul(x, y, out))
	return out
}

// Reshape changes the tensor's shape and records the operation.
func (b *Backend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	out := b.inner.Reshape(t, newShape)
	b.tape.Record(ops.NewReshape(t, out))
	return out
}

// Transpose permutes dimensions and records the operation.
func (b *Backend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	out := b.inner.Transpose(t, axes...)

	// The backward pass needs the resolved permutation even when the
	// caller used the reverse-all default.
	resolved := axes
	if len(resolved) == 0 {
		ndim := len(t.Shape())
		resolved = make([]int, ndim)
		for i := range resolved {
			resolved[i] = ndim - 1 - i
		}
	}
	b.tape.Record(ops.NewTranspose(t, out, resolved))
	return out
}

// MulScalar multiplies by a scalar and records the operation.
func (b *Backend[B]) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	out := b.inner.MulScalar(x, scalar)
	b.tape.Record(ops.NewMulScalar(x, out, scalar))
	return out
}

// AddScalar adds a scalar and records the operation.
func (b *Backend[B]) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	out := b.inner.AddScalar(x, scalar)
	b.tape.Record(ops.NewAddScalar(x, out))
	return out
}

// Exp computes the element-wise exponential and records the operation.
func (b *Backend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Exp(x)
	b.tape.Record(ops.NewExp(x, out))
	return out
}

// Pow computes the element-wise power and records the operation.
func (b *Backend[B]) Pow(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	out := b.inner.Pow(x, exponent)
	b.tape.Record(ops.NewPow(x, out, exponent))
	return out
}

// ReLU applies the rectifier and records the operation.
func (b *Backend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.ReLU(x)
	b.tape.Record(ops.NewReLU(x, out))
	return out
}

// LogSoftmax computes the row-wise log-softmax and records the operation.
func (b *Backend[B]) LogSoftmax(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.LogSoftmax(x)
	b.tape.Record(ops.NewLogSoftmax(x, out))
	return out
}

// Sum reduces to the scalar sum and records the operation.
func (b *Backend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sum(x)
	b.tape.Record(ops.NewSum(x, out))
	return out
}

// Mean reduces to the scalar mean and records the operation.
func (b *Backend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Mean(x)
	b.tape.Record(ops.NewMean(x, out))
	return out
}

// NLLLoss computes the negative log-likelihood loss for a batch of
// log-probability rows and int32 class targets, and records the operation.
// The result is a scalar tensor of shape [1].
func (b *Backend[B]) NLLLoss(logProbs, targets *tensor.RawTensor) (*tensor.RawTensor, error) {
	out, err := ops.NLLForward(logProbs, targets, b.Device())
	if err != nil {
		return nil, fmt.Errorf("autodiff: %w", err)
	}
	b.tape.Record(ops.NewNLLLoss(logProbs, targets, out))
	return out, nil
}
