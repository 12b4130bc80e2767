// Package cpu implements a pure-Go CPU backend.
//
// All operations allocate a fresh result tensor and leave their inputs
// untouched, which keeps every intermediate value alive for the autodiff
// tape. Shape or dtype violations are programming errors and panic.
package cpu

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// Backend is a pure Go CPU implementation of tensor.Backend.
type Backend struct{}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "cpu"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.CPU
}

// Add performs element-wise addition with broadcasting.
func (b *Backend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementwise(x, y, "add",
		func(a, b float32) float32 { return a + b },
		func(a, b float64) float64 { return a + b },
		func(a, b int32) int32 { return a + b },
	)
}

// Sub performs element-wise subtraction with broadcasting.
func (b *Backend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementwise(x, y, "sub",
		func(a, b float32) float32 { return a - b },
		func(a, b float64) float64 { return a - b },
		func(a, b int32) int32 { return a - b },
	)
}

// Mul performs element-wise multiplication with broadcasting.
func (b *Backend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementwise(x, y, "mul",
		func(a, b float32) float32 { return a * b },
		func(a, b float64) float64 { return a * b },
		func(a, b int32) int32 { return a * b },
	)
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 for floats and panics for ints.
func (b *Backend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.elementwise(x, y, "div",
		func(a, b float32) float32 { return a / b },
		func(a, b float64) float64 { return a / b },
		func(a, b int32) int32 { return a / b },
	)
}

// elementwise applies a binary operation with NumPy-style broadcasting.
func (b *Backend) elementwise(
	x, y *tensor.RawTensor,
	opName string,
	f32Op func(a, b float32) float32,
	f64Op func(a, b float64) float64,
	i32Op func(a, b int32) int32,
) *tensor.RawTensor {
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("cpu %s: dtype mismatch %s vs %s", opName, x.DType(), y.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		panic(fmt.Sprintf("cpu %s: %v", opName, err))
	}

	result, err := tensor.NewRaw(outShape, x.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("cpu %s: %v", opName, err))
	}

	if !needsBroadcast {
		switch x.DType() {
		case tensor.Float32:
			xd, yd, rd := x.AsFloat32(), y.AsFloat32(), result.AsFloat32()
			for i := range rd {
				rd[i] = f32Op(xd[i], yd[i])
			}
		case tensor.Float64:
			xd, yd, rd := x.AsFloat64(), y.AsFloat64(), result.AsFloat64()
			for i := range rd {
				rd[i] = f64Op(xd[i], yd[i])
			}
		case tensor.Int32:
			xd, yd, rd := x.AsInt32(), y.AsInt32(), result.AsInt32()
			for i := range rd {
				rd[i] = i32Op(xd[i], yd[i])
			}
		}
		return result
	}

	// Broadcast path: walk the output index space and map each position
	// back to the (possibly smaller) input tensors.
	xIdx := newBroadcastIndexer(x.Shape(), outShape)
	yIdx := newBroadcastIndexer(y.Shape(), outShape)

	switch x.DType() {
	case tensor.Float32:
		xd, yd, rd := x.AsFloat32(), y.AsFloat32(), result.AsFloat32()
		for i := range rd {
			rd[i] = f32Op(xd[xIdx.sourceIndex(i)], yd[yIdx.sourceIndex(i)])
		}
	case tensor.Float64:
		xd, yd, rd := x.AsFloat64(), y.AsFloat64(), result.AsFloat64()
		for i := range rd {
			rd[i] = f64Op(xd[xIdx.sourceIndex(i)], yd[yIdx.sourceIndex(i)])
		}
	case tensor.Int32:
		xd, yd, rd := x.AsInt32(), y.AsInt32(), result.AsInt32()
		for i := range rd {
			rd[i] = i32Op(xd[xIdx.sourceIndex(i)], yd[yIdx.sourceIndex(i)])
		}
	}
	return result
}

// broadcastIndexer maps flat indices in a broadcast output shape back to
// flat indices in a source tensor whose shape broadcasts to it.
type broadcastIndexer struct {
	outStrides []int // strides of the output shape
	srcStrides []int // per output dim: source stride, or 0 for broadcast dims
}

func newBroadcastIndexer(src, out tensor.Shape) *broadcastIndexer {
	outStrides := out.ComputeStrides()
	srcStrides := make([]int, len(out))

	realStrides := src.ComputeStrides()
	offset := len(out) - len(src)
	for i := range out {
		if i < offset {
			continue // dimension does not exist in source
		}
		srcDim := i - offset
		if src[srcDim] == 1 && out[i] != 1 {
			continue // broadcast dimension, stride stays 0
		}
		srcStrides[i] = realStrides[srcDim]
	}

	return &broadcastIndexer{outStrides: outStrides, srcStrides: srcStrides}
}

func (bi *broadcastIndexer) sourceIndex(flatOut int) int {
	src := 0
	rem := flatOut
	for i, stride := range bi.outStrides {
		coord := rem / stride
		rem %= stride
		src += coord * bi.srcStrides[i]
	}
	return src
}
