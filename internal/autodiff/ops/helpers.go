package ops

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// reduceBroadcast sums a gradient over the dimensions that were broadcast
// during the forward pass, so the result matches the input's shape.
//
// When a (1, 3) bias is added to a (64, 3) activation, the output gradient
// has shape (64, 3); the bias gradient is its column-wise sum with
// shape (1, 3).
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		return grad
	}

	result, err := tensor.NewRaw(target, grad.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("ops reduce: %v", err))
	}

	gradShape := grad.Shape()
	targetStrides := target.ComputeStrides()
	gradStrides := gradShape.ComputeStrides()
	offset := len(gradShape) - len(target)

	// Per grad dimension: the matching target stride, or 0 where the
	// target dimension was broadcast (or absent).
	collapse := make([]int, len(gradShape))
	for i := range gradShape {
		ti := i - offset
		if ti < 0 || (target[ti] == 1 && gradShape[i] != 1) {
			continue
		}
		collapse[i] = targetStrides[ti]
	}

	switch grad.DType() {
	case tensor.Float32:
		gd, rd := grad.AsFloat32(), result.AsFloat32()
		for i, v := range gd {
			rd[targetIndex(i, gradStrides, collapse)] += v
		}
	case tensor.Float64:
		gd, rd := grad.AsFloat64(), result.AsFloat64()
		for i, v := range gd {
			rd[targetIndex(i, gradStrides, collapse)] += v
		}
	default:
		panic(fmt.Sprintf("ops reduce: unsupported dtype %s", grad.DType()))
	}
	return result
}

func targetIndex(flatGrad int, gradStrides, collapse []int) int {
	idx := 0
	rem := flatGrad
	for d, stride := range gradStrides {
		coord := rem / stride
		rem %= stride
		idx += coord * collapse[d]
	}
	return idx
}

// fill allocates a tensor of the given shape with every element set to v.
func fill(shape tensor.Shape, dtype tensor.DataType, v float64, backend tensor.Backend) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, backend.Device())
	if err != nil {
		panic(fmt.Sprintf("ops fill: %v", err))
	}
	switch dtype {
	case tensor.Float32:
		rd := result.AsFloat32()
		for i := range rd {
			rd[i] = float32(v)
		}
	case tensor.Float64:
		rd := result.AsFloat64()
		for i := range rd {
			rd[i] = v
		}
	default:
		panic(fmt.Sprintf("ops fill: unsupported dtype %s", dtype))
	}
	return result
}

// scalarValue reads a single-element float tensor as float64.
func scalarValue(t *tensor.RawTensor) float64 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("ops: expected scalar tensor, got shape %v", t.Shape()))
	}
	switch t.DType() {
	case tensor.Float32:
		return float64(t.AsFloat32()[0])
	case tensor.Float64:
		return t.AsFloat64()[0]
	default:
		panic(fmt.Sprintf("ops: unsupported scalar dtype %s", t.DType()))
	}
}
