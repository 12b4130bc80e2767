package cpu

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// Sum reduces the tensor to the scalar sum of all elements.
// The result has shape [1].
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return b.reduceAll(x, "sum", false)
}

// Mean reduces the tensor to the scalar mean of all elements.
// The result has shape [1].
func (b *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	return b.reduceAll(x, "mean", true)
}

func (b *Backend) reduceAll(x *tensor.RawTensor, opName string, mean bool) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("cpu %s: %v", opName, err))
	}

	n := x.NumElements()
	switch x.DType() {
	case tensor.Float32:
		// Accumulate in float64 so long reductions do not lose precision.
		var sum float64
		for _, v := range x.AsFloat32() {
			sum += float64(v)
		}
		if mean {
			sum /= float64(n)
		}
		result.AsFloat32()[0] = float32(sum)
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		if mean {
			sum /= float64(n)
		}
		result.AsFloat64()[0] = sum
	default:
		panic(fmt.Sprintf("cpu %s: unsupported dtype %s", opName, x.DType()))
	}
	return result
}
