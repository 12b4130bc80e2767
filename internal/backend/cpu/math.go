package cpu

import (
	"fmt"
	"math"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// Exp computes the element-wise exponential.
func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unaryFloat(x, "exp", math.Exp)
}

// Pow computes the element-wise power x^exponent.
func (b *Backend) Pow(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	return b.unaryFloat(x, "pow", func(v float64) float64 {
		return math.Pow(v, exponent)
	})
}

// MulScalar multiplies every element by a scalar.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return b.unaryFloat(x, "mulscalar", func(v float64) float64 {
		return v * scalar
	})
}

// AddScalar adds a scalar to every element.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return b.unaryFloat(x, "addscalar", func(v float64) float64 {
		return v + scalar
	})
}

// unaryFloat applies an element-wise function to a float tensor.
func (b *Backend) unaryFloat(x *tensor.RawTensor, opName string, f func(float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("cpu %s: %v", opName, err))
	}

	switch x.DType() {
	case tensor.Float32:
		xd, rd := x.AsFloat32(), result.AsFloat32()
		for i := range rd {
			rd[i] = float32(f(float64(xd[i])))
		}
	case tensor.Float64:
		xd, rd := x.AsFloat64(), result.AsFloat64()
		for i := range rd {
			rd[i] = f(xd[i])
		}
	default:
		panic(fmt.Sprintf("cpu %s: unsupported dtype %s", opName, x.DType()))
	}
	return result
}
