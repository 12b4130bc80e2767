package cpu

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// Reshape returns a new tensor with the same data and a different shape.
// The element count must match.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("cpu reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}

	result, err := tensor.NewRaw(newShape, t.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("cpu reshape: %v", err))
	}
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the dimensions of a tensor.
// With no axes, all dimensions are reversed.
func (b *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(t.Shape())

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("cpu transpose: expected %d axes, got %d", ndim, len(axes)))
	}

	seen := make([]bool, ndim)
	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("cpu transpose: invalid axes %v for shape %v", axes, t.Shape()))
		}
		seen[ax] = true
		newShape[i] = t.Shape()[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("cpu transpose: %v", err))
	}

	srcStrides := t.Strides()
	dstStrides := newShape.ComputeStrides()
	total := t.NumElements()

	// For each output position, compute the matching source position by
	// permuting coordinates through axes.
	copyElem := elemCopier(t, result)
	coords := make([]int, ndim)
	for dst := 0; dst < total; dst++ {
		rem := dst
		for i, stride := range dstStrides {
			coords[i] = rem / stride
			rem %= stride
		}
		src := 0
		for i, ax := range axes {
			src += coords[i] * srcStrides[ax]
		}
		copyElem(dst, src)
	}
	return result
}

// elemCopier returns a function that copies element src of t into
// element dst of result, for the tensors' shared dtype.
func elemCopier(t, result *tensor.RawTensor) func(dst, src int) {
	switch t.DType() {
	case tensor.Float32:
		s, d := t.AsFloat32(), result.AsFloat32()
		return func(dst, src int) { d[dst] = s[src] }
	case tensor.Float64:
		s, d := t.AsFloat64(), result.AsFloat64()
		return func(dst, src int) { d[dst] = s[src] }
	case tensor.Int32:
		s, d := t.AsInt32(), result.AsInt32()
		return func(dst, src int) { d[dst] = s[src] }
	default:
		panic(fmt.Sprintf("cpu transpose: unsupported dtype %s", t.DType()))
	}
}
