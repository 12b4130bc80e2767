package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// The float64 path delegates to gonum's mat.Dense, which uses a blocked
// implementation. float32 uses a cache-friendly ikj loop.
func (b *Backend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	if len(x.Shape()) != 2 || len(y.Shape()) != 2 {
		panic(fmt.Sprintf("cpu matmul: expected 2D tensors, got %v and %v", x.Shape(), y.Shape()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("cpu matmul: dtype mismatch %s vs %s", x.DType(), y.DType()))
	}

	m, k := x.Shape()[0], x.Shape()[1]
	k2, n := y.Shape()[0], y.Shape()[1]
	if k != k2 {
		panic(fmt.Sprintf("cpu matmul: inner dimensions mismatch, %v @ %v", x.Shape(), y.Shape()))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, x.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("cpu matmul: %v", err))
	}

	switch x.DType() {
	case tensor.Float64:
		a := mat.NewDense(m, k, x.AsFloat64())
		bm := mat.NewDense(k, n, y.AsFloat64())
		c := mat.NewDense(m, n, result.AsFloat64())
		c.Mul(a, bm)
	case tensor.Float32:
		matmulF32(x.AsFloat32(), y.AsFloat32(), result.AsFloat32(), m, k, n)
	default:
		panic(fmt.Sprintf("cpu matmul: unsupported dtype %s", x.DType()))
	}

	return result
}

// matmulF32 computes c = a @ b using ikj loop ordering so the inner loop
// walks both b and c sequentially.
func matmulF32(a, b, c []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for kk := 0; kk < k; kk++ {
			aVal := a[i*k+kk]
			if aVal == 0 {
				continue
			}
			bRow := b[kk*n : kk*n+n]
			cRow := c[i*n : i*n+n]
			for j := range bRow {
				cRow[j] += aVal * bRow[j]
			}
		}
	}
}
