package cpu

import (
	"fmt"
	"math"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
func (b *Backend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unaryFloat(x, "relu", func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// LogSoftmax computes the row-wise log-softmax over the last dimension.
//
// Uses the log-sum-exp trick: shifting each row by its maximum before
// exponentiating keeps the computation finite for large logits.
func (b *Backend) LogSoftmax(x *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) < 1 {
		panic("cpu logsoftmax: tensor must have at least one dimension")
	}

	result, err := tensor.NewRaw(shape, x.DType(), b.Device())
	if err != nil {
		panic(fmt.Sprintf("cpu logsoftmax: %v", err))
	}

	cols := shape[len(shape)-1]
	rows := x.NumElements() / cols

	switch x.DType() {
	case tensor.Float32:
		xd, rd := x.AsFloat32(), result.AsFloat32()
		for r := 0; r < rows; r++ {
			logSoftmaxRowF32(xd[r*cols:(r+1)*cols], rd[r*cols:(r+1)*cols])
		}
	case tensor.Float64:
		xd, rd := x.AsFloat64(), result.AsFloat64()
		for r := 0; r < rows; r++ {
			logSoftmaxRowF64(xd[r*cols:(r+1)*cols], rd[r*cols:(r+1)*cols])
		}
	default:
		panic(fmt.Sprintf("cpu logsoftmax: unsupported dtype %s", x.DType()))
	}
	return result
}

func logSoftmaxRowF32(in, out []float32) {
	maxVal := in[0]
	for _, v := range in[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	var sum float64
	for _, v := range in {
		sum += math.Exp(float64(v - maxVal))
	}
	lse := float64(maxVal) + math.Log(sum)
	for i, v := range in {
		out[i] = float32(float64(v) - lse)
	}
}

func logSoftmaxRowF64(in, out []float64) {
	maxVal := in[0]
	for _, v := range in[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	var sum float64
	for _, v := range in {
		sum += math.Exp(v - maxVal)
	}
	lse := maxVal + math.Log(sum)
	for i, v := range in {
		out[i] = v - lse
	}
}
