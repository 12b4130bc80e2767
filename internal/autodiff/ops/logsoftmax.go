package ops

import (
	"fmt"
	"math"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// LogSoftmaxOp records y = log(softmax(x)) over the last dimension.
type LogSoftmaxOp struct {
	in, out *tensor.RawTensor
}

// NewLogSoftmax creates a LogSoftmaxOp from the forward pass operand and result.
func NewLogSoftmax(in, out *tensor.RawTensor) *LogSoftmaxOp {
	return &LogSoftmaxOp{in: in, out: out}
}

func (op *LogSoftmaxOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.in} }
func (op *LogSoftmaxOp) Output() *tensor.RawTensor   { return op.out }

// Backward for y = log_softmax(x):
//
//	dL/dx = dL/dy - softmax(x) * rowsum(dL/dy)
//
// softmax(x) is recovered as exp(y) from the stored output, so the
// numerically stabilized forward values are reused.
func (op *LogSoftmaxOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	result, err := tensor.NewRaw(op.in.Shape(), grad.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("logsoftmax backward: %v", err))
	}

	shape := op.in.Shape()
	cols := shape[len(shape)-1]
	rows := op.in.NumElements() / cols

	switch grad.DType() {
	case tensor.Float32:
		out, gd, rd := op.out.AsFloat32(), grad.AsFloat32(), result.AsFloat32()
		for r := 0; r < rows; r++ {
			base := r * cols
			var rowSum float64
			for c := 0; c < cols; c++ {
				rowSum += float64(gd[base+c])
			}
			for c := 0; c < cols; c++ {
				softmax := math.Exp(float64(out[base+c]))
				rd[base+c] = float32(float64(gd[base+c]) - softmax*rowSum)
			}
		}
	case tensor.Float64:
		out, gd, rd := op.out.AsFloat64(), grad.AsFloat64(), result.AsFloat64()
		for r := 0; r < rows; r++ {
			base := r * cols
			var rowSum float64
			for c := 0; c < cols; c++ {
				rowSum += gd[base+c]
			}
			for c := 0; c < cols; c++ {
				rd[base+c] = gd[base+c] - math.Exp(out[base+c])*rowSum
			}
		}
	default:
		panic(fmt.Sprintf("logsoftmax backward: unsupported dtype %s", grad.DType()))
	}
	return []*tensor.RawTensor{result}
}
