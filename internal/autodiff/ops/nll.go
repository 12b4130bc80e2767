package ops

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// NLLLossOp records the negative log-likelihood loss
//
//	loss = -mean_i(logProbs[i, targets[i]])
//
// over a batch of log-probability rows. Targets are class indices and do
// not receive gradients.
type NLLLossOp struct {
	logProbs *tensor.RawTensor
	targets  *tensor.RawTensor
	out      *tensor.RawTensor
}

// NewNLLLoss creates an NLLLossOp from the forward pass operands and result.
func NewNLLLoss(logProbs, targets, out *tensor.RawTensor) *NLLLossOp {
	return &NLLLossOp{logProbs: logProbs, targets: targets, out: out}
}

func (op *NLLLossOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.logProbs} }
func (op *NLLLossOp) Output() *tensor.RawTensor   { return op.out }

// Backward: the loss touches one log-probability per row, so the gradient
// is -g/batch at each row's target column and zero elsewhere.
func (op *NLLLossOp) Backward(grad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	result, err := tensor.NewRaw(op.logProbs.Shape(), op.logProbs.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("nll backward: %v", err))
	}

	batch := op.logProbs.Shape()[0]
	cols := op.logProbs.Shape()[1]
	targets := op.targets.AsInt32()
	scale := -scalarValue(grad) / float64(batch)

	switch op.logProbs.DType() {
	case tensor.Float32:
		rd := result.AsFloat32()
		for i := 0; i < batch; i++ {
			rd[i*cols+int(targets[i])] = float32(scale)
		}
	case tensor.Float64:
		rd := result.AsFloat64()
		for i := 0; i < batch; i++ {
			rd[i*cols+int(targets[i])] = scale
		}
	default:
		panic(fmt.Sprintf("nll backward: unsupported dtype %s", op.logProbs.DType()))
	}
	return []*tensor.RawTensor{result}
}

// NLLForward computes the negative log-likelihood loss as a scalar tensor
// of shape [1].
//
// logProbs must be a 2D (batch, classes) tensor of log-probabilities,
// targets a 1D int32 tensor of class indices with length batch.
func NLLForward(logProbs, targets *tensor.RawTensor, device tensor.Device) (*tensor.RawTensor, error) {
	if len(logProbs.Shape()) != 2 {
		return nil, fmt.Errorf("nll: logProbs must be 2D, got %v", logProbs.Shape())
	}
	if targets.DType() != tensor.Int32 {
		return nil, fmt.Errorf("nll: targets must be int32, got %s", targets.DType())
	}

	batch := logProbs.Shape()[0]
	cols := logProbs.Shape()[1]
	if targets.NumElements() != batch {
		return nil, fmt.Errorf("nll: %d targets for batch of %d", targets.NumElements(), batch)
	}

	idx := targets.AsInt32()
	var sum float64
	switch logProbs.DType() {
	case tensor.Float32:
		lp := logProbs.AsFloat32()
		for i := 0; i < batch; i++ {
			c := int(idx[i])
			if c < 0 || c >= cols {
				return nil, fmt.Errorf("nll: target %d out of range [0, %d) at row %d", c, cols, i)
			}
			sum += float64(lp[i*cols+c])
		}
	case tensor.Float64:
		lp := logProbs.AsFloat64()
		for i := 0; i < batch; i++ {
			c := int(idx[i])
			if c < 0 || c >= cols {
				return nil, fmt.Errorf("nll: target %d out of range [0, %d) at row %d", c, cols, i)
			}
			sum += lp[i*cols+c]
		}
	default:
		return nil, fmt.Errorf("nll: unsupported dtype %s", logProbs.DType())
	}

	out, err := tensor.NewRaw(tensor.Shape{1}, logProbs.DType(), device)
	if err != nil {
		return nil, err
	}
	loss := -sum / float64(batch)
	switch logProbs.DType() {
	case tensor.Float32:
		out.AsFloat32()[0] = float32(loss)
	case tensor.Float64:
		out.AsFloat64()[0] = loss
	}
	return out, nil
}
