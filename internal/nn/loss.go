package nn

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// NLLBackend is implemented by backends that provide a fused negative
// log-likelihood loss, such as the autodiff backend.
type NLLBackend interface {
	NLLLoss(logProbs, targets *tensor.RawTensor) (*tensor.RawTensor, error)
}

// NLLLoss computes the negative log-likelihood loss over a batch:
//
//	loss = -mean_i(logProbs[i, targets[i]])
//
// Inputs are expected to be log-probabilities, typically from LogSoftmax.
type NLLLoss[B tensor.Backend] struct{}

// NewNLLLoss creates an NLLLoss module.
func NewNLLLoss[B tensor.Backend]() *NLLLoss[B] {
	return &NLLLoss[B]{}
}

// Forward computes the scalar loss for (batch, classes) log-probabilities
// and int32 class targets of length batch.
func (l *NLLLoss[B]) Forward(logProbs *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) (*tensor.Tensor[float32, B], error) {
	nb, ok := any(logProbs.Backend()).(NLLBackend)
	if !ok {
		return nil, fmt.Errorf("nn: backend %s does not implement NLLLoss", logProbs.Backend().Name())
	}

	out, err := nb.NLLLoss(logProbs.Raw(), targets.Raw())
	if err != nil {
		return nil, err
	}
	return tensor.New[float32](out, logProbs.Backend()), nil
}

// MSELoss computes the mean squared error between predictions and targets.
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates an MSELoss module.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward computes mean((pred - target)^2) as a scalar tensor.
func (l *MSELoss[B]) Forward(pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return pred.Sub(target).Pow(2).Mean()
}
