package nn

import "github.com/sprout-ml/sprout/internal/tensor"

// ReLU applies the rectified linear unit max(0, x).
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies the rectifier element-wise.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := input.Backend().ReLU(input.Raw())
	return tensor.New[float32](out, input.Backend())
}

// Parameters returns nil; ReLU has no trainable parameters.
func (r *ReLU[B]) Parameters() []*Parameter[B] { return nil }

// LogSoftmax applies a row-wise log-softmax over the last dimension,
// turning logits into log-probabilities.
type LogSoftmax[B tensor.Backend] struct{}

// NewLogSoftmax creates a LogSoftmax module.
func NewLogSoftmax[B tensor.Backend]() *LogSoftmax[B] {
	return &LogSoftmax[B]{}
}

// Forward converts logits to log-probabilities.
func (l *LogSoftmax[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := input.Backend().LogSoftmax(input.Raw())
	return tensor.New[float32](out, input.Backend())
}

// Parameters returns nil; LogSoftmax has no trainable parameters.
func (l *LogSoftmax[B]) Parameters() []*Parameter[B] { return nil }
