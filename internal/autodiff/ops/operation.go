// Package ops defines the differentiable operations recorded on the
// gradient tape. Each operation keeps pointers to its input and output
// tensors and knows how to turn the gradient of its output into gradients
// of its inputs.
package ops

import "github.com/sprout-ml/sprout/internal/tensor"

// Operation is a single recorded step of the forward computation.
//
// Backward receives the gradient of the loss with respect to the
// operation's output and returns the gradients with respect to each input,
// in the same order as Inputs(). A nil entry means the input receives no
// gradient from this operation.
type Operation interface {
	// Inputs returns the input tensors (identity matters for the tape).
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by the forward pass.
	Output() *tensor.RawTensor

	// Backward computes input gradients from the output gradient.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}
