// Package nn provides neural network building blocks: layers, activations,
// losses and parameter handling.
package nn

import "github.com/sprout-ml/sprout/internal/tensor"

// Module is a unit of a neural network that transforms a float32 tensor
// and exposes its trainable parameters.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the module's trainable parameters.
	// Modules without parameters return nil.
	Parameters() []*Parameter[B]
}
