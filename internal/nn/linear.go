package nn

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/tensor"
)

// Linear is a fully connected layer computing y = x @ W^T + b.
//
// The weight has shape (outFeatures, inFeatures) and the bias
// shape (1, outFeatures) so it broadcasts over the batch dimension.
type Linear[B tensor.Backend] struct {
	weight *Parameter[B]
	bias   *Parameter[B]

	inFeatures  int
	outFeatures int
}

// NewLinear creates a linear layer with Xavier-initialized weights and
// zero bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	weight := tensor.Zeros[float32](tensor.Shape{outFeatures, inFeatures}, backend)
	XavierUniform(weight, inFeatures, outFeatures)

	bias := tensor.Zeros[float32](tensor.Shape{1, outFeatures}, backend)

	return &Linear[B]{
		weight:      NewParameter(fmt.Sprintf("linear_%dx%d.weight", outFeatures, inFeatures), weight),
		bias:        NewParameter(fmt.Sprintf("linear_%dx%d.bias", outFeatures, inFeatures), bias),
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
	}
}

// Forward computes x @ W^T + b for a (batch, inFeatures) input.
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.MatMul(l.weight.Tensor().T()).Add(l.bias.Tensor())
}

// Parameters returns the weight and bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] { return l.bias }
