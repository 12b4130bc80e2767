package nn

import "github.com/sprout-ml/sprout/internal/tensor"

// Parameter is a trainable tensor with an attached gradient slot.
//
// Gradients are written by AccumulateGrad after a backward pass and
// consumed by optimizers; they are not part of the computation graph.
type Parameter[B tensor.Backend] struct {
	name  string
	value *tensor.Tensor[float32, B]
	grad  *tensor.RawTensor
}

// NewParameter wraps a tensor as a named trainable parameter.
func NewParameter[B tensor.Backend](name string, value *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, value: value}
}

// Name returns the parameter's name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter's value tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.value
}

// Grad returns the accumulated gradient, or nil if none has been set
// since the last ZeroGrad.
func (p *Parameter[B]) Grad() *tensor.RawTensor {
	return p.grad
}

// AccumulateGrad adds g to the parameter's gradient, allocating it on
// first use. Repeated backward passes without ZeroGrad therefore sum
// their gradients.
func (p *Parameter[B]) AccumulateGrad(g *tensor.RawTensor) {
	if p.grad == nil {
		p.grad = g.Clone()
		return
	}
	dst := p.grad.AsFloat32()
	src := g.AsFloat32()
	for i := range dst {
		dst[i] += src[i]
	}
}

// ZeroGrad clears the gradient.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}

// Accumulate routes gradients from a backward pass into parameters.
// Parameters whose tensor did not participate in the graph are skipped.
func Accumulate[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, p := range params {
		if g, ok := grads[p.value.Raw()]; ok {
			p.AccumulateGrad(g)
		}
	}
}
