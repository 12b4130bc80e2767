package nn

import "github.com/sprout-ml/sprout/internal/tensor"

// Sequential chains modules, feeding each module's output into the next.
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a sequential container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// Forward passes the input through every module in order.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters returns the parameters of all contained modules.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Add appends a module to the chain.
func (s *Sequential[B]) Add(m Module[B]) {
	s.modules = append(s.modules, m)
}

// Len returns the number of contained modules.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}
