package optim

import (
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// SGD implements stochastic gradient descent, optionally with momentum:
//
//	v = momentum*v + grad
//	param = param - lr*v
//
// With momentum zero this reduces to the plain update param -= lr*grad.
type SGD[B tensor.Backend] struct {
	params   parameters[B]
	lr       float64
	momentum float64

	// velocity buffers, allocated lazily per parameter
	velocities map[*nn.Parameter[B]][]float32
}

// NewSGD creates a plain SGD optimizer.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], lr float64) *SGD[B] {
	return NewSGDWithMomentum(params, lr, 0)
}

// NewSGDWithMomentum creates an SGD optimizer with momentum.
func NewSGDWithMomentum[B tensor.Backend](params []*nn.Parameter[B], lr, momentum float64) *SGD[B] {
	return &SGD[B]{
		params:     params,
		lr:         lr,
		momentum:   momentum,
		velocities: make(map[*nn.Parameter[B]][]float32),
	}
}

// Step applies one gradient descent update in place.
func (s *SGD[B]) Step() {
	for _, p := range s.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}

		data := p.Tensor().Data()
		gd := grad.AsFloat32()

		if s.momentum == 0 {
			for i := range data {
				data[i] -= float32(s.lr) * gd[i]
			}
			continue
		}

		v, ok := s.velocities[p]
		if !ok {
			v = make([]float32, len(data))
			s.velocities[p] = v
		}
		m := float32(s.momentum)
		lr := float32(s.lr)
		for i := range data {
			v[i] = m*v[i] + gd[i]
			data[i] -= lr * v[i]
		}
	}
}

// ZeroGrad clears the gradients of all managed parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, p := range s.params {
		p.ZeroGrad()
	}
}

// LR returns the learning rate.
func (s *SGD[B]) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate, for schedules driven by the caller.
func (s *SGD[B]) SetLR(lr float64) {
	s.lr = lr
}
