// Package optim provides gradient-based parameter optimizers.
package optim

import (
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Optimizer updates parameters from their accumulated gradients.
//
// Step and ZeroGrad are deliberately separate: callers control when
// gradients are applied and when they are cleared, which makes gradient
// accumulation over several batches possible.
type Optimizer[B tensor.Backend] interface {
	// Step applies one update using each parameter's current gradient.
	// Parameters without a gradient are skipped.
	Step()

	// ZeroGrad clears the gradients of all managed parameters.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64
}

// compile-time interface checks
var _ Optimizer[tensor.Backend] = (*SGD[tensor.Backend])(nil)

// parameters is a shared helper type alias used across optimizers.
type parameters[B tensor.Backend] = []*nn.Parameter[B]
