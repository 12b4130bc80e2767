// Copyright 2025 Sprout ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for gradient-based optimizers.
package optim

import (
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/optim"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer[B tensor.Backend] = optim.Optimizer[B]

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[B tensor.Backend] = optim.SGD[B]

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	model := nn.NewLinear(784, 10, backend)
//	optimizer := optim.NewSGD(model.Parameters(), 0.003)
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], lr float64) *SGD[B] {
	return optim.NewSGD(params, lr)
}

// NewSGDWithMomentum creates a new SGD optimizer with momentum.
func NewSGDWithMomentum[B tensor.Backend](params []*nn.Parameter[B], lr, momentum float64) *SGD[B] {
	return optim.NewSGDWithMomentum(params, lr, momentum)
}
