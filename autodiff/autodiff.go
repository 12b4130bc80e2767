// Copyright 2025 Sprout ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation
// (backpropagation) using a gradient tape. It wraps any backend to add
// gradient tracking.
//
// Example:
//
//	import (
//	    "github.com/sprout-ml/sprout/autodiff"
//	    "github.com/sprout-ml/sprout/backend/cpu"
//	    "github.com/sprout-ml/sprout/tensor"
//	)
//
//	func main() {
//	    // Wrap CPU backend with autodiff
//	    base := cpu.New()
//	    backend := autodiff.New(base)
//
//	    // Operations are recorded on the tape
//	    x := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
//	    loss := x.Pow(2).Mean()
//
//	    // Compute gradients
//	    grads, err := backend.Tape().Backward(loss.Raw(), backend)
//	    _ = err
//	    _ = grads
//	}
package autodiff

import (
	"github.com/sprout-ml/sprout/internal/autodiff"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// New creates a new autodiff backend wrapping the given backend.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// Gradients maps each tensor in the computation graph to its gradient.
type Gradients = autodiff.Gradients

// NewTape creates a new gradient tape with recording enabled.
func NewTape() *GradientTape {
	return autodiff.NewTape()
}
