// Copyright 2025 Sprout ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the public API for the pure-Go CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
package cpu

import (
	"github.com/sprout-ml/sprout/internal/backend/cpu"
)

// Backend is the CPU compute backend.
type Backend = cpu.Backend

// New creates a new CPU backend.
func New() *Backend {
	return cpu.New()
}
