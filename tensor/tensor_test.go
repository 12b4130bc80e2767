// Copyright 2025 Sprout ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/sprout-ml/sprout/autodiff"
	"github.com/sprout-ml/sprout/backend/cpu"
	"github.com/sprout-ml/sprout/tensor"
)

// TestBackendInterface verifies the public backends implement tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
	var _ tensor.Backend = (*autodiff.Backend[*cpu.Backend])(nil)
}

// TestPublicAPI exercises the facade end to end: creation, arithmetic,
// matmul and reduction through the re-exported types.
func TestPublicAPI(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	y := tensor.Ones[float32](tensor.Shape{2, 2}, backend)
	sum := x.Add(y)
	if got := sum.At(1, 1); got != 5 {
		t.Errorf("Add At(1,1) = %v, want 5", got)
	}

	prod := x.MatMul(y)
	// Each output element is a row sum of x.
	if got := prod.At(0, 0); got != 3 {
		t.Errorf("MatMul At(0,0) = %v, want 3", got)
	}

	mean := x.Mean()
	if got := mean.Item(); got != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got)
	}
}

// TestAutodiffThroughFacade verifies gradients flow through the public
// packages.
func TestAutodiffThroughFacade(t *testing.T) {
	backend := autodiff.New(cpu.New())

	x := tensor.Full[float32](tensor.Shape{2, 2}, 3, backend)
	loss := x.Pow(2).Mean()

	grads, err := backend.Tape().Backward(loss.Raw(), backend)
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}

	// d(mean(x^2))/dx = 2x/4 = 1.5 everywhere
	for i, v := range grads[x.Raw()].AsFloat32() {
		if v != 1.5 {
			t.Errorf("grad[%d] = %v, want 1.5", i, v)
		}
	}
}
