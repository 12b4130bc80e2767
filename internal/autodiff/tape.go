// Package autodiff implements tape-based reverse-mode automatic
// differentiation.
//
// The Backend decorator wraps any compute backend and records every
// operation it executes onto a GradientTape. Calling Backward on the tape
// walks the recorded operations in reverse and accumulates gradients for
// every tensor that contributed to the result.
package autodiff

import (
	"fmt"

	"github.com/sprout-ml/sprout/internal/autodiff/ops"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Gradients maps each tensor in the computation graph to its accumulated
// gradient. Keys are RawTensor pointers, so graph identity is preserved
// even for tensors holding equal values.
type Gradients map[*tensor.RawTensor]*tensor.RawTensor

// GradientTape records operations executed during the forward pass.
//
// A tape is not safe for concurrent use.
type GradientTape struct {
	operations []ops.Operation
	recording  bool
}

// NewTape creates an empty tape with recording enabled.
func NewTape() *GradientTape {
	return &GradientTape{recording: true}
}

// Record appends an operation to the tape. No-op when recording is off.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// IsRecording reports whether the tape currently records operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// StopRecording turns recording off and returns a function that restores
// the previous state. Intended for inference sections:
//
//	restore := tape.StopRecording()
//	defer restore()
func (t *GradientTape) StopRecording() func() {
	prev := t.recording
	t.recording = false
	return func() { t.recording = prev }
}

// StartRecording turns recording on.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// Clear discards all recorded operations. Call between training steps so
// the graph does not grow across batches.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOperations returns the number of recorded operations.
func (t *GradientTape) NumOperations() int {
	return len(t.operations)
}

// Backward computes gradients of a scalar root with respect to every
// tensor that participated in its computation.
//
// The root must be a single-element tensor produced by a recorded
// operation; use BackwardWithGrad to seed a non-scalar root.
func (t *GradientTape) Backward(root *tensor.RawTensor, backend tensor.Backend) (Gradients, error) {
	if root.NumElements() != 1 {
		return nil, fmt.Errorf("autodiff: backward root has %d elements, seed a gradient explicitly for non-scalar roots", root.NumElements())
	}

	seed, err := tensor.NewRaw(root.Shape(), root.DType(), backend.Device())
	if err != nil {
		return nil, err
	}
	switch root.DType() {
	case tensor.Float32:
		seed.AsFloat32()[0] = 1
	case tensor.Float64:
		seed.AsFloat64()[0] = 1
	default:
		return nil, fmt.Errorf("autodiff: cannot differentiate %s tensor", root.DType())
	}

	return t.BackwardWithGrad(root, seed, backend)
}

// BackwardWithGrad computes gradients with an explicit seed gradient for
// the root. The seed must match the root's shape.
func (t *GradientTape) BackwardWithGrad(root, seed *tensor.RawTensor, backend tensor.Backend) (Gradients, error) {
	if len(t.operations) == 0 {
		return nil, fmt.Errorf("autodiff: tape is empty, was recording enabled during the forward pass?")
	}
	if !seed.Shape().Equal(root.Shape()) {
		return nil, fmt.Errorf("autodiff: seed shape %v does not match root shape %v", seed.Shape(), root.Shape())
	}

	produced := false
	for _, op := range t.operations {
		if op.Output() == root {
			produced = true
			break
		}
	}
	if !produced {
		return nil, fmt.Errorf("autodiff: tensor is not an output of any recorded operation")
	}

	grads := make(Gradients)
	grads[root] = seed

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outGrad, ok := grads[op.Output()]
		if !ok {
			continue // operation did not contribute to the root
		}

		inputGrads := op.Backward(outGrad, backend)
		for j, input := range op.Inputs() {
			g := inputGrads[j]
			if g == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				// A tensor used by several operations accumulates
				// gradients by summation.
				grads[input] = backend.Add(existing, g)
			} else {
				grads[input] = g
			}
		}
	}

	return grads, nil
}
