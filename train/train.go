// Copyright 2025 Sprout ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for the training loop.
package train

import (
	"io"

	"github.com/sprout-ml/sprout/internal/autodiff"
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/optim"
	"github.com/sprout-ml/sprout/internal/tensor"
	"github.com/sprout-ml/sprout/internal/train"
)

// Batch is one training example group: inputs and int32 class labels.
type Batch[B tensor.Backend] = train.Batch[B]

// Trainer runs epochs of NLL-loss training over a model. It also exposes
// gradient-free Evaluate and Predict passes.
type Trainer[B tensor.Backend] = train.Trainer[B]

// Result holds evaluation metrics over a dataset.
type Result = train.Result

// New creates a trainer. Pass a nil progress writer to disable per-epoch
// reporting.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model := ... // an nn.Module over the autodiff backend
//	sgd := optim.NewSGD(model.Parameters(), 0.003)
//	trainer := train.New[*cpu.Backend](model, sgd, backend, os.Stdout)
func New[B tensor.Backend](
	model nn.Module[*autodiff.Backend[B]],
	optimizer optim.Optimizer[*autodiff.Backend[B]],
	backend *autodiff.Backend[B],
	progress io.Writer,
) *Trainer[B] {
	return train.New(model, optimizer, backend, progress)
}
