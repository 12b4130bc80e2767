// Copyright 2025 Sprout ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network building blocks:
// layers, activations, losses, metrics and parameter handling.
package nn

import (
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Accumulate routes gradients from a backward pass into parameters.
func Accumulate[B tensor.Backend](params []*Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	nn.Accumulate(params, grads)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(784, 128, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Sequential chains modules, feeding each module's output into the next.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container from the given modules.
//
// Example:
//
//	model := nn.NewSequential[*autodiff.Backend[*cpu.Backend]](
//	    nn.NewLinear(784, 128, backend),
//	    nn.NewReLU[*autodiff.Backend[*cpu.Backend]](),
//	    nn.NewLinear(128, 10, backend),
//	    nn.NewLogSoftmax[*autodiff.Backend[*cpu.Backend]](),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Activations

// ReLU applies the rectified linear unit max(0, x).
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// LogSoftmax applies a row-wise log-softmax over the last dimension.
type LogSoftmax[B tensor.Backend] = nn.LogSoftmax[B]

// NewLogSoftmax creates a LogSoftmax module.
func NewLogSoftmax[B tensor.Backend]() *LogSoftmax[B] {
	return nn.NewLogSoftmax[B]()
}

// Losses

// NLLLoss computes the negative log-likelihood loss over a batch.
type NLLLoss[B tensor.Backend] = nn.NLLLoss[B]

// NewNLLLoss creates an NLLLoss module. The backend must support gradient
// tracking (wrap it with autodiff.New).
func NewNLLLoss[B tensor.Backend]() *NLLLoss[B] {
	return nn.NewNLLLoss[B]()
}

// MSELoss computes the mean squared error between predictions and targets.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates an MSELoss module.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return nn.NewMSELoss[B]()
}

// Initialization

// XavierUniform fills t with Xavier/Glorot-uniform samples.
func XavierUniform[B tensor.Backend](t *tensor.Tensor[float32, B], fanIn, fanOut int) {
	nn.XavierUniform(t, fanIn, fanOut)
}

// Metrics

// Accuracy returns the fraction of rows whose highest-scoring class
// matches the target.
//
// Example:
//
//	acc := nn.Accuracy(output, targets)
//	fmt.Printf("Accuracy: %.2f%%\n", acc*100)
func Accuracy[B tensor.Backend](output *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) float64 {
	return nn.Accuracy(output, targets)
}
