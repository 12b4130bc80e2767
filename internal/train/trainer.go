// Package train drives the optimization loop: batching, forward and
// backward passes, parameter updates and evaluation.
package train

import (
	"fmt"
	"io"

	"github.com/sprout-ml/sprout/internal/autodiff"
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/optim"
	"github.com/sprout-ml/sprout/internal/tensor"
)

// Batch is one training example group: a (batch, features) float32 input
// and a per-example int32 class label vector.
type Batch[B tensor.Backend] struct {
	Inputs *tensor.Tensor[float32, B]
	Labels *tensor.Tensor[int32, B]
}

// Trainer runs epochs of NLL-loss training over a model using an
// autodiff-wrapped backend.
type Trainer[B tensor.Backend] struct {
	model     nn.Module[*autodiff.Backend[B]]
	loss      *nn.NLLLoss[*autodiff.Backend[B]]
	optimizer optim.Optimizer[*autodiff.Backend[B]]
	backend   *autodiff.Backend[B]

	// progress receives one line per epoch; nil disables reporting
	progress io.Writer
}

// New creates a trainer for the given model, optimizer and backend.
func New[B tensor.Backend](
	model nn.Module[*autodiff.Backend[B]],
	optimizer optim.Optimizer[*autodiff.Backend[B]],
	backend *autodiff.Backend[B],
	progress io.Writer,
) *Trainer[B] {
	return &Trainer[B]{
		model:     model,
		loss:      nn.NewNLLLoss[*autodiff.Backend[B]](),
		optimizer: optimizer,
		backend:   backend,
		progress:  progress,
	}
}

// TrainStep runs one batch through the model and applies one optimizer
// update. Returns the batch loss.
func (t *Trainer[B]) TrainStep(batch Batch[*autodiff.Backend[B]]) (float64, error) {
	t.optimizer.ZeroGrad()
	t.backend.Tape().Clear()

	output := t.model.Forward(batch.Inputs)
	loss, err := t.loss.Forward(output, batch.Labels)
	if err != nil {
		return 0, fmt.Errorf("train: %w", err)
	}

	grads, err := t.backend.Tape().Backward(loss.Raw(), t.backend)
	if err != nil {
		return 0, fmt.Errorf("train: %w", err)
	}

	nn.Accumulate(t.model.Parameters(), grads)
	t.optimizer.Step()

	// Release the graph so memory does not grow across batches.
	t.backend.Tape().Clear()

	return float64(loss.Item()), nil
}

// TrainEpoch runs every batch once and returns the mean batch loss.
func (t *Trainer[B]) TrainEpoch(batches []Batch[*autodiff.Backend[B]]) (float64, error) {
	if len(batches) == 0 {
		return 0, fmt.Errorf("train: no batches")
	}

	var total float64
	for i, batch := range batches {
		loss, err := t.TrainStep(batch)
		if err != nil {
			return 0, fmt.Errorf("batch %d: %w", i, err)
		}
		total += loss
	}
	return total / float64(len(batches)), nil
}

// Fit trains for the given number of epochs, reporting the mean loss of
// each epoch.
func (t *Trainer[B]) Fit(batches []Batch[*autodiff.Backend[B]], epochs int) error {
	for epoch := 1; epoch <= epochs; epoch++ {
		loss, err := t.TrainEpoch(batches)
		if err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		if t.progress != nil {
			fmt.Fprintf(t.progress, "epoch %d/%d: loss=%.4f\n", epoch, epochs, loss)
		}
	}
	return nil
}

// Result holds evaluation metrics over a dataset.
type Result struct {
	Loss     float64
	Accuracy float64
}

// Evaluate computes loss and accuracy without recording gradients.
func (t *Trainer[B]) Evaluate(batches []Batch[*autodiff.Backend[B]]) (Result, error) {
	if len(batches) == 0 {
		return Result{}, fmt.Errorf("train: no batches")
	}

	restore := t.backend.Tape().StopRecording()
	defer restore()

	var totalLoss, totalAcc float64
	for i, batch := range batches {
		output := t.model.Forward(batch.Inputs)
		loss, err := t.loss.Forward(output, batch.Labels)
		if err != nil {
			return Result{}, fmt.Errorf("batch %d: %w", i, err)
		}
		totalLoss += float64(loss.Item())
		totalAcc += nn.Accuracy(output, batch.Labels)
	}

	n := float64(len(batches))
	return Result{Loss: totalLoss / n, Accuracy: totalAcc / n}, nil
}

// Predict runs inference without recording gradients and returns
// per-class probabilities. Rows sum to 1 since the model's log-softmax
// output is exponentiated.
func (t *Trainer[B]) Predict(inputs *tensor.Tensor[float32, *autodiff.Backend[B]]) *tensor.Tensor[float32, *autodiff.Backend[B]] {
	restore := t.backend.Tape().StopRecording()
	defer restore()

	return t.model.Forward(inputs).Exp()
}
