package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ml/sprout/internal/autodiff"
	"github.com/sprout-ml/sprout/internal/backend/cpu"
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/tensor"
)

func TestLinearForwardShape(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(784, 128, backend)

	input := tensor.Randn[float32](tensor.Shape{64, 784}, backend)
	output := layer.Forward(input)

	assert.True(t, output.Shape().Equal(tensor.Shape{64, 128}),
		"output shape = %v, want [64 128]", output.Shape())
}

func TestLinearComputation(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(2, 2, backend)

	// Overwrite the random init with known values.
	// W = [1 2; 3 4], b = [10 20]
	copy(layer.Weight().Tensor().Data(), []float32{1, 2, 3, 4})
	copy(layer.Bias().Tensor().Data(), []float32{10, 20})

	input, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	// y = x @ W^T + b = [1+2, 3+4] + [10, 20] = [13, 27]
	output := layer.Forward(input)
	assert.InDelta(t, 13.0, float64(output.At(0, 0)), 1e-5)
	assert.InDelta(t, 27.0, float64(output.At(0, 1)), 1e-5)
}

func TestLinearXavierInit(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(100, 50, backend)

	// Xavier bound for fanIn=100, fanOut=50 is sqrt(6/150) ~ 0.2
	bound := 0.2001
	for _, v := range layer.Weight().Tensor().Data() {
		assert.LessOrEqual(t, float64(v), bound)
		assert.GreaterOrEqual(t, float64(v), -bound)
	}
	for _, v := range layer.Bias().Tensor().Data() {
		assert.Zero(t, v, "bias must initialize to zero")
	}
}

func TestSequentialChainsModules(t *testing.T) {
	backend := cpu.New()

	model := nn.NewSequential[*cpu.Backend](
		nn.NewLinear(4, 8, backend),
		nn.NewReLU[*cpu.Backend](),
		nn.NewLinear(8, 3, backend),
		nn.NewLogSoftmax[*cpu.Backend](),
	)

	input := tensor.Randn[float32](tensor.Shape{2, 4}, backend)
	output := model.Forward(input)

	assert.True(t, output.Shape().Equal(tensor.Shape{2, 3}))
	// Two linear layers contribute weight+bias each.
	assert.Len(t, model.Parameters(), 4)
}

func TestReLUModule(t *testing.T) {
	backend := cpu.New()

	input, err := tensor.FromSlice([]float32{-1, 0, 2}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	output := nn.NewReLU[*cpu.Backend]().Forward(input)
	assert.Equal(t, []float32{0, 0, 2}, output.Data())
}

func TestParameterAccumulateGrad(t *testing.T) {
	backend := cpu.New()

	value := tensor.Zeros[float32](tensor.Shape{2}, backend)
	p := nn.NewParameter("w", value)
	assert.Nil(t, p.Grad())

	g, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(g.AsFloat32(), []float32{1, 2})

	p.AccumulateGrad(g)
	assert.Equal(t, []float32{1, 2}, p.Grad().AsFloat32())

	// Accumulation without zeroing doubles the gradient.
	p.AccumulateGrad(g)
	assert.Equal(t, []float32{2, 4}, p.Grad().AsFloat32())

	// The parameter must own its gradient buffer.
	g.AsFloat32()[0] = 99
	assert.Equal(t, float32(2), p.Grad().AsFloat32()[0])

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestNLLLossRequiresAutodiffBackend(t *testing.T) {
	backend := cpu.New()

	logProbs := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	targets := tensor.Zeros[int32](tensor.Shape{2}, backend)

	_, err := nn.NewNLLLoss[*cpu.Backend]().Forward(logProbs, targets)
	assert.Error(t, err, "plain cpu backend has no NLLLoss")
}

func TestNLLLossValue(t *testing.T) {
	ad := autodiff.New(cpu.New())

	// Uniform log-probabilities over 4 classes: loss = -log(1/4) = log(4)
	logProbs := tensor.Full[float32](tensor.Shape{2, 4}, -1.3862944, ad)
	targets, err := tensor.FromSlice([]int32{0, 3}, tensor.Shape{2}, ad)
	require.NoError(t, err)

	loss, err := nn.NewNLLLoss[*autodiff.Backend[*cpu.Backend]]().Forward(logProbs, targets)
	require.NoError(t, err)
	assert.InDelta(t, 1.3862944, float64(loss.Item()), 1e-5)
}

func TestMSELoss(t *testing.T) {
	backend := cpu.New()

	pred, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	target, err := tensor.FromSlice([]float32{1, 2, 3, 6}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	loss := nn.NewMSELoss[*cpu.Backend]().Forward(pred, target)
	// Only one element differs by 2, so MSE = 4/4 = 1.
	assert.InDelta(t, 1.0, float64(loss.Item()), 1e-5)
}

func TestAccuracy(t *testing.T) {
	backend := cpu.New()

	output, err := tensor.FromSlice([]float32{
		0.1, 0.9, 0.0, // predicts 1
		0.8, 0.1, 0.1, // predicts 0
		0.2, 0.3, 0.5, // predicts 2
	}, tensor.Shape{3, 3}, backend)
	require.NoError(t, err)

	targets, err := tensor.FromSlice([]int32{1, 0, 1}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	assert.InDelta(t, 2.0/3.0, nn.Accuracy(output, targets), 1e-9)
}

func TestAccumulateRoutesGradients(t *testing.T) {
	ad := autodiff.New(cpu.New())

	layer := nn.NewLinear(3, 2, ad)
	input := tensor.Randn[float32](tensor.Shape{4, 3}, ad)

	loss := layer.Forward(input).Pow(2).Mean()
	grads, err := ad.Tape().Backward(loss.Raw(), ad)
	require.NoError(t, err)

	nn.Accumulate(layer.Parameters(), grads)
	for _, p := range layer.Parameters() {
		require.NotNil(t, p.Grad(), "parameter %s received no gradient", p.Name())
		assert.True(t, p.Grad().Shape().Equal(p.Tensor().Shape()),
			"gradient shape %v does not match parameter shape %v", p.Grad().Shape(), p.Tensor().Shape())
	}
}
