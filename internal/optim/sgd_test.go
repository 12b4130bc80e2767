package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ml/sprout/internal/backend/cpu"
	"github.com/sprout-ml/sprout/internal/nn"
	"github.com/sprout-ml/sprout/internal/optim"
	"github.com/sprout-ml/sprout/internal/tensor"
)

func paramWithGrad(t *testing.T, values, grads []float32) *nn.Parameter[*cpu.Backend] {
	t.Helper()
	backend := cpu.New()

	value, err := tensor.FromSlice(values, tensor.Shape{len(values)}, backend)
	require.NoError(t, err)
	p := nn.NewParameter("p", value)

	g, err := tensor.NewRaw(tensor.Shape{len(grads)}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(g.AsFloat32(), grads)
	p.AccumulateGrad(g)

	return p
}

func TestSGDStep(t *testing.T) {
	p := paramWithGrad(t, []float32{1, 2, 3}, []float32{10, 20, 30})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 0.1)
	sgd.Step()

	// param -= lr * grad
	assert.InDeltaSlice(t, []float32{0, 0, 0}, p.Tensor().Data(), 1e-6)
}

func TestSGDStepSkipsNilGrad(t *testing.T) {
	backend := cpu.New()
	value, err := tensor.FromSlice([]float32{5}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	p := nn.NewParameter("p", value)

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 0.1)
	sgd.Step()

	assert.Equal(t, float32(5), p.Tensor().Data()[0], "parameter without gradient must not move")
}

func TestSGDZeroGrad(t *testing.T) {
	p := paramWithGrad(t, []float32{1}, []float32{1})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 0.1)
	require.NotNil(t, p.Grad())

	sgd.ZeroGrad()
	assert.Nil(t, p.Grad())
}

func TestSGDStepWithoutZeroAccumulates(t *testing.T) {
	p := paramWithGrad(t, []float32{1}, []float32{1})

	sgd := optim.NewSGD([]*nn.Parameter[*cpu.Backend]{p}, 0.5)
	sgd.Step()
	assert.InDelta(t, 0.5, float64(p.Tensor().Data()[0]), 1e-6)

	// Grad is still set; a second step applies it again.
	sgd.Step()
	assert.InDelta(t, 0.0, float64(p.Tensor().Data()[0]), 1e-6)
}

func TestSGDMomentum(t *testing.T) {
	p := paramWithGrad(t, []float32{0}, []float32{1})

	sgd := optim.NewSGDWithMomentum([]*nn.Parameter[*cpu.Backend]{p}, 1.0, 0.9)

	// Step 1: v = 1, param = -1
	sgd.Step()
	assert.InDelta(t, -1.0, float64(p.Tensor().Data()[0]), 1e-6)

	// Step 2 with the same grad: v = 0.9*1 + 1 = 1.9, param = -2.9
	sgd.Step()
	assert.InDelta(t, -2.9, float64(p.Tensor().Data()[0]), 1e-6)
}

func TestSGDLearningRate(t *testing.T) {
	sgd := optim.NewSGD[*cpu.Backend](nil, 0.003)
	assert.InDelta(t, 0.003, sgd.LR(), 1e-12)

	sgd.SetLR(0.001)
	assert.InDelta(t, 0.001, sgd.LR(), 1e-12)
}
