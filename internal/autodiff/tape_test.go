package autodiff

import (
	"testing"

	"github.com/sprout-ml/sprout/internal/backend/cpu"
	"github.com/sprout-ml/sprout/internal/tensor"
)

func rawFromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func TestTapeRecordsOperations(t *testing.T) {
	ad := New(cpu.New())

	x := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2})
	y := rawFromSlice(t, []float32{3, 4}, tensor.Shape{2})

	ad.Add(x, y)
	ad.Mul(x, y)

	if got := ad.Tape().NumOperations(); got != 2 {
		t.Errorf("NumOperations() = %d, want 2", got)
	}
}

func TestTapeClear(t *testing.T) {
	ad := New(cpu.New())

	x := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2})
	ad.Add(x, x)

	ad.Tape().Clear()
	if got := ad.Tape().NumOperations(); got != 0 {
		t.Errorf("NumOperations() after Clear = %d, want 0", got)
	}
}

func TestStopRecording(t *testing.T) {
	ad := New(cpu.New())
	x := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2})

	restore := ad.Tape().StopRecording()
	ad.Add(x, x)
	if got := ad.Tape().NumOperations(); got != 0 {
		t.Errorf("recorded %d operations while recording was off", got)
	}
	if ad.Tape().IsRecording() {
		t.Error("IsRecording() = true after StopRecording")
	}

	restore()
	if !ad.Tape().IsRecording() {
		t.Error("IsRecording() = false after restore")
	}
	ad.Add(x, x)
	if got := ad.Tape().NumOperations(); got != 1 {
		t.Errorf("NumOperations() = %d, want 1", got)
	}
}

func TestBackwardEmptyTape(t *testing.T) {
	ad := New(cpu.New())
	x := rawFromSlice(t, []float32{1}, tensor.Shape{1})

	if _, err := ad.Tape().Backward(x, ad); err == nil {
		t.Error("expected error for backward on an empty tape")
	}
}

func TestBackwardDisabledTracking(t *testing.T) {
	ad := New(cpu.New())

	x := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	ad.Add(x, x) // keep the tape non-empty

	restore := ad.Tape().StopRecording()
	defer restore()
	loss := ad.Mean(ad.Pow(x, 2))

	// The loss was computed while recording was off, so it is not an
	// output of any recorded operation.
	if _, err := ad.Tape().Backward(loss, ad); err == nil {
		t.Error("expected error for backward on an untracked tensor")
	}
}

func TestBackwardNonScalarWithoutSeed(t *testing.T) {
	ad := New(cpu.New())

	x := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y := ad.Pow(x, 2)

	if _, err := ad.Tape().Backward(y, ad); err == nil {
		t.Error("expected error for non-scalar backward without a seed")
	}
}

func TestBackwardWithGradSeedShapeMismatch(t *testing.T) {
	ad := New(cpu.New())

	x := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y := ad.Pow(x, 2)
	seed := rawFromSlice(t, []float32{1, 1}, tensor.Shape{2})

	if _, err := ad.Tape().BackwardWithGrad(y, seed, ad); err == nil {
		t.Error("expected error for mismatched seed shape")
	}
}

func TestBackwardWithGradNonScalar(t *testing.T) {
	ad := New(cpu.New())

	x := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y := ad.Pow(x, 2)
	seed := rawFromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2})

	grads, err := ad.Tape().BackwardWithGrad(y, seed, ad)
	if err != nil {
		t.Fatalf("BackwardWithGrad: %v", err)
	}

	// d(x^2)/dx = 2x
	want := []float32{2, 4, 6, 8}
	got := grads[x].AsFloat32()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("grad[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGradientAccumulationOnSharedInput(t *testing.T) {
	ad := New(cpu.New())

	// y = x*x + x*x uses x in three operations; gradients must sum.
	x := rawFromSlice(t, []float32{3}, tensor.Shape{1})
	a := ad.Mul(x, x)
	b := ad.Mul(x, x)
	y := ad.Add(a, b)

	grads, err := ad.Tape().Backward(y, ad)
	if err != nil {
		t.Fatalf("Backward: %v", err)
	}

	// d(2x^2)/dx = 4x = 12
	if got := grads[x].AsFloat32()[0]; got != 12 {
		t.Errorf("grad = %v, want 12", got)
	}
}
