package cpu

import (
	"math"
	"testing"

	"github.com/sprout-ml/sprout/internal/tensor"
)

const epsilon = 1e-5

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func fromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func TestAdd(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y := fromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	got := b.Add(x, y).AsFloat32()
	want := []float32{11, 22, 33, 44}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("Add[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAddBroadcast(t *testing.T) {
	b := New()

	// Row vector broadcast over a matrix, the bias-add pattern.
	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := fromSlice(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	got := b.Add(x, bias)
	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	want := []float32{11, 22, 33, 14, 25, 36}
	for i, w := range want {
		if !almostEqual(got.AsFloat32()[i], w) {
			t.Errorf("Add[%d] = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestAddDoesNotMutateInputs(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{1, 2}, tensor.Shape{2})
	y := fromSlice(t, []float32{3, 4}, tensor.Shape{2})
	result := b.Add(x, y)

	if result == x || result == y {
		t.Fatal("Add returned an input tensor instead of a fresh result")
	}
	if x.AsFloat32()[0] != 1 || y.AsFloat32()[0] != 3 {
		t.Error("Add mutated an input tensor")
	}
}

func TestSubMulDiv(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{6, 8}, tensor.Shape{2})
	y := fromSlice(t, []float32{2, 4}, tensor.Shape{2})

	if got := b.Sub(x, y).AsFloat32(); got[0] != 4 || got[1] != 4 {
		t.Errorf("Sub = %v, want [4 4]", got)
	}
	if got := b.Mul(x, y).AsFloat32(); got[0] != 12 || got[1] != 32 {
		t.Errorf("Mul = %v, want [12 32]", got)
	}
	if got := b.Div(x, y).AsFloat32(); got[0] != 3 || got[1] != 2 {
		t.Errorf("Div = %v, want [3 2]", got)
	}
}

func TestMatMul(t *testing.T) {
	b := New()

	// [1 2; 3 4] @ [5 6; 7 8] = [19 22; 43 50]
	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y := fromSlice(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	got := b.MatMul(x, y).AsFloat32()
	want := []float32{19, 22, 43, 50}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("MatMul[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMatMulFloat64(t *testing.T) {
	b := New()

	x, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	y, err := tensor.NewRaw(tensor.Shape{3, 2}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(x.AsFloat64(), []float64{1, 2, 3, 4, 5, 6})
	copy(y.AsFloat64(), []float64{7, 8, 9, 10, 11, 12})

	got := b.MatMul(x, y)
	if !got.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", got.Shape())
	}
	want := []float64{58, 64, 139, 154}
	for i, w := range want {
		if math.Abs(got.AsFloat64()[i]-w) > 1e-12 {
			t.Errorf("MatMul[%d] = %v, want %v", i, got.AsFloat64()[i], w)
		}
	}
}

func TestMatMulShapeMismatch(t *testing.T) {
	b := New()
	x := fromSlice(t, make([]float32, 6), tensor.Shape{2, 3})
	y := fromSlice(t, make([]float32, 4), tensor.Shape{2, 2})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for incompatible inner dimensions")
		}
	}()
	b.MatMul(x, y)
}

func TestTranspose2D(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	got := b.Transpose(x)

	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", got.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i, w := range want {
		if got.AsFloat32()[i] != w {
			t.Errorf("Transpose[%d] = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestReshape(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	got := b.Reshape(x, tensor.Shape{3, 2})

	if !got.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", got.Shape())
	}
	// Reshape preserves row-major order
	for i, w := range []float32{1, 2, 3, 4, 5, 6} {
		if got.AsFloat32()[i] != w {
			t.Errorf("Reshape[%d] = %v, want %v", i, got.AsFloat32()[i], w)
		}
	}
}

func TestReLU(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5})
	got := b.ReLU(x).AsFloat32()
	want := []float32{0, 0, 0, 0.5, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReLU[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLogSoftmaxRowsSumToOne(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{1, 2, 3, -1, 0, 1}, tensor.Shape{2, 3})
	logProbs := b.LogSoftmax(x).AsFloat32()

	for r := 0; r < 2; r++ {
		var sum float64
		for c := 0; c < 3; c++ {
			sum += math.Exp(float64(logProbs[r*3+c]))
		}
		if math.Abs(sum-1.0) > 1e-5 {
			t.Errorf("row %d: exp(logProbs) sums to %v, want 1", r, sum)
		}
	}
}

func TestLogSoftmaxStability(t *testing.T) {
	b := New()

	// Large logits overflow a naive exp-then-log implementation.
	x := fromSlice(t, []float32{1000, 1001, 1002}, tensor.Shape{1, 3})
	got := b.LogSoftmax(x).AsFloat32()

	for i, v := range got {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Errorf("LogSoftmax[%d] = %v, want finite", i, v)
		}
	}
}

func TestExpPow(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{0, 1, 2}, tensor.Shape{3})

	exp := b.Exp(x).AsFloat32()
	for i, v := range []float64{1, math.E, math.E * math.E} {
		if math.Abs(float64(exp[i])-v) > 1e-4 {
			t.Errorf("Exp[%d] = %v, want %v", i, exp[i], v)
		}
	}

	sq := b.Pow(x, 2).AsFloat32()
	for i, v := range []float32{0, 1, 4} {
		if !almostEqual(sq[i], v) {
			t.Errorf("Pow[%d] = %v, want %v", i, sq[i], v)
		}
	}
}

func TestSumMean(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})

	sum := b.Sum(x)
	if !sum.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("Sum shape = %v, want [1]", sum.Shape())
	}
	if !almostEqual(sum.AsFloat32()[0], 10) {
		t.Errorf("Sum = %v, want 10", sum.AsFloat32()[0])
	}

	mean := b.Mean(x)
	if !almostEqual(mean.AsFloat32()[0], 2.5) {
		t.Errorf("Mean = %v, want 2.5", mean.AsFloat32()[0])
	}
}

func TestScalarOps(t *testing.T) {
	b := New()

	x := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})

	got := b.MulScalar(x, 2).AsFloat32()
	for i, w := range []float32{2, 4, 6} {
		if !almostEqual(got[i], w) {
			t.Errorf("MulScalar[%d] = %v, want %v", i, got[i], w)
		}
	}

	got = b.AddScalar(x, -1).AsFloat32()
	for i, w := range []float32{0, 1, 2} {
		if !almostEqual(got[i], w) {
			t.Errorf("AddScalar[%d] = %v, want %v", i, got[i], w)
		}
	}
}
