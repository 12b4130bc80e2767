package tensor

import "testing"

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{3, 4}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	if !raw.Shape().Equal(Shape{3, 4}) {
		t.Errorf("shape = %v, want [3 4]", raw.Shape())
	}
	if raw.NumElements() != 12 {
		t.Errorf("NumElements() = %d, want 12", raw.NumElements())
	}
	if raw.ByteSize() != 48 {
		t.Errorf("ByteSize() = %d, want 48", raw.ByteSize())
	}

	// Zero-initialized
	for i, v := range raw.AsFloat32() {
		if v != 0 {
			t.Errorf("element %d = %v, want 0", i, v)
		}
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{3, -1}, Float32, CPU); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestTypedViews(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	data := raw.AsFloat64()
	data[2] = 3.5
	if raw.AsFloat64()[2] != 3.5 {
		t.Error("typed view does not share underlying memory")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on dtype mismatch")
		}
	}()
	raw.AsFloat32()
}

func TestRawClone(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Float32, CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	raw.AsFloat32()[0] = 1.0

	clone := raw.Clone()
	clone.AsFloat32()[0] = 42.0

	if raw.AsFloat32()[0] != 1.0 {
		t.Error("Clone() shares memory with the original")
	}
	if clone == raw {
		t.Error("Clone() returned the same pointer")
	}
}
