package tensor

import (
	"math/rand"
	"testing"
)

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
		bits  int
	}{
		{Float32, 4, 32},
		{Float64, 8, 64},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
		if got := tt.dtype.BitSize(); got != tt.bits {
			t.Errorf("%s.BitSize() = %d, want %d", tt.dtype, got, tt.bits)
		}
	}
}

type namedFloat float32

func TestDataTypeOf(t *testing.T) {
	if got := DataTypeOf[float32](); got != Float32 {
		t.Errorf("DataTypeOf[float32]() = %s", got)
	}
	if got := DataTypeOf[float64](); got != Float64 {
		t.Errorf("DataTypeOf[float64]() = %s", got)
	}
	if got := DataTypeOf[namedFloat](); got != Float32 {
		t.Errorf("DataTypeOf[namedFloat]() = %s", got)
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{3, 20}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Shape{3, 0}).Validate(); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestShape_CloneAndEqual(t *testing.T) {
	s := Shape{4, 5}
	c := s.Clone()
	c[0] = 9
	if s[0] != 4 {
		t.Error("Clone must not share storage")
	}
	if !s.Equal(Shape{4, 5}) || s.Equal(c) || s.Equal(Shape{4}) {
		t.Error("Equal compares dimensions element-wise")
	}
	if got := Shape(nil).Clone(); got == nil || len(got) != 0 {
		t.Errorf("Shape(nil).Clone() = %#v, want empty non-nil", got)
	}
	if n := (Shape{}).NumElements(); n != 1 {
		t.Errorf("scalar NumElements() = %d, want 1", n)
	}
}

func TestNew_ElementCountMismatch(t *testing.T) {
	_, err := New([]float32{1, 2, 3}, Shape{2, 2}, CPU)
	if err == nil {
		t.Fatal("expected error for mismatched element count")
	}
}

func TestFromSlice_Copies(t *testing.T) {
	src := []float64{1, 2, 3, 4}
	x, err := FromSlice(src, Shape{2, 2}, Metal)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	src[0] = 100
	if x.Data()[0] != 1 {
		t.Errorf("FromSlice must copy its input, got %v", x.Data()[0])
	}
	if x.Device() != Metal {
		t.Errorf("Device() = %s, want Metal", x.Device())
	}
	if x.At(1, 0) != 3 {
		t.Errorf("At(1, 0) = %v, want 3", x.At(1, 0))
	}
}

func TestFlatten_ChannelMajor(t *testing.T) {
	x, _ := New([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, CPU)
	flat := x.Flatten()
	assertEqualShape(t, Shape{6}, flat.Shape(), "Flatten")
	// channel 1, position 0 lives at 1*3 + 0.
	if flat.Data()[3] != x.At(1, 0) {
		t.Errorf("flattened[3] = %v, want %v", flat.Data()[3], x.At(1, 0))
	}
}

func TestClone_Independent(t *testing.T) {
	x := Zeros[float32](Shape{4}, CPU)
	c := x.Clone()
	c.Data()[0] = 7
	if x.Data()[0] != 0 {
		t.Error("Clone must not alias the source data")
	}

	moved := x.To(CUDA)
	if moved.Device() != CUDA || x.Device() != CPU {
		t.Errorf("To(CUDA): got %s, source %s", moved.Device(), x.Device())
	}
}

func TestRandn_Reproducible(t *testing.T) {
	a := Randn[float64](Shape{5}, CPU, rand.New(rand.NewSource(1)))
	b := Randn[float64](Shape{5}, CPU, rand.New(rand.NewSource(1)))
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatalf("Randn with equal seeds differs at %d", i)
		}
	}
}
