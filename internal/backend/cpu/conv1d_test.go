package cpu

import (
	"math"
	"testing"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

func mustTensor[T tensor.Float](t *testing.T, data []T, shape tensor.Shape) *tensor.Tensor[T] {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return x
}

// TestConv1D_BasicForward tests a single-channel convolution without padding.
func TestConv1D_BasicForward(t *testing.T) {
	input := mustTensor(t, []float32{1, 2, 3, 4, 5}, tensor.Shape{1, 5})
	weight := mustTensor(t, []float32{1, 0, -1}, tensor.Shape{1, 1, 3})

	output := Conv1D(input, weight, nil, 1, 0, 1)

	// out_len = (5 - 3) / 1 + 1 = 3
	if !output.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("Expected shape [1 3], got %v", output.Shape())
	}

	// x[i] - x[i+2]
	expected := []float32{-2, -2, -2}
	for i, exp := range expected {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, output.Data()[i])
		}
	}
}

// TestConv1D_WithPaddingAndStride tests zero padding, stride and bias.
func TestConv1D_WithPaddingAndStride(t *testing.T) {
	input := mustTensor(t, []float64{1, 1, 1, 1}, tensor.Shape{1, 4})
	weight := mustTensor(t, []float64{1, 1, 1}, tensor.Shape{1, 1, 3})
	bias := mustTensor(t, []float64{0.5}, tensor.Shape{1})

	output := Conv1D(input, weight, bias, 2, 1, 1)

	// Padded: 0 1 1 1 1 0 -> windows at 0 and 2: [0 1 1], [1 1 1]
	expected := []float64{2.5, 3.5}
	if !output.Shape().Equal(tensor.Shape{1, 2}) {
		t.Fatalf("Expected shape [1 2], got %v", output.Shape())
	}
	for i, exp := range expected {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.Data()[i])
		}
	}
}

// TestConv1D_MultiChannel tests channel accumulation.
func TestConv1D_MultiChannel(t *testing.T) {
	// 2 input channels, 2 output channels, kernel 1.
	input := mustTensor(t, []float32{1, 2, 10, 20}, tensor.Shape{2, 2})
	weight := mustTensor(t, []float32{
		1, 1, // out 0: ch0 + ch1
		1, -1, // out 1: ch0 - ch1
	}, tensor.Shape{2, 2, 1})

	output := Conv1D(input, weight, nil, 1, 0, 1)

	expected := []float32{11, 22, -9, -18}
	for i, exp := range expected {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.Data()[i])
		}
	}
}

// TestConv1D_Dilation tests dilated taps.
func TestConv1D_Dilation(t *testing.T) {
	input := mustTensor(t, []float32{1, 2, 3, 4, 5}, tensor.Shape{1, 5})
	weight := mustTensor(t, []float32{1, 1}, tensor.Shape{1, 1, 2})

	output := Conv1D(input, weight, nil, 1, 0, 2)

	// out_len = (5 - 2*1 - 1) / 1 + 1 = 3, taps at i and i+2
	expected := []float32{4, 6, 8}
	for i, exp := range expected {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.Data()[i])
		}
	}
}

// TestConv1D_InvalidOutputLength verifies the kernel panics on empty output.
func TestConv1D_InvalidOutputLength(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for kernel larger than padded input")
		}
	}()
	input := mustTensor(t, []float32{1, 2}, tensor.Shape{1, 2})
	weight := mustTensor(t, []float32{1, 1, 1}, tensor.Shape{1, 1, 3})
	Conv1D(input, weight, nil, 1, 0, 1)
}

func TestConv1DOutputLength(t *testing.T) {
	tests := []struct {
		name                        string
		l, k, stride, pad, dilation int
		want                        int
	}{
		{"no padding", 20, 5, 1, 0, 1, 16},
		{"stride and padding", 20, 4, 3, 2, 1, 7},
		{"stride equals kernel", 20, 5, 5, 0, 1, 4},
		{"dilated", 10, 3, 1, 0, 2, 6},
		{"kernel too large", 2, 5, 1, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Conv1DOutputLength(tt.l, tt.k, tt.stride, tt.pad, tt.dilation); got != tt.want {
				t.Errorf("Conv1DOutputLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
