package cpu

import (
	"testing"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// TestLinear_Vector tests y = W·x + b for a rank 1 input.
func TestLinear_Vector(t *testing.T) {
	weight := mustTensor(t, []float32{
		1, 2, 3,
		0, -1, 0,
	}, tensor.Shape{2, 3})
	bias := mustTensor(t, []float32{1, 1}, tensor.Shape{2})
	input := mustTensor(t, []float32{1, 1, 1}, tensor.Shape{3})

	output := Linear(input, weight, bias)

	expected := []float32{7, 0}
	if !output.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("Expected shape [2], got %v", output.Shape())
	}
	for i, exp := range expected {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.Data()[i])
		}
	}
}

// TestLinear_LastDim tests that rank 2 inputs are transformed row by row.
func TestLinear_LastDim(t *testing.T) {
	weight := mustTensor(t, []float64{2}, tensor.Shape{1, 1})
	input := mustTensor(t, []float64{1, 2, 3}, tensor.Shape{3, 1})

	output := Linear(input, weight, nil)

	if !output.Shape().Equal(tensor.Shape{3, 1}) {
		t.Fatalf("Expected shape [3 1], got %v", output.Shape())
	}
	for i, exp := range []float64{2, 4, 6} {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.Data()[i])
		}
	}
}

func TestReLU(t *testing.T) {
	input := mustTensor(t, []float32{-1, 0, 2}, tensor.Shape{3})

	output := ReLU(input)

	for i, exp := range []float32{0, 0, 2} {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, output.Data()[i])
		}
	}
	if input.Data()[0] != -1 {
		t.Error("ReLU must not modify its input")
	}
}
