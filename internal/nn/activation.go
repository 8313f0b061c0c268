package nn

import (
	"math"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/backend/cpu"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// ReLU is the only activation understood by the .nnet tooling, so it is
// the only one that survives conversion.
type ReLU[T tensor.Float] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[T tensor.Float]() *ReLU[T] {
	return &ReLU[T]{}
}

// Kind returns KindReLU.
func (r *ReLU[T]) Kind() Kind {
	return KindReLU
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[T]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	return cpu.ReLU(input), nil
}

// String returns "ReLU()".
func (r *ReLU[T]) String() string {
	return "ReLU()"
}

// Tanh is a hyperbolic tangent activation module.
//
// Applies the element-wise function: f(x) = tanh(x)
//
// Networks containing Tanh can be evaluated but not converted.
type Tanh[T tensor.Float] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[T tensor.Float]() *Tanh[T] {
	return &Tanh[T]{}
}

// Kind returns KindTanh.
func (t *Tanh[T]) Kind() Kind {
	return KindTanh
}

// Forward applies tanh element-wise.
func (t *Tanh[T]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	result := input.Clone()
	data := result.Data()
	for i, v := range data {
		data[i] = T(math.Tanh(float64(v)))
	}
	return result, nil
}

// String returns "Tanh()".
func (t *Tanh[T]) String() string {
	return "Tanh()"
}
