package nn

import (
	"fmt"
	"strings"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Sequential is a container module that chains multiple layers together.
//
// Each layer's output becomes the next layer's input, creating a
// sequential pipeline of transformations.
//
// Example:
//
//	model := nn.NewSequential[float32](
//	    nn.NewConv1D[float32](1, 5, 5, 5, 0, true, tensor.CPU, rng),
//	    nn.NewReLU[float32](),
//	    nn.NewFlatten[float32](),
//	    nn.NewLinear[float32](20, 10, tensor.CPU, rng),
//	)
//
//	output, err := model.Forward(input)
type Sequential[T tensor.Float] struct {
	layers []Layer[T]
}

// NewSequential creates a new Sequential container.
//
// Parameters:
//   - layers: List of layers to chain together
//
// Returns a new Sequential container.
func NewSequential[T tensor.Float](layers ...Layer[T]) *Sequential[T] {
	return &Sequential[T]{
		layers: layers,
	}
}

// Forward applies all layers in sequence.
//
// Returns the output of the last layer, or the first error annotated with
// the failing layer index.
func (s *Sequential[T]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	output := input

	for i, layer := range s.layers {
		var err error
		output, err = layer.Forward(output)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, layer.Kind(), err)
		}
	}

	return output, nil
}

// Add appends a layer to the sequence.
//
// This allows building models incrementally:
//
//	model := nn.NewSequential[float32]()
//	model.Add(nn.NewLinear[float32](784, 128, tensor.CPU, rng))
//	model.Add(nn.NewReLU[float32]())
func (s *Sequential[T]) Add(layer Layer[T]) {
	s.layers = append(s.layers, layer)
}

// Len returns the number of layers in the sequence.
func (s *Sequential[T]) Len() int {
	return len(s.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[T]) Layer(index int) Layer[T] {
	if index < 0 || index >= len(s.layers) {
		panic("Sequential.Layer: index out of bounds")
	}
	return s.layers[index]
}

// Layers returns a copy of the layer list.
func (s *Sequential[T]) Layers() []Layer[T] {
	layers := make([]Layer[T], len(s.layers))
	copy(layers, s.layers)
	return layers
}

// Linears returns the Linear layers in order, skipping every other kind.
func (s *Sequential[T]) Linears() []*Linear[T] {
	var linears []*Linear[T]
	for _, layer := range s.layers {
		if l, ok := layer.(*Linear[T]); ok {
			linears = append(linears, l)
		}
	}
	return linears
}

// String returns a multi-line description of the container.
func (s *Sequential[T]) String() string {
	var sb strings.Builder
	sb.WriteString("Sequential(\n")
	for i, layer := range s.layers {
		fmt.Fprintf(&sb, "  (%d): %s\n", i, layer)
	}
	sb.WriteString(")")
	return sb.String()
}
