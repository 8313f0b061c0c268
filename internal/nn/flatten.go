package nn

import "github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"

// Flatten collapses [channels, length] into [channels*length].
//
// It moves no data: channel-major storage already is the flattened layout.
type Flatten[T tensor.Float] struct{}

// NewFlatten creates a new Flatten module.
func NewFlatten[T tensor.Float]() *Flatten[T] {
	return &Flatten[T]{}
}

// Kind returns KindFlatten.
func (f *Flatten[T]) Kind() Kind {
	return KindFlatten
}

// Forward returns a rank 1 view of the input.
func (f *Flatten[T]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	return input.Flatten(), nil
}

// String returns "Flatten()".
func (f *Flatten[T]) String() string {
	return "Flatten()"
}
