// Package nn implements the 1-D layer model converted by this module.
//
// This package provides:
//   - Layer interface: common interface of every layer kind
//   - Conv1D, AvgPool1D: structured sliding-window layers
//   - Linear: fully connected (dense) layer, also the dense operator type
//   - ReLU, Tanh: activations
//   - Flatten: shape-only marker collapsing channels
//   - Sequential: ordered container
//
// All layers are generic over the element type so float32 and float64
// networks convert without changing precision.
package nn

import (
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Kind tags the concrete variant of a Layer.
type Kind int

// Layer kinds.
const (
	KindConv1D Kind = iota
	KindAvgPool1D
	KindLinear
	KindReLU
	KindFlatten
	KindTanh
)

// String returns the layer kind name.
func (k Kind) String() string {
	switch k {
	case KindConv1D:
		return "Conv1D"
	case KindAvgPool1D:
		return "AvgPool1D"
	case KindLinear:
		return "Linear"
	case KindReLU:
		return "ReLU"
	case KindFlatten:
		return "Flatten"
	case KindTanh:
		return "Tanh"
	default:
		return "Unknown"
	}
}

// Layer is the interface shared by every layer.
//
// Forward accepts a rank 1 tensor (a single channel, or already flattened
// features) or a rank 2 tensor [channels, length] and returns the layer
// output in the same channel-major convention.
//
// Callers that need per-kind parameters use a type switch on the concrete
// layer types.
type Layer[T tensor.Float] interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Forward computes the layer output for one sample.
	Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error)

	// String returns a PyTorch-like description of the layer.
	String() string
}
