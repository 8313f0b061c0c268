package nn

import (
	"fmt"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/backend/cpu"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// IntOrSeq is a 1-D size argument given either as a scalar or as a
// one-element sequence, the two forms pooling layers accept in PyTorch
// and ONNX (kernel_shape, strides, pads).
//
// Example:
//
//	nn.IntOrSeq{2}    // kernel_size=2
//	nn.IntOrSeq(nil)  // unset, falls back to a default
type IntOrSeq []int

// Normalize returns the scalar value.
//
// An empty value yields def. ONNX pads come as [begin, end]; equal pairs
// normalize to the shared value.
func (s IntOrSeq) Normalize(def int) (int, error) {
	switch len(s) {
	case 0:
		return def, nil
	case 1:
		return s[0], nil
	case 2:
		if s[0] == s[1] {
			return s[0], nil
		}
		return 0, fmt.Errorf("asymmetric value %v is not supported", []int(s))
	default:
		return 0, fmt.Errorf("expected a scalar or 1-element sequence, got %v", []int(s))
	}
}

// AvgPool1D is a 1D average pooling layer.
//
// Average pooling has no learnable parameters. Every window is divided by
// the nominal kernel size, including windows that overlap the zero padding
// (PyTorch's count_include_pad=True).
//
// Input shape:  [channels, length]
// Output shape: [channels, out_length]
//
// Where:
//
//	out_length = (length + 2*padding - kernel) / stride + 1
//
// Example:
//
//	pool := nn.NewAvgPool1D[float32](2, 2, 0)
//	output, err := pool.Forward(input) // [5, 4] -> [5, 2]
type AvgPool1D[T tensor.Float] struct {
	kernelSize int
	stride     int
	padding    int
}

// NewAvgPool1D creates a new 1D average pooling layer.
//
// Parameters:
//   - kernelSize: Size of pooling window
//   - stride: Stride for pooling
//   - padding: Zero padding applied to both ends
//
// Panics on non-positive kernel or stride and on negative padding.
func NewAvgPool1D[T tensor.Float](kernelSize, stride, padding int) *AvgPool1D[T] {
	if kernelSize <= 0 {
		panic(fmt.Sprintf("avgpool1d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("avgpool1d: invalid stride %d", stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("avgpool1d: invalid padding %d", padding))
	}

	return &AvgPool1D[T]{
		kernelSize: kernelSize,
		stride:     stride,
		padding:    padding,
	}
}

// Kind returns KindAvgPool1D.
func (p *AvgPool1D[T]) Kind() Kind {
	return KindAvgPool1D
}

// Forward performs the forward pass.
//
// Input: [channels, length], or [length] for a single channel.
// Output: [channels, out_length].
func (p *AvgPool1D[T]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	x := asChannels(input)
	if x.Rank() != 2 {
		return nil, fmt.Errorf("avgpool1d: expected 2D input [C,L], got %dD", input.Rank())
	}
	if p.OutputLength(x.Shape()[1]) <= 0 {
		return nil, fmt.Errorf("avgpool1d: input length %d too short for %s", x.Shape()[1], p)
	}
	return cpu.AvgPool1D(x, p.kernelSize, p.stride, p.padding, true), nil
}

// String returns a string representation of the layer.
func (p *AvgPool1D[T]) String() string {
	return fmt.Sprintf("AvgPool1D(kernel_size=%d, stride=%d, padding=%d)", p.kernelSize, p.stride, p.padding)
}

// KernelSize returns the pooling window size.
func (p *AvgPool1D[T]) KernelSize() int {
	return p.kernelSize
}

// Stride returns the stride.
func (p *AvgPool1D[T]) Stride() int {
	return p.stride
}

// Padding returns the padding.
func (p *AvgPool1D[T]) Padding() int {
	return p.padding
}

// OutputLength computes the output length for a given input length.
func (p *AvgPool1D[T]) OutputLength(inputLen int) int {
	return cpu.AvgPool1DOutputLength(inputLen, p.kernelSize, p.stride, p.padding)
}
