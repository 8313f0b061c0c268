package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/backend/cpu"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Conv1D is a 1D convolutional layer.
//
// Performs convolution: output = Conv1D(input, weight) + bias
//
// Input shape:  [in_channels, length]
// Weight shape: [out_channels, in_channels/groups, kernel]
// Bias shape:   [out_channels]
// Output shape: [out_channels, out_length]
//
// Where:
//
//	out_length = (length + 2*padding - dilation*(kernel-1) - 1) / stride + 1
//
// Example:
//
//	// 1 channel -> 5 channels, kernel 5, stride 5
//	conv := nn.NewConv1D[float32](1, 5, 5, 5, 0, true, tensor.CPU, rng)
//	output, err := conv.Forward(input) // [5, 4] for a length 20 input
type Conv1D[T tensor.Float] struct {
	inChannels  int
	outChannels int
	kernelSize  int
	stride      int
	padding     int
	dilation    int
	groups      int

	weight *tensor.Tensor[T] // [out_channels, in_channels/groups, kernel]
	bias   *tensor.Tensor[T] // [out_channels] or nil
}

// NewConv1D creates a new 1D convolutional layer with Xavier initialization.
//
// Parameters:
//   - inChannels: Number of input channels
//   - outChannels: Number of output channels (number of filters)
//   - kernelSize: Kernel length
//   - stride: Stride for convolution
//   - padding: Zero padding applied to both ends of the input
//   - useBias: Whether to include bias term
//   - device: Device the parameters are placed on
//   - rng: Random source for initialization
//
// Initialization:
//   - Weights: Xavier/Glorot uniform initialization
//   - Bias: Uniform in [-1/sqrt(fan_in), 1/sqrt(fan_in)] like PyTorch
func NewConv1D[T tensor.Float](
	inChannels, outChannels int,
	kernelSize int,
	stride, padding int,
	useBias bool,
	device tensor.Device,
	rng *rand.Rand,
) *Conv1D[T] {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv1d: invalid channels in=%d, out=%d", inChannels, outChannels))
	}
	if kernelSize <= 0 {
		panic(fmt.Sprintf("conv1d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv1d: invalid stride %d", stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("conv1d: invalid padding %d", padding))
	}

	// For Conv1D:
	//   fan_in = in_channels * kernel
	//   fan_out = out_channels * kernel
	fanIn := inChannels * kernelSize
	fanOut := outChannels * kernelSize
	weight := Xavier[T](fanIn, fanOut, tensor.Shape{outChannels, inChannels, kernelSize}, device, rng)

	var bias *tensor.Tensor[T]
	if useBias {
		bias = Uniform[T](1/math.Sqrt(float64(fanIn)), tensor.Shape{outChannels}, device, rng)
	}

	return &Conv1D[T]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  kernelSize,
		stride:      stride,
		padding:     padding,
		dilation:    1,
		groups:      1,
		weight:      weight,
		bias:        bias,
	}
}

// Conv1DConfig holds the hyperparameters of a convolution built from
// existing weights.
type Conv1DConfig struct {
	Stride   int
	Padding  int
	Dilation int
	Groups   int
}

// DefaultConv1DConfig returns stride 1, no padding, dilation 1, one group.
func DefaultConv1DConfig() Conv1DConfig {
	return Conv1DConfig{
		Stride:   1,
		Padding:  0,
		Dilation: 1,
		Groups:   1,
	}
}

// NewConv1DFromWeights creates a Conv1D from existing parameters.
//
// Weight must have shape [out_channels, in_channels/groups, kernel]; bias may
// be nil or have shape [out_channels] and must share the weight's device.
// Both tensors are copied. Hyperparameters are only checked for sign here;
// support for groups and dilation is decided by the consumers.
func NewConv1DFromWeights[T tensor.Float](weight, bias *tensor.Tensor[T], cfg Conv1DConfig) (*Conv1D[T], error) {
	if weight == nil {
		return nil, fmt.Errorf("conv1d: weight is nil")
	}
	ws := weight.Shape()
	if len(ws) != 3 {
		return nil, fmt.Errorf("conv1d: weight must be 3D [C_out,C_in,K], got shape %v", ws)
	}
	if cfg.Groups <= 0 {
		return nil, fmt.Errorf("conv1d: invalid groups %d", cfg.Groups)
	}
	if cfg.Stride <= 0 {
		return nil, fmt.Errorf("conv1d: invalid stride %d", cfg.Stride)
	}
	if cfg.Padding < 0 {
		return nil, fmt.Errorf("conv1d: invalid padding %d", cfg.Padding)
	}
	if cfg.Dilation <= 0 {
		return nil, fmt.Errorf("conv1d: invalid dilation %d", cfg.Dilation)
	}
	if ws[0]%cfg.Groups != 0 {
		return nil, fmt.Errorf("conv1d: out channels %d not divisible by groups %d", ws[0], cfg.Groups)
	}

	var b *tensor.Tensor[T]
	if bias != nil {
		if bias.NumElements() != ws[0] {
			return nil, fmt.Errorf("conv1d: bias has %d elements, want %d", bias.NumElements(), ws[0])
		}
		if bias.Device() != weight.Device() {
			return nil, fmt.Errorf("conv1d: bias on %s, weight on %s", bias.Device(), weight.Device())
		}
		b = bias.Clone().Reshape(ws[0])
	}

	return &Conv1D[T]{
		inChannels:  ws[1] * cfg.Groups,
		outChannels: ws[0],
		kernelSize:  ws[2],
		stride:      cfg.Stride,
		padding:     cfg.Padding,
		dilation:    cfg.Dilation,
		groups:      cfg.Groups,
		weight:      weight.Clone(),
		bias:        b,
	}, nil
}

// Kind returns KindConv1D.
func (c *Conv1D[T]) Kind() Kind {
	return KindConv1D
}

// Forward performs the forward pass.
//
// Input: [in_channels, length], or [length] when in_channels is 1.
// Output: [out_channels, out_length].
func (c *Conv1D[T]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	x := asChannels(input)
	if x.Rank() != 2 {
		return nil, fmt.Errorf("conv1d: expected 2D input [C,L], got %dD", input.Rank())
	}
	if x.Shape()[0] != c.inChannels {
		return nil, fmt.Errorf("conv1d: input channels %d != expected %d", x.Shape()[0], c.inChannels)
	}
	if c.groups != 1 {
		return nil, fmt.Errorf("conv1d: grouped convolution (groups=%d) is not supported", c.groups)
	}
	if c.OutputLength(x.Shape()[1]) <= 0 {
		return nil, fmt.Errorf("conv1d: input length %d too short for %s", x.Shape()[1], c)
	}
	return cpu.Conv1D(x, c.weight, c.bias, c.stride, c.padding, c.dilation), nil
}

// String returns a string representation of the layer.
func (c *Conv1D[T]) String() string {
	return fmt.Sprintf("Conv1D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d, padding=%d, dilation=%d, groups=%d, bias=%v)",
		c.inChannels, c.outChannels, c.kernelSize,
		c.stride, c.padding, c.dilation, c.groups, c.bias != nil)
}

// InChannels returns the number of input channels.
func (c *Conv1D[T]) InChannels() int {
	return c.inChannels
}

// OutChannels returns the number of output channels.
func (c *Conv1D[T]) OutChannels() int {
	return c.outChannels
}

// KernelSize returns the kernel length.
func (c *Conv1D[T]) KernelSize() int {
	return c.kernelSize
}

// Stride returns the stride.
func (c *Conv1D[T]) Stride() int {
	return c.stride
}

// Padding returns the padding.
func (c *Conv1D[T]) Padding() int {
	return c.padding
}

// Dilation returns the dilation.
func (c *Conv1D[T]) Dilation() int {
	return c.dilation
}

// Groups returns the number of groups.
func (c *Conv1D[T]) Groups() int {
	return c.groups
}

// Weight returns the weight tensor [out_channels, in_channels/groups, kernel].
func (c *Conv1D[T]) Weight() *tensor.Tensor[T] {
	return c.weight
}

// Bias returns the bias tensor, or nil if the layer has no bias.
func (c *Conv1D[T]) Bias() *tensor.Tensor[T] {
	return c.bias
}

// Device returns the device of the layer parameters.
func (c *Conv1D[T]) Device() tensor.Device {
	return c.weight.Device()
}

// OutputLength computes the output length for a given input length.
func (c *Conv1D[T]) OutputLength(inputLen int) int {
	return cpu.Conv1DOutputLength(inputLen, c.kernelSize, c.stride, c.padding, c.dilation)
}
