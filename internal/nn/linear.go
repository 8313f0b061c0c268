package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/backend/cpu"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = W·x + b
// where:
//   - x is the input with in_features elements in its last dimension
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//
// Linear is also the dense operator produced by the conversions: its weight
// and bias always live on the same device and share the element type.
//
// Example:
//
//	layer := nn.NewLinear[float32](20, 10, tensor.CPU, rng)
//	output, err := layer.Forward(input) // [20] -> [10]
type Linear[T tensor.Float] struct {
	inFeatures  int
	outFeatures int
	weight      *tensor.Tensor[T] // [out_features, in_features]
	bias        *tensor.Tensor[T] // [out_features]
}

// NewLinear creates a new Linear layer.
//
// Weights are initialized using Xavier/Glorot uniform distribution,
// biases uniformly in [-1/sqrt(in), 1/sqrt(in)] like PyTorch.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - device: Device the parameters are placed on
//   - rng: Random source for initialization
func NewLinear[T tensor.Float](inFeatures, outFeatures int, device tensor.Device, rng *rand.Rand) *Linear[T] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("linear: invalid features in=%d, out=%d", inFeatures, outFeatures))
	}

	weight := Xavier[T](inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, device, rng)
	bias := Uniform[T](1/math.Sqrt(float64(inFeatures)), tensor.Shape{outFeatures}, device, rng)

	return &Linear[T]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// NewLinearFromWeights creates a Linear layer from existing parameters.
//
// Weight must have shape [out_features, in_features]. A nil bias becomes a
// zero vector on the weight's device. Both tensors are copied.
func NewLinearFromWeights[T tensor.Float](weight, bias *tensor.Tensor[T]) (*Linear[T], error) {
	if weight == nil {
		return nil, fmt.Errorf("linear: weight is nil")
	}
	ws := weight.Shape()
	if len(ws) != 2 {
		return nil, fmt.Errorf("linear: weight must be 2D [out,in], got shape %v", ws)
	}

	var b *tensor.Tensor[T]
	if bias == nil {
		b = tensor.Zeros[T](tensor.Shape{ws[0]}, weight.Device())
	} else {
		if bias.NumElements() != ws[0] {
			return nil, fmt.Errorf("linear: bias has %d elements, want %d", bias.NumElements(), ws[0])
		}
		if bias.Device() != weight.Device() {
			return nil, fmt.Errorf("linear: bias on %s, weight on %s", bias.Device(), weight.Device())
		}
		b = bias.Clone().Reshape(ws[0])
	}

	return &Linear[T]{
		inFeatures:  ws[1],
		outFeatures: ws[0],
		weight:      weight.Clone(),
		bias:        b,
	}, nil
}

// Kind returns KindLinear.
func (l *Linear[T]) Kind() Kind {
	return KindLinear
}

// Forward computes the output of the linear layer over the last dimension.
//
// Input shape: [in_features] or [rows, in_features]
// Output shape: [out_features] or [rows, out_features]
func (l *Linear[T]) Forward(input *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	shape := input.Shape()
	if len(shape) == 0 || shape[len(shape)-1] != l.inFeatures {
		return nil, fmt.Errorf("linear: expected input with %d features, got shape %v", l.inFeatures, shape)
	}
	return cpu.Linear(input, l.weight, l.bias), nil
}

// String returns a string representation of the layer.
func (l *Linear[T]) String() string {
	return fmt.Sprintf("Linear(in_features=%d, out_features=%d)", l.inFeatures, l.outFeatures)
}

// Weight returns the weight matrix [out_features, in_features].
func (l *Linear[T]) Weight() *tensor.Tensor[T] {
	return l.weight
}

// Bias returns the bias vector [out_features].
func (l *Linear[T]) Bias() *tensor.Tensor[T] {
	return l.bias
}

// Row returns row i of the weight matrix (no copy).
func (l *Linear[T]) Row(i int) []T {
	return l.weight.Data()[i*l.inFeatures : (i+1)*l.inFeatures]
}

// InFeatures returns the number of input features.
func (l *Linear[T]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[T]) OutFeatures() int {
	return l.outFeatures
}

// Device returns the device of the layer parameters.
func (l *Linear[T]) Device() tensor.Device {
	return l.weight.Device()
}

// Clone returns a deep copy of the layer.
func (l *Linear[T]) Clone() *Linear[T] {
	return &Linear[T]{
		inFeatures:  l.inFeatures,
		outFeatures: l.outFeatures,
		weight:      l.weight.Clone(),
		bias:        l.bias.Clone(),
	}
}
