package nn

import (
	"math"
	"math/rand"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// Parameters:
//   - fanIn: Number of input units
//   - fanOut: Number of output units
//   - shape: Shape of the weight tensor
//   - device: Device the tensor is placed on
//   - rng: Random source
//
// Returns a tensor initialized with Xavier distribution.
func Xavier[T tensor.Float](fanIn, fanOut int, shape tensor.Shape, device tensor.Device, rng *rand.Rand) *tensor.Tensor[T] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[T](shape, device)
	data := t.Data()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = T((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// Uniform fills a tensor with values from U(-bound, bound).
//
// Used for bias initialization, where zeros would hide indexing mistakes.
func Uniform[T tensor.Float](bound float64, shape tensor.Shape, device tensor.Device, rng *rand.Rand) *tensor.Tensor[T] {
	t := tensor.Zeros[T](shape, device)
	data := t.Data()
	for i := range data {
		data[i] = T((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// asChannels returns x as a rank 2 [channels, length] view.
// Rank 1 inputs are treated as a single channel.
func asChannels[T tensor.Float](x *tensor.Tensor[T]) *tensor.Tensor[T] {
	if x.Rank() == 1 {
		return x.Reshape(1, x.NumElements())
	}
	return x
}
