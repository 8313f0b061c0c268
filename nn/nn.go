// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

// Layer is the interface implemented by every layer.
type Layer[T tensor.Float] = nn.Layer[T]

// Kind identifies the layer variant.
type Kind = nn.Kind

// Layer kinds.
const (
	KindConv1D    Kind = nn.KindConv1D
	KindAvgPool1D Kind = nn.KindAvgPool1D
	KindLinear    Kind = nn.KindLinear
	KindReLU      Kind = nn.KindReLU
	KindFlatten   Kind = nn.KindFlatten
	KindTanh      Kind = nn.KindTanh
)

// IntOrSeq is a size argument given as a scalar or a 1-element sequence.
type IntOrSeq = nn.IntOrSeq

// Layers

// Conv1D represents a 1D convolutional layer.
type Conv1D[T tensor.Float] = nn.Conv1D[T]

// Conv1DConfig holds convolution hyperparameters.
type Conv1DConfig = nn.Conv1DConfig

// NewConv1D creates a new 1D convolutional layer with Xavier initialization.
//
// Example:
//
//	conv := nn.NewConv1D[float32](3, 2, 4, 3, 2, true, tensor.CPU, rng)  // in=3, out=2, kernel=4, stride=3, padding=2
func NewConv1D[T tensor.Float](
	inChannels, outChannels int,
	kernelSize int,
	stride, padding int,
	useBias bool,
	device tensor.Device,
	rng *rand.Rand,
) *Conv1D[T] {
	return nn.NewConv1D[T](inChannels, outChannels, kernelSize, stride, padding, useBias, device, rng)
}

// DefaultConv1DConfig returns stride 1, no padding, dilation 1, one group.
func DefaultConv1DConfig() Conv1DConfig {
	return nn.DefaultConv1DConfig()
}

// NewConv1DFromWeights creates a Conv1D from a copy of existing parameters.
func NewConv1DFromWeights[T tensor.Float](weight, bias *tensor.Tensor[T], cfg Conv1DConfig) (*Conv1D[T], error) {
	return nn.NewConv1DFromWeights(weight, bias, cfg)
}

// AvgPool1D represents a 1D average pooling layer.
type AvgPool1D[T tensor.Float] = nn.AvgPool1D[T]

// NewAvgPool1D creates a new 1D average pooling layer.
//
// Example:
//
//	pool := nn.NewAvgPool1D[float32](2, 2, 0)  // kernel=2, stride=2, padding=0
func NewAvgPool1D[T tensor.Float](kernelSize, stride, padding int) *AvgPool1D[T] {
	return nn.NewAvgPool1D[T](kernelSize, stride, padding)
}

// Linear represents a fully connected (dense) layer.
type Linear[T tensor.Float] = nn.Linear[T]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear[float32](20, 10, tensor.CPU, rng)
func NewLinear[T tensor.Float](inFeatures, outFeatures int, device tensor.Device, rng *rand.Rand) *Linear[T] {
	return nn.NewLinear[T](inFeatures, outFeatures, device, rng)
}

// NewLinearFromWeights creates a Linear layer from a copy of existing
// parameters. A nil bias is treated as zeros.
func NewLinearFromWeights[T tensor.Float](weight, bias *tensor.Tensor[T]) (*Linear[T], error) {
	return nn.NewLinearFromWeights(weight, bias)
}

// Flatten represents a reshape to a single feature vector.
type Flatten[T tensor.Float] = nn.Flatten[T]

// NewFlatten creates a new Flatten layer.
func NewFlatten[T tensor.Float]() *Flatten[T] {
	return nn.NewFlatten[T]()
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[T tensor.Float] = nn.ReLU[T]

// NewReLU creates a new ReLU activation layer.
func NewReLU[T tensor.Float]() *ReLU[T] {
	return nn.NewReLU[T]()
}

// Tanh represents the hyperbolic tangent activation function.
type Tanh[T tensor.Float] = nn.Tanh[T]

// NewTanh creates a new Tanh activation layer.
func NewTanh[T tensor.Float]() *Tanh[T] {
	return nn.NewTanh[T]()
}

// Containers

// Sequential chains layers together.
type Sequential[T tensor.Float] = nn.Sequential[T]

// NewSequential creates a new Sequential container.
//
// Example:
//
//	model := nn.NewSequential[float32](
//	    nn.NewLinear[float32](20, 8, tensor.CPU, rng),
//	    nn.NewReLU[float32](),
//	    nn.NewLinear[float32](8, 2, tensor.CPU, rng),
//	)
func NewSequential[T tensor.Float](layers ...Layer[T]) *Sequential[T] {
	return nn.NewSequential(layers...)
}
