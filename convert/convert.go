// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package convert

import (
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/convert"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

// Errors returned by the conversion functions.
var (
	ErrUnsupportedLayer  = convert.ErrUnsupportedLayer
	ErrUnsupportedConfig = convert.ErrUnsupportedConfig
	ErrShapeMismatch     = convert.ErrShapeMismatch
	ErrNotEquivalent     = convert.ErrNotEquivalent
)

// ConversionError carries the layer index, kind and parameter of a failure.
type ConversionError = convert.ConversionError

// CheckOptions configures Check.
type CheckOptions = convert.CheckOptions

// DefaultCheckOptions returns 16 trials at tolerance 1e-4.
func DefaultCheckOptions() CheckOptions {
	return convert.DefaultCheckOptions()
}

// Conv1DToLinear materializes conv as a dense layer for inputs of
// inputSize elements per channel.
func Conv1DToLinear[T tensor.Float](conv *nn.Conv1D[T], inputSize int, device tensor.Device) (*nn.Linear[T], error) {
	return convert.Conv1DToLinear(conv, inputSize, device)
}

// SingleChannelConv1DToLinear is Conv1DToLinear for one input channel.
func SingleChannelConv1DToLinear[T tensor.Float](conv *nn.Conv1D[T], inputSize int, device tensor.Device) (*nn.Linear[T], error) {
	return convert.SingleChannelConv1DToLinear(conv, inputSize, device)
}

// AvgPool1DToLinear materializes 1-D average pooling as a dense layer.
func AvgPool1DToLinear[T tensor.Float](kernel, stride, padding nn.IntOrSeq, inputSize, channels int, device tensor.Device) (*nn.Linear[T], error) {
	return convert.AvgPool1DToLinear[T](kernel, stride, padding, inputSize, channels, device)
}

// Sequential rewrites model into Linear and ReLU layers only.
func Sequential[T tensor.Float](model *nn.Sequential[T], inputSize int, device tensor.Device) (*nn.Sequential[T], error) {
	return convert.Sequential(model, inputSize, device)
}

// MaxAbsDiff returns the largest output deviation between model and export
// on input.
func MaxAbsDiff[T tensor.Float](model, export *nn.Sequential[T], input *tensor.Tensor[T]) (float64, error) {
	return convert.MaxAbsDiff(model, export, input)
}

// Check compares model and export on random inputs.
func Check[T tensor.Float](model, export *nn.Sequential[T], inputSize int, opts CheckOptions) (float64, error) {
	return convert.Check(model, export, inputSize, opts)
}
