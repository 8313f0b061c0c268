// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers of 1-D convolutional networks that can be
// converted to dense form.
//
// # Overview
//
// This package contains:
//   - Layers: Conv1D, AvgPool1D, Linear
//   - Activations: ReLU, Tanh
//   - Reshaping: Flatten
//   - Utilities: Sequential, Layer interface, IntOrSeq
//
// Tanh is provided for forward evaluation only; it is not piecewise linear
// and the converter rejects it.
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/sgol13/tudelft-formal-methods-reluplex-extension/nn"
//	    "github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//
//	    model := nn.NewSequential[float32](
//	        nn.NewConv1D[float32](1, 5, 5, 5, 0, true, tensor.CPU, rng),
//	        nn.NewReLU[float32](),
//	        nn.NewFlatten[float32](),
//	        nn.NewLinear[float32](20, 10, tensor.CPU, rng),
//	    )
//
//	    output, err := model.Forward(input)
//	}
//
// # Layout
//
// Structured layers take [channels, length] inputs (a rank 1 input is a
// single channel). Flattening is channel-major, matching PyTorch's
// nn.Flatten on a [1, C, L] batch.
//
// # Loading Trained Weights
//
// Layers built from existing parameters copy them:
//
//	conv, err := nn.NewConv1DFromWeights(weight, bias, nn.DefaultConv1DConfig())
//	dense, err := nn.NewLinearFromWeights(weight, bias)
package nn
