// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package convert rewrites 1-D convolutional networks into equivalent
// dense networks for piecewise-linear verifiers.
//
// # Basic Usage
//
//	export, err := convert.Sequential(model, 20, tensor.CPU)
//	if err != nil {
//	    var ce *convert.ConversionError
//	    if errors.As(err, &ce) {
//	        log.Printf("layer %d (%s): %s", ce.Index, ce.Kind, ce.Details)
//	    }
//	    return err
//	}
//
//	worst, err := convert.Check(model, export, 20, convert.DefaultCheckOptions())
//
// # Single Layers
//
//	dense, err := convert.Conv1DToLinear(conv, inputSize, tensor.CPU)
//	dense, err := convert.AvgPool1DToLinear[float32](nn.IntOrSeq{2}, nil, nil, inputSize, channels, tensor.CPU)
//
// Average pooling always divides by the full kernel size, including windows
// that overlap the padding (PyTorch's count_include_pad=True).
package convert
