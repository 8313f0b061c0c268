// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

// TestTensorAPI verifies the public aliases expose the expected API.
func TestTensorAPI(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", x.Shape())
	}
	if x.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", x.DType())
	}
	if x.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", x.Device())
	}
	if x.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", x.NumElements())
	}
}

// TestZeros verifies zero initialization for both precisions.
func TestZeros(t *testing.T) {
	z := tensor.Zeros[float64](tensor.Shape{4}, tensor.WebGPU)
	for i, v := range z.Data() {
		if v != 0 {
			t.Errorf("Zeros()[%d] = %v, want 0", i, v)
		}
	}
	if z.DType() != tensor.Float64 {
		t.Errorf("DType() = %v, want Float64", z.DType())
	}
}
