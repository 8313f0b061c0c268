// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand"
	"testing"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

// TestLayerInterface verifies that concrete types implement Layer.
func TestLayerInterface(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name  string
		layer nn.Layer[float32]
		kind  nn.Kind
		input tensor.Shape
	}{
		{"Conv1D", nn.NewConv1D[float32](1, 2, 3, 1, 0, true, tensor.CPU, rng), nn.KindConv1D, tensor.Shape{1, 8}},
		{"AvgPool1D", nn.NewAvgPool1D[float32](2, 2, 0), nn.KindAvgPool1D, tensor.Shape{2, 8}},
		{"Linear", nn.NewLinear[float32](8, 4, tensor.CPU, rng), nn.KindLinear, tensor.Shape{8}},
		{"ReLU", nn.NewReLU[float32](), nn.KindReLU, tensor.Shape{8}},
		{"Flatten", nn.NewFlatten[float32](), nn.KindFlatten, tensor.Shape{2, 4}},
		{"Tanh", nn.NewTanh[float32](), nn.KindTanh, tensor.Shape{8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layer.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			input := tensor.Randn[float32](tt.input, tensor.CPU, rng)
			if _, err := tt.layer.Forward(input); err != nil {
				t.Errorf("Forward() error = %v", err)
			}
			if tt.layer.String() == "" {
				t.Error("String() returned empty string")
			}
		})
	}
}

// TestSequentialFacade builds a model through the public constructors.
func TestSequentialFacade(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	model := nn.NewSequential[float64](
		nn.NewConv1D[float64](1, 3, 5, 2, 0, true, tensor.CPU, rng),
		nn.NewReLU[float64](),
		nn.NewAvgPool1D[float64](2, 2, 0),
		nn.NewFlatten[float64](),
		nn.NewLinear[float64](12, 4, tensor.CPU, rng),
	)

	output, err := model.Forward(tensor.Randn[float64](tensor.Shape{20}, tensor.CPU, rng))
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if !output.Shape().Equal(tensor.Shape{4}) {
		t.Errorf("output shape = %v, want [4]", output.Shape())
	}
}

// TestFromWeights verifies the weight-loading constructors.
func TestFromWeights(t *testing.T) {
	weight, err := tensor.FromSlice([]float32{1, -1}, tensor.Shape{1, 1, 2}, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	conv, err := nn.NewConv1DFromWeights(weight, nil, nn.DefaultConv1DConfig())
	if err != nil {
		t.Fatalf("NewConv1DFromWeights() error = %v", err)
	}
	if conv.Bias() != nil {
		t.Error("expected no bias")
	}

	dense, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	linear, err := nn.NewLinearFromWeights(dense, nil)
	if err != nil {
		t.Fatalf("NewLinearFromWeights() error = %v", err)
	}
	if linear.InFeatures() != 3 || linear.OutFeatures() != 1 {
		t.Errorf("got %dx%d, want 1x3", linear.OutFeatures(), linear.InFeatures())
	}
}
