// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nnet_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/convert"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/nnet"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

func TestSaveAndRead(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	model := nn.NewSequential[float32](
		nn.NewConv1D[float32](1, 5, 5, 5, 0, true, tensor.CPU, rng),
		nn.NewReLU[float32](),
		nn.NewFlatten[float32](),
		nn.NewLinear[float32](20, 10, tensor.CPU, rng),
	)
	export, err := convert.Sequential(model, 20, tensor.CPU)
	if err != nil {
		t.Fatalf("Sequential() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.nnet")
	if err := nnet.Save(path, export, nnet.DefaultOptions()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	net, err := nnet.Read(f)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if net.NumLayers != 2 || net.InputSize != 20 || net.OutputSize != 10 || net.MaxLayerSize != 20 {
		t.Errorf("unexpected header %+v", net.Header)
	}
}
