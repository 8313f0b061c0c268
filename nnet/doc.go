// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nnet writes and reads the .nnet format consumed by neural network
// verifiers such as Reluplex and Marabou.
//
// # Writing
//
//	export, err := convert.Sequential(model, 20, tensor.CPU)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := nnet.Save("model.nnet", export, nnet.DefaultOptions()); err != nil {
//	    log.Fatal(err)
//	}
//
// The exported network must contain only Linear and ReLU layers. Values are
// written at the precision of the network (float32 or float64) in their
// shortest round-trip form.
//
// # Normalization
//
// By default the input bounds and means are zero and the ranges one. Use
// StatsFromSamples to derive them from data:
//
//	opts := nnet.DefaultOptions()
//	opts.Stats, err = nnet.StatsFromSamples(export, samples)
//
// # Reading
//
//	net, err := nnet.Read(file)
//	y, err := net.Evaluate(x, false)
package nnet
