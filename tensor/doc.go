// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the typed tensor shared by layers and dense operators.
//
// Tensors are rank 1 ([features]) or rank 2 ([channels, length]) and always
// stored channel-major, which is the flattening convention every dense
// operator in this module relies on:
//
//	flat index = channel*length + position
//
// # Basic Usage
//
//	x := tensor.Zeros[float32](tensor.Shape{3, 20}, tensor.CPU)
//	flat := x.Flatten() // [60], shares data with x
//
// Element types are float32 or float64; a tensor also records the device it
// is placed on so operators built from it keep the same placement.
package tensor
