// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Float is a constraint for tensor element types (float32, float64).
type Float = tensor.Float

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{3, 20} is 3 channels of length 20.
type Shape = tensor.Shape

// Tensor is a dense row-major tensor of rank 1 or 2.
type Tensor[T Float] = tensor.Tensor[T]

// New creates a tensor that takes ownership of data.
func New[T Float](data []T, shape Shape, device Device) (*Tensor[T], error) {
	return tensor.New(data, shape, device)
}

// FromSlice creates a tensor from a copy of data.
func FromSlice[T Float](data []T, shape Shape, device Device) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape, device)
}

// Zeros creates a zero-filled tensor.
func Zeros[T Float](shape Shape, device Device) *Tensor[T] {
	return tensor.Zeros[T](shape, device)
}

// Randn creates a tensor with standard normal values from rng.
func Randn[T Float](shape Shape, device Device, rng *rand.Rand) *Tensor[T] {
	return tensor.Randn[T](shape, device, rng)
}
