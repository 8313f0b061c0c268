// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package onnx imports ONNX models exported from PyTorch and other
// frameworks as Sequential layer stacks.
//
// # Supported Operators
//
//   - Convolution: Conv (1-D)
//   - Pooling: AveragePool (1-D)
//   - Matrix: Gemm, MatMul (with an optional bias Add)
//   - Activation: Relu
//   - Shape: Flatten, Reshape to a vector
//   - Other: Identity, Dropout (skipped)
//
// The graph must be a chain with weights stored as initializers. Anything
// else fails with [ErrUnsupportedOp] or [ErrUnsupportedGraph].
//
// # Example Usage
//
//	imp, err := onnx.ImportFile[float32]("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	export, err := convert.Sequential(imp.Model, imp.InputSize, tensor.CPU)
package onnx

import (
	internalonnx "github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/onnx"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

// Errors returned by the importer.
var (
	ErrUnsupportedOp      = internalonnx.ErrUnsupportedOp
	ErrUnsupportedGraph   = internalonnx.ErrUnsupportedGraph
	ErrMissingInitializer = internalonnx.ErrMissingInitializer
	ErrInvalidTensor      = internalonnx.ErrInvalidTensor
)

// Import is an ONNX graph mapped to a Sequential model.
type Import[T tensor.Float] = internalonnx.Import[T]

// NodeError describes a graph node that could not be imported.
type NodeError = internalonnx.NodeError

// ModelProto is the decoded ONNX model.
type ModelProto = internalonnx.ModelProto

// ImportFile loads an ONNX file and maps its graph to layers.
func ImportFile[T tensor.Float](path string) (*Import[T], error) {
	return internalonnx.ImportFile[T](path)
}

// ImportBytes maps an in-memory ONNX model to layers.
func ImportBytes[T tensor.Float](data []byte) (*Import[T], error) {
	return internalonnx.ImportBytes[T](data)
}

// Parse decodes an ONNX model without importing it.
func Parse(data []byte) (*ModelProto, error) {
	return internalonnx.Parse(data)
}

// ParseFile decodes an ONNX file without importing it.
func ParseFile(path string) (*ModelProto, error) {
	return internalonnx.ParseFile(path)
}
