// Copyright 2025 The nnetconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nnet

import (
	"io"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nnet"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/tensor"
)

// Errors returned by this package.
var (
	ErrNoDenseLayers   = nnet.ErrNoDenseLayers
	ErrUnexpectedLayer = nnet.ErrUnexpectedLayer
	ErrInconsistent    = nnet.ErrInconsistent
	ErrSyntax          = nnet.ErrSyntax
)

// TimestampLayout is the layout of the first comment line.
const TimestampLayout = nnet.TimestampLayout

// StructuralError describes an inconsistent or malformed document.
type StructuralError = nnet.StructuralError

// Options configures how a network is exported.
type Options = nnet.Options

// Header holds the integer fields of a .nnet document.
type Header = nnet.Header

// Document is an assembled .nnet file.
type Document = nnet.Document

// Stats is the normalization block of a .nnet document.
type Stats = nnet.Stats

// Network is a .nnet document loaded into memory.
type Network = nnet.Network

// DefaultOptions returns options with the neutral normalization block.
func DefaultOptions() Options {
	return nnet.DefaultOptions()
}

// DefaultStats returns the neutral normalization block for inputSize inputs.
func DefaultStats(inputSize int) *Stats {
	return nnet.DefaultStats(inputSize)
}

// Build assembles the .nnet document for export.
func Build[T tensor.Float](export *nn.Sequential[T], opts Options) (*Document, error) {
	return nnet.Build(export, opts)
}

// Save builds the document for export and writes it to path.
func Save[T tensor.Float](path string, export *nn.Sequential[T], opts Options) error {
	return nnet.Save(path, export, opts)
}

// StatsFromSamples computes the normalization block from input samples.
func StatsFromSamples[T tensor.Float](export *nn.Sequential[T], samples [][]float64) (*Stats, error) {
	return nnet.StatsFromSamples(export, samples)
}

// ReadSamples parses one sample per line from r.
func ReadSamples(r io.Reader) ([][]float64, error) {
	return nnet.ReadSamples(r)
}

// Read parses a .nnet document.
func Read(r io.Reader) (*Network, error) {
	return nnet.Read(r)
}

// FormatFloat returns the .nnet representation of v at the given bit size.
func FormatFloat(v float64, bitSize int) string {
	return nnet.FormatFloat(v, bitSize)
}
