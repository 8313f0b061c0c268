package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func floatTensor(name string, dims []uint64, values []float32) []byte {
	var b []byte
	for _, d := range dims {
		b = appendVarint(b, 1, d)
	}
	b = appendVarint(b, 2, 1)
	b = appendString(b, 8, name)
	var packed []byte
	for _, v := range values {
		packed = protowire.AppendFixed32(packed, math.Float32bits(v))
	}
	return appendMessage(b, 4, packed)
}

func gemm(in, weight, bias, out string) []byte {
	transB := appendString(nil, 1, "transB")
	transB = appendVarint(transB, 3, 1)
	transB = appendVarint(transB, 20, 2)

	b := appendString(nil, 1, in)
	b = appendString(b, 1, weight)
	b = appendString(b, 1, bias)
	b = appendString(b, 2, out)
	b = appendString(b, 4, "Gemm")
	return appendMessage(b, 5, transB)
}

// writeModel writes y = [1 1]·relu([[1 0] [0 -1]]·x) + 0.5 as ONNX.
func writeModel(t *testing.T, dir string, inputDims ...uint64) string {
	t.Helper()

	relu := appendString(nil, 1, "h")
	relu = appendString(relu, 2, "r")
	relu = appendString(relu, 4, "Relu")

	var shape []byte
	for _, d := range inputDims {
		shape = appendMessage(shape, 1, appendVarint(nil, 1, d))
	}
	tensorType := appendVarint(nil, 1, 1)
	tensorType = appendMessage(tensorType, 2, shape)
	input := appendString(nil, 1, "x")
	input = appendMessage(input, 2, appendMessage(nil, 1, tensorType))

	var graph []byte
	graph = appendMessage(graph, 1, gemm("x", "w1", "b1", "h"))
	graph = appendMessage(graph, 1, relu)
	graph = appendMessage(graph, 1, gemm("r", "w2", "b2", "y"))
	graph = appendMessage(graph, 5, floatTensor("w1", []uint64{2, 2}, []float32{1, 0, 0, -1}))
	graph = appendMessage(graph, 5, floatTensor("b1", []uint64{2}, []float32{0, 0}))
	graph = appendMessage(graph, 5, floatTensor("w2", []uint64{1, 2}, []float32{1, 1}))
	graph = appendMessage(graph, 5, floatTensor("b2", []uint64{1}, []float32{0.5}))
	graph = appendMessage(graph, 11, input)
	graph = appendMessage(graph, 12, appendString(nil, 1, "y"))

	model := appendString(nil, 2, "test")
	model = appendMessage(model, 7, graph)

	path := filepath.Join(dir, "net.onnx")
	require.NoError(t, os.WriteFile(path, model, 0o600))
	return path
}

// TestConvertAndInspect runs both subcommands on a small dense network.
func TestConvertAndInspect(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir, 1, 2)
	samples := filepath.Join(dir, "samples.csv")
	require.NoError(t, os.WriteFile(samples, []byte("# x0,x1\n1,2\n3,4\n"), 0o600))

	var out bytes.Buffer
	err := runConvert([]string{"-model", model, "-verify", "-data", samples, "-comment", "two inputs"}, &out)
	require.NoError(t, err)

	nnetPath := filepath.Join(dir, "net.nnet")
	assert.Equal(t, "wrote "+nnetPath+"\n", out.String())

	out.Reset()
	err = runInspect([]string{"-nnet", nnetPath, "-eval", "2, 3"}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "// two inputs\n")
	assert.Contains(t, text, "Layers:         2\n")
	assert.Contains(t, text, "Input size:     2\n")
	assert.Contains(t, text, "Output size:    1\n")
	assert.Contains(t, text, "Output:         2.5\n")
}

// TestConvert_Float64AndOutPath tests -f64, -out, and -input-size.
func TestConvert_Float64AndOutPath(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	target := filepath.Join(dir, "custom.nnet")

	var out bytes.Buffer
	err := runConvert([]string{"-model", model, "-f64", "-input-size", "2", "-out", target}, &out)
	require.NoError(t, err)
	assert.FileExists(t, target)
}

// TestConvert_Errors tests argument validation.
func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := runConvert(nil, &out)
	assert.ErrorContains(t, err, "-model is required")

	err = runConvert([]string{"-model", writeModel(t, dir)}, &out)
	assert.ErrorContains(t, err, "set -input-size")

	err = runConvert([]string{"-model", filepath.Join(dir, "missing.onnx")}, &out)
	assert.Error(t, err)

	err = runConvert([]string{"-bogus"}, &out)
	assert.Error(t, err)
}

// TestInspect_Errors tests argument validation.
func TestInspect_Errors(t *testing.T) {
	var out bytes.Buffer

	err := runInspect(nil, &out)
	assert.ErrorContains(t, err, "-nnet is required")

	bad := filepath.Join(t.TempDir(), "bad.nnet")
	require.NoError(t, os.WriteFile(bad, []byte("not a network"), 0o600))
	err = runInspect([]string{"-nnet", bad}, &out)
	assert.Error(t, err)

	_, err = parseVector("1,x")
	assert.Error(t, err)
}
