// Package cpu implements the structured reference kernels for 1-D layers.
//
// These kernels compute convolution, average pooling, dense products and
// ReLU directly from their sliding-window definitions. They are the ground
// truth the dense conversions are checked against and share
// no index arithmetic with the dense builders.
package cpu

import "fmt"

// Conv1DOutputLength returns the output length of a 1-D convolution:
//
//	L_out = floor((L_in + 2*padding - dilation*(kernel-1) - 1) / stride) + 1
//
// The result may be zero or negative for invalid configurations; callers
// must check it.
func Conv1DOutputLength(inputLen, kernelSize, stride, padding, dilation int) int {
	num := inputLen + 2*padding - dilation*(kernelSize-1) - 1
	if num < 0 {
		return 0
	}
	return num/stride + 1
}

// AvgPool1DOutputLength returns the output length of a 1-D average pooling:
//
//	L_out = floor((L_in + 2*padding - kernel) / stride) + 1
func AvgPool1DOutputLength(inputLen, kernelSize, stride, padding int) int {
	num := inputLen + 2*padding - kernelSize
	if num < 0 {
		return 0
	}
	return num/stride + 1
}

func mustPositive(op, name string, v int) {
	if v <= 0 {
		panic(fmt.Sprintf("%s: invalid %s %d", op, name, v))
	}
}
