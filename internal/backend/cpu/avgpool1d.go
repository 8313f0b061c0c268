package cpu

import (
	"fmt"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// AvgPool1D performs 1-D average pooling with zero padding.
//
// Input shape:  [C, L_in]
// Output shape: [C, L_out]
//
// When countIncludePad is true every window is divided by kernelSize, so
// padded positions count as zeros in the mean. This matches PyTorch's
// AvgPool1d default. When false, each window is divided by the number of
// real (non-padded) positions it covers.
func AvgPool1D[T tensor.Float](input *tensor.Tensor[T], kernelSize, stride, padding int, countIncludePad bool) *tensor.Tensor[T] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("avgpool1d: input must be 2D [C,L], got %dD", len(inputShape)))
	}
	mustPositive("avgpool1d", "kernel size", kernelSize)
	mustPositive("avgpool1d", "stride", stride)

	C, LIn := inputShape[0], inputShape[1]
	LOut := AvgPool1DOutputLength(LIn, kernelSize, stride, padding)
	if LOut <= 0 {
		panic(fmt.Sprintf("avgpool1d: invalid output length %d (check stride/padding/kernel)", LOut))
	}

	src := input.Data()
	out := make([]T, C*LOut)
	for c := 0; c < C; c++ {
		row := src[c*LIn : (c+1)*LIn]
		for o := 0; o < LOut; o++ {
			start := o*stride - padding
			var sum T
			count := 0
			for pos := start; pos < start+kernelSize; pos++ {
				if pos >= 0 && pos < LIn {
					sum += row[pos]
					count++
				}
			}
			divisor := kernelSize
			if !countIncludePad {
				divisor = count
			}
			if divisor > 0 {
				out[c*LOut+o] = sum / T(divisor)
			}
		}
	}

	result, err := tensor.New(out, tensor.Shape{C, LOut}, input.Device())
	if err != nil {
		panic(fmt.Sprintf("avgpool1d: failed to create output tensor: %v", err))
	}
	return result
}
