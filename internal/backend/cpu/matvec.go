package cpu

import (
	"fmt"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Linear computes y = W·x + b over the last dimension of x.
//
// Weight shape: [out, in]
// Bias shape:   [out] or nil
// Input shape:  [in] or [rows, in]
// Output shape: [out] or [rows, out]
func Linear[T tensor.Float](input, weight, bias *tensor.Tensor[T]) *tensor.Tensor[T] {
	weightShape := weight.Shape()
	if len(weightShape) != 2 {
		panic(fmt.Sprintf("linear: weight must be 2D [out,in], got %dD", len(weightShape)))
	}
	outF, inF := weightShape[0], weightShape[1]

	inputShape := input.Shape()
	if len(inputShape) == 0 || inputShape[len(inputShape)-1] != inF {
		panic(fmt.Sprintf("linear: input shape %v incompatible with weight [%d,%d]", inputShape, outF, inF))
	}
	if bias != nil && bias.NumElements() != outF {
		panic(fmt.Sprintf("linear: bias has %d elements, want %d", bias.NumElements(), outF))
	}

	rows := input.NumElements() / inF
	x := input.Data()
	w := weight.Data()
	out := make([]T, rows*outF)

	for r := 0; r < rows; r++ {
		xr := x[r*inF : (r+1)*inF]
		for i := 0; i < outF; i++ {
			var sum T
			if bias != nil {
				sum = bias.Data()[i]
			}
			wi := w[i*inF : (i+1)*inF]
			for j, xj := range xr {
				sum += wi[j] * xj
			}
			out[r*outF+i] = sum
		}
	}

	outShape := inputShape.Clone()
	outShape[len(outShape)-1] = outF
	result, err := tensor.New(out, outShape, input.Device())
	if err != nil {
		panic(fmt.Sprintf("linear: failed to create output tensor: %v", err))
	}
	return result
}
