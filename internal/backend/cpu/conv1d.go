package cpu

import (
	"fmt"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Conv1D performs a 1-D cross-correlation with zero padding.
//
// Input shape:  [C_in, L_in]
// Weight shape: [C_out, C_in, K]
// Bias shape:   [C_out] or nil
// Output shape: [C_out, L_out]
//
// Algorithm:
//  1. Copy the input into a zero-padded buffer [C_in, L_in + 2*padding]
//  2. For every output position slide the (dilated) window over the buffer
//  3. Accumulate weight*input over input channels and kernel taps, add bias
//
// The output lives on the input's device.
func Conv1D[T tensor.Float](input, weight, bias *tensor.Tensor[T], stride, padding, dilation int) *tensor.Tensor[T] {
	inputShape := input.Shape()
	weightShape := weight.Shape()

	if len(inputShape) != 2 {
		panic(fmt.Sprintf("conv1d: input must be 2D [C,L], got %dD", len(inputShape)))
	}
	if len(weightShape) != 3 {
		panic(fmt.Sprintf("conv1d: weight must be 3D [C_out,C_in,K], got %dD", len(weightShape)))
	}
	mustPositive("conv1d", "stride", stride)
	mustPositive("conv1d", "dilation", dilation)

	CIn, LIn := inputShape[0], inputShape[1]
	COut, CInK, K := weightShape[0], weightShape[1], weightShape[2]

	if CIn != CInK {
		panic(fmt.Sprintf("conv1d: input channels %d != weight channels %d", CIn, CInK))
	}
	if bias != nil && bias.NumElements() != COut {
		panic(fmt.Sprintf("conv1d: bias has %d elements, want %d", bias.NumElements(), COut))
	}

	LOut := Conv1DOutputLength(LIn, K, stride, padding, dilation)
	if LOut <= 0 {
		panic(fmt.Sprintf("conv1d: invalid output length %d (check stride/padding/kernel)", LOut))
	}

	// Zero-padded copy of the input.
	LPad := LIn + 2*padding
	padded := make([]T, CIn*LPad)
	src := input.Data()
	for c := 0; c < CIn; c++ {
		copy(padded[c*LPad+padding:c*LPad+padding+LIn], src[c*LIn:(c+1)*LIn])
	}

	w := weight.Data()
	out := make([]T, COut*LOut)
	for co := 0; co < COut; co++ {
		var b T
		if bias != nil {
			b = bias.Data()[co]
		}
		for o := 0; o < LOut; o++ {
			sum := b
			start := o * stride
			for ci := 0; ci < CIn; ci++ {
				row := padded[ci*LPad : (ci+1)*LPad]
				taps := w[(co*CIn+ci)*K : (co*CIn+ci+1)*K]
				for k, wk := range taps {
					sum += wk * row[start+k*dilation]
				}
			}
			out[co*LOut+o] = sum
		}
	}

	result, err := tensor.New(out, tensor.Shape{COut, LOut}, input.Device())
	if err != nil {
		panic(fmt.Sprintf("conv1d: failed to create output tensor: %v", err))
	}
	return result
}
