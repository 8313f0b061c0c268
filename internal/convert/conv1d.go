package convert

import (
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/backend/cpu"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/parallel"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// rowConfig controls how the transformers split dense rows across goroutines.
var rowConfig = parallel.DefaultConfig()

// Conv1DToLinear materializes a Conv1D layer as a dense Linear layer for a
// fixed per-channel input length.
//
// The returned layer maps a channel-major flattened input of
// in_channels*inputSize features to out_channels*L_out features, where
//
//	L_out = (inputSize + 2*padding - dilation*(kernel-1) - 1) / stride + 1
//
// Weight and bias are allocated on device with the precision of T. A
// missing convolution bias is treated as zeros.
//
// Returns a *ConversionError wrapping ErrUnsupportedConfig for grouped
// convolutions, invalid hyperparameters or an empty output.
func Conv1DToLinear[T tensor.Float](conv *nn.Conv1D[T], inputSize int, device tensor.Device) (*nn.Linear[T], error) {
	if err := checkConv1D(conv, inputSize); err != nil {
		return nil, err
	}

	cIn := conv.InChannels()
	cOut := conv.OutChannels()
	k := conv.KernelSize()
	stride, padding, dilation := conv.Stride(), conv.Padding(), conv.Dilation()
	lIn := inputSize
	lOut := cpu.Conv1DOutputLength(lIn, k, stride, padding, dilation)

	inFeatures := cIn * lIn
	outFeatures := cOut * lOut

	w := make([]T, outFeatures*inFeatures)
	b := make([]T, outFeatures)
	kernel := conv.Weight().Data() // [C_out, C_in, K]

	var bias []T
	if conv.Bias() != nil {
		bias = conv.Bias().Data()
	}

	parallel.Rows(cOut, lOut, func(co, o int) {
		row := co*lOut + o
		if bias != nil {
			b[row] = bias[co]
		}
		for ci := 0; ci < cIn; ci++ {
			for kk := 0; kk < k; kk++ {
				pos := o*stride + kk*dilation - padding
				if pos < 0 || pos >= lIn {
					continue
				}
				w[row*inFeatures+ci*lIn+pos] = kernel[(co*cIn+ci)*k+kk]
			}
		}
	}, rowConfig)

	return newLinear(w, b, outFeatures, inFeatures, device)
}

// SingleChannelConv1DToLinear is Conv1DToLinear restricted to convolutions
// with exactly one input channel.
func SingleChannelConv1DToLinear[T tensor.Float](conv *nn.Conv1D[T], inputSize int, device tensor.Device) (*nn.Linear[T], error) {
	if conv != nil && conv.InChannels() != 1 {
		return nil, configError(nn.KindConv1D.String(), "in_channels",
			"single-channel variant requires 1 input channel, got %d", conv.InChannels())
	}
	return Conv1DToLinear(conv, inputSize, device)
}

func checkConv1D[T tensor.Float](conv *nn.Conv1D[T], inputSize int) error {
	kind := nn.KindConv1D.String()
	switch {
	case conv == nil:
		return configError(kind, "", "layer is nil")
	case conv.Groups() != 1:
		return configError(kind, "groups", "grouped convolution is not supported (groups=%d)", conv.Groups())
	case conv.Dilation() < 1:
		return configError(kind, "dilation", "must be >= 1, got %d", conv.Dilation())
	case conv.Stride() < 1:
		return configError(kind, "stride", "must be >= 1, got %d", conv.Stride())
	case conv.Padding() < 0:
		return configError(kind, "padding", "must be >= 0, got %d", conv.Padding())
	case inputSize < 1:
		return configError(kind, "input_size", "must be >= 1, got %d", inputSize)
	}
	if lOut := conv.OutputLength(inputSize); lOut < 1 {
		return configError(kind, "kernel_size",
			"kernel %d (dilation %d, padding %d) does not fit input length %d",
			conv.KernelSize(), conv.Dilation(), conv.Padding(), inputSize)
	}
	return nil
}

// newLinear wraps freshly built buffers in a Linear layer on device.
func newLinear[T tensor.Float](w, b []T, out, in int, device tensor.Device) (*nn.Linear[T], error) {
	weight, err := tensor.New(w, tensor.Shape{out, in}, device)
	if err != nil {
		return nil, err
	}
	bias, err := tensor.New(b, tensor.Shape{out}, device)
	if err != nil {
		return nil, err
	}
	return nn.NewLinearFromWeights(weight, bias)
}
