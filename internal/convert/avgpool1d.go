package convert

import (
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/backend/cpu"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/parallel"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// AvgPool1DToLinear materializes 1-D average pooling as a dense Linear
// layer. Each of the channels channels of length inputSize is pooled
// independently.
//
// kernel, stride and padding accept the scalar or 1-element sequence form.
// An unset stride defaults to the kernel size and an unset padding to 0.
//
// Every valid window position contributes 1/kernel, so windows overlapping
// the padding are still divided by the full kernel size. This matches
// PyTorch's count_include_pad=True and understates the mean of the valid
// elements near the edges. Bias is zero.
func AvgPool1DToLinear[T tensor.Float](
	kernel, stride, padding nn.IntOrSeq,
	inputSize, channels int,
	device tensor.Device,
) (*nn.Linear[T], error) {
	k, s, p, err := normalizePool(kernel, stride, padding)
	if err != nil {
		return nil, err
	}
	if err := checkAvgPool1D(k, s, p, inputSize, channels); err != nil {
		return nil, err
	}

	lIn := inputSize
	lOut := cpu.AvgPool1DOutputLength(lIn, k, s, p)
	inFeatures := channels * lIn
	outFeatures := channels * lOut

	w := make([]T, outFeatures*inFeatures)
	share := T(1) / T(k)
	parallel.Rows(channels, lOut, func(c, o int) {
		row := c*lOut + o
		for kk := 0; kk < k; kk++ {
			pos := o*s + kk - p
			if pos < 0 || pos >= lIn {
				continue
			}
			w[row*inFeatures+c*lIn+pos] += share
		}
	}, rowConfig)

	return newLinear(w, make([]T, outFeatures), outFeatures, inFeatures, device)
}

// avgPool1DLayerToLinear converts a pooling layer of the model.
func avgPool1DLayerToLinear[T tensor.Float](pool *nn.AvgPool1D[T], inputSize, channels int, device tensor.Device) (*nn.Linear[T], error) {
	return AvgPool1DToLinear[T](
		nn.IntOrSeq{pool.KernelSize()},
		nn.IntOrSeq{pool.Stride()},
		nn.IntOrSeq{pool.Padding()},
		inputSize, channels, device,
	)
}

func normalizePool(kernel, stride, padding nn.IntOrSeq) (k, s, p int, err error) {
	kind := nn.KindAvgPool1D.String()
	if len(kernel) == 0 {
		return 0, 0, 0, configError(kind, "kernel_size", "must be set")
	}
	if k, err = kernel.Normalize(0); err != nil {
		return 0, 0, 0, configError(kind, "kernel_size", "%v", err)
	}
	if s, err = stride.Normalize(k); err != nil {
		return 0, 0, 0, configError(kind, "stride", "%v", err)
	}
	if p, err = padding.Normalize(0); err != nil {
		return 0, 0, 0, configError(kind, "padding", "%v", err)
	}
	return k, s, p, nil
}

func checkAvgPool1D(k, s, p, inputSize, channels int) error {
	kind := nn.KindAvgPool1D.String()
	switch {
	case k < 1:
		return configError(kind, "kernel_size", "must be >= 1, got %d", k)
	case s < 1:
		return configError(kind, "stride", "must be >= 1, got %d", s)
	case p < 0:
		return configError(kind, "padding", "must be >= 0, got %d", p)
	case channels < 1:
		return configError(kind, "channels", "must be >= 1, got %d", channels)
	case inputSize < 1:
		return configError(kind, "input_size", "must be >= 1, got %d", inputSize)
	}
	if cpu.AvgPool1DOutputLength(inputSize, k, s, p) < 1 {
		return configError(kind, "kernel_size",
			"kernel %d (padding %d) does not fit input length %d", k, p, inputSize)
	}
	return nil
}
