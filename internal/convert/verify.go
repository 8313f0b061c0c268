package convert

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// CheckOptions configures Check.
type CheckOptions struct {
	Trials    int     // Number of random inputs
	Tolerance float64 // Maximum allowed absolute deviation
	Seed      int64   // Seed of the input generator
}

// DefaultCheckOptions returns 16 trials at tolerance 1e-4.
func DefaultCheckOptions() CheckOptions {
	return CheckOptions{
		Trials:    16,
		Tolerance: 1e-4,
		Seed:      1,
	}
}

// MaxAbsDiff runs input through model and its dense export and returns the
// largest absolute difference between the two flattened outputs.
func MaxAbsDiff[T tensor.Float](model, export *nn.Sequential[T], input *tensor.Tensor[T]) (float64, error) {
	want, err := model.Forward(input)
	if err != nil {
		return 0, fmt.Errorf("source model: %w", err)
	}
	got, err := export.Forward(input.Flatten())
	if err != nil {
		return 0, fmt.Errorf("dense network: %w", err)
	}
	if want.NumElements() != got.NumElements() {
		return 0, fmt.Errorf("%w: source produces %d outputs, dense network %d",
			ErrShapeMismatch, want.NumElements(), got.NumElements())
	}
	return floats.Distance(toFloat64(want.Data()), toFloat64(got.Data()), math.Inf(1)), nil
}

// Check compares model and export on random N(0, 1) inputs of inputSize
// features and returns the worst deviation observed.
//
// Returns an error wrapping ErrNotEquivalent if any deviation exceeds
// opts.Tolerance.
func Check[T tensor.Float](model, export *nn.Sequential[T], inputSize int, opts CheckOptions) (float64, error) {
	if opts.Trials < 1 {
		return 0, fmt.Errorf("check: invalid trial count %d", opts.Trials)
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	worst := 0.0
	for i := 0; i < opts.Trials; i++ {
		input := tensor.Randn[T](tensor.Shape{inputSize}, tensor.CPU, rng)
		diff, err := MaxAbsDiff(model, export, input)
		if err != nil {
			return 0, err
		}
		worst = math.Max(worst, diff)
		if diff > opts.Tolerance {
			return worst, fmt.Errorf("%w: trial %d: max deviation %g > %g", ErrNotEquivalent, i, diff, opts.Tolerance)
		}
	}
	return worst, nil
}

func toFloat64[T tensor.Float](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}
