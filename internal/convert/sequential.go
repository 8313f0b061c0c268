package convert

import (
	"errors"
	"fmt"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// shapeState tracks the flattened activation between layers during one
// rewrite.
type shapeState[T tensor.Float] struct {
	channels int
	probe    *tensor.Tensor[T] // zero input pushed through the dense layers
}

func (s *shapeState[T]) width() int {
	return s.probe.NumElements()
}

// length returns the per-channel length of the current activation.
func (s *shapeState[T]) length() (int, error) {
	w := s.width()
	if w%s.channels != 0 {
		return 0, fmt.Errorf("%w: width %d is not divisible by %d channels", ErrShapeMismatch, w, s.channels)
	}
	return w / s.channels, nil
}

// advance pushes the probe through a freshly built dense layer and checks
// that the declared output width matches.
func (s *shapeState[T]) advance(l *nn.Linear[T]) error {
	probe, err := l.Forward(s.probe)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	if probe.NumElements() != l.OutFeatures() {
		return fmt.Errorf("%w: layer declares %d outputs, probe has %d",
			ErrShapeMismatch, l.OutFeatures(), probe.NumElements())
	}
	s.probe = probe
	return nil
}

// Sequential rewrites model into an equivalent network made only of Linear
// and ReLU layers, for inputs of inputSize features.
//
// Layers are processed in order:
//   - Conv1D and AvgPool1D are replaced by their dense form for the current
//     per-channel length (width / channels)
//   - Linear is copied; its input features must equal the current width
//   - ReLU is re-created
//   - Flatten resets the channel count to 1 and emits nothing
//
// Any other layer kind fails with ErrUnsupportedLayer. On error no partial
// result is returned. Every returned layer owns its parameters and lives on
// device.
func Sequential[T tensor.Float](model *nn.Sequential[T], inputSize int, device tensor.Device) (*nn.Sequential[T], error) {
	if model == nil {
		return nil, &ConversionError{Index: -1, Kind: "Sequential", Details: "model is nil", Err: ErrUnsupportedLayer}
	}
	if inputSize < 1 {
		return nil, configError("Sequential", "input_size", "must be >= 1, got %d", inputSize)
	}

	state := &shapeState[T]{
		channels: 1,
		probe:    tensor.Zeros[T](tensor.Shape{inputSize}, device),
	}
	out := nn.NewSequential[T]()

	for i, layer := range model.Layers() {
		if err := rewriteLayer(state, out, layer, device); err != nil {
			return nil, atLayer(err, i, layer)
		}
	}

	return out, nil
}

func rewriteLayer[T tensor.Float](state *shapeState[T], out *nn.Sequential[T], layer nn.Layer[T], device tensor.Device) error {
	switch l := layer.(type) {
	case *nn.Conv1D[T]:
		length, err := state.length()
		if err != nil {
			return err
		}
		dense, err := Conv1DToLinear(l, length, device)
		if err != nil {
			return err
		}
		if err := state.advance(dense); err != nil {
			return err
		}
		state.channels = l.OutChannels()
		out.Add(dense)

	case *nn.AvgPool1D[T]:
		length, err := state.length()
		if err != nil {
			return err
		}
		dense, err := avgPool1DLayerToLinear(l, length, state.channels, device)
		if err != nil {
			return err
		}
		if err := state.advance(dense); err != nil {
			return err
		}
		out.Add(dense)

	case *nn.Linear[T]:
		if l.InFeatures() != state.width() {
			return fmt.Errorf("%w: in_features %d, current width %d", ErrShapeMismatch, l.InFeatures(), state.width())
		}
		dense, err := nn.NewLinearFromWeights(l.Weight().To(device), l.Bias().To(device))
		if err != nil {
			return err
		}
		if err := state.advance(dense); err != nil {
			return err
		}
		out.Add(dense)

	case *nn.ReLU[T]:
		out.Add(nn.NewReLU[T]())

	case *nn.Flatten[T]:
		state.channels = 1

	default:
		return ErrUnsupportedLayer
	}
	return nil
}

// atLayer attaches the source layer position and kind to err.
func atLayer[T tensor.Float](err error, index int, layer nn.Layer[T]) error {
	kind := "<nil>"
	if layer != nil {
		kind = layer.Kind().String()
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		ce.Index = index
		ce.Kind = kind
		return ce
	}
	return &ConversionError{Index: index, Kind: kind, Details: detailsOf(err), Err: err}
}

func detailsOf(err error) string {
	if errors.Is(err, ErrUnsupportedLayer) {
		return "only Conv1D, AvgPool1D, Linear, ReLU and Flatten can be converted"
	}
	return ""
}
