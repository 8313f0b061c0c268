package onnx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// numElements returns the element count implied by dims.
func (t *TensorProto) numElements() (int, error) {
	n := 1
	for _, d := range t.Dims {
		if d < 0 {
			return 0, fmt.Errorf("%w: %q has negative dimension %d", ErrInvalidTensor, t.Name, d)
		}
		n *= int(d)
	}
	return n, nil
}

// Float64s decodes a float or double tensor.
func (t *TensorProto) Float64s() ([]float64, error) {
	n, err := t.numElements()
	if err != nil {
		return nil, err
	}

	var out []float64
	switch t.DataType {
	case TensorProtoFloat:
		switch {
		case len(t.RawData) > 0:
			if len(t.RawData) != 4*n {
				return nil, fmt.Errorf("%w: %q has %d raw bytes for %d floats", ErrInvalidTensor, t.Name, len(t.RawData), n)
			}
			out = make([]float64, n)
			for i := range out {
				out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(t.RawData[4*i:])))
			}
		default:
			out = make([]float64, len(t.FloatData))
			for i, v := range t.FloatData {
				out[i] = float64(v)
			}
		}
	case TensorProtoDouble:
		switch {
		case len(t.RawData) > 0:
			if len(t.RawData) != 8*n {
				return nil, fmt.Errorf("%w: %q has %d raw bytes for %d doubles", ErrInvalidTensor, t.Name, len(t.RawData), n)
			}
			out = make([]float64, n)
			for i := range out {
				out[i] = math.Float64frombits(binary.LittleEndian.Uint64(t.RawData[8*i:]))
			}
		default:
			out = append([]float64(nil), t.DoubleData...)
		}
	default:
		return nil, fmt.Errorf("%w: %q has data type %d, want float or double", ErrInvalidTensor, t.Name, t.DataType)
	}

	if len(out) != n {
		return nil, fmt.Errorf("%w: %q has %d values for shape %v", ErrInvalidTensor, t.Name, len(out), t.Dims)
	}
	return out, nil
}

// Int64s decodes an int64 tensor (Reshape shapes).
func (t *TensorProto) Int64s() ([]int64, error) {
	if t.DataType != TensorProtoInt64 {
		return nil, fmt.Errorf("%w: %q has data type %d, want int64", ErrInvalidTensor, t.Name, t.DataType)
	}
	if len(t.RawData) == 0 {
		return append([]int64(nil), t.Int64Data...), nil
	}
	if len(t.RawData)%8 != 0 {
		return nil, fmt.Errorf("%w: %q has %d raw bytes", ErrInvalidTensor, t.Name, len(t.RawData))
	}
	out := make([]int64, len(t.RawData)/8)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(t.RawData[8*i:])) //nolint:gosec // G115: two's complement
	}
	return out, nil
}

// toTensor converts a float initializer to a tensor of element type T with
// the given shape.
func toTensor[T tensor.Float](t *TensorProto, shape tensor.Shape) (*tensor.Tensor[T], error) {
	values, err := t.Float64s()
	if err != nil {
		return nil, err
	}
	data := make([]T, len(values))
	for i, v := range values {
		data[i] = T(v)
	}
	out, err := tensor.New(data, shape, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTensor, t.Name, err)
	}
	return out, nil
}

func dimsOf(t *TensorProto) tensor.Shape {
	shape := make(tensor.Shape, len(t.Dims))
	for i, d := range t.Dims {
		shape[i] = int(d)
	}
	return shape
}
