package cpu

import "github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"

// ReLU applies max(0, x) element-wise and returns a new tensor.
func ReLU[T tensor.Float](x *tensor.Tensor[T]) *tensor.Tensor[T] {
	result := x.Clone()
	data := result.Data()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return result
}
