package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Tensor is a dense, row-major, generically typed tensor.
//
// Tensors in this module have rank 1 ([features]) or rank 2
// ([channels, length]). Rank 2 data is stored channel-major, so the
// flattened index of (c, pos) is c*length + pos.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{3, 20}, tensor.CPU)
//	flat := x.Flatten() // shape [60], shares data
type Tensor[T Float] struct {
	shape  Shape
	data   []T
	device Device
}

// New creates a tensor that takes ownership of data.
//
// Returns an error if the shape is invalid or does not match len(data).
func New[T Float](data []T, shape Shape, device Device) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Tensor[T]{
		shape:  shape.Clone(),
		data:   data,
		device: device,
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T Float](data []T, shape Shape, device Device) (*Tensor[T], error) {
	buf := make([]T, len(data))
	copy(buf, data)
	return New(buf, shape, device)
}

// Zeros creates a zero-filled tensor.
//
// Panics if the shape is invalid.
func Zeros[T Float](shape Shape, device Device) *Tensor[T] {
	t, err := New(make([]T, shape.NumElements()), shape, device)
	if err != nil {
		panic(fmt.Sprintf("tensor.Zeros: %v", err))
	}
	return t
}

// Randn creates a tensor with values drawn from N(0, 1).
//
// The caller supplies the random source so results are reproducible.
func Randn[T Float](shape Shape, device Device, rng *rand.Rand) *Tensor[T] {
	t := Zeros[T](shape, device)
	for i := 0; i < len(t.data); i += 2 {
		// Box-Muller transform.
		u1 := 1.0 - rng.Float64()
		u2 := rng.Float64()
		r := math.Sqrt(-2.0 * math.Log(u1))
		t.data[i] = T(r * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(t.data) {
			t.data[i+1] = T(r * math.Sin(2.0*math.Pi*u2))
		}
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.shape
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// Data returns the underlying data slice (no copy).
func (t *Tensor[T]) Data() []T {
	return t.data
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return DataTypeOf[T]()
}

// Device returns the tensor's compute device.
func (t *Tensor[T]) Device() Device {
	return t.device
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return len(t.data)
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[T]) At(idx ...int) T {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor.At: expected %d indices, got %d", len(t.shape), len(idx)))
	}
	offset := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			panic(fmt.Sprintf("tensor.At: index %d out of range for dimension %d of size %d", v, i, t.shape[i]))
		}
		offset = offset*t.shape[i] + v
	}
	return t.data[offset]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	data := make([]T, len(t.data))
	copy(data, t.data)
	return &Tensor[T]{
		shape:  t.shape.Clone(),
		data:   data,
		device: t.device,
	}
}

// To returns a deep copy placed on the given device.
func (t *Tensor[T]) To(device Device) *Tensor[T] {
	c := t.Clone()
	c.device = device
	return c
}

// Reshape returns a tensor with a new shape sharing the same data.
//
// Panics if the element count changes.
func (t *Tensor[T]) Reshape(shape ...int) *Tensor[T] {
	s := Shape(shape)
	if s.NumElements() != len(t.data) {
		panic(fmt.Sprintf("tensor.Reshape: cannot reshape %v into %v", t.shape, s))
	}
	return &Tensor[T]{
		shape:  s.Clone(),
		data:   t.data,
		device: t.device,
	}
}

// Flatten returns a rank 1 view of the tensor in channel-major order.
func (t *Tensor[T]) Flatten() *Tensor[T] {
	return t.Reshape(len(t.data))
}

// String returns a short description of the tensor.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor(shape=%v, dtype=%s, device=%s)", t.shape, t.DType(), t.device)
}
