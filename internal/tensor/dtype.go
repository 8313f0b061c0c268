// Package tensor provides the small typed tensor used by layers and dense operators.
package tensor

import "unsafe"

// Float is a constraint for supported element types.
// Layers and operators are generic over it so precision is preserved end to end.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// BitSize returns the bit width, as expected by strconv.
func (dt DataType) BitSize() int {
	return dt.Size() * 8
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DataTypeOf infers DataType from a generic type T.
func DataTypeOf[T Float]() DataType {
	var dummy T
	if unsafe.Sizeof(dummy) == 4 {
		return Float32
	}
	return Float64
}
