package onnx

import (
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// ParseFile parses an ONNX model from file.
//
//nolint:gosec // G304: Path is provided by user, file inclusion is intentional for ONNX model loading
func ParseFile(path string) (*ModelProto, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses an ONNX model from bytes.
func Parse(data []byte) (*ModelProto, error) {
	model := &ModelProto{}
	if err := readModelProto(data, model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return model, nil
}

// field is one encoded field of a message; raw holds the value bytes
// without the tag.
type field struct {
	num protowire.Number
	typ protowire.Type
	raw []byte
}

// walk calls visit for every field of the message encoded in b.
func walk(b []byte, visit func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(m))
		}
		if err := visit(field{num: num, typ: typ, raw: b[:m]}); err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		b = b[m:]
	}
	return nil
}

func (f field) expect(typ protowire.Type) error {
	if f.typ != typ {
		return fmt.Errorf("wire type %d, want %d", f.typ, typ)
	}
	return nil
}

func (f field) payload() ([]byte, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	v, n := protowire.ConsumeBytes(f.raw)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	return v, nil
}

func (f field) text() (string, error) {
	b, err := f.payload()
	return string(b), err
}

func (f field) varint() (uint64, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	v, n := protowire.ConsumeVarint(f.raw)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return v, nil
}

func (f field) i64() (int64, error) {
	v, err := f.varint()
	return int64(v), err //nolint:gosec // G115: int64 fields are two's complement varints
}

func (f field) i32() (int32, error) {
	v, err := f.varint()
	return int32(v), err //nolint:gosec // G115: ONNX enum and int32 fields fit in int32
}

// int64s decodes a repeated int64, packed or not.
func (f field) int64s() ([]int64, error) {
	if f.typ == protowire.VarintType {
		v, err := f.i64()
		return []int64{v}, err
	}
	b, err := f.payload()
	if err != nil {
		return nil, err
	}
	var out []int64
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, int64(v)) //nolint:gosec // G115: see i64
		b = b[n:]
	}
	return out, nil
}

// float32s decodes a repeated float, packed or not.
func (f field) float32s() ([]float32, error) {
	if f.typ == protowire.Fixed32Type {
		v, n := protowire.ConsumeFixed32(f.raw)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		return []float32{math.Float32frombits(v)}, nil
	}
	b, err := f.payload()
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("packed float length %d is not a multiple of 4", len(b))
	}
	out := make([]float32, 0, len(b)/4)
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed32(b)
		out = append(out, math.Float32frombits(v))
		b = b[n:]
	}
	return out, nil
}

// float64s decodes a repeated double, packed or not.
func (f field) float64s() ([]float64, error) {
	if f.typ == protowire.Fixed64Type {
		v, n := protowire.ConsumeFixed64(f.raw)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		return []float64{math.Float64frombits(v)}, nil
	}
	b, err := f.payload()
	if err != nil {
		return nil, err
	}
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("packed double length %d is not a multiple of 8", len(b))
	}
	out := make([]float64, 0, len(b)/8)
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed64(b)
		out = append(out, math.Float64frombits(v))
		b = b[n:]
	}
	return out, nil
}

// message decodes an embedded message with read.
func message[M any](f field, read func([]byte, *M) error) (M, error) {
	var m M
	b, err := f.payload()
	if err != nil {
		return m, err
	}
	err = read(b, &m)
	return m, err
}

func readModelProto(b []byte, m *ModelProto) error {
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1: // ir_version
			m.IRVersion, err = f.i64()
		case 2: // producer_name
			m.ProducerName, err = f.text()
		case 3: // producer_version
			m.ProducerVersion, err = f.text()
		case 7: // graph
			var g GraphProto
			g, err = message(f, readGraphProto)
			m.Graph = &g
		case 8: // opset_import
			var o OperatorSetID
			o, err = message(f, readOperatorSetID)
			m.OpsetImport = append(m.OpsetImport, o)
		}
		return err
	})
}

func readGraphProto(b []byte, m *GraphProto) error {
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1: // node
			var n NodeProto
			n, err = message(f, readNodeProto)
			m.Nodes = append(m.Nodes, n)
		case 2: // name
			m.Name, err = f.text()
		case 5: // initializer
			var t TensorProto
			t, err = message(f, readTensorProto)
			m.Initializers = append(m.Initializers, t)
		case 11: // input
			var vi ValueInfoProto
			vi, err = message(f, readValueInfoProto)
			m.Inputs = append(m.Inputs, vi)
		case 12: // output
			var vi ValueInfoProto
			vi, err = message(f, readValueInfoProto)
			m.Outputs = append(m.Outputs, vi)
		}
		return err
	})
}

func readNodeProto(b []byte, m *NodeProto) error {
	return walk(b, func(f field) error {
		var err error
		var s string
		switch f.num {
		case 1: // input
			s, err = f.text()
			m.Inputs = append(m.Inputs, s)
		case 2: // output
			s, err = f.text()
			m.Outputs = append(m.Outputs, s)
		case 3: // name
			m.Name, err = f.text()
		case 4: // op_type
			m.OpType, err = f.text()
		case 5: // attribute
			var a AttributeProto
			a, err = message(f, readAttributeProto)
			m.Attributes = append(m.Attributes, a)
		case 7: // domain
			m.Domain, err = f.text()
		}
		return err
	})
}

func readTensorProto(b []byte, m *TensorProto) error {
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1: // dims
			var dims []int64
			dims, err = f.int64s()
			m.Dims = append(m.Dims, dims...)
		case 2: // data_type
			m.DataType, err = f.i32()
		case 4: // float_data
			var v []float32
			v, err = f.float32s()
			m.FloatData = append(m.FloatData, v...)
		case 7: // int64_data
			var v []int64
			v, err = f.int64s()
			m.Int64Data = append(m.Int64Data, v...)
		case 8: // name
			m.Name, err = f.text()
		case 9: // raw_data
			m.RawData, err = f.payload()
		case 10: // double_data
			var v []float64
			v, err = f.float64s()
			m.DoubleData = append(m.DoubleData, v...)
		}
		return err
	})
}

func readValueInfoProto(b []byte, m *ValueInfoProto) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1: // name
			var err error
			m.Name, err = f.text()
			return err
		case 2: // type
			tb, err := f.payload()
			if err != nil {
				return err
			}
			return readTypeProto(tb, m)
		}
		return nil
	})
}

// readTypeProto flattens TypeProto.tensor_type into the value info.
func readTypeProto(b []byte, m *ValueInfoProto) error {
	return walk(b, func(f field) error {
		if f.num != 1 { // tensor_type
			return nil
		}
		tb, err := f.payload()
		if err != nil {
			return err
		}
		return walk(tb, func(f field) error {
			switch f.num {
			case 1: // elem_type
				var err error
				m.ElemType, err = f.i32()
				return err
			case 2: // shape
				sb, err := f.payload()
				if err != nil {
					return err
				}
				m.Dims = []DimensionProto{}
				return walk(sb, func(f field) error {
					if f.num != 1 { // dim
						return nil
					}
					d, err := message(f, readDimensionProto)
					m.Dims = append(m.Dims, d)
					return err
				})
			}
			return nil
		})
	})
}

func readDimensionProto(b []byte, m *DimensionProto) error {
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1: // dim_value
			m.DimValue, err = f.i64()
		case 2: // dim_param
			m.DimParam, err = f.text()
		}
		return err
	})
}

func readAttributeProto(b []byte, m *AttributeProto) error {
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1: // name
			m.Name, err = f.text()
		case 2: // f
			var v []float32
			if v, err = f.float32s(); err == nil && len(v) == 1 {
				m.F = v[0]
			}
		case 3: // i
			m.I, err = f.i64()
		case 4: // s
			m.S, err = f.payload()
		case 5: // t
			var t TensorProto
			t, err = message(f, readTensorProto)
			m.T = &t
		case 7: // floats
			var v []float32
			v, err = f.float32s()
			m.Floats = append(m.Floats, v...)
		case 8: // ints
			var v []int64
			v, err = f.int64s()
			m.Ints = append(m.Ints, v...)
		case 20: // type
			m.Type, err = f.i32()
		}
		return err
	})
}

func readOperatorSetID(b []byte, m *OperatorSetID) error {
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1: // domain
			m.Domain, err = f.text()
		case 2: // version
			m.Version, err = f.i64()
		}
		return err
	})
}
