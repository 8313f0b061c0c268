package onnx_test

import (
	"encoding/binary"
	"math"
	"math/rand"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers follow onnx.proto.

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendVarint(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendPackedInts(b []byte, num protowire.Number, vs []int64) []byte {
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	return appendMessage(b, num, packed)
}

func attrInts(name string, vs ...int64) []byte {
	b := appendString(nil, 1, name)
	b = appendPackedInts(b, 8, vs)
	return appendVarint(b, 20, 7)
}

func attrInt(name string, v int64) []byte {
	b := appendString(nil, 1, name)
	b = appendVarint(b, 3, v)
	return appendVarint(b, 20, 2)
}

func attrFloat(name string, v float32) []byte {
	b := appendString(nil, 1, name)
	b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(v))
	return appendVarint(b, 20, 1)
}

func attrString(name, v string) []byte {
	b := appendString(nil, 1, name)
	b = appendString(b, 4, v)
	return appendVarint(b, 20, 3)
}

// rawTensor encodes a float tensor through raw_data.
func rawTensor(name string, dims []int64, values []float32) []byte {
	b := appendPackedInts(nil, 1, dims)
	b = appendVarint(b, 2, 1)
	b = appendString(b, 8, name)
	raw := make([]byte, 0, 4*len(values))
	for _, v := range values {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(v))
	}
	return appendMessage(b, 9, raw)
}

// floatDataTensor encodes a float tensor through unpacked float_data and
// unpacked dims.
func floatDataTensor(name string, dims []int64, values []float32) []byte {
	var b []byte
	for _, d := range dims {
		b = appendVarint(b, 1, d)
	}
	b = appendVarint(b, 2, 1)
	b = appendString(b, 8, name)
	for _, v := range values {
		b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(v))
	}
	return b
}

// doubleTensor encodes a double tensor through packed double_data.
func doubleTensor(name string, dims []int64, values []float64) []byte {
	b := appendPackedInts(nil, 1, dims)
	b = appendVarint(b, 2, 11)
	b = appendString(b, 8, name)
	var packed []byte
	for _, v := range values {
		packed = protowire.AppendFixed64(packed, math.Float64bits(v))
	}
	return appendMessage(b, 10, packed)
}

func int64Tensor(name string, values ...int64) []byte {
	b := appendPackedInts(nil, 1, []int64{int64(len(values))})
	b = appendVarint(b, 2, 7)
	b = appendString(b, 8, name)
	return appendPackedInts(b, 7, values)
}

// graphBuilder assembles an encoded ModelProto.
type graphBuilder struct {
	nodes   [][]byte
	inits   [][]byte
	inputs  [][]byte
	outputs [][]byte
}

func (g *graphBuilder) node(op string, inputs, outputs []string, attrs ...[]byte) *graphBuilder {
	var b []byte
	for _, in := range inputs {
		b = appendString(b, 1, in)
	}
	for _, out := range outputs {
		b = appendString(b, 2, out)
	}
	b = appendString(b, 3, op+"_"+outputs[0])
	b = appendString(b, 4, op)
	for _, a := range attrs {
		b = appendMessage(b, 5, a)
	}
	g.nodes = append(g.nodes, b)
	return g
}

func (g *graphBuilder) init(tensor []byte) *graphBuilder {
	g.inits = append(g.inits, tensor)
	return g
}

func (g *graphBuilder) floats(name string, dims []int64, values []float32) *graphBuilder {
	return g.init(rawTensor(name, dims, values))
}

// input declares a graph input; a negative dim is encoded as a dim_param.
func (g *graphBuilder) input(name string, dims ...int64) *graphBuilder {
	g.inputs = append(g.inputs, valueInfo(name, dims))
	return g
}

func (g *graphBuilder) output(name string) *graphBuilder {
	g.outputs = append(g.outputs, valueInfo(name, nil))
	return g
}

func valueInfo(name string, dims []int64) []byte {
	var shape []byte
	for _, d := range dims {
		var dim []byte
		if d < 0 {
			dim = appendString(nil, 2, "batch")
		} else {
			dim = appendVarint(nil, 1, d)
		}
		shape = appendMessage(shape, 1, dim)
	}
	tt := appendVarint(nil, 1, 1)
	if dims != nil {
		tt = appendMessage(tt, 2, shape)
	}
	typ := appendMessage(nil, 1, tt)

	b := appendString(nil, 1, name)
	return appendMessage(b, 2, typ)
}

func (g *graphBuilder) bytes() []byte {
	var graph []byte
	for _, n := range g.nodes {
		graph = appendMessage(graph, 1, n)
	}
	graph = appendString(graph, 2, "test_graph")
	for _, t := range g.inits {
		graph = appendMessage(graph, 5, t)
	}
	for _, vi := range g.inputs {
		graph = appendMessage(graph, 11, vi)
	}
	for _, vi := range g.outputs {
		graph = appendMessage(graph, 12, vi)
	}

	model := appendVarint(nil, 1, 8)
	model = appendString(model, 2, "pytorch")
	model = appendString(model, 3, "2.1.0")
	model = appendMessage(model, 7, graph)
	opset := appendString(nil, 1, "")
	opset = appendVarint(opset, 2, 13)
	return appendMessage(model, 8, opset)
}

func randomValues(n int, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(rng.NormFloat64())
	}
	return out
}
