package onnx

import (
	"fmt"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Import is an ONNX graph mapped to a Sequential model.
type Import[T tensor.Float] struct {
	Model *nn.Sequential[T]

	InputName  string
	InputShape []int64 // -1 for dynamic dimensions, nil if unknown
	InputSize  int     // last input dimension, 0 if unknown or dynamic

	Producer string
	Opset    int64
}

// ImportFile parses the ONNX file at path and maps its graph to layers.
//
// Example:
//
//	imp, err := onnx.ImportFile[float32]("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	export, err := convert.Sequential(imp.Model, imp.InputSize, tensor.CPU)
func ImportFile[T tensor.Float](path string) (*Import[T], error) {
	proto, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ONNX file: %w", err)
	}
	return FromProto[T](proto)
}

// ImportBytes parses an ONNX model from bytes and maps its graph to layers.
func ImportBytes[T tensor.Float](data []byte) (*Import[T], error) {
	proto, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ONNX data: %w", err)
	}
	return FromProto[T](proto)
}

// FromProto maps a parsed model to layers.
//
// The graph must be a chain: every node consumes the previous node's output
// (plus initializers). Supported operators:
//   - Conv (1-D), AveragePool (1-D)
//   - Gemm, MatMul optionally followed by Add
//   - Relu, Flatten, Reshape to a vector
//   - Identity, Dropout (skipped)
//
// Any other operator fails with ErrUnsupportedOp.
func FromProto[T tensor.Float](proto *ModelProto) (*Import[T], error) {
	if proto == nil || proto.Graph == nil {
		return nil, fmt.Errorf("%w: model has no graph", ErrUnsupportedGraph)
	}
	g := proto.Graph

	imp := &importer[T]{inits: make(map[string]*TensorProto, len(g.Initializers))}
	for i := range g.Initializers {
		imp.inits[g.Initializers[i].Name] = &g.Initializers[i]
	}

	out := &Import[T]{
		Producer: proto.ProducerName,
		Opset:    proto.Opset(),
	}
	for _, in := range g.Inputs {
		if _, ok := imp.inits[in.Name]; ok {
			continue
		}
		out.InputName = in.Name
		if in.Dims != nil {
			out.InputShape = make([]int64, len(in.Dims))
			for i, d := range in.Dims {
				out.InputShape[i] = -1
				if d.DimParam == "" && d.DimValue > 0 {
					out.InputShape[i] = d.DimValue
				}
			}
			if n := len(out.InputShape); n > 0 && out.InputShape[n-1] > 0 {
				out.InputSize = int(out.InputShape[n-1])
			}
		}
		break
	}
	if out.InputName == "" {
		return nil, fmt.Errorf("%w: graph has no data input", ErrUnsupportedGraph)
	}
	imp.current = out.InputName

	for i := range g.Nodes {
		node := &g.Nodes[i]
		if err := imp.visit(node); err != nil {
			return nil, &NodeError{Index: i, Name: node.Name, OpType: node.OpType, Details: detailsOf(err), Err: sentinelOf(err)}
		}
	}

	if len(g.Outputs) > 0 && g.Outputs[0].Name != imp.current {
		return nil, fmt.Errorf("%w: graph output %q is not produced by the last node (%q)",
			ErrUnsupportedGraph, g.Outputs[0].Name, imp.current)
	}

	out.Model = nn.NewSequential(imp.layers...)
	return out, nil
}

// importer walks a chain graph and accumulates layers.
type importer[T tensor.Float] struct {
	inits   map[string]*TensorProto
	current string // name of the value flowing along the chain
	layers  []nn.Layer[T]
	matmul  *nn.Linear[T] // last layer if it came from a bias-less MatMul
}

// nodeErr pairs a sentinel with details for NodeError.
type nodeErr struct {
	err     error
	details string
}

func (e *nodeErr) Error() string { return fmt.Sprintf("%v: %s", e.err, e.details) }

func (e *nodeErr) Unwrap() error { return e.err }

func fail(err error, format string, args ...any) error {
	return &nodeErr{err: err, details: fmt.Sprintf(format, args...)}
}

func sentinelOf(err error) error {
	if ne, ok := err.(*nodeErr); ok {
		return ne.err
	}
	return err
}

func detailsOf(err error) string {
	if ne, ok := err.(*nodeErr); ok {
		return ne.details
	}
	return ""
}

func (imp *importer[T]) init(node *NodeProto, i int) (*TensorProto, error) {
	if i >= len(node.Inputs) || node.Inputs[i] == "" {
		return nil, fail(ErrMissingInitializer, "input %d is absent", i)
	}
	t, ok := imp.inits[node.Inputs[i]]
	if !ok {
		return nil, fail(ErrMissingInitializer, "input %d (%q) is not an initializer", i, node.Inputs[i])
	}
	return t, nil
}

func (imp *importer[T]) optionalInit(node *NodeProto, i int) (*TensorProto, error) {
	if i >= len(node.Inputs) || node.Inputs[i] == "" {
		return nil, nil
	}
	return imp.init(node, i)
}

func (imp *importer[T]) push(node *NodeProto, layer nn.Layer[T]) {
	if layer != nil {
		imp.layers = append(imp.layers, layer)
	}
	imp.current = node.Outputs[0]
}

//nolint:gocyclo,cyclop // One case per supported operator
func (imp *importer[T]) visit(node *NodeProto) error {
	if node.Domain != "" && node.Domain != "ai.onnx" {
		return fail(ErrUnsupportedOp, "custom domain %q", node.Domain)
	}
	if len(node.Outputs) == 0 {
		return fail(ErrUnsupportedGraph, "node has no outputs")
	}

	if node.OpType == "Add" {
		return imp.visitAdd(node)
	}
	if len(node.Inputs) == 0 || node.Inputs[0] != imp.current {
		return fail(ErrUnsupportedGraph, "expected input %q, graph is not a chain", imp.current)
	}
	imp.matmul = nil

	switch node.OpType {
	case "Conv":
		layer, err := convLayer[T](imp, node)
		if err != nil {
			return err
		}
		imp.push(node, layer)
	case "AveragePool":
		layer, err := avgPoolLayer[T](node)
		if err != nil {
			return err
		}
		imp.push(node, layer)
	case "Gemm":
		layer, err := gemmLayer[T](imp, node)
		if err != nil {
			return err
		}
		imp.push(node, layer)
	case "MatMul":
		layer, err := matMulLayer[T](imp, node)
		if err != nil {
			return err
		}
		imp.push(node, layer)
		imp.matmul = layer
	case "Relu":
		imp.push(node, nn.NewReLU[T]())
	case "Flatten":
		imp.push(node, nn.NewFlatten[T]())
	case "Reshape":
		if err := checkFlatReshape(imp, node); err != nil {
			return err
		}
		imp.push(node, nn.NewFlatten[T]())
	case "Identity", "Dropout":
		imp.push(node, nil)
	default:
		return fail(ErrUnsupportedOp, "operator %q has no layer equivalent", node.OpType)
	}
	return nil
}

// visitAdd folds a bias addition into the preceding MatMul layer.
func (imp *importer[T]) visitAdd(node *NodeProto) error {
	if imp.matmul == nil || len(node.Inputs) != 2 {
		return fail(ErrUnsupportedOp, "Add is only supported as the bias of a MatMul")
	}
	biasIdx := -1
	switch imp.current {
	case node.Inputs[0]:
		biasIdx = 1
	case node.Inputs[1]:
		biasIdx = 0
	default:
		return fail(ErrUnsupportedGraph, "expected input %q, graph is not a chain", imp.current)
	}
	t, err := imp.init(node, biasIdx)
	if err != nil {
		return err
	}
	values, err := t.Float64s()
	if err != nil {
		return err
	}

	bias := imp.matmul.Bias().Data()
	switch len(values) {
	case len(bias):
		for i, v := range values {
			bias[i] += T(v)
		}
	case 1:
		for i := range bias {
			bias[i] += T(values[0])
		}
	default:
		return fail(ErrInvalidTensor, "bias has %d values for %d outputs", len(values), len(bias))
	}
	imp.matmul = nil
	imp.current = node.Outputs[0]
	return nil
}
