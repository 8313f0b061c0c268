package onnx

import (
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

func intAttr(node *NodeProto, name string, def int64) int64 {
	if a := node.Attribute(name); a != nil {
		return a.I
	}
	return def
}

func floatAttr(node *NodeProto, name string, def float32) float32 {
	if a := node.Attribute(name); a != nil {
		return a.F
	}
	return def
}

func stringAttr(node *NodeProto, name, def string) string {
	if a := node.Attribute(name); a != nil {
		return string(a.S)
	}
	return def
}

// intsAttr normalizes a 1-D INTS attribute to a scalar. Only pads may hold
// two values ([begin, end]).
func intsAttr(node *NodeProto, name string, def int) (int, error) {
	a := node.Attribute(name)
	if a == nil {
		return def, nil
	}
	if name != "pads" && len(a.Ints) > 1 {
		return 0, fail(ErrUnsupportedOp, "%s %v has %d spatial dimensions", name, a.Ints, len(a.Ints))
	}
	seq := make(nn.IntOrSeq, len(a.Ints))
	for i, v := range a.Ints {
		seq[i] = int(v)
	}
	v, err := seq.Normalize(def)
	if err != nil {
		return 0, fail(ErrUnsupportedOp, "%s: %v", name, err)
	}
	return v, nil
}

func checkAutoPad(node *NodeProto) error {
	if pad := stringAttr(node, "auto_pad", "NOTSET"); pad != "NOTSET" && pad != "" {
		return fail(ErrUnsupportedOp, "auto_pad=%s", pad)
	}
	return nil
}

func convLayer[T tensor.Float](imp *importer[T], node *NodeProto) (*nn.Conv1D[T], error) {
	wp, err := imp.init(node, 1)
	if err != nil {
		return nil, err
	}
	if len(wp.Dims) != 3 {
		return nil, fail(ErrUnsupportedOp, "weight has rank %d, only 1-D convolution is supported", len(wp.Dims))
	}
	if err := checkAutoPad(node); err != nil {
		return nil, err
	}
	k, err := intsAttr(node, "kernel_shape", int(wp.Dims[2]))
	if err != nil {
		return nil, err
	}
	if k != int(wp.Dims[2]) {
		return nil, fail(ErrInvalidTensor, "kernel_shape %d does not match weight kernel %d", k, wp.Dims[2])
	}

	cfg := nn.DefaultConv1DConfig()
	if cfg.Stride, err = intsAttr(node, "strides", 1); err != nil {
		return nil, err
	}
	if cfg.Padding, err = intsAttr(node, "pads", 0); err != nil {
		return nil, err
	}
	if cfg.Dilation, err = intsAttr(node, "dilations", 1); err != nil {
		return nil, err
	}
	cfg.Groups = int(intAttr(node, "group", 1))

	weight, err := toTensor[T](wp, dimsOf(wp))
	if err != nil {
		return nil, err
	}
	bp, err := imp.optionalInit(node, 2)
	if err != nil {
		return nil, err
	}
	var bias *tensor.Tensor[T]
	if bp != nil {
		if bias, err = toTensor[T](bp, dimsOf(bp)); err != nil {
			return nil, err
		}
	}

	conv, err := nn.NewConv1DFromWeights(weight, bias, cfg)
	if err != nil {
		return nil, fail(ErrInvalidTensor, "%v", err)
	}
	return conv, nil
}

func avgPoolLayer[T tensor.Float](node *NodeProto) (*nn.AvgPool1D[T], error) {
	if err := checkAutoPad(node); err != nil {
		return nil, err
	}
	if node.Attribute("kernel_shape") == nil {
		return nil, fail(ErrUnsupportedOp, "kernel_shape is required")
	}
	kernel, err := intsAttr(node, "kernel_shape", 0)
	if err != nil {
		return nil, err
	}
	stride, err := intsAttr(node, "strides", 1)
	if err != nil {
		return nil, err
	}
	padding, err := intsAttr(node, "pads", 0)
	if err != nil {
		return nil, err
	}
	if intAttr(node, "ceil_mode", 0) != 0 {
		return nil, fail(ErrUnsupportedOp, "ceil_mode=1")
	}
	if padding > 0 && intAttr(node, "count_include_pad", 0) == 0 {
		return nil, fail(ErrUnsupportedOp, "padded pooling with count_include_pad=0")
	}
	if kernel <= 0 || stride <= 0 || padding < 0 {
		return nil, fail(ErrUnsupportedOp, "invalid pooling kernel=%d stride=%d pads=%d", kernel, stride, padding)
	}
	return nn.NewAvgPool1D[T](kernel, stride, padding), nil
}

// gemmLayer maps Y = alpha*A*B' + beta*C with A the chain value.
func gemmLayer[T tensor.Float](imp *importer[T], node *NodeProto) (*nn.Linear[T], error) {
	if intAttr(node, "transA", 0) != 0 {
		return nil, fail(ErrUnsupportedOp, "transA=1")
	}
	bp, err := imp.init(node, 1)
	if err != nil {
		return nil, err
	}
	if len(bp.Dims) != 2 {
		return nil, fail(ErrInvalidTensor, "B has rank %d, want 2", len(bp.Dims))
	}
	values, err := bp.Float64s()
	if err != nil {
		return nil, err
	}
	alpha := float64(floatAttr(node, "alpha", 1))
	beta := float64(floatAttr(node, "beta", 1))

	rows, cols := int(bp.Dims[0]), int(bp.Dims[1])
	var weight []T
	out, in := rows, cols
	if intAttr(node, "transB", 0) != 0 {
		weight = scaled[T](values, alpha)
	} else {
		out, in = cols, rows
		weight = transposed[T](values, rows, cols, alpha)
	}

	bias := make([]T, out)
	cp, err := imp.optionalInit(node, 2)
	if err != nil {
		return nil, err
	}
	if cp != nil {
		c, err := cp.Float64s()
		if err != nil {
			return nil, err
		}
		if err := broadcastBias(bias, c, beta); err != nil {
			return nil, err
		}
	}
	return linearLayer(weight, bias, out, in)
}

// matMulLayer maps Y = A*B with A the chain value; a following Add sets the bias.
func matMulLayer[T tensor.Float](imp *importer[T], node *NodeProto) (*nn.Linear[T], error) {
	bp, err := imp.init(node, 1)
	if err != nil {
		return nil, err
	}
	if len(bp.Dims) != 2 {
		return nil, fail(ErrInvalidTensor, "B has rank %d, want 2", len(bp.Dims))
	}
	values, err := bp.Float64s()
	if err != nil {
		return nil, err
	}
	rows, cols := int(bp.Dims[0]), int(bp.Dims[1])
	return linearLayer(transposed[T](values, rows, cols, 1), make([]T, cols), cols, rows)
}

func linearLayer[T tensor.Float](weight, bias []T, out, in int) (*nn.Linear[T], error) {
	w, err := tensor.New(weight, tensor.Shape{out, in}, tensor.CPU)
	if err != nil {
		return nil, fail(ErrInvalidTensor, "%v", err)
	}
	b, err := tensor.New(bias, tensor.Shape{out}, tensor.CPU)
	if err != nil {
		return nil, fail(ErrInvalidTensor, "%v", err)
	}
	layer, err := nn.NewLinearFromWeights(w, b)
	if err != nil {
		return nil, fail(ErrInvalidTensor, "%v", err)
	}
	return layer, nil
}

func scaled[T tensor.Float](values []float64, alpha float64) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = T(alpha * v)
	}
	return out
}

// transposed returns alpha*Bᵀ for a row-major [rows, cols] matrix.
func transposed[T tensor.Float](values []float64, rows, cols int, alpha float64) []T {
	out := make([]T, len(values))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c*rows+r] = T(alpha * values[r*cols+c])
		}
	}
	return out
}

func broadcastBias[T tensor.Float](dst []T, c []float64, beta float64) error {
	switch len(c) {
	case len(dst):
		for i, v := range c {
			dst[i] = T(beta * v)
		}
	case 1:
		for i := range dst {
			dst[i] = T(beta * c[0])
		}
	default:
		return fail(ErrInvalidTensor, "C has %d values for %d outputs", len(c), len(dst))
	}
	return nil
}

// checkFlatReshape accepts Reshape nodes that produce a vector, optionally
// with a leading batch dimension of 1 or -1.
func checkFlatReshape[T tensor.Float](imp *importer[T], node *NodeProto) error {
	sp, err := imp.init(node, 1)
	if err != nil {
		return err
	}
	shape, err := sp.Int64s()
	if err != nil {
		return err
	}
	switch {
	case len(shape) == 1:
		return nil
	case len(shape) == 2 && (shape[0] == 1 || shape[0] == -1 || shape[0] == 0):
		return nil
	default:
		return fail(ErrUnsupportedOp, "reshape to %v is not a flatten", shape)
	}
}
