package nnet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// maxLineSize bounds a single line; a weight row of 1M float64 values fits.
const maxLineSize = 32 * 1024 * 1024

// Network is a .nnet document loaded into memory.
type Network struct {
	Header
	Comments []string // header comment lines without the leading "//"
	Stats    Stats

	weights []*mat.Dense
	biases  []*mat.VecDense
}

// Weights returns the weight matrix of layer i (out x in).
func (n *Network) Weights(i int) *mat.Dense {
	return n.weights[i]
}

// Biases returns the bias vector of layer i.
func (n *Network) Biases(i int) *mat.VecDense {
	return n.biases[i]
}

// Evaluate runs x through the network, applying ReLU after every layer but
// the last.
//
// With normalize set, inputs are clamped to [min, max] and scaled by
// (x - mean) / range, and outputs are mapped back with y*range + mean, the
// way the NNet C library evaluates networks.
func (n *Network) Evaluate(x []float64, normalize bool) ([]float64, error) {
	if len(x) != n.InputSize {
		return nil, fmt.Errorf("evaluate: got %d inputs, want %d", len(x), n.InputSize)
	}

	v := mat.NewVecDense(len(x), append([]float64(nil), x...))
	if normalize {
		for i := 0; i < n.InputSize; i++ {
			xi := min(max(v.AtVec(i), n.Stats.Mins[i]), n.Stats.Maxes[i])
			v.SetVec(i, (xi-n.Stats.Means[i])/n.Stats.Ranges[i])
		}
	}

	for l := 0; l < n.NumLayers; l++ {
		rows, _ := n.weights[l].Dims()
		next := mat.NewVecDense(rows, nil)
		next.MulVec(n.weights[l], v)
		next.AddVec(next, n.biases[l])
		if l < n.NumLayers-1 {
			for i := 0; i < rows; i++ {
				next.SetVec(i, max(next.AtVec(i), 0))
			}
		}
		v = next
	}

	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
		if normalize {
			out[i] = out[i]*n.Stats.Ranges[n.InputSize] + n.Stats.Means[n.InputSize]
		}
	}
	return out, nil
}

// lineReader yields non-empty lines with their 1-based line numbers.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
	pending *string
}

func (r *lineReader) next() (string, bool) {
	if r.pending != nil {
		s := *r.pending
		r.pending = nil
		return s, true
	}
	for r.scanner.Scan() {
		r.line++
		s := strings.TrimSpace(r.scanner.Text())
		if s != "" {
			return s, true
		}
	}
	return "", false
}

func (r *lineReader) unread(s string) {
	r.pending = &s
}

func (r *lineReader) ints(want int, what string) ([]int, error) {
	fields, err := r.fields(want, what)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, syntaxError(r.line, "%s: %v", what, err)
		}
		out[i] = v
	}
	return out, nil
}

func (r *lineReader) floats(want int, what string) ([]float64, error) {
	fields, err := r.fields(want, what)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, syntaxError(r.line, "%s: %v", what, err)
		}
		out[i] = v
	}
	return out, nil
}

// fields reads the next line; want < 0 accepts any field count.
func (r *lineReader) fields(want int, what string) ([]string, error) {
	s, ok := r.next()
	if !ok {
		if err := r.scanner.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, syntaxError(r.line+1, "unexpected end of document, want %s", what)
	}
	fields := splitFields(s)
	if want >= 0 && len(fields) != want {
		return nil, syntaxError(r.line, "%s has %d values, want %d", what, len(fields), want)
	}
	return fields, nil
}

// Read parses a .nnet document.
//
// Comment lines may appear only before the counts line. Trailing commas are
// accepted. The header fields must agree with each other and with the body;
// violations wrap ErrSyntax or ErrInconsistent.
//
//nolint:gocyclo,cyclop // Sequential format parsing
func Read(r io.Reader) (*Network, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lr := &lineReader{scanner: scanner}

	net := &Network{}
	for {
		s, ok := lr.next()
		if !ok {
			break
		}
		if !strings.HasPrefix(s, "//") {
			lr.unread(s)
			break
		}
		net.Comments = append(net.Comments, strings.TrimSpace(strings.TrimPrefix(s, "//")))
	}

	counts, err := lr.ints(4, "counts line")
	if err != nil {
		return nil, err
	}
	net.NumLayers, net.InputSize, net.OutputSize, net.MaxLayerSize = counts[0], counts[1], counts[2], counts[3]
	if net.NumLayers < 1 {
		return nil, &StructuralError{Type: "no_dense_layers", Layer: -1, Line: lr.line,
			Details: fmt.Sprintf("%d layers", net.NumLayers), Err: ErrNoDenseLayers}
	}

	if net.LayerSizes, err = lr.ints(net.NumLayers+1, "layer sizes"); err != nil {
		return nil, err
	}
	for i, s := range net.LayerSizes {
		if s < 1 {
			return nil, inconsistent("layer_sizes", i, "size %d", s)
		}
	}
	if net.LayerSizes[0] != net.InputSize || net.LayerSizes[net.NumLayers] != net.OutputSize {
		return nil, inconsistent("layer_sizes", -1, "sizes %v disagree with input %d, output %d",
			net.LayerSizes, net.InputSize, net.OutputSize)
	}
	largest := 0
	for _, s := range net.LayerSizes[1:] {
		largest = max(largest, s)
	}
	if largest != net.MaxLayerSize {
		return nil, inconsistent("max_layer_size", -1, "header says %d, largest layer is %d", net.MaxLayerSize, largest)
	}

	if _, err := lr.fields(-1, "flag line"); err != nil {
		return nil, err
	}

	in := net.InputSize
	if net.Stats.Mins, err = lr.floats(in, "input minimums"); err != nil {
		return nil, err
	}
	if net.Stats.Maxes, err = lr.floats(in, "input maximums"); err != nil {
		return nil, err
	}
	if net.Stats.Means, err = lr.floats(in+1, "means"); err != nil {
		return nil, err
	}
	if net.Stats.Ranges, err = lr.floats(in+1, "ranges"); err != nil {
		return nil, err
	}

	for l := 0; l < net.NumLayers; l++ {
		rows, cols := net.LayerSizes[l+1], net.LayerSizes[l]
		w := mat.NewDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			row, err := lr.floats(cols, fmt.Sprintf("layer %d weight row %d", l, i))
			if err != nil {
				return nil, err
			}
			w.SetRow(i, row)
		}
		b := mat.NewVecDense(rows, nil)
		for i := 0; i < rows; i++ {
			v, err := lr.floats(1, fmt.Sprintf("layer %d bias %d", l, i))
			if err != nil {
				return nil, err
			}
			b.SetVec(i, v[0])
		}
		net.weights = append(net.weights, w)
		net.biases = append(net.biases, b)
	}

	if s, ok := lr.next(); ok {
		return nil, syntaxError(lr.line, "unexpected trailing content %q", truncate(s, 32))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return net, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
