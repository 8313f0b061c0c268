package nnet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Options configures how a network is exported.
type Options struct {
	// Comments are extra header lines written after the timestamp. Each
	// comment is split on line breaks and a "// " prefix is added to every
	// piece that lacks one.
	Comments []string

	// Stats holds the normalization block. Nil writes the neutral defaults:
	// zero minimums, maximums and means, unit ranges.
	Stats *Stats

	// Now returns the timestamp of the first header line.
	Now func() time.Time
}

// DefaultOptions returns options with the neutral normalization block and
// the current time.
func DefaultOptions() Options {
	return Options{
		Now: time.Now,
	}
}

// Header holds the integer fields of a .nnet document.
type Header struct {
	NumLayers    int
	InputSize    int
	OutputSize   int
	MaxLayerSize int   // largest layer size, excluding the input
	LayerSizes   []int // input size followed by every layer's output size
}

// Document is an assembled .nnet file.
//
// Build produces a Document whose lines are fixed; Validate re-checks the
// header against the body before anything is emitted.
type Document struct {
	header  Header
	lines   []string
	comment int // number of leading comment lines
}

// Build assembles the .nnet document for export.
//
// export must contain only Linear and ReLU layers, with at least one Linear
// layer, and consecutive Linear layers must agree on their widths. Values are
// written at the precision of T.
func Build[T tensor.Float](export *nn.Sequential[T], opts Options) (*Document, error) {
	if export == nil {
		return nil, &StructuralError{Type: "no_dense_layers", Layer: -1, Details: "network is nil", Err: ErrNoDenseLayers}
	}

	linears, err := denseLayers(export)
	if err != nil {
		return nil, err
	}

	header := headerOf(linears)
	in := header.InputSize

	stats := opts.Stats
	if stats == nil {
		stats = DefaultStats(in)
	}
	if err := stats.validate(in); err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	bits := tensor.DataTypeOf[T]().BitSize()
	doc := &Document{header: header}

	doc.lines = append(doc.lines, "// "+now().Format(TimestampLayout))
	for _, c := range opts.Comments {
		doc.lines = append(doc.lines, commentLines(c)...)
	}
	doc.comment = len(doc.lines)

	doc.lines = append(doc.lines,
		joinInts([]int{header.NumLayers, header.InputSize, header.OutputSize, header.MaxLayerSize}),
		joinInts(header.LayerSizes),
		"0",
		joinFloats(stats.Mins, bits),
		joinFloats(stats.Maxes, bits),
		joinFloats(stats.Means, bits),
		joinFloats(stats.Ranges, bits),
	)

	for _, l := range linears {
		for i := 0; i < l.OutFeatures(); i++ {
			doc.lines = append(doc.lines, joinFloats(l.Row(i), bits))
		}
		for _, b := range l.Bias().Data() {
			doc.lines = append(doc.lines, FormatFloat(float64(b), bits))
		}
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return doc, nil
}

// commentLines splits a comment on line breaks and prefixes every piece
// with "// " unless it already starts with "//".
func commentLines(c string) []string {
	c = strings.ReplaceAll(c, "\r\n", "\n")
	c = strings.ReplaceAll(c, "\r", "\n")
	lines := strings.Split(c, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "//") {
			lines[i] = "// " + line
		}
	}
	return lines
}

// denseLayers returns the Linear layers of export, rejecting any layer that
// is neither Linear nor ReLU.
func denseLayers[T tensor.Float](export *nn.Sequential[T]) ([]*nn.Linear[T], error) {
	var linears []*nn.Linear[T]
	for i, layer := range export.Layers() {
		switch l := layer.(type) {
		case *nn.Linear[T]:
			if n := len(linears); n > 0 && linears[n-1].OutFeatures() != l.InFeatures() {
				return nil, inconsistent("layer_width", i,
					"in_features %d does not match previous out_features %d", l.InFeatures(), linears[n-1].OutFeatures())
			}
			linears = append(linears, l)
		case *nn.ReLU[T]:
		default:
			kind := "<nil>"
			if layer != nil {
				kind = layer.Kind().String()
			}
			return nil, &StructuralError{
				Type:    "unexpected_layer",
				Layer:   i,
				Details: kind,
				Err:     ErrUnexpectedLayer,
			}
		}
	}
	if len(linears) == 0 {
		return nil, &StructuralError{
			Type:    "no_dense_layers",
			Layer:   -1,
			Details: fmt.Sprintf("%d layers, none of them Linear", export.Len()),
			Err:     ErrNoDenseLayers,
		}
	}
	return linears, nil
}

func headerOf[T tensor.Float](linears []*nn.Linear[T]) Header {
	h := Header{
		NumLayers:  len(linears),
		InputSize:  linears[0].InFeatures(),
		OutputSize: linears[len(linears)-1].OutFeatures(),
		LayerSizes: []int{linears[0].InFeatures()},
	}
	for _, l := range linears {
		h.LayerSizes = append(h.LayerSizes, l.OutFeatures())
		h.MaxLayerSize = max(h.MaxLayerSize, l.OutFeatures())
	}
	return h
}

// Header returns a copy of the document's integer header.
func (d *Document) Header() Header {
	h := d.header
	h.LayerSizes = append([]int(nil), d.header.LayerSizes...)
	return h
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// String returns the document text.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Validate checks that the header lines agree with the recorded header and
// that every layer block has the promised number of lines and fields.
//
//nolint:gocyclo,cyclop // One check per structural rule of the format
func (d *Document) Validate() error {
	h := d.header
	if h.NumLayers < 1 {
		return &StructuralError{Type: "no_dense_layers", Layer: -1, Details: "header declares no layers", Err: ErrNoDenseLayers}
	}
	if len(h.LayerSizes) != h.NumLayers+1 {
		return inconsistent("layer_sizes", -1, "%d sizes for %d layers", len(h.LayerSizes), h.NumLayers)
	}
	if h.LayerSizes[0] != h.InputSize || h.LayerSizes[h.NumLayers] != h.OutputSize {
		return inconsistent("layer_sizes", -1, "sizes %v disagree with input %d, output %d",
			h.LayerSizes, h.InputSize, h.OutputSize)
	}
	largest := 0
	for _, s := range h.LayerSizes[1:] {
		largest = max(largest, s)
	}
	if largest != h.MaxLayerSize {
		return inconsistent("max_layer_size", -1, "header says %d, largest layer is %d", h.MaxLayerSize, largest)
	}

	body := 0
	for i := 0; i < h.NumLayers; i++ {
		body += 2 * h.LayerSizes[i+1]
	}
	const fixed = 7 // counts, sizes, flag, mins, maxes, means, ranges
	if want := d.comment + fixed + body; len(d.lines) != want {
		return inconsistent("line_count", -1, "document has %d lines, header promises %d", len(d.lines), want)
	}

	for i, line := range d.lines {
		if strings.ContainsAny(line, "\r\n") {
			return inconsistent("line_break", -1, "line %d contains a line break", i+1)
		}
	}
	for i := 0; i < d.comment; i++ {
		if !strings.HasPrefix(d.lines[i], "//") {
			return inconsistent("comment", -1, "line %d is not a comment", i+1)
		}
	}
	p := d.comment
	if got := joinInts([]int{h.NumLayers, h.InputSize, h.OutputSize, h.MaxLayerSize}); d.lines[p] != got {
		return inconsistent("header", -1, "counts line %q, want %q", d.lines[p], got)
	}
	if got := joinInts(h.LayerSizes); d.lines[p+1] != got {
		return inconsistent("layer_sizes", -1, "sizes line %q, want %q", d.lines[p+1], got)
	}
	for j, want := range []int{h.InputSize, h.InputSize, h.InputSize + 1, h.InputSize + 1} {
		if n := len(splitFields(d.lines[p+3+j])); n != want {
			return inconsistent("normalization", -1, "line %d has %d values, want %d", p+4+j, n, want)
		}
	}

	p += fixed
	for i := 0; i < h.NumLayers; i++ {
		in, out := h.LayerSizes[i], h.LayerSizes[i+1]
		for r := 0; r < out; r++ {
			if n := len(splitFields(d.lines[p+r])); n != in {
				return inconsistent("row_width", i, "weight row %d has %d values, want %d", r, n, in)
			}
		}
		p += out
		for r := 0; r < out; r++ {
			if n := len(splitFields(d.lines[p+r])); n != 1 {
				return inconsistent("bias", i, "bias line %d has %d values, want 1", r, n)
			}
		}
		p += out
	}
	return nil
}

// WriteTo validates the document and writes it to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// Save builds the document for export and writes it to path.
func Save[T tensor.Float](path string, export *nn.Sequential[T], opts Options) error {
	doc, err := Build(export, opts)
	if err != nil {
		return err
	}

	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := doc.WriteTo(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
