package nnet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/tensor"
)

// Stats is the normalization block of a .nnet document.
//
// Mins and Maxes have one value per input. Means and Ranges have one value
// per input followed by a single value shared by all outputs.
type Stats struct {
	Mins   []float64
	Maxes  []float64
	Means  []float64
	Ranges []float64
}

// DefaultStats returns the neutral block for inputSize inputs: zero
// minimums, maximums and means, unit ranges.
func DefaultStats(inputSize int) *Stats {
	ranges := make([]float64, inputSize+1)
	floats.AddConst(1, ranges)
	return &Stats{
		Mins:   make([]float64, inputSize),
		Maxes:  make([]float64, inputSize),
		Means:  make([]float64, inputSize+1),
		Ranges: ranges,
	}
}

func (s *Stats) validate(inputSize int) error {
	for _, f := range []struct {
		name string
		got  int
		want int
	}{
		{"mins", len(s.Mins), inputSize},
		{"maxes", len(s.Maxes), inputSize},
		{"means", len(s.Means), inputSize + 1},
		{"ranges", len(s.Ranges), inputSize + 1},
	} {
		if f.got != f.want {
			return inconsistent("normalization", -1, "%s has %d values, want %d", f.name, f.got, f.want)
		}
	}
	return nil
}

// StatsFromSamples computes the normalization block from input samples.
//
// Each sample must have InFeatures of the first dense layer values. Input
// minimums, maximums and means are taken per column; a column's range is
// max - min. The output mean and range are computed over every output value
// of export on the samples. Zero ranges are replaced by 1.
func StatsFromSamples[T tensor.Float](export *nn.Sequential[T], samples [][]float64) (*Stats, error) {
	linears, err := denseLayers(export)
	if err != nil {
		return nil, err
	}
	in := linears[0].InFeatures()
	if len(samples) == 0 {
		return nil, fmt.Errorf("stats: no samples")
	}

	columns := make([][]float64, in)
	for i := range columns {
		columns[i] = make([]float64, len(samples))
	}
	var outputs []float64
	for n, sample := range samples {
		if len(sample) != in {
			return nil, fmt.Errorf("stats: sample %d has %d values, want %d", n, len(sample), in)
		}
		for i, v := range sample {
			columns[i][n] = v
		}

		x := tensor.Zeros[T](tensor.Shape{in}, linears[0].Device())
		for i, v := range sample {
			x.Data()[i] = T(v)
		}
		y, err := export.Forward(x)
		if err != nil {
			return nil, fmt.Errorf("stats: sample %d: %w", n, err)
		}
		for _, v := range y.Data() {
			outputs = append(outputs, float64(v))
		}
	}

	s := &Stats{
		Mins:   make([]float64, in),
		Maxes:  make([]float64, in),
		Means:  make([]float64, in+1),
		Ranges: make([]float64, in+1),
	}
	for i, col := range columns {
		s.Mins[i] = floats.Min(col)
		s.Maxes[i] = floats.Max(col)
		s.Means[i] = stat.Mean(col, nil)
		s.Ranges[i] = spread(s.Mins[i], s.Maxes[i])
	}
	s.Means[in] = stat.Mean(outputs, nil)
	s.Ranges[in] = spread(floats.Min(outputs), floats.Max(outputs))
	return s, nil
}

func spread(lo, hi float64) float64 {
	if hi > lo {
		return hi - lo
	}
	return 1
}

// ReadSamples parses one sample per line from r. Values are separated by
// commas or whitespace; blank lines and lines starting with "#" are skipped.
func ReadSamples(r io.Reader) ([][]float64, error) {
	var samples [][]float64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		sample := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("samples: line %d: %w", line, err)
			}
			sample[i] = v
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("samples: %w", err)
	}
	return samples, nil
}
