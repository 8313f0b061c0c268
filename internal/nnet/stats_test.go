package nnet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nn"
	"github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/nnet"
)

// TestStatsFromSamples checks per-column and output statistics.
func TestStatsFromSamples(t *testing.T) {
	export := nn.NewSequential[float64](
		dense(t, []float64{1, 1, 0}, 1, 3, nil),
	)
	samples := [][]float64{
		{0, 2, 5},
		{2, 4, 5},
		{4, 6, 5},
	}

	stats, err := nnet.StatsFromSamples(export, samples)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 2, 5}, stats.Mins)
	assert.Equal(t, []float64{4, 6, 5}, stats.Maxes)
	// Outputs are 2, 6 and 10.
	assert.InDeltaSlice(t, []float64{2, 4, 5, 6}, stats.Means, 1e-12)
	// The constant column gets a unit range.
	assert.InDeltaSlice(t, []float64{4, 4, 1, 8}, stats.Ranges, 1e-12)
}

// TestStatsFromSamples_Errors covers invalid samples.
func TestStatsFromSamples_Errors(t *testing.T) {
	export := nn.NewSequential[float32](dense(t, []float32{1, 1}, 1, 2, nil))

	_, err := nnet.StatsFromSamples(export, nil)
	assert.Error(t, err)

	_, err = nnet.StatsFromSamples(export, [][]float64{{1, 2, 3}})
	assert.Error(t, err)

	_, err = nnet.StatsFromSamples(nn.NewSequential[float32](nn.NewReLU[float32]()), [][]float64{{1}})
	assert.ErrorIs(t, err, nnet.ErrNoDenseLayers)
}

// TestBuild_WithStats writes a custom normalization block.
func TestBuild_WithStats(t *testing.T) {
	export := nn.NewSequential[float64](dense(t, []float64{1, 1}, 1, 2, nil))
	stats, err := nnet.StatsFromSamples(export, [][]float64{{0, 1}, {1, 3}})
	require.NoError(t, err)

	opts := optionsAt("2024-01-02 03:04:05")
	opts.Stats = stats
	doc, err := nnet.Build(export, opts)
	require.NoError(t, err)

	lines := doc.Lines()
	assert.Equal(t, "0.0,1.0", lines[4])
	assert.Equal(t, "1.0,3.0", lines[5])
	assert.Equal(t, "0.5,2.0,2.5", lines[6])
	assert.Equal(t, "1.0,2.0,3.0", lines[7])
}

// TestReadSamples parses comma and whitespace separated rows.
func TestReadSamples(t *testing.T) {
	samples, err := nnet.ReadSamples(strings.NewReader("1,2\n# comment\n\n3 4\n5\t6,\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, samples)

	_, err = nnet.ReadSamples(strings.NewReader("1,x\n"))
	assert.Error(t, err)
}
