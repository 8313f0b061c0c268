package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinRows: 8}

	n := 1000
	seen := make([]int32, n)
	For(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, v := range seen {
		assert.Equal(t, int32(1), v, "row %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	var order []int
	For(5, func(i int) {
		order = append(order, i)
	}, Config{Enabled: false})

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_SmallInput(t *testing.T) {
	cfg := DefaultConfig()

	var order []int
	For(cfg.MinRows-1, func(i int) {
		order = append(order, i)
	}, cfg)

	assert.Len(t, order, cfg.MinRows-1)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestRows(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinRows: 1}
	channels, length := 5, 7

	rows := make([]int32, channels*length)
	Rows(channels, length, func(c, o int) {
		atomic.AddInt32(&rows[c*length+o], int32(c*100+o))
	}, cfg)

	for c := 0; c < channels; c++ {
		for o := 0; o < length; o++ {
			assert.Equal(t, int32(c*100+o), rows[c*length+o])
		}
	}

	Rows(3, 0, func(_, _ int) {
		t.Fatal("called for an empty layout")
	}, cfg)
}

func BenchmarkRows(b *testing.B) {
	cfg := DefaultConfig()
	channels, length := 64, 256

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			Rows(channels, length, func(c, o int) {
				atomic.AddInt64(&sum, int64(c*length+o))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		seq := cfg
		seq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			Rows(channels, length, func(c, o int) {
				atomic.AddInt64(&sum, int64(c*length+o))
			}, seq)
		}
	})
}
