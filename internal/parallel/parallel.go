// Package parallel splits row-wise matrix construction across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work is split.
type Config struct {
	Enabled    bool // Whether to use more than one goroutine.
	NumWorkers int  // Upper bound on goroutines.
	MinRows    int  // Fewer rows than this run on the calling goroutine.
}

// DefaultConfig uses one worker per CPU and keeps small matrices sequential.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinRows:    64,
	}
}

// For calls f(i) for every i in [0, n). Calls for distinct i may run
// concurrently, so f must only write state owned by row i.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinRows {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinRows, 1)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Rows calls f(c, o) for every channel c and output position o of a
// channel-major [channels, length] layout, i.e. for dense row c*length+o.
func Rows(channels, length int, f func(c, o int), cfg Config) {
	if length <= 0 {
		return
	}
	For(channels*length, func(row int) {
		f(row/length, row%length)
	}, cfg)
}
