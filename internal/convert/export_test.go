package convert

import "github.com/sgol13/tudelft-formal-methods-reluplex-extension/internal/parallel"

// SetRowConfig replaces the row split used by the transformers and returns
// a function restoring the previous one.
func SetRowConfig(cfg parallel.Config) (restore func()) {
	prev := rowConfig
	rowConfig = cfg
	return func() { rowConfig = prev }
}
