package convert

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnsupportedLayer  = errors.New("unsupported layer")
	ErrUnsupportedConfig = errors.New("unsupported configuration")
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrNotEquivalent     = errors.New("dense network output deviates from source model")
)

// ConversionError provides detailed information about a failed conversion.
//
// Index is the position of the offending layer in the source model, or -1
// when a transformer is called directly.
type ConversionError struct {
	Index   int    // Layer index in the source model (-1 if standalone)
	Kind    string // Layer kind (e.g., "Conv1D", "AvgPool1D")
	Param   string // Offending parameter, if any (e.g., "groups", "stride")
	Details string // Additional details
	Err     error  // One of ErrUnsupportedLayer, ErrUnsupportedConfig, ErrShapeMismatch
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	where := e.Kind
	if e.Index >= 0 {
		where = fmt.Sprintf("layer %d (%s)", e.Index, e.Kind)
	}
	switch {
	case e.Param != "":
		return fmt.Sprintf("%s: %v: %s: %s", where, e.Err, e.Param, e.Details)
	case e.Details != "":
		return fmt.Sprintf("%s: %v: %s", where, e.Err, e.Details)
	default:
		return fmt.Sprintf("%s: %v", where, e.Err)
	}
}

// Unwrap returns the sentinel error so callers can use errors.Is.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

func configError(kind, param, format string, args ...any) *ConversionError {
	return &ConversionError{
		Index:   -1,
		Kind:    kind,
		Param:   param,
		Details: fmt.Sprintf(format, args...),
		Err:     ErrUnsupportedConfig,
	}
}
