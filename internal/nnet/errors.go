package nnet

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNoDenseLayers   = errors.New("network has no dense layers")
	ErrUnexpectedLayer = errors.New("only Linear and ReLU layers can be exported")
	ErrInconsistent    = errors.New("inconsistent network structure")
	ErrSyntax          = errors.New("malformed .nnet document")
)

// StructuralError provides detailed information about a structural failure.
type StructuralError struct {
	Type    string // Type of error (e.g., "unexpected_layer", "row_count")
	Layer   int    // Layer index involved (-1 if none)
	Line    int    // 1-based line number when reading (0 if none)
	Details string // Additional details
	Err     error  // Sentinel error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", e.Type, e.Line, e.Details)
	case e.Layer >= 0:
		return fmt.Sprintf("%s: layer %d: %s", e.Type, e.Layer, e.Details)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Details)
	}
}

// Unwrap returns the sentinel error.
func (e *StructuralError) Unwrap() error {
	return e.Err
}

func inconsistent(typ string, layer int, format string, args ...any) *StructuralError {
	return &StructuralError{
		Type:    typ,
		Layer:   layer,
		Details: fmt.Sprintf(format, args...),
		Err:     ErrInconsistent,
	}
}

func syntaxError(line int, format string, args ...any) *StructuralError {
	return &StructuralError{
		Type:    "syntax",
		Layer:   -1,
		Line:    line,
		Details: fmt.Sprintf(format, args...),
		Err:     ErrSyntax,
	}
}
