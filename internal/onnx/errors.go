package onnx

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnsupportedOp      = errors.New("unsupported operator")
	ErrUnsupportedGraph   = errors.New("unsupported graph structure")
	ErrMissingInitializer = errors.New("missing initializer")
	ErrInvalidTensor      = errors.New("invalid tensor")
)

// NodeError provides detailed information about a node that could not be
// imported.
type NodeError struct {
	Index   int    // Node index in the graph
	Name    string // Node name (may be empty)
	OpType  string // Operation type
	Details string // Additional details
	Err     error  // Sentinel error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	node := fmt.Sprintf("node %d (%s)", e.Index, e.OpType)
	if e.Name != "" {
		node = fmt.Sprintf("node %d %q (%s)", e.Index, e.Name, e.OpType)
	}
	if e.Details == "" {
		return fmt.Sprintf("%s: %v", node, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", node, e.Err, e.Details)
}

// Unwrap returns the sentinel error.
func (e *NodeError) Unwrap() error {
	return e.Err
}
