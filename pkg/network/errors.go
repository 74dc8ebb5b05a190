package network

import "errors"

// Sentinel errors for network operations. Invalid call arguments (missing
// endpoints, non-positive lead times, out-of-range fractions) wrap
// validation.ErrValidation instead.
var (
	// ErrDuplicateNode is returned when a node id is added twice
	ErrDuplicateNode = errors.New("node already exists")
	// ErrNoPath is returned when no directed path exists between two nodes
	ErrNoPath = errors.New("no path between nodes")
)
