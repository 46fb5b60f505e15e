package ops

import "errors"

// Errors specific to one operator's precondition, kept separate from the
// core's error table (dcel package) the way each operator in the engine this
// was ported from carried its own narrow error enum.
var (
	// ErrVertexNotIsolated is returned by Kvh.Check when the target vertex
	// still has an outgoing edge.
	ErrVertexNotIsolated = errors.New("ops: vertex has an outgoing edge")

	// ErrVertexHasOtherEdges is returned by Kvvef.Check when either endpoint
	// is incident to edges beyond the seeded twin pair.
	ErrVertexHasOtherEdges = errors.New("ops: vertex is incident to edges beyond the twin pair")

	// ErrNotImplemented marks the Mekh/Kemh typed hole: the engine reserves
	// the operator's slot in the Op union without committing to semantics.
	ErrNotImplemented = errors.New("ops: mekh/kemh is not implemented")
)
