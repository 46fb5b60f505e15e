package dcel

import (
	"errors"

	"github.com/go-dcel/dcel/arena"
)

// Error kinds surfaced by the core. Operator Check methods return these
// (optionally wrapped with fmt.Errorf("%w", ...) for added context); Apply
// never invents a new kind.
var (
	ErrVertexDoesNotExist = errors.New("dcel: vertex does not exist")
	ErrEdgeDoesNotExist   = errors.New("dcel: edge does not exist")
	ErrFaceDoesNotExist   = errors.New("dcel: face does not exist")
	ErrDisconnectedVertex = errors.New("dcel: vertex has no incident edge")
	ErrPlanarConflict     = errors.New("dcel: operation would cross an existing edge")
	ErrFaceMismatch       = errors.New("dcel: endpoints do not share a face")
	ErrIsolatedVertex     = errors.New("dcel: vertex is not connected")
	ErrWouldKillFace      = errors.New("dcel: operation would reduce a face below three edges")
	ErrWouldMakeNonPlanar = errors.New("dcel: operation would make the subdivision non-planar")

	// ErrNonDisjoint is dcel's name for the arena's duplicate-or-out-of-range
	// handle error, surfaced under the vocabulary used elsewhere in this table.
	ErrNonDisjoint = arena.ErrDuplicateOrOutOfRange
)
