// Package dcel implements a planar Doubly-Connected Edge List: vertices,
// paired directed half-edges, and faces stored in three arenas, together
// with the traversal and local-ordering machinery the topology operators in
// dcel/ops build on.
package dcel

import "github.com/go-dcel/dcel/arena"

// VertexKey, EdgeKey and FaceKey are phantom tags distinguishing
// arena.Handle[VertexKey] from arena.Handle[EdgeKey] and arena.Handle[FaceKey]
// at the type level; none of them carry any data.
type VertexKey struct{}
type EdgeKey struct{}
type FaceKey struct{}

// Vertex is a point in the subdivision together with one outgoing half-edge
// (or the zero handle if the vertex is isolated — a "hole" vertex) and a
// caller payload VW.
//
// Coord is hoisted to a concrete field rather than expressed through a
// generic Coordinate capability on VW: every operator that needs geometry
// (the linker's clockwise ordering, shoelace face splitting) needs it
// unconditionally, so gating it behind a type constraint would only push an
// artificial capability bound onto every caller regardless of payload.
type Vertex[VW any] struct {
	Edge   arena.Handle[EdgeKey]
	Coord  [3]float32
	Weight VW
}

// HalfEdge is one directed half of a twin pair.
type HalfEdge[EW any] struct {
	Origin arena.Handle[VertexKey]
	Twin   arena.Handle[EdgeKey]
	Prev   arena.Handle[EdgeKey]
	Next   arena.Handle[EdgeKey]
	Face   arena.Handle[FaceKey]
	Weight EW
}

// FaceMask packs the boolean bit-flags a Face carries.
type FaceMask uint8

const (
	FaceIsOuter FaceMask = 1 << iota
	FaceIsBoundary
	FaceIsZeroPerimeter
	FaceIsZeroArea
	FaceVisited
	FaceMarked
	FaceActiveRegion
	FaceTemp
)

// Has reports whether every bit in flags is set.
func (m FaceMask) Has(flags FaceMask) bool { return m&flags == flags }

// Set returns m with flags set.
func (m FaceMask) Set(flags FaceMask) FaceMask { return m | flags }

// Clear returns m with flags cleared.
func (m FaceMask) Clear(flags FaceMask) FaceMask { return m &^ flags }

// HoleKind discriminates the two shapes a Face's inner boundary can take.
type HoleKind int

const (
	HoleFace HoleKind = iota
	HoleVertex
)

// HoleRef is either a nested face boundary or a bare isolated vertex lying
// inside a face. Exactly one of Face/Vertex is meaningful, selected by Kind.
type HoleRef struct {
	Kind   HoleKind
	Face   arena.Handle[FaceKey]
	Vertex arena.Handle[VertexKey]
}

// FaceHole builds a HoleRef naming a nested face boundary.
func FaceHole(f arena.Handle[FaceKey]) HoleRef { return HoleRef{Kind: HoleFace, Face: f} }

// VertexHole builds a HoleRef naming a bare isolated vertex.
func VertexHole(v arena.Handle[VertexKey]) HoleRef { return HoleRef{Kind: HoleVertex, Vertex: v} }

// Face is a maximal region of the plane bounded by a cycle of half-edges
// that all share this face's handle.
type Face[FW any] struct {
	Edge   arena.Handle[EdgeKey]
	Holes  []HoleRef
	Mask   FaceMask
	Weight FW
}

// IsBounding reports whether this face is the subdivision's single unbounded
// outer face.
func (f *Face[FW]) IsBounding() bool { return f.Mask.Has(FaceIsOuter) }
