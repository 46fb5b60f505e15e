package dcel

import (
	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/coord"
)

// Traverser is a borrowed cursor over half-edges: (start, current). It never
// mutates the Dcel and must not be held across a mutating operator call.
type Traverser[VW, EW, FW any] struct {
	start arena.Handle[EdgeKey]
	edge  arena.Handle[EdgeKey]
}

// NewTraverser starts a cursor at edge.
func NewTraverser[VW, EW, FW any](d *Dcel[VW, EW, FW], edge arena.Handle[EdgeKey]) (*Traverser[VW, EW, FW], error) {
	if _, err := d.mustEdge(edge); err != nil {
		return nil, err
	}
	return &Traverser[VW, EW, FW]{start: edge, edge: edge}, nil
}

// TraverserAt starts a cursor at vertex's one outgoing edge. Fails with
// ErrDisconnectedVertex if the vertex is isolated.
func TraverserAt[VW, EW, FW any](d *Dcel[VW, EW, FW], vertex arena.Handle[VertexKey]) (*Traverser[VW, EW, FW], error) {
	v, err := d.mustVertex(vertex)
	if err != nil {
		return nil, err
	}
	if !v.Edge.Valid() {
		return nil, ErrDisconnectedVertex
	}
	return &Traverser[VW, EW, FW]{start: v.Edge, edge: v.Edge}, nil
}

// Start returns the cursor's fixed starting edge.
func (t *Traverser[VW, EW, FW]) Start() arena.Handle[EdgeKey] { return t.start }

// Edge returns the cursor's current edge.
func (t *Traverser[VW, EW, FW]) Edge() arena.Handle[EdgeKey] { return t.edge }

// IsAtStart reports whether the cursor has returned to its starting edge.
func (t *Traverser[VW, EW, FW]) IsAtStart() bool { return t.start == t.edge }

// Reset moves the cursor back to its starting edge.
func (t *Traverser[VW, EW, FW]) Reset() { t.edge = t.start }

// Next follows HalfEdge.Next (one step of the face boundary walk).
func (t *Traverser[VW, EW, FW]) Next(d *Dcel[VW, EW, FW]) {
	t.edge = d.Edges.Get(t.edge).Next
}

// Prev follows HalfEdge.Prev.
func (t *Traverser[VW, EW, FW]) Prev(d *Dcel[VW, EW, FW]) {
	t.edge = d.Edges.Get(t.edge).Prev
}

// Twin jumps to the twin half-edge.
func (t *Traverser[VW, EW, FW]) Twin(d *Dcel[VW, EW, FW]) {
	t.edge = d.Edges.Get(t.edge).Twin
}

// LocalPrev rotates one step counter-clockwise around origin: Prev then Twin.
func (t *Traverser[VW, EW, FW]) LocalPrev(d *Dcel[VW, EW, FW]) {
	t.Prev(d)
	t.Twin(d)
}

// LocalNext rotates one step clockwise around origin: Twin then Next.
func (t *Traverser[VW, EW, FW]) LocalNext(d *Dcel[VW, EW, FW]) {
	t.Twin(d)
	t.Next(d)
}

// Outwards walks next-then-twin from the traverser's current edge,
// stepping outward one boundary at a time, until it lands on a half-edge
// whose face is flagged FaceIsOuter.
func (t *Traverser[VW, EW, FW]) Outwards(d *Dcel[VW, EW, FW]) {
	for {
		t.Next(d)
		t.Twin(d)
		if d.Faces.Get(d.Edges.Get(t.edge).Face).Mask.Has(FaceIsOuter) {
			return
		}
	}
}

// OutwardsAt walks Outwards starting fresh from edge, for callers that do
// not already hold a cursor. It returns the half-edge reached once its face
// is flagged FaceIsOuter.
func OutwardsAt[VW, EW, FW any](d *Dcel[VW, EW, FW], edge arena.Handle[EdgeKey]) (arena.Handle[EdgeKey], error) {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return arena.Handle[EdgeKey]{}, err
	}
	t.Outwards(d)
	return t.Edge(), nil
}

// IsLineSegment reports whether the face cycle starting at the traverser's
// current edge folds back on itself anywhere (next == twin for some visited
// half-edge), as it does at the free end of a dangling edge. A cycle that
// encloses area but also carries a dangling edge reports true as well.
func (t *Traverser[VW, EW, FW]) IsLineSegment(d *Dcel[VW, EW, FW]) bool {
	walker := &Traverser[VW, EW, FW]{start: t.edge, edge: t.edge}
	for {
		e := d.Edges.Get(walker.edge)
		if e.Next == e.Twin {
			return true
		}
		walker.Next(d)
		if walker.IsAtStart() {
			return false
		}
	}
}

// LocalPrevNext computes the (local_prev, local_next) pair of edge without
// mutating any shared cursor state.
func LocalPrevNext[VW, EW, FW any](d *Dcel[VW, EW, FW], edge arena.Handle[EdgeKey]) (prev, next arena.Handle[EdgeKey], err error) {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return prev, next, err
	}
	t.LocalPrev(d)
	prev = t.Edge()
	t.Reset()
	t.LocalNext(d)
	next = t.Edge()
	return prev, next, nil
}

// IsLineSegmentAt reports the IsLineSegment check starting fresh from edge,
// for callers that do not already hold a cursor.
func IsLineSegmentAt[VW, EW, FW any](d *Dcel[VW, EW, FW], edge arena.Handle[EdgeKey]) (bool, error) {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return false, err
	}
	return t.IsLineSegment(d), nil
}

// SignedArea folds the shoelace accumulator over the face cycle starting at
// edge.
func SignedArea[VW, EW, FW any](d *Dcel[VW, EW, FW], edge arena.Handle[EdgeKey]) (coord.Precision, error) {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return 0, err
	}
	var acc coord.Shoelace
	for {
		e, err := d.mustEdge(t.Edge())
		if err != nil {
			return 0, err
		}
		twin, err := d.mustEdge(e.Twin)
		if err != nil {
			return 0, err
		}
		v1 := d.vertexXY(e.Origin)
		v2 := d.vertexXY(twin.Origin)
		acc.Add(v1, v2)
		t.Next(d)
		if t.IsAtStart() {
			break
		}
	}
	return acc.Area(), nil
}
