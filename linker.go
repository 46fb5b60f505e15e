package dcel

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/coord"
)

// linker holds the reusable scratch buffer the local-ordering primitives
// need when sorting a vertex's outgoing edges, so interactive editing does
// not churn the heap on every insertion or removal.
type linker[VW, EW, FW any] struct {
	scratch []arena.Handle[EdgeKey]
}

// Follow sets next.Prev = prev and prev.Next = next. No other field is
// touched.
func (d *Dcel[VW, EW, FW]) Follow(prev, next arena.Handle[EdgeKey]) {
	d.Edges.Get(next).Prev = prev
	d.Edges.Get(prev).Next = next
}

// SplicePrev splices edge into an existing local cycle so that
// localPrev.Twin.Next = edge and edge.Prev = localPrev.Twin.
func (d *Dcel[VW, EW, FW]) SplicePrev(edge, localPrev arena.Handle[EdgeKey]) {
	twin := d.Edges.Get(localPrev).Twin
	d.Edges.Get(twin).Next = edge
	d.Edges.Get(edge).Prev = twin
}

// SpliceNext is the symmetric operation on the forward side.
func (d *Dcel[VW, EW, FW]) SpliceNext(edge, localNext arena.Handle[EdgeKey]) {
	twin := d.Edges.Get(edge).Twin
	d.Edges.Get(twin).Next = localNext
	d.Edges.Get(localNext).Prev = twin
}

// SpliceEdge performs both halves of inserting edge between localPrev and
// localNext in a vertex's rotational order.
func (d *Dcel[VW, EW, FW]) SpliceEdge(edge, localPrev, localNext arena.Handle[EdgeKey]) {
	d.SplicePrev(edge, localPrev)
	d.SpliceNext(edge, localNext)
}

// UnspliceEdge prepares a twin pair [e1, e2] for removal: it patches the two
// neighbouring cycles to skip over them (follow(a,b), follow(c,d) per the
// diagram below) and redirects each endpoint vertex's outgoing edge away
// from the pair if it was pointing at one of them.
//
//	    a
//	  / | \
//	 b  |  d
//	  \ | /
//	    c
func (d *Dcel[VW, EW, FW]) UnspliceEdge(edges [2]arena.Handle[EdgeKey]) {
	e1, e2 := edges[0], edges[1]

	for _, e := range edges {
		he := d.Edges.Get(e)
		origin := d.Vertices.Get(he.Origin)
		if origin.Edge == e {
			twin := d.Edges.Get(he.Twin)
			alt := twin.Next
			if alt == e {
				origin.Edge = arena.Handle[EdgeKey]{}
			} else {
				origin.Edge = alt
			}
		}
	}

	a := d.Edges.Get(e1).Prev
	b := d.Edges.Get(e2).Next
	c := d.Edges.Get(e2).Prev
	dd := d.Edges.Get(e1).Next

	d.Follow(a, b)
	d.Follow(c, dd)
}

// SortAround sorts buffer's edges by the clockwise position of their
// destination (twin's origin) as seen from center.
func (d *Dcel[VW, EW, FW]) SortAround(center [2]coord.Precision, buffer []arena.Handle[EdgeKey]) {
	sort.SliceStable(buffer, func(i, j int) bool {
		at := d.Edges.Get(buffer[i]).Twin
		bt := d.Edges.Get(buffer[j]).Twin
		ao := d.Edges.Get(at).Origin
		bo := d.Edges.Get(bt).Origin
		return coord.SortClockwise(center, d.vertexXY(ao), d.vertexXY(bo)) < 0
	})
}

// FindPrevNext finds the pair (prev, next) of center's existing outgoing
// half-edges such that a new edge from center towards reference would insert
// between them in clockwise rotation: prev is the new edge's clockwise
// predecessor in the fan and next its successor. It enumerates the fan,
// sorts it under SortClockwise, and picks the neighbours of reference's slot
// in the sorted cycle — because the comparator is a total order, the fan's
// comparison against reference is monotone along the sorted fan and the slot
// is the first edge sorting after it (wrapping when reference sorts first
// or last).
func (d *Dcel[VW, EW, FW]) FindPrevNext(center, reference arena.Handle[VertexKey]) (prev, next arena.Handle[EdgeKey], err error) {
	c := d.vertexXY(center)
	r := d.vertexXY(reference)

	fan, err := d.collectAround(center)
	if err != nil {
		return prev, next, err
	}
	d.SortAround(c, fan)

	slot := len(fan)
	for i, e := range fan {
		dest := d.vertexXY(d.Edges.Get(d.Edges.Get(e).Twin).Origin)
		if coord.SortClockwise(c, dest, r) > 0 {
			slot = i
			break
		}
	}
	n := len(fan)
	return fan[(slot+n-1)%n], fan[slot%n], nil
}

// PatchLocalOrdering bulk-reorders edges around the vertex around: it sorts
// them under SortClockwise, splices each between its two neighbours, rewrites
// each edge's Origin to around, and sets around's outgoing edge to the first
// sorted edge. Used after a structural change moves multiple edges onto one
// vertex at once (MVE's optional reparent list, ReparentVertex).
func (d *Dcel[VW, EW, FW]) PatchLocalOrdering(around arena.Handle[VertexKey], edges []arena.Handle[EdgeKey]) error {
	n := len(edges)
	if n == 0 {
		return nil
	}

	v := d.Vertices.Get(around)
	if v == nil {
		return fmt.Errorf("%w: %s", ErrVertexDoesNotExist, around)
	}
	center := [2]coord.Precision{v.Coord[0], v.Coord[1]}

	d.SortAround(center, edges)

	for i, edge := range edges {
		localPrev := edges[(i+n-1)%n]
		localNext := edges[(i+1)%n]
		d.SpliceEdge(edge, localPrev, localNext)
		d.Edges.Get(edge).Origin = around
	}
	d.Vertices.Get(around).Edge = edges[0]

	return nil
}

// ReparentVertex moves outgoing half-edges from vertex to origin, merges
// them into origin's existing cyclic order, and patches both vertices'
// rotational order.
//
// When only is nil, every one of vertex's outgoing edges is moved and
// vertex.Edge becomes the zero handle; the moved edges are returned so an
// inverse operator can undo the move. When only is non-nil, exactly that
// subset is moved (used by combo operators uncollapsing an edge) and the
// remaining edges are re-sorted around vertex.
func (d *Dcel[VW, EW, FW]) ReparentVertex(origin, vertex arena.Handle[VertexKey], only []arena.Handle[EdgeKey]) ([]arena.Handle[EdgeKey], error) {
	around, err := d.collectAround(vertex)
	if err != nil && !errors.Is(err, ErrDisconnectedVertex) {
		return nil, err
	}

	moved := only
	if moved == nil {
		moved = around
	}

	existing, err := d.collectAround(origin)
	if err != nil && !errors.Is(err, ErrDisconnectedVertex) {
		return nil, err
	}

	d.linker.scratch = d.linker.scratch[:0]
	d.linker.scratch = append(d.linker.scratch, existing...)
	d.linker.scratch = append(d.linker.scratch, moved...)
	if err := d.PatchLocalOrdering(origin, d.linker.scratch); err != nil {
		return nil, err
	}

	if only == nil {
		d.Vertices.Get(vertex).Edge = arena.Handle[EdgeKey]{}
		return moved, nil
	}

	toMove := make(map[arena.Handle[EdgeKey]]struct{}, len(only))
	for _, e := range only {
		toMove[e] = struct{}{}
	}
	remaining := make([]arena.Handle[EdgeKey], 0, len(around))
	for _, e := range around {
		if _, ok := toMove[e]; !ok {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == 0 {
		d.Vertices.Get(vertex).Edge = arena.Handle[EdgeKey]{}
		return moved, nil
	}
	if err := d.PatchLocalOrdering(vertex, remaining); err != nil {
		return nil, err
	}
	return moved, nil
}

func (d *Dcel[VW, EW, FW]) collectAround(vertex arena.Handle[VertexKey]) ([]arena.Handle[EdgeKey], error) {
	t, err := TraverserAt(d, vertex)
	if err != nil {
		return nil, err
	}
	var out []arena.Handle[EdgeKey]
	for {
		e := t.Edge()
		t.LocalNext(d)
		out = append(out, e)
		if t.IsAtStart() {
			break
		}
	}
	return out, nil
}
