package ops

import (
	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
)

// faceEdgeCount counts the half-edges on the face cycle starting at edge.
func faceEdgeCount[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], edge arena.Handle[dcel.EdgeKey]) (int, error) {
	t, err := dcel.NewTraverser(d, edge)
	if err != nil {
		return 0, err
	}
	n := 0
	for {
		n++
		t.Next(d)
		if t.IsAtStart() {
			return n, nil
		}
	}
}

// Mve makes a new vertex and a twin pair connecting it to an existing
// vertex Origin, inserted into Origin's clockwise order at the position
// find_prev_next picks. The pair is dangling — it does not split a face;
// both half-edges inherit Origin's adjacent face. An optional Reparent
// subset moves a prefix of Origin's outgoing edges onto the new vertex,
// used by the combo operators to uncollapse an edge.
type Mve[VW, EW, FW any] struct {
	Origin             arena.Handle[dcel.VertexKey]
	Coord              [3]float32
	Weight             VW
	E1Weight, E2Weight EW
	Reparent           []arena.Handle[dcel.EdgeKey]
}

func (op Mve[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	v := d.Vertices.Get(op.Origin)
	if v == nil {
		return dcel.ErrVertexDoesNotExist
	}
	// A hole vertex has no local cyclic order to insert into; connecting one
	// is MEKH territory, not MVE's.
	if !v.Edge.Valid() {
		return dcel.ErrDisconnectedVertex
	}
	for _, e := range op.Reparent {
		if d.Edges.Get(e) == nil {
			return dcel.ErrEdgeDoesNotExist
		}
	}
	return nil
}

func (op Mve[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	outgoing := d.Edges.Reserve()
	incoming := d.Edges.Reserve()

	vertex := d.Vertices.Insert(dcel.Vertex[VW]{Edge: incoming, Coord: op.Coord, Weight: op.Weight})

	outgoingPrev, outgoingNext, err := d.FindPrevNext(op.Origin, vertex)
	if err != nil {
		return nil, err
	}
	outgoingFace := d.Edges.Get(d.Edges.Get(outgoingPrev).Twin).Face

	d.Edges.Set(outgoing, dcel.HalfEdge[EW]{
		Origin: op.Origin, Twin: incoming, Prev: outgoingPrev, Next: incoming, Face: outgoingFace, Weight: op.E1Weight,
	})
	d.Edges.Set(incoming, dcel.HalfEdge[EW]{
		Origin: vertex, Twin: outgoing, Prev: outgoing, Next: outgoing, Face: outgoingFace, Weight: op.E2Weight,
	})

	// The pair's own next/prev linkage (outgoing <-> incoming) is already in
	// the two literals above; splicing outgoing between its neighbours is all
	// that ties the dangle into origin's rotation.
	d.SpliceEdge(outgoing, outgoingPrev, outgoingNext)

	if len(op.Reparent) > 0 {
		if _, err := d.ReparentVertex(vertex, op.Origin, op.Reparent); err != nil {
			return nil, err
		}
	}

	d.NotifyVertexCreated(vertex)

	return Kve[VW, EW, FW]{
		Origin: op.Origin,
		Vertex: vertex,
		Edges:  [2]arena.Handle[dcel.EdgeKey]{outgoing, incoming},
	}, nil
}

// Kve is the inverse of Mve: it removes the dangling vertex and twin pair,
// reparenting any of the vertex's other outgoing edges back onto Origin.
// It fails if either adjacent face cycle currently has three half-edges or
// fewer; a four-edge cycle (a seed pair plus the dangle) may be reduced back
// to the two-edge seed pair.
type Kve[VW, EW, FW any] struct {
	Origin arena.Handle[dcel.VertexKey]
	Vertex arena.Handle[dcel.VertexKey]
	Edges  [2]arena.Handle[dcel.EdgeKey]
}

func (op Kve[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	outgoing := d.Edges.Get(op.Edges[0])
	incoming := d.Edges.Get(op.Edges[1])
	if outgoing == nil || incoming == nil {
		return dcel.ErrEdgeDoesNotExist
	}

	outgoingFace := d.Faces.Get(outgoing.Face)
	incomingFace := d.Faces.Get(incoming.Face)
	if outgoingFace == nil || incomingFace == nil {
		return dcel.ErrFaceDoesNotExist
	}

	outgoingCount, err := faceEdgeCount(d, outgoingFace.Edge)
	if err != nil {
		return err
	}
	incomingCount, err := faceEdgeCount(d, incomingFace.Edge)
	if err != nil {
		return err
	}
	// A cycle of three is a face at its minimum; a cycle of two is the seed
	// pair itself, whose removal is KVVEF's job.
	if outgoingCount <= 3 || incomingCount <= 3 {
		return dcel.ErrWouldKillFace
	}
	return nil
}

func (op Kve[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	// Re-anchor the surrounding face if it was held by one of the halves
	// being removed.
	faceH := d.Edges.Get(op.Edges[0]).Face
	if f := d.Faces.Get(faceH); f != nil && (f.Edge == op.Edges[0] || f.Edge == op.Edges[1]) {
		for _, cand := range [4]arena.Handle[dcel.EdgeKey]{
			d.Edges.Get(op.Edges[0]).Prev, d.Edges.Get(op.Edges[0]).Next,
			d.Edges.Get(op.Edges[1]).Prev, d.Edges.Get(op.Edges[1]).Next,
		} {
			if cand != op.Edges[0] && cand != op.Edges[1] {
				f.Edge = cand
				break
			}
		}
	}

	d.UnspliceEdge(op.Edges)

	outgoing, _ := d.Edges.Remove(op.Edges[0])
	incoming, _ := d.Edges.Remove(op.Edges[1])

	reparent, err := d.ReparentVertex(op.Origin, op.Vertex, nil)
	if err != nil {
		return nil, err
	}

	v, _ := d.Vertices.Remove(op.Vertex)
	d.NotifyVertexRemoved(op.Vertex)

	return Mve[VW, EW, FW]{
		Origin:   op.Origin,
		Coord:    v.Coord,
		Weight:   v.Weight,
		E1Weight: outgoing.Weight,
		E2Weight: incoming.Weight,
		Reparent: reparent,
	}, nil
}
