package ops

import (
	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
)

// Mvh makes an isolated hole-vertex: no incident edge, optionally recorded
// as a hole reference inside the face it floats in. Face may be left as the
// zero handle when the caller does not track containment (the core has no
// point-in-face query of its own, so it never guesses).
type Mvh[VW, EW, FW any] struct {
	Coord  [3]float32
	Weight VW
	Face   arena.Handle[dcel.FaceKey]
}

func (op Mvh[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	if op.Face.Valid() && d.Faces.Get(op.Face) == nil {
		return dcel.ErrFaceDoesNotExist
	}
	return nil
}

func (op Mvh[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	vertex := d.Vertices.Insert(dcel.Vertex[VW]{Coord: op.Coord, Weight: op.Weight})
	if f := d.Faces.Get(op.Face); f != nil {
		f.Holes = append(f.Holes, dcel.VertexHole(vertex))
	}
	d.NotifyVertexCreated(vertex)
	return Kvh[VW, EW, FW]{Vertex: vertex, Face: op.Face}, nil
}

// Kvh kills a hole-vertex, dropping its hole reference from the containing
// face if one was recorded. It fails if the vertex has any outgoing edge.
type Kvh[VW, EW, FW any] struct {
	Vertex arena.Handle[dcel.VertexKey]
	Face   arena.Handle[dcel.FaceKey]
}

func (op Kvh[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	v := d.Vertices.Get(op.Vertex)
	if v == nil {
		return dcel.ErrVertexDoesNotExist
	}
	if v.Edge.Valid() {
		return ErrVertexNotIsolated
	}
	if op.Face.Valid() && d.Faces.Get(op.Face) == nil {
		return dcel.ErrFaceDoesNotExist
	}
	return nil
}

func (op Kvh[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	v, _ := d.Vertices.Remove(op.Vertex)
	if f := d.Faces.Get(op.Face); f != nil {
		for i, hole := range f.Holes {
			if hole.Kind == dcel.HoleVertex && hole.Vertex == op.Vertex {
				f.Holes = append(f.Holes[:i], f.Holes[i+1:]...)
				break
			}
		}
	}
	d.NotifyVertexRemoved(op.Vertex)
	return Mvh[VW, EW, FW]{Coord: v.Coord, Weight: v.Weight, Face: op.Face}, nil
}
