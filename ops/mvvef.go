package ops

import (
	"fmt"

	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
)

// Mvvef seeds two isolated vertices connected by one twin-pair plus one
// face. It is how an empty Dcel gets its first content; if no bounding face
// exists yet, the seeded face becomes it.
type Mvvef[VW, EW, FW any] struct {
	V1Coord, V2Coord   [3]float32
	V1Weight, V2Weight VW
	E1Weight, E2Weight EW
	FaceWeight         FW
}

// Check never fails: MVVEF has no precondition.
func (op Mvvef[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error { return nil }

func (op Mvvef[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	outgoing := d.Edges.Reserve()
	incoming := d.Edges.Reserve()

	v1 := d.Vertices.Insert(dcel.Vertex[VW]{Edge: outgoing, Coord: op.V1Coord, Weight: op.V1Weight})
	v2 := d.Vertices.Insert(dcel.Vertex[VW]{Edge: incoming, Coord: op.V2Coord, Weight: op.V2Weight})

	face := d.Faces.Insert(dcel.Face[FW]{Edge: outgoing, Weight: op.FaceWeight})

	d.Edges.Set(outgoing, dcel.HalfEdge[EW]{
		Origin: v1, Twin: incoming, Prev: incoming, Next: incoming, Face: face, Weight: op.E1Weight,
	})
	d.Edges.Set(incoming, dcel.HalfEdge[EW]{
		Origin: v2, Twin: outgoing, Prev: outgoing, Next: outgoing, Face: face, Weight: op.E2Weight,
	})

	d.EnsureBoundingFace(face)

	d.NotifyVertexCreated(v1)
	d.NotifyVertexCreated(v2)
	d.NotifyFaceCreated(face)

	return Kvvef[VW, EW, FW]{
		Vertices: [2]arena.Handle[dcel.VertexKey]{v1, v2},
		Edges:    [2]arena.Handle[dcel.EdgeKey]{outgoing, incoming},
		Face:     face,
	}, nil
}

// Kvvef removes all five records an Mvvef created. Both vertices must be
// incident only to this twin-pair.
type Kvvef[VW, EW, FW any] struct {
	Vertices [2]arena.Handle[dcel.VertexKey]
	Edges    [2]arena.Handle[dcel.EdgeKey]
	Face     arena.Handle[dcel.FaceKey]
}

func (op Kvvef[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	for i, vh := range op.Vertices {
		v := d.Vertices.Get(vh)
		if v == nil {
			return fmt.Errorf("%w: %s", dcel.ErrVertexDoesNotExist, vh)
		}
		e := d.Edges.Get(op.Edges[i])
		if e == nil {
			return fmt.Errorf("%w: %s", dcel.ErrEdgeDoesNotExist, op.Edges[i])
		}
		// The vertex's one outgoing edge must be its half of the pair, and
		// rotating local-next from it must come straight back (degree one).
		if v.Edge != op.Edges[i] || d.Edges.Get(e.Twin).Next != op.Edges[i] {
			return fmt.Errorf("%w: %s", ErrVertexHasOtherEdges, vh)
		}
	}
	if d.Faces.Get(op.Face) == nil {
		return fmt.Errorf("%w: %s", dcel.ErrFaceDoesNotExist, op.Face)
	}
	return nil
}

func (op Kvvef[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	v1, _ := d.Vertices.Remove(op.Vertices[0])
	v2, _ := d.Vertices.Remove(op.Vertices[1])
	e1, _ := d.Edges.Remove(op.Edges[0])
	e2, _ := d.Edges.Remove(op.Edges[1])
	face, _ := d.Faces.Remove(op.Face)

	d.ClearBoundingFaceIfMatches(op.Face)

	d.NotifyVertexRemoved(op.Vertices[0])
	d.NotifyVertexRemoved(op.Vertices[1])
	d.NotifyFaceRemoved(op.Face)

	return Mvvef[VW, EW, FW]{
		V1Coord: v1.Coord, V2Coord: v2.Coord,
		V1Weight: v1.Weight, V2Weight: v2.Weight,
		E1Weight: e1.Weight, E2Weight: e2.Weight,
		FaceWeight: face.Weight,
	}, nil
}
