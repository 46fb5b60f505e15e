package ops

import (
	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/coord"
)

// Mef connects two existing vertices with a new twin pair, splitting the
// face they share. Check fails with FaceMismatch if the two vertices do not
// co-bound a common face.
type Mef[VW, EW, FW any] struct {
	Vertices           [2]arena.Handle[dcel.VertexKey]
	FaceWeight         FW
	E1Weight, E2Weight EW
}

// sharedFace locates the face v1 and v2's prospective new edge would split,
// returning an error if they do not share one.
func (op Mef[VW, EW, FW]) sharedFace(d *dcel.Dcel[VW, EW, FW]) (arena.Handle[dcel.FaceKey], error) {
	v1, v2 := op.Vertices[0], op.Vertices[1]

	_, v1Next, err := d.FindPrevNext(v1, v2)
	if err != nil {
		return arena.Handle[dcel.FaceKey]{}, err
	}
	_, v2Next, err := d.FindPrevNext(v2, v1)
	if err != nil {
		return arena.Handle[dcel.FaceKey]{}, err
	}

	// The new outgoing half-edge continues into v2's successor edge and the
	// incoming half into v1's, so those prospective next-edges' CURRENT
	// faces are what must match.
	outgoingFace := d.Edges.Get(v2Next).Face
	incomingFace := d.Edges.Get(v1Next).Face

	if outgoingFace != incomingFace {
		return arena.Handle[dcel.FaceKey]{}, dcel.ErrFaceMismatch
	}
	return outgoingFace, nil
}

func (op Mef[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	for _, vh := range op.Vertices {
		v := d.Vertices.Get(vh)
		if v == nil {
			return dcel.ErrVertexDoesNotExist
		}
		if !v.Edge.Valid() {
			return dcel.ErrIsolatedVertex
		}
	}
	_, err := op.sharedFace(d)
	return err
}

func (op Mef[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	v1, v2 := op.Vertices[0], op.Vertices[1]

	v1Prev, v1Next, err := d.FindPrevNext(v1, v2)
	if err != nil {
		return nil, err
	}
	v2Prev, v2Next, err := d.FindPrevNext(v2, v1)
	if err != nil {
		return nil, err
	}

	outgoingFace := d.Edges.Get(v2Next).Face
	incomingFace := d.Edges.Get(v1Next).Face
	if outgoingFace != incomingFace {
		return nil, dcel.ErrFaceMismatch
	}
	sharedFace := outgoingFace

	// The face's boundary orientation BEFORE the new pair is linked in is
	// the reference the splitting rule compares against; once the follows
	// below run, sharedFace.Edge's cycle is one of the two halves and the
	// comparison would be circular.
	faceArea, err := dcel.SignedArea(d, d.Faces.Get(sharedFace).Edge)
	if err != nil {
		return nil, err
	}

	outgoing := d.Edges.Reserve()
	incoming := d.Edges.Reserve()

	d.Edges.Set(outgoing, dcel.HalfEdge[EW]{
		Origin: v1, Twin: incoming, Prev: incoming, Next: incoming, Face: sharedFace, Weight: op.E1Weight,
	})
	d.Edges.Set(incoming, dcel.HalfEdge[EW]{
		Origin: v2, Twin: outgoing, Prev: outgoing, Next: outgoing, Face: sharedFace, Weight: op.E2Weight,
	})

	// Four follows, one per endpoint side: each fan predecessor's twin flows
	// into the new half leaving that vertex, and each new half flows into the
	// far vertex's fan successor.
	d.Follow(d.Edges.Get(v1Prev).Twin, outgoing)
	d.Follow(outgoing, v2Next)

	d.Follow(d.Edges.Get(v2Prev).Twin, incoming)
	d.Follow(incoming, v1Next)

	outgoingArea, err := dcel.SignedArea(d, outgoing)
	if err != nil {
		return nil, err
	}

	// The edge that causes the opposite orientation from the face being
	// split is the one bounding the newly created face. A neutral reference
	// (the face's boundary was still a degenerate drawn path) cannot take a
	// side, so the cycle with counter-clockwise area — the enclosed side —
	// becomes the new face.
	var propagate arena.Handle[dcel.EdgeKey]
	switch refOrient := coord.OrientationOf(faceArea); {
	case refOrient.IsNeutral():
		if outgoingArea > 0 {
			propagate = outgoing
		} else {
			propagate = incoming
		}
	case refOrient == coord.OrientationOf(outgoingArea):
		propagate = incoming
	default:
		propagate = outgoing
	}

	// Each of the two cycles contains exactly one half of the new pair, so
	// re-anchoring the split face on the kept half keeps its Edge field on
	// the cycle that stays with it, even when both cycles are degenerate
	// (a zero-area lens) and the orientation test cannot tell them apart.
	kept := outgoing
	if propagate == outgoing {
		kept = incoming
	}
	d.Faces.Get(sharedFace).Edge = kept

	face := d.Faces.Insert(dcel.Face[FW]{Edge: propagate, Weight: op.FaceWeight})

	if err := d.PropagateFace(propagate, face); err != nil {
		return nil, err
	}

	newArea, err := dcel.SignedArea(d, propagate)
	if err != nil {
		return nil, err
	}
	if newArea == 0 {
		// A lens between the two endpoints of an existing edge, or any other
		// degenerate split, encloses nothing.
		f := d.Faces.Get(face)
		f.Mask = f.Mask.Set(dcel.FaceIsZeroArea)
	}

	d.NotifyFaceCreated(face)
	d.NotifyFaceChanged(sharedFace)

	return Kef[VW, EW, FW]{
		Face:  face,
		Edges: [2]arena.Handle[dcel.EdgeKey]{outgoing, incoming},
	}, nil
}

// Kef is the inverse of Mef: it merges the face it names back into the
// face across the twin pair being removed, then removes the pair.
type Kef[VW, EW, FW any] struct {
	Face  arena.Handle[dcel.FaceKey]
	Edges [2]arena.Handle[dcel.EdgeKey]
}

func (op Kef[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	if d.Faces.Get(op.Face) == nil {
		return dcel.ErrFaceDoesNotExist
	}
	if d.Edges.Get(op.Edges[0]) == nil || d.Edges.Get(op.Edges[1]) == nil {
		return dcel.ErrEdgeDoesNotExist
	}
	return nil
}

func (op Kef[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	e1, e2 := op.Edges[0], op.Edges[1]
	e1Face := d.Edges.Get(e1).Face
	e2Face := d.Edges.Get(e2).Face

	rface := e2Face
	if op.Face == e2Face {
		rface = e1Face
	}

	if err := d.PropagateFace(e1, rface); err != nil {
		return nil, err
	}
	if err := d.PropagateFace(e2, rface); err != nil {
		return nil, err
	}

	// The kept face may currently be anchored on one of the halves about to
	// be removed; re-anchor it on a surviving neighbour of the merged cycle.
	if rf := d.Faces.Get(rface); rf.Edge == e1 || rf.Edge == e2 {
		for _, cand := range [4]arena.Handle[dcel.EdgeKey]{
			d.Edges.Get(e1).Prev, d.Edges.Get(e1).Next,
			d.Edges.Get(e2).Prev, d.Edges.Get(e2).Next,
		} {
			if cand != e1 && cand != e2 {
				rf.Edge = cand
				break
			}
		}
	}

	d.UnspliceEdge([2]arena.Handle[dcel.EdgeKey]{e1, e2})

	outgoing, _ := d.Edges.Remove(e1)
	incoming, _ := d.Edges.Remove(e2)
	face, _ := d.Faces.Remove(op.Face)

	d.NotifyFaceRemoved(op.Face)
	d.NotifyFaceChanged(rface)

	return Mef[VW, EW, FW]{
		Vertices:   [2]arena.Handle[dcel.VertexKey]{outgoing.Origin, incoming.Origin},
		FaceWeight: face.Weight,
		E1Weight:   outgoing.Weight,
		E2Weight:   incoming.Weight,
	}, nil
}
