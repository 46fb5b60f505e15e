package ops

import (
	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
)

// CollapseEdge removes an edge incident to vertex and reparents vertex's
// remaining outgoing edges onto origin, first killing up to two adjacent
// triangular faces that the collapse would otherwise leave degenerate. It
// is built from Kef and Kve rather than being a primitive operator itself,
// which is why it does not implement Op: its inverse (UncollapseEdge) is a
// distinct type, not itself.
type CollapseEdge[VW, EW, FW any] struct {
	killAdjacentFaces [2]*Kef[VW, EW, FW]
	killVertexEdge    Kve[VW, EW, FW]
}

// NewCollapseEdge inspects the two half-edges between origin and vertex and
// decides, for each adjacent face, whether collapsing would leave it at
// exactly two edges (a degenerate triangle) and so needs killing first.
func NewCollapseEdge[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], origin arena.Handle[dcel.VertexKey], edges [2]arena.Handle[dcel.EdgeKey], vertex arena.Handle[dcel.VertexKey]) (CollapseEdge[VW, EW, FW], error) {
	var killFaces [2]*Kef[VW, EW, FW]

	for i, edge := range edges {
		he := d.Edges.Get(edge)
		if he == nil {
			return CollapseEdge[VW, EW, FW]{}, dcel.ErrEdgeDoesNotExist
		}
		edgeOrigin := he.Origin
		twin := d.Edges.Get(he.Twin)

		// A half whose twin rotates straight back onto its own prev's twin is
		// the collapsing pair seen from the far vertex; only the near side's
		// adjacent face can degenerate.
		if edgeOrigin != origin && twin.Next == d.Edges.Get(he.Prev).Twin {
			continue
		}

		faceEdges, err := faceEdgeCount(d, edge)
		if err != nil {
			return CollapseEdge[VW, EW, FW]{}, err
		}
		if faceEdges != 3 {
			continue
		}

		var kill arena.Handle[dcel.EdgeKey]
		if edgeOrigin == origin {
			kill = he.Next
		} else {
			kill = he.Prev
		}
		killTwin := d.Edges.Get(kill).Twin

		kef := Kef[VW, EW, FW]{Face: he.Face, Edges: [2]arena.Handle[dcel.EdgeKey]{kill, killTwin}}
		killFaces[i] = &kef
	}

	return CollapseEdge[VW, EW, FW]{
		killAdjacentFaces: killFaces,
		killVertexEdge:    Kve[VW, EW, FW]{Origin: origin, Vertex: vertex, Edges: edges},
	}, nil
}

// Apply kills each flagged adjacent face (best-effort: a face that fails to
// check, e.g. because an earlier kill already consumed it, is silently
// skipped rather than aborting the whole collapse), then kills the
// vertex-edge pair.
func (op CollapseEdge[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (UncollapseEdge[VW, EW, FW], error) {
	var madeFaces [2]*Mef[VW, EW, FW]
	for i, kef := range op.killAdjacentFaces {
		if kef == nil {
			continue
		}
		inv, err := CheckApply[VW, EW, FW](d, *kef)
		if err != nil {
			continue
		}
		mef := inv.(Mef[VW, EW, FW])
		madeFaces[i] = &mef
	}

	inv, err := CheckApply[VW, EW, FW](d, op.killVertexEdge)
	if err != nil {
		return UncollapseEdge[VW, EW, FW]{}, err
	}
	mve := inv.(Mve[VW, EW, FW])

	return UncollapseEdge[VW, EW, FW]{makeAdjacentFaces: madeFaces, makeVertexEdge: mve}, nil
}

// UncollapseEdge is CollapseEdge's inverse: it re-inserts the vertex-edge
// pair, then recreates any faces CollapseEdge killed.
type UncollapseEdge[VW, EW, FW any] struct {
	makeAdjacentFaces [2]*Mef[VW, EW, FW]
	makeVertexEdge    Mve[VW, EW, FW]
}

func (op UncollapseEdge[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (CollapseEdge[VW, EW, FW], error) {
	inv, err := CheckApply[VW, EW, FW](d, op.makeVertexEdge)
	if err != nil {
		return CollapseEdge[VW, EW, FW]{}, err
	}
	kve := inv.(Kve[VW, EW, FW])

	var killFaces [2]*Kef[VW, EW, FW]
	for i, mef := range op.makeAdjacentFaces {
		if mef == nil {
			continue
		}
		inv, err := CheckApply[VW, EW, FW](d, *mef)
		if err != nil {
			continue
		}
		kef := inv.(Kef[VW, EW, FW])
		killFaces[i] = &kef
	}

	return CollapseEdge[VW, EW, FW]{killAdjacentFaces: killFaces, killVertexEdge: kve}, nil
}
