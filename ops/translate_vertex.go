package ops

import (
	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
)

// TranslateVertex adds Delta to a vertex's coordinate. It is its own
// inverse type: applying it twice with negated deltas restores the
// original coordinate exactly. Check only verifies that the vertex exists;
// it does not test planarity, and WouldMakeNonPlanar is never returned.
type TranslateVertex[VW, EW, FW any] struct {
	Vertex arena.Handle[dcel.VertexKey]
	Delta  [3]float32
}

// FromAbsolute builds the TranslateVertex that moves vertex to target,
// computing Delta as target minus the vertex's current coordinate.
func FromAbsolute[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], vertex arena.Handle[dcel.VertexKey], target [3]float32) TranslateVertex[VW, EW, FW] {
	v := d.Vertices.Get(vertex)
	return TranslateVertex[VW, EW, FW]{
		Vertex: vertex,
		Delta:  [3]float32{target[0] - v.Coord[0], target[1] - v.Coord[1], target[2] - v.Coord[2]},
	}
}

func (op TranslateVertex[VW, EW, FW]) Check(d *dcel.Dcel[VW, EW, FW]) error {
	if d.Vertices.Get(op.Vertex) == nil {
		return dcel.ErrVertexDoesNotExist
	}
	return nil
}

func (op TranslateVertex[VW, EW, FW]) Apply(d *dcel.Dcel[VW, EW, FW]) (Op[VW, EW, FW], error) {
	v := d.Vertices.Get(op.Vertex)

	v.Coord[0] += op.Delta[0]
	v.Coord[1] += op.Delta[1]
	v.Coord[2] += op.Delta[2]

	d.NotifyVertexMoved(op.Vertex)

	return TranslateVertex[VW, EW, FW]{
		Vertex: op.Vertex,
		Delta:  [3]float32{-op.Delta[0], -op.Delta[1], -op.Delta[2]},
	}, nil
}
