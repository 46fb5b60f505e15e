// Package pen implements a small drawing DSL over a Dcel: a thin layer that
// lowers move_to/line_to/close_path pen strokes into MVH/MVE/MEF operator
// calls. It carries no topology logic of its own — every method is a
// one-line dispatch to dcel/ops.
package pen

import (
	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/ops"
)

// Pen wraps a Dcel plus the handle of the most recently touched vertex,
// the way a physical pen tracks where its nib currently rests.
type Pen[VW, EW, FW any] struct {
	Dcel    *dcel.Dcel[VW, EW, FW]
	lastKey arena.Handle[dcel.VertexKey]
}

// New wraps d in a Pen with no current position; Start must be called
// before MoveTo/LineTo/ClosePath.
func New[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW]) *Pen[VW, EW, FW] {
	return &Pen[VW, EW, FW]{Dcel: d}
}

// Last returns the pen's current (most recently touched) vertex handle.
func (p *Pen[VW, EW, FW]) Last() arena.Handle[dcel.VertexKey] { return p.lastKey }

// Start seeds the Dcel with MVVEF(p1, p2), the only way to put content into
// an otherwise-empty Dcel, and leaves the pen resting at v2.
func (p *Pen[VW, EW, FW]) Start(p1, p2 [3]float32) (v1, v2 arena.Handle[dcel.VertexKey], err error) {
	inv, err := ops.CheckApply[VW, EW, FW](p.Dcel, ops.Mvvef[VW, EW, FW]{V1Coord: p1, V2Coord: p2})
	if err != nil {
		return v1, v2, err
	}
	kvvef := inv.(ops.Kvvef[VW, EW, FW])
	p.lastKey = kvvef.Vertices[1]
	return kvvef.Vertices[0], kvvef.Vertices[1], nil
}

// MoveTo lifts the pen: it makes an isolated hole-vertex at point via MVH
// and moves the pen there without drawing an edge.
func (p *Pen[VW, EW, FW]) MoveTo(point [3]float32) (arena.Handle[dcel.VertexKey], error) {
	inv, err := ops.CheckApply[VW, EW, FW](p.Dcel, ops.Mvh[VW, EW, FW]{Coord: point})
	if err != nil {
		return arena.Handle[dcel.VertexKey]{}, err
	}
	kvh := inv.(ops.Kvh[VW, EW, FW])
	p.lastKey = kvh.Vertex
	return kvh.Vertex, nil
}

// LineTo draws a dangling edge from the pen's current vertex to a brand
// new vertex at point, via MVE, and moves the pen to that new vertex.
func (p *Pen[VW, EW, FW]) LineTo(point [3]float32) (arena.Handle[dcel.VertexKey], error) {
	inv, err := ops.CheckApply[VW, EW, FW](p.Dcel, ops.Mve[VW, EW, FW]{Origin: p.lastKey, Coord: point})
	if err != nil {
		return arena.Handle[dcel.VertexKey]{}, err
	}
	kve := inv.(ops.Kve[VW, EW, FW])
	p.lastKey = kve.Vertex
	return kve.Vertex, nil
}

// ClosePath connects the pen's current vertex back to target via MEF,
// splitting whichever face they share and returning the newly created one.
func (p *Pen[VW, EW, FW]) ClosePath(target arena.Handle[dcel.VertexKey]) (arena.Handle[dcel.FaceKey], error) {
	inv, err := ops.CheckApply[VW, EW, FW](p.Dcel, ops.Mef[VW, EW, FW]{Vertices: [2]arena.Handle[dcel.VertexKey]{p.lastKey, target}})
	if err != nil {
		return arena.Handle[dcel.FaceKey]{}, err
	}
	kef := inv.(ops.Kef[VW, EW, FW])
	return kef.Face, nil
}
