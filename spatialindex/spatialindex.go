// Package spatialindex defines the hook surface the dcel package notifies
// on vertex and face lifecycle events. It is the interface side of an
// external R-tree-style index: the core never queries an index back, it
// only pushes events into one through these hooks.
package spatialindex

import (
	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
)

// Rect is an axis-aligned bounding rectangle, the key a FaceIndex stores
// a face handle under.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// VertexIndex receives vertex lifecycle notifications keyed by point. A
// concrete R-tree-backed implementation is outside this module's scope;
// this interface is what such an implementation would satisfy.
type VertexIndex[VK any] interface {
	OnVertexCreated(h arena.Handle[VK], point [3]float32)
	OnVertexMoved(h arena.Handle[VK], point [3]float32)
	OnVertexRemoved(h arena.Handle[VK])
}

// FaceIndex receives face lifecycle notifications keyed by bounding rectangle.
type FaceIndex[FK any] interface {
	OnFaceCreated(h arena.Handle[FK], bounds Rect)
	OnFaceChanged(h arena.Handle[FK], bounds Rect)
	OnFaceRemoved(h arena.Handle[FK])
}

// NoopVertexIndex implements VertexIndex by discarding every notification,
// for a caller that wants a non-nil index that records nothing. Passing nil
// to AdaptHooks instead leaves the vertex hooks unset.
type NoopVertexIndex[VK any] struct{}

func (NoopVertexIndex[VK]) OnVertexCreated(arena.Handle[VK], [3]float32) {}
func (NoopVertexIndex[VK]) OnVertexMoved(arena.Handle[VK], [3]float32)   {}
func (NoopVertexIndex[VK]) OnVertexRemoved(arena.Handle[VK])             {}

// NoopFaceIndex implements FaceIndex by discarding every notification.
type NoopFaceIndex[FK any] struct{}

func (NoopFaceIndex[FK]) OnFaceCreated(arena.Handle[FK], Rect) {}
func (NoopFaceIndex[FK]) OnFaceChanged(arena.Handle[FK], Rect) {}
func (NoopFaceIndex[FK]) OnFaceRemoved(arena.Handle[FK])       {}

// faceBounds walks a face's boundary and returns its axis-aligned bounding
// rectangle. It reports ok=false for a face whose edge has since been torn
// down (e.g. a change notification firing after the face record itself was
// removed).
func faceBounds[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], h arena.Handle[dcel.FaceKey]) (Rect, bool) {
	f := d.Face(h)
	if f == nil {
		return Rect{}, false
	}
	path, err := d.FacePath(h)
	if err != nil || len(path) < 2 {
		return Rect{}, false
	}
	r := Rect{MinX: path[0], MaxX: path[0], MinY: path[1], MaxY: path[1]}
	for i := 2; i+1 < len(path); i += 2 {
		x, y := path[i], path[i+1]
		if x < r.MinX {
			r.MinX = x
		}
		if x > r.MaxX {
			r.MaxX = x
		}
		if y < r.MinY {
			r.MinY = y
		}
		if y > r.MaxY {
			r.MaxY = y
		}
	}
	return r, true
}

// AdaptHooks builds the dcel.Hooks value a caller installs via d.SetHooks
// that forwards every vertex event to vi and every face event, recomputed
// as a bounding Rect over the face's current boundary, to fi. It takes d
// itself (rather than being usable through dcel.WithHooks at construction
// time) because computing a face's bounds needs d.FacePath, and no *Dcel
// exists yet while New's options are running. Either index may be nil, in
// which case its half of the hooks is left unset — the core's own nil
// checks skip a hook that was never installed, the same way a caller who
// passes NoopVertexIndex/NoopFaceIndex would.
func AdaptHooks[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW], vi VertexIndex[dcel.VertexKey], fi FaceIndex[dcel.FaceKey]) dcel.Hooks[VW, FW] {
	var hooks dcel.Hooks[VW, FW]
	if vi != nil {
		hooks.OnVertexCreated = func(h arena.Handle[dcel.VertexKey], v *dcel.Vertex[VW]) {
			vi.OnVertexCreated(h, v.Coord)
		}
		hooks.OnVertexMoved = func(h arena.Handle[dcel.VertexKey], v *dcel.Vertex[VW]) {
			vi.OnVertexMoved(h, v.Coord)
		}
		hooks.OnVertexRemoved = vi.OnVertexRemoved
	}
	if fi != nil {
		hooks.OnFaceCreated = func(h arena.Handle[dcel.FaceKey], _ *dcel.Face[FW]) {
			if r, ok := faceBounds(d, h); ok {
				fi.OnFaceCreated(h, r)
			}
		}
		hooks.OnFaceChanged = func(h arena.Handle[dcel.FaceKey], _ *dcel.Face[FW]) {
			if r, ok := faceBounds(d, h); ok {
				fi.OnFaceChanged(h, r)
			}
		}
		hooks.OnFaceRemoved = fi.OnFaceRemoved
	}
	return hooks
}
