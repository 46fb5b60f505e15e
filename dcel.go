package dcel

import (
	"fmt"
	"iter"

	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/coord"
)

// Hooks lets a caller mirror vertex/face lifecycle events into an external
// spatial index without the core ever reading back from one. Any field left
// nil is simply not called. See the spatialindex package for concrete
// VertexIndex/FaceIndex implementations that can be adapted into these hooks.
type Hooks[VW, FW any] struct {
	OnVertexCreated func(arena.Handle[VertexKey], *Vertex[VW])
	OnVertexMoved   func(arena.Handle[VertexKey], *Vertex[VW])
	OnVertexRemoved func(arena.Handle[VertexKey])

	OnFaceCreated func(arena.Handle[FaceKey], *Face[FW])
	OnFaceChanged func(arena.Handle[FaceKey], *Face[FW])
	OnFaceRemoved func(arena.Handle[FaceKey])
}

// Option configures a Dcel at construction time, following the functional
// options idiom used throughout this codebase's constructors.
type Option[VW, EW, FW any] func(*Dcel[VW, EW, FW])

// WithHooks installs spatial-index lifecycle hooks.
func WithHooks[VW, EW, FW any](h Hooks[VW, FW]) Option[VW, EW, FW] {
	return func(d *Dcel[VW, EW, FW]) { d.hooks = h }
}

// SetHooks replaces the installed hooks after construction. Useful when a
// hook needs to close over the Dcel it is attached to (e.g. a face hook
// that recomputes a bounding rectangle via d.FacePath), which WithHooks
// cannot express since New has not returned a *Dcel yet when options run.
func (d *Dcel[VW, EW, FW]) SetHooks(h Hooks[VW, FW]) { d.hooks = h }

// Dcel owns the three arenas that make up a planar subdivision plus the
// handle of its bounding (unbounded) face, if one has been created yet.
// VW, EW, FW are the caller-chosen payload types for vertices, half-edges
// and faces respectively — a Dcel is a plain owned value; independent
// instances share no state.
type Dcel[VW, EW, FW any] struct {
	Vertices *arena.Arena[Vertex[VW], VertexKey]
	Edges    *arena.Arena[HalfEdge[EW], EdgeKey]
	Faces    *arena.Arena[Face[FW], FaceKey]

	boundingFace arena.Handle[FaceKey]

	hooks  Hooks[VW, FW]
	linker linker[VW, EW, FW]
}

// New constructs an empty Dcel.
func New[VW, EW, FW any](opts ...Option[VW, EW, FW]) *Dcel[VW, EW, FW] {
	d := &Dcel[VW, EW, FW]{
		Vertices: arena.New[Vertex[VW], VertexKey](),
		Edges:    arena.New[HalfEdge[EW], EdgeKey](),
		Faces:    arena.New[Face[FW], FaceKey](),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BoundingFace returns the handle of the unbounded outer face, if the first
// MVVEF has run yet.
func (d *Dcel[VW, EW, FW]) BoundingFace() (arena.Handle[FaceKey], bool) {
	return d.boundingFace, d.boundingFace.Valid()
}

// EnsureBoundingFace records candidate as the bounding face if none has been
// set yet, flagging it FaceIsOuter so Traverser.Outwards has a stopping
// point. Used by MVVEF: the very first seeded face becomes the
// subdivision's unbounded outer face.
func (d *Dcel[VW, EW, FW]) EnsureBoundingFace(candidate arena.Handle[FaceKey]) {
	if !d.boundingFace.Valid() {
		d.boundingFace = candidate
		if f := d.Faces.Get(candidate); f != nil {
			f.Mask = f.Mask.Set(FaceIsOuter)
		}
	}
}

// ClearBoundingFaceIfMatches forgets the bounding face when it is the one
// being removed (KVVEF undoing the seed operation).
func (d *Dcel[VW, EW, FW]) ClearBoundingFaceIfMatches(h arena.Handle[FaceKey]) {
	if d.boundingFace == h {
		d.boundingFace = arena.Handle[FaceKey]{}
	}
}

// SetBoundingFace forcibly overwrites the bounding face handle, moving the
// FaceIsOuter flag onto h. Exists for completeness alongside
// EnsureBoundingFace/ClearBoundingFaceIfMatches; most callers want one of
// those instead.
func (d *Dcel[VW, EW, FW]) SetBoundingFace(h arena.Handle[FaceKey]) {
	if old := d.Faces.Get(d.boundingFace); old != nil {
		old.Mask = old.Mask.Clear(FaceIsOuter)
	}
	d.boundingFace = h
	if f := d.Faces.Get(h); f != nil {
		f.Mask = f.Mask.Set(FaceIsOuter)
	}
}

// NotifyVertexCreated fires Hooks.OnVertexCreated for h, if installed.
func (d *Dcel[VW, EW, FW]) NotifyVertexCreated(h arena.Handle[VertexKey]) {
	if d.hooks.OnVertexCreated != nil {
		d.hooks.OnVertexCreated(h, d.Vertices.Get(h))
	}
}

// NotifyVertexMoved fires Hooks.OnVertexMoved for h, if installed.
func (d *Dcel[VW, EW, FW]) NotifyVertexMoved(h arena.Handle[VertexKey]) {
	if d.hooks.OnVertexMoved != nil {
		d.hooks.OnVertexMoved(h, d.Vertices.Get(h))
	}
}

// NotifyVertexRemoved fires Hooks.OnVertexRemoved for h, if installed. It
// must be called after the vertex's slot has already been vacated.
func (d *Dcel[VW, EW, FW]) NotifyVertexRemoved(h arena.Handle[VertexKey]) {
	if d.hooks.OnVertexRemoved != nil {
		d.hooks.OnVertexRemoved(h)
	}
}

// NotifyFaceCreated fires Hooks.OnFaceCreated for h, if installed.
func (d *Dcel[VW, EW, FW]) NotifyFaceCreated(h arena.Handle[FaceKey]) {
	if d.hooks.OnFaceCreated != nil {
		d.hooks.OnFaceCreated(h, d.Faces.Get(h))
	}
}

// NotifyFaceChanged fires Hooks.OnFaceChanged for h, if installed.
func (d *Dcel[VW, EW, FW]) NotifyFaceChanged(h arena.Handle[FaceKey]) {
	if d.hooks.OnFaceChanged != nil {
		d.hooks.OnFaceChanged(h, d.Faces.Get(h))
	}
}

// NotifyFaceRemoved fires Hooks.OnFaceRemoved for h, if installed. It must
// be called after the face's slot has already been vacated.
func (d *Dcel[VW, EW, FW]) NotifyFaceRemoved(h arena.Handle[FaceKey]) {
	if d.hooks.OnFaceRemoved != nil {
		d.hooks.OnFaceRemoved(h)
	}
}

// Vertex returns a mutable pointer to the vertex at h, or nil if h names an
// empty or out-of-range slot.
func (d *Dcel[VW, EW, FW]) Vertex(h arena.Handle[VertexKey]) *Vertex[VW] { return d.Vertices.Get(h) }

// Edge returns a mutable pointer to the half-edge at h.
func (d *Dcel[VW, EW, FW]) Edge(h arena.Handle[EdgeKey]) *HalfEdge[EW] { return d.Edges.Get(h) }

// Face returns a mutable pointer to the face at h.
func (d *Dcel[VW, EW, FW]) Face(h arena.Handle[FaceKey]) *Face[FW] { return d.Faces.Get(h) }

func (d *Dcel[VW, EW, FW]) mustVertex(h arena.Handle[VertexKey]) (*Vertex[VW], error) {
	v := d.Vertices.Get(h)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrVertexDoesNotExist, h)
	}
	return v, nil
}

func (d *Dcel[VW, EW, FW]) mustEdge(h arena.Handle[EdgeKey]) (*HalfEdge[EW], error) {
	e := d.Edges.Get(h)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrEdgeDoesNotExist, h)
	}
	return e, nil
}

func (d *Dcel[VW, EW, FW]) mustFace(h arena.Handle[FaceKey]) (*Face[FW], error) {
	f := d.Faces.Get(h)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrFaceDoesNotExist, h)
	}
	return f, nil
}

func (d *Dcel[VW, EW, FW]) vertexXY(h arena.Handle[VertexKey]) [2]coord.Precision {
	v := d.Vertices.Get(h)
	return [2]coord.Precision{v.Coord[0], v.Coord[1]}
}

// Through calls cb once for every half-edge on the face cycle starting at
// edge, in next-order, stopping after returning to edge. cb may read the
// Dcel but must not run a mutating operator while the walk is in progress.
func (d *Dcel[VW, EW, FW]) Through(edge arena.Handle[EdgeKey], cb func(arena.Handle[EdgeKey])) error {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return err
	}
	for {
		cb(t.Edge())
		t.Next(d)
		if t.IsAtStart() {
			return nil
		}
	}
}

// Around calls cb once for every outgoing half-edge of vertex, in
// local-next (clockwise) order.
func (d *Dcel[VW, EW, FW]) Around(vertex arena.Handle[VertexKey], cb func(arena.Handle[EdgeKey])) error {
	t, err := TraverserAt(d, vertex)
	if err != nil {
		return err
	}
	for {
		e := t.Edge()
		t.LocalNext(d)
		cb(e)
		if t.IsAtStart() {
			return nil
		}
	}
}

// ThroughSeq is the Go 1.23 range-over-func form of Through.
func (d *Dcel[VW, EW, FW]) ThroughSeq(edge arena.Handle[EdgeKey]) (iter.Seq[arena.Handle[EdgeKey]], error) {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return nil, err
	}
	return func(yield func(arena.Handle[EdgeKey]) bool) {
		for {
			if !yield(t.Edge()) {
				return
			}
			t.Next(d)
			if t.IsAtStart() {
				return
			}
		}
	}, nil
}

// AroundSeq is the Go 1.23 range-over-func form of Around.
func (d *Dcel[VW, EW, FW]) AroundSeq(vertex arena.Handle[VertexKey]) (iter.Seq[arena.Handle[EdgeKey]], error) {
	t, err := TraverserAt(d, vertex)
	if err != nil {
		return nil, err
	}
	return func(yield func(arena.Handle[EdgeKey]) bool) {
		for {
			e := t.Edge()
			t.LocalNext(d)
			if !yield(e) {
				return
			}
			if t.IsAtStart() {
				return
			}
		}
	}, nil
}

// AroundReverseSeq yields vertex's outgoing half-edges in local-prev
// (counter-clockwise) order — the exact reverse of AroundSeq, making the
// vertex fan iterable from either end.
func (d *Dcel[VW, EW, FW]) AroundReverseSeq(vertex arena.Handle[VertexKey]) (iter.Seq[arena.Handle[EdgeKey]], error) {
	t, err := TraverserAt(d, vertex)
	if err != nil {
		return nil, err
	}
	return func(yield func(arena.Handle[EdgeKey]) bool) {
		for {
			t.LocalPrev(d)
			if !yield(t.Edge()) {
				return
			}
			if t.IsAtStart() {
				return
			}
		}
	}, nil
}

// OutwardsSeq yields each half-edge visited by the next-then-twin outward
// walk starting after edge, ending with (and including) the first half-edge
// whose face is flagged FaceIsOuter.
func (d *Dcel[VW, EW, FW]) OutwardsSeq(edge arena.Handle[EdgeKey]) (iter.Seq[arena.Handle[EdgeKey]], error) {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return nil, err
	}
	return func(yield func(arena.Handle[EdgeKey]) bool) {
		for {
			t.Next(d)
			t.Twin(d)
			e := t.Edge()
			if !yield(e) {
				return
			}
			if d.Faces.Get(d.Edges.Get(e).Face).Mask.Has(FaceIsOuter) {
				return
			}
		}
	}, nil
}

// FaceSignedArea computes the shoelace signed area of a face's boundary
// cycle.
func (d *Dcel[VW, EW, FW]) FaceSignedArea(h arena.Handle[FaceKey]) (coord.Precision, error) {
	f, err := d.mustFace(h)
	if err != nil {
		return 0, err
	}
	return SignedArea(d, f.Edge)
}

// FacePath returns the flattened (x, y, x, y, ...) vertex path of a face's
// boundary, starting and ending at the same vertex.
func (d *Dcel[VW, EW, FW]) FacePath(h arena.Handle[FaceKey]) ([]coord.Precision, error) {
	f, err := d.mustFace(h)
	if err != nil {
		return nil, err
	}
	t, err := NewTraverser(d, f.Edge)
	if err != nil {
		return nil, err
	}

	start, err := d.mustEdge(f.Edge)
	if err != nil {
		return nil, err
	}
	origin := d.vertexXY(start.Origin)
	var path []coord.Precision

	for {
		e, err := d.mustEdge(t.Edge())
		if err != nil {
			return nil, err
		}
		xy := d.vertexXY(e.Origin)
		path = append(path, xy[0], xy[1])
		t.Next(d)
		if t.IsAtStart() {
			break
		}
	}
	path = append(path, origin[0], origin[1])
	return path, nil
}

// PropagateFace walks the face cycle starting at edge, writing face into
// every visited half-edge's Face field.
func (d *Dcel[VW, EW, FW]) PropagateFace(edge arena.Handle[EdgeKey], face arena.Handle[FaceKey]) error {
	t, err := NewTraverser(d, edge)
	if err != nil {
		return err
	}
	for {
		e, err := d.mustEdge(t.Edge())
		if err != nil {
			return err
		}
		e.Face = face
		t.Next(d)
		if t.IsAtStart() {
			return nil
		}
	}
}
