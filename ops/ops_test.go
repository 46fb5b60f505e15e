package ops_test

import (
	"testing"

	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noWeight struct{}

func newDcel() *dcel.Dcel[noWeight, noWeight, noWeight] {
	return dcel.New[noWeight, noWeight, noWeight]()
}

// countVertices/Edges/Faces walk the arenas directly via All().
func countVertices[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW]) int {
	n := 0
	for range d.Vertices.All() {
		n++
	}
	return n
}

func countEdges[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW]) int {
	n := 0
	for range d.Edges.All() {
		n++
	}
	return n
}

func countFaces[VW, EW, FW any](d *dcel.Dcel[VW, EW, FW]) int {
	n := 0
	for range d.Faces.All() {
		n++
	}
	return n
}

func TestMvvefKvvef_RoundTrip(t *testing.T) {
	d := newDcel()

	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{-4, -4, 0},
		V2Coord: [3]float32{-4, 4, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countVertices(d))
	assert.Equal(t, 2, countEdges(d))
	assert.Equal(t, 1, countFaces(d))

	bf, ok := d.BoundingFace()
	require.True(t, ok)
	assert.True(t, bf.Valid())

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, inv)
	require.NoError(t, err)

	assert.Equal(t, 0, countVertices(d))
	assert.Equal(t, 0, countEdges(d))
	assert.Equal(t, 0, countFaces(d))
	_, ok = d.BoundingFace()
	assert.False(t, ok)
}

func TestMvhKvh(t *testing.T) {
	d := newDcel()

	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvh[noWeight, noWeight, noWeight]{Coord: [3]float32{1, 2, 3}})
	require.NoError(t, err)
	kvh := inv.(ops.Kvh[noWeight, noWeight, noWeight])

	v := d.Vertex(kvh.Vertex)
	require.NotNil(t, v)
	assert.False(t, v.Edge.Valid())

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, kvh)
	require.NoError(t, err)
	assert.Nil(t, d.Vertex(kvh.Vertex))
}

func TestMvhKvh_HoleReferenceTracksContainingFace(t *testing.T) {
	d := newDcel()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{1, 0, 0},
	})
	require.NoError(t, err)
	face := inv.(ops.Kvvef[noWeight, noWeight, noWeight]).Face

	holeInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvh[noWeight, noWeight, noWeight]{
		Coord: [3]float32{5, 5, 0}, Face: face,
	})
	require.NoError(t, err)
	kvh := holeInv.(ops.Kvh[noWeight, noWeight, noWeight])

	require.Len(t, d.Face(face).Holes, 1)
	assert.Equal(t, dcel.VertexHole(kvh.Vertex), d.Face(face).Holes[0])

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, kvh)
	require.NoError(t, err)
	assert.Empty(t, d.Face(face).Holes)
}

func TestKvh_FailsWhenConnected(t *testing.T) {
	d := newDcel()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{1, 0, 0},
	})
	require.NoError(t, err)
	kvvef := inv.(ops.Kvvef[noWeight, noWeight, noWeight])

	err = ops.Kvh[noWeight, noWeight, noWeight]{Vertex: kvvef.Vertices[0]}.Check(d)
	assert.ErrorIs(t, err, ops.ErrVertexNotIsolated)
}

func TestMveKve_RoundTrip(t *testing.T) {
	d := newDcel()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{1, 0, 0},
	})
	require.NoError(t, err)
	kvvef := inv.(ops.Kvvef[noWeight, noWeight, noWeight])
	v1 := kvvef.Vertices[0]

	mveInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mve[noWeight, noWeight, noWeight]{
		Origin: v1, Coord: [3]float32{0, 1, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, countVertices(d))
	assert.Equal(t, 4, countEdges(d))

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, mveInv)
	require.NoError(t, err)
	assert.Equal(t, 2, countVertices(d))
	assert.Equal(t, 2, countEdges(d))
}

func TestKve_FailsWhenFaceWouldDegenerate(t *testing.T) {
	d := newDcel()

	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{2, 0, 0},
	})
	require.NoError(t, err)
	kvvef := inv.(ops.Kvvef[noWeight, noWeight, noWeight])
	v1, v2 := kvvef.Vertices[0], kvvef.Vertices[1]

	mveInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mve[noWeight, noWeight, noWeight]{
		Origin: v2, Coord: [3]float32{1, 2, 0},
	})
	require.NoError(t, err)
	kve := mveInv.(ops.Kve[noWeight, noWeight, noWeight])
	v3 := kve.Vertex

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mef[noWeight, noWeight, noWeight]{
		Vertices: [2]arena.Handle[dcel.VertexKey]{v3, v1},
	})
	require.NoError(t, err)

	// Both faces bounding the v2-v3 pair are now triangles; removing it
	// would drop them below three edges.
	err = kve.Check(d)
	assert.ErrorIs(t, err, dcel.ErrWouldKillFace)
}

func TestMve_FailsOnHoleVertex(t *testing.T) {
	d := newDcel()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvh[noWeight, noWeight, noWeight]{Coord: [3]float32{0, 0, 0}})
	require.NoError(t, err)
	hole := inv.(ops.Kvh[noWeight, noWeight, noWeight]).Vertex

	err = ops.Mve[noWeight, noWeight, noWeight]{Origin: hole, Coord: [3]float32{1, 0, 0}}.Check(d)
	assert.ErrorIs(t, err, dcel.ErrDisconnectedVertex)
}

func TestMef_ZeroAreaLens(t *testing.T) {
	d := newDcel()

	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{2, 0, 0},
	})
	require.NoError(t, err)
	kvvef := inv.(ops.Kvvef[noWeight, noWeight, noWeight])

	mefInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mef[noWeight, noWeight, noWeight]{
		Vertices: [2]arena.Handle[dcel.VertexKey]{kvvef.Vertices[0], kvvef.Vertices[1]},
	})
	require.NoError(t, err)
	kef := mefInv.(ops.Kef[noWeight, noWeight, noWeight])

	assert.Equal(t, 2, countFaces(d))
	assert.Equal(t, 4, countEdges(d))

	lens := d.Face(kef.Face)
	require.NotNil(t, lens)
	assert.True(t, lens.Mask.Has(dcel.FaceIsZeroArea))

	n := 0
	require.NoError(t, d.Through(lens.Edge, func(arena.Handle[dcel.EdgeKey]) { n++ }))
	assert.Equal(t, 2, n)

	area, err := d.FaceSignedArea(kef.Face)
	require.NoError(t, err)
	assert.Zero(t, area)

	// Every face still anchors an edge that points back at it.
	for h, f := range d.Faces.All() {
		require.NotNil(t, d.Edge(f.Edge))
		assert.Equal(t, h, d.Edge(f.Edge).Face)
	}

	// And the lens merges cleanly back away.
	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, kef)
	require.NoError(t, err)
	assert.Equal(t, 1, countFaces(d))
	for h, f := range d.Faces.All() {
		require.NotNil(t, d.Edge(f.Edge))
		assert.Equal(t, h, d.Edge(f.Edge).Face)
	}
}

func TestMefFaceMismatch(t *testing.T) {
	d := newDcel()

	inv1, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{1, 0, 0},
	})
	require.NoError(t, err)
	comp1 := inv1.(ops.Kvvef[noWeight, noWeight, noWeight]).Vertices[0]

	inv2, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{10, 0, 0}, V2Coord: [3]float32{11, 0, 0},
	})
	require.NoError(t, err)
	comp2 := inv2.(ops.Kvvef[noWeight, noWeight, noWeight]).Vertices[0]

	before := countFaces(d)

	err = ops.Mef[noWeight, noWeight, noWeight]{Vertices: [2]arena.Handle[dcel.VertexKey]{comp1, comp2}}.Check(d)
	assert.ErrorIs(t, err, dcel.ErrFaceMismatch)
	assert.Equal(t, before, countFaces(d))
}

func TestTranslateVertex_Inverse(t *testing.T) {
	d := newDcel()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{1, 1, 0}, V2Coord: [3]float32{2, 2, 0},
	})
	require.NoError(t, err)
	v1 := inv.(ops.Kvvef[noWeight, noWeight, noWeight]).Vertices[0]

	translateInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.TranslateVertex[noWeight, noWeight, noWeight]{
		Vertex: v1, Delta: [3]float32{1, 1, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, [3]float32{2, 2, 0}, d.Vertex(v1).Coord)

	back := translateInv.(ops.TranslateVertex[noWeight, noWeight, noWeight])
	assert.Equal(t, [3]float32{-1, -1, 0}, back.Delta)

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, back)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{1, 1, 0}, d.Vertex(v1).Coord)
}

func TestTranslateVertex_ZeroDeltaIsIdempotent(t *testing.T) {
	d := newDcel()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{3, 4, 0}, V2Coord: [3]float32{5, 6, 0},
	})
	require.NoError(t, err)
	v1 := inv.(ops.Kvvef[noWeight, noWeight, noWeight]).Vertices[0]

	before := d.Vertex(v1).Coord
	translateInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.TranslateVertex[noWeight, noWeight, noWeight]{Vertex: v1})
	require.NoError(t, err)
	assert.Equal(t, before, d.Vertex(v1).Coord)
	assert.Equal(t, [3]float32{}, translateInv.(ops.TranslateVertex[noWeight, noWeight, noWeight]).Delta)
}

// buildHourglass assembles two triangles joined by a bridge edge directly
// through the operator types (rather than the pen/shapes packages) so this
// package's tests do not import their own downstream consumers.
func buildHourglass(t *testing.T, d *dcel.Dcel[noWeight, noWeight, noWeight]) (v1, v3, v4 arena.Handle[dcel.VertexKey], e5, e6 arena.Handle[dcel.EdgeKey]) {
	t.Helper()

	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{-4, -4, 0}, V2Coord: [3]float32{-4, 4, 0},
	})
	require.NoError(t, err)
	kvvef := inv.(ops.Kvvef[noWeight, noWeight, noWeight])
	v1, v2 := kvvef.Vertices[0], kvvef.Vertices[1]

	mveInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mve[noWeight, noWeight, noWeight]{Origin: v2, Coord: [3]float32{-1, 0, 0}})
	require.NoError(t, err)
	kve := mveInv.(ops.Kve[noWeight, noWeight, noWeight])
	v3 = kve.Vertex

	mefInv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mef[noWeight, noWeight, noWeight]{Vertices: [2]arena.Handle[dcel.VertexKey]{v3, v1}})
	require.NoError(t, err)
	kef := mefInv.(ops.Kef[noWeight, noWeight, noWeight])
	e5, e6 = kef.Edges[0], kef.Edges[1]

	mveInv2, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mve[noWeight, noWeight, noWeight]{Origin: v3, Coord: [3]float32{1, 0, 0}})
	require.NoError(t, err)
	v4 = mveInv2.(ops.Kve[noWeight, noWeight, noWeight]).Vertex

	mveInv3, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mve[noWeight, noWeight, noWeight]{Origin: v4, Coord: [3]float32{4, -4, 0}})
	require.NoError(t, err)
	v5 := mveInv3.(ops.Kve[noWeight, noWeight, noWeight]).Vertex

	mveInv4, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mve[noWeight, noWeight, noWeight]{Origin: v5, Coord: [3]float32{4, 4, 0}})
	require.NoError(t, err)
	v6 := mveInv4.(ops.Kve[noWeight, noWeight, noWeight]).Vertex

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mef[noWeight, noWeight, noWeight]{Vertices: [2]arena.Handle[dcel.VertexKey]{v6, v4}})
	require.NoError(t, err)

	return v1, v3, v4, e5, e6
}

func TestHourglass_Topology(t *testing.T) {
	d := newDcel()
	v1, v3, v4, _, _ := buildHourglass(t, d)
	assert.True(t, v1.Valid())
	assert.NotEqual(t, v3, v4)

	assert.Equal(t, 6, countVertices(d))
	assert.Equal(t, 14, countEdges(d))
	assert.Equal(t, 3, countFaces(d))
}

func TestCommandLog_UndoEverythingThenRedo(t *testing.T) {
	d := newDcel()
	log := ops.NewCommandLog[noWeight, noWeight, noWeight](d)

	// Fresh arenas hand out handles in insertion order, so the hourglass
	// vertices are literally 1..6.
	v := func(id uint32) arena.Handle[dcel.VertexKey] { return arena.NewHandle[dcel.VertexKey](id) }

	sequence := []ops.Op[noWeight, noWeight, noWeight]{
		ops.Mvvef[noWeight, noWeight, noWeight]{V1Coord: [3]float32{-4, -4, 0}, V2Coord: [3]float32{-4, 4, 0}},
		ops.Mve[noWeight, noWeight, noWeight]{Origin: v(2), Coord: [3]float32{-1, 0, 0}},
		ops.Mef[noWeight, noWeight, noWeight]{Vertices: [2]arena.Handle[dcel.VertexKey]{v(3), v(1)}},
		ops.Mve[noWeight, noWeight, noWeight]{Origin: v(3), Coord: [3]float32{1, 0, 0}},
		ops.Mve[noWeight, noWeight, noWeight]{Origin: v(4), Coord: [3]float32{4, -4, 0}},
		ops.Mve[noWeight, noWeight, noWeight]{Origin: v(5), Coord: [3]float32{4, 4, 0}},
		ops.Mef[noWeight, noWeight, noWeight]{Vertices: [2]arena.Handle[dcel.VertexKey]{v(6), v(4)}},
	}
	for _, op := range sequence {
		_, err := log.Apply(op)
		require.NoError(t, err)
	}
	require.Equal(t, uint64(len(sequence)), log.Version())
	assert.Equal(t, 6, countVertices(d))
	assert.Equal(t, 14, countEdges(d))
	assert.Equal(t, 3, countFaces(d))

	for log.CanUndo() {
		require.NoError(t, log.Undo())
	}

	assert.Equal(t, 0, countVertices(d))
	assert.Equal(t, 0, countEdges(d))
	assert.Equal(t, 0, countFaces(d))
	assert.Equal(t, uint64(0), log.Version())
	_, ok := d.BoundingFace()
	assert.False(t, ok)

	for log.CanRedo() {
		require.NoError(t, log.Redo())
	}
	assert.Equal(t, uint64(len(sequence)), log.Version())
	assert.Equal(t, 6, countVertices(d))
	assert.Equal(t, 14, countEdges(d))
	assert.Equal(t, 3, countFaces(d))
}

func TestCollapseEdge_Hourglass(t *testing.T) {
	d := newDcel()
	v1, v3, _, e5, e6 := buildHourglass(t, d)

	before := countVertices(d)

	collapse, err := ops.NewCollapseEdge[noWeight, noWeight, noWeight](d, v1, [2]arena.Handle[dcel.EdgeKey]{e5, e6}, v3)
	require.NoError(t, err)

	uncollapse, err := collapse.Apply(d)
	require.NoError(t, err)

	assert.Nil(t, d.Vertex(v3))
	assert.Nil(t, d.Edge(e5))
	assert.Nil(t, d.Edge(e6))
	assert.Equal(t, before-1, countVertices(d))

	// v3's surviving edges were reparented onto v1: rotating around v1 must
	// enumerate every live half-edge whose origin is v1, exactly once.
	var fan []arena.Handle[dcel.EdgeKey]
	require.NoError(t, d.Around(v1, func(e arena.Handle[dcel.EdgeKey]) { fan = append(fan, e) }))
	seen := make(map[arena.Handle[dcel.EdgeKey]]bool, len(fan))
	for _, e := range fan {
		assert.False(t, seen[e], "fan repeated edge %s", e)
		seen[e] = true
		assert.Equal(t, v1, d.Edge(e).Origin)
	}
	outgoing := 0
	for _, e := range d.Edges.All() {
		if e.Origin == v1 {
			outgoing++
		}
	}
	assert.Equal(t, outgoing, len(fan))

	_, err = uncollapse.Apply(d)
	require.NoError(t, err)
	assert.Equal(t, before, countVertices(d))
}
