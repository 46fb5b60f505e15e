package dcel_test

import (
	"testing"

	"github.com/go-dcel/dcel"
	"github.com/go-dcel/dcel/arena"
	"github.com/go-dcel/dcel/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noWeight struct{}

func seedTriangle(t *testing.T) (*dcel.Dcel[noWeight, noWeight, noWeight], arena.Handle[dcel.VertexKey], arena.Handle[dcel.VertexKey], arena.Handle[dcel.VertexKey]) {
	t.Helper()
	d := dcel.New[noWeight, noWeight, noWeight]()

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
	v3 := mveInv.(ops.Kve[noWeight, noWeight, noWeight]).Vertex

	_, err = ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mef[noWeight, noWeight, noWeight]{
		Vertices: [2]arena.Handle[dcel.VertexKey]{v3, v1},
	})
	require.NoError(t, err)

	return d, v1, v2, v3
}

func TestInvariants_TwinNextPrev(t *testing.T) {
	d, _, _, _ := seedTriangle(t)
	for h, e := range d.Edges.All() {
		twin := d.Edges.Get(e.Twin)
		require.NotNil(t, twin)
		assert.Equal(t, h, twin.Twin, "twin(twin(e)) = e")

		next := d.Edges.Get(e.Next)
		require.NotNil(t, next)
		assert.Equal(t, h, next.Prev, "next(prev(e)) = e")

		prev := d.Edges.Get(e.Prev)
		require.NotNil(t, prev)
		assert.Equal(t, h, prev.Next, "prev(next(e)) = e")

		assert.Equal(t, e.Face, next.Face, "face(next(e)) = face(e)")
	}
}

func TestThrough_ReturnsToStart(t *testing.T) {
	d, v1, _, _ := seedTriangle(t)
	edge := d.Vertex(v1).Edge

	var visited []arena.Handle[dcel.EdgeKey]
	require.NoError(t, d.Through(edge, func(e arena.Handle[dcel.EdgeKey]) {
		visited = append(visited, e)
	}))

	assert.Equal(t, edge, visited[0])
	for _, e := range visited {
		assert.Equal(t, d.Edge(edge).Face, d.Edge(e).Face)
	}
}

func TestAround_DegreeOneVertexYieldsOneEdge(t *testing.T) {
	d := dcel.New[noWeight, noWeight, noWeight]()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{1, 0, 0},
	})
	require.NoError(t, err)
	v1 := inv.(ops.Kvvef[noWeight, noWeight, noWeight]).Vertices[0]

	var visited []arena.Handle[dcel.EdgeKey]
	require.NoError(t, d.Around(v1, func(e arena.Handle[dcel.EdgeKey]) {
		visited = append(visited, e)
	}))
	assert.Len(t, visited, 1)
}

func TestAround_DisconnectedVertexFails(t *testing.T) {
	d := dcel.New[noWeight, noWeight, noWeight]()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvh[noWeight, noWeight, noWeight]{Coord: [3]float32{0, 0, 0}})
	require.NoError(t, err)
	v := inv.(ops.Kvh[noWeight, noWeight, noWeight]).Vertex

	err = d.Around(v, func(arena.Handle[dcel.EdgeKey]) {})
	assert.ErrorIs(t, err, dcel.ErrDisconnectedVertex)
}

func TestSignedArea_SignMatchesOrientation(t *testing.T) {
	d, v1, _, _ := seedTriangle(t)
	edge := d.Vertex(v1).Edge
	area, err := dcel.SignedArea(d, edge)
	require.NoError(t, err)

	twinFace := d.Edge(d.Edge(edge).Twin).Face
	ownFace := d.Edge(edge).Face
	otherArea, err := dcel.SignedArea(d, d.Faces.Get(twinFace).Edge)
	require.NoError(t, err)

	if ownFace != twinFace {
		// The two faces sharing this twin pair have opposite orientation.
		assert.NotEqual(t, area > 0, otherArea > 0)
	}
}

func TestAroundReverseSeq_IsReverseOfAroundSeq(t *testing.T) {
	d, _, v2, _ := seedTriangle(t)

	forwardSeq, err := d.AroundSeq(v2)
	require.NoError(t, err)
	var forward []arena.Handle[dcel.EdgeKey]
	for e := range forwardSeq {
		forward = append(forward, e)
	}
	require.Len(t, forward, 2)

	reverseSeq, err := d.AroundReverseSeq(v2)
	require.NoError(t, err)
	var reverse []arena.Handle[dcel.EdgeKey]
	for e := range reverseSeq {
		reverse = append(reverse, e)
	}

	require.Len(t, reverse, len(forward))
	for i, e := range forward {
		assert.Equal(t, e, reverse[len(reverse)-1-i])
	}
}

func TestOutwardsSeq_StopsAtBoundingFace(t *testing.T) {
	d, _, _, _ := seedTriangle(t)
	bf, ok := d.BoundingFace()
	require.True(t, ok)

	// Start from an inner-face edge and walk outward.
	var inner arena.Handle[dcel.EdgeKey]
	for h, e := range d.Edges.All() {
		if e.Face != bf {
			inner = h
			break
		}
	}
	require.True(t, inner.Valid())

	seq, err := d.OutwardsSeq(inner)
	require.NoError(t, err)
	var last arena.Handle[dcel.EdgeKey]
	for e := range seq {
		last = e
	}
	require.True(t, last.Valid())
	assert.Equal(t, bf, d.Edge(last).Face)
	assert.True(t, d.Face(d.Edge(last).Face).Mask.Has(dcel.FaceIsOuter))
}

func TestIsLineSegment(t *testing.T) {
	d := dcel.New[noWeight, noWeight, noWeight]()
	inv, err := ops.CheckApply[noWeight, noWeight, noWeight](d, ops.Mvvef[noWeight, noWeight, noWeight]{
		V1Coord: [3]float32{0, 0, 0}, V2Coord: [3]float32{1, 0, 0},
	})
	require.NoError(t, err)
	v1 := inv.(ops.Kvvef[noWeight, noWeight, noWeight]).Vertices[0]

	// A bare seeded pair folds straight back on itself.
	seg, err := dcel.IsLineSegmentAt(d, d.Vertex(v1).Edge)
	require.NoError(t, err)
	assert.True(t, seg)

	// A closed triangle does not.
	d2, t1, _, _ := seedTriangle(t)
	seg, err = dcel.IsLineSegmentAt(d2, d2.Vertex(t1).Edge)
	require.NoError(t, err)
	assert.False(t, seg)
}

func TestArenaBitMask_FlipAndReset(t *testing.T) {
	d, v1, v2, v3 := seedTriangle(t)
	mask := arena.NewBitMask[dcel.Vertex[noWeight], dcel.VertexKey](d.Vertices)

	assert.False(t, mask.IsFlipped(v1))
	mask.Flip(v1)
	assert.True(t, mask.IsFlipped(v1))
	mask.Flip(v2)
	mask.Flip(v3)
	assert.True(t, mask.IsFlipped(v2))

	mask.Reset()
	assert.False(t, mask.IsFlipped(v1))
	assert.False(t, mask.IsFlipped(v2))
}
