package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// triangle builds one free-standing triangular face. Twins stay nil; tests
// that need them pair edges explicitly.
func triangle(t *testing.T) (*Mesh, [3]VertexHandle, FaceHandle, [3]EdgeHandle) {
	t.Helper()
	m := New()
	v0 := m.AddVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	v1 := m.AddVertex(r3.Vec{X: 1, Y: 0, Z: 0})
	v2 := m.AddVertex(r3.Vec{X: 0, Y: 1, Z: 0})
	c := m.AddCell()
	f := m.AddFace(c)
	e0 := m.AddEdge(v0, v1, f, c)
	e1 := m.AddEdge(v1, v2, f, c)
	e2 := m.AddEdge(v2, v0, f, c)
	require.NoError(t, m.RelinkCycle(f, []EdgeHandle{e0, e1, e2}))
	return m, [3]VertexHandle{v0, v1, v2}, f, [3]EdgeHandle{e0, e1, e2}
}

func TestVertex_ResolveAndDangle(t *testing.T) {
	m := New()
	v := m.AddVertex(r3.Vec{X: 1, Y: 2, Z: 3})

	got, err := m.Vertex(v)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Pos.Y)
	assert.True(t, m.VertexAlive(v))

	require.NoError(t, m.RemoveVertex(v))
	assert.False(t, m.VertexAlive(v))

	_, err = m.Vertex(v)
	require.Error(t, err)
	assert.True(t, IsDanglingReference(err))

	var dangling *DanglingReferenceError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, KindVertex, dangling.Kind)
	assert.Equal(t, v.Index, dangling.Index)
}

func TestVertex_GenerationBumpInvalidatesOldHandle(t *testing.T) {
	m := New()
	v := m.AddVertex(r3.Vec{})
	require.NoError(t, m.RemoveVertex(v))

	// A handle minted before the delete must not resolve to whatever the
	// slot holds later.
	assert.False(t, m.VertexAlive(v))
	assert.Equal(t, 0, m.NumVertices())
}

func TestHandle_TextRoundTrip(t *testing.T) {
	e := EdgeHandle{Index: 12, Gen: 3}
	text, err := e.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "e12@3", string(text))

	var back EdgeHandle
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, e, back)

	var f FaceHandle
	assert.Error(t, f.UnmarshalText([]byte("e12@3")), "face handle must reject edge text")
	assert.Error(t, f.UnmarshalText([]byte("garbage")))
	require.NoError(t, f.UnmarshalText([]byte("f0@0")))
	assert.Equal(t, FaceHandle{}, f)
}

func TestAddEdge_StartsUnlinked(t *testing.T) {
	m, verts, f, _ := triangle(t)
	c, err := m.Face(f)
	require.NoError(t, err)

	e := m.AddEdge(verts[0], verts[1], f, c.Cell)
	got, err := m.Edge(e)
	require.NoError(t, err)
	assert.True(t, got.Next.IsNil())
	assert.True(t, got.Twin.IsNil())
}

func TestRemoveEdge_ClearsTwinBacklink(t *testing.T) {
	m, verts, f, edges := triangle(t)
	c, err := m.Face(f)
	require.NoError(t, err)

	opp := m.AddEdge(verts[1], verts[0], f, c.Cell)
	require.NoError(t, m.PairTwins(edges[0], opp))

	require.NoError(t, m.RemoveEdge(edges[0]))
	got, err := m.Edge(opp)
	require.NoError(t, err)
	assert.True(t, got.Twin.IsNil())
}

func TestRelinkCycle_SetsAnchorNextAndSides(t *testing.T) {
	m, _, f, edges := triangle(t)

	got, err := m.Face(f)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NumSides)
	assert.Equal(t, edges[0], got.Edge)

	cycle, err := m.EdgesOfFace(f)
	require.NoError(t, err)
	assert.Equal(t, []EdgeHandle{edges[0], edges[1], edges[2]}, cycle)

	e0, err := m.Edge(edges[0])
	require.NoError(t, err)
	assert.Equal(t, edges[1], e0.Next)
}

func TestPurgeFace_RemovesBoundary(t *testing.T) {
	m, _, f, edges := triangle(t)
	require.NoError(t, m.PurgeFace(f))

	assert.False(t, m.FaceAlive(f))
	for _, eh := range edges {
		assert.False(t, m.EdgeAlive(eh))
	}
	assert.Equal(t, 0, m.NumEdges())
	assert.Equal(t, 3, m.NumVertices(), "vertices are the caller's to purge")
}

func TestEnumeration_AscendingAndSkipsDead(t *testing.T) {
	m := New()
	v0 := m.AddVertex(r3.Vec{})
	v1 := m.AddVertex(r3.Vec{X: 1})
	v2 := m.AddVertex(r3.Vec{X: 2})
	require.NoError(t, m.RemoveVertex(v1))

	assert.Equal(t, []VertexHandle{v0, v2}, m.Vertices())
	assert.Equal(t, 2, m.NumVertices())
}

func TestMeanEdgeLength_AveragesDerivedLengths(t *testing.T) {
	m, _, _, edges := triangle(t)
	lengths := []float64{1, 2, 3}
	for i, eh := range edges {
		e, err := m.Edge(eh)
		require.NoError(t, err)
		e.Length = lengths[i]
	}
	assert.InDelta(t, 2.0, m.MeanEdgeLength(), 1e-12)

	assert.Equal(t, 0.0, New().MeanEdgeLength())
}

func TestCloneRestore_RoundTrips(t *testing.T) {
	m, verts, _, edges := triangle(t)
	before := m.Dump()
	snapshot := m.Clone()

	require.NoError(t, m.RemoveEdge(edges[1]))
	m.AddVertex(r3.Vec{X: 9})
	v0, err := m.Vertex(verts[0])
	require.NoError(t, err)
	v0.Pos = r3.Vec{X: -5}
	require.NotEqual(t, before, m.Dump())

	m.Restore(snapshot)
	assert.Equal(t, before, m.Dump())
	assert.True(t, m.EdgeAlive(edges[1]), "restored handles resolve again")
}

func TestClone_IsIndependent(t *testing.T) {
	m, verts, _, _ := triangle(t)
	snapshot := m.Clone()

	v0, err := m.Vertex(verts[0])
	require.NoError(t, err)
	v0.Pos = r3.Vec{X: 42}

	sv0, err := snapshot.Vertex(verts[0])
	require.NoError(t, err)
	assert.Equal(t, 0.0, sv0.Pos.X)
}

func TestCompact_RemapsHandlesAndReferences(t *testing.T) {
	m, verts, f, edges := triangle(t)

	// Tombstone a spare vertex and edge so compaction has slots to drop.
	spare := m.AddVertex(r3.Vec{X: 7})
	require.NoError(t, m.RemoveVertex(spare))
	extra := m.AddEdge(verts[0], verts[1], f, NilCell)
	require.NoError(t, m.RemoveEdge(extra))

	res := m.Compact()

	assert.Len(t, res.Vertices, 3)
	assert.NotContains(t, res.Vertices, spare)
	nf, ok := res.Faces[f]
	require.True(t, ok)

	got, err := m.Face(nf)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NumSides)

	cycle, err := m.EdgesOfFace(nf)
	require.NoError(t, err)
	require.Len(t, cycle, 3)
	for i, eh := range cycle {
		e, err := m.Edge(eh)
		require.NoError(t, err)
		assert.Equal(t, res.Vertices[verts[i]], e.Srce)
		assert.Equal(t, nf, e.Face)
	}

	// Pre-compaction handles are all invalidated.
	for _, eh := range edges {
		assert.False(t, m.EdgeAlive(eh))
	}
	assert.False(t, m.FaceAlive(f))
}

func TestCompact_StaleHandleDoesNotAliasShiftedSurvivor(t *testing.T) {
	m := New()
	v0 := m.AddVertex(r3.Vec{X: 1})
	v1 := m.AddVertex(r3.Vec{X: 2})
	require.NoError(t, m.RemoveVertex(v0))

	res := m.Compact()

	// v1 now occupies the slot index v0's handle names. The stale handle
	// must miss rather than resolve to the shifted survivor.
	assert.False(t, m.VertexAlive(v0))
	_, err := m.Vertex(v0)
	assert.True(t, IsDanglingReference(err))

	nh, ok := res.Vertices[v1]
	require.True(t, ok)
	assert.Equal(t, int32(0), nh.Index)
	moved, err := m.Vertex(nh)
	require.NoError(t, err)
	assert.Equal(t, 2.0, moved.Pos.X)

	// Slots freed by compaction are reused at a fresh generation too.
	v2 := m.AddVertex(r3.Vec{X: 3})
	assert.Equal(t, v2.Index, v1.Index)
	assert.NotEqual(t, v2.Gen, v1.Gen)
}

func TestEdgesAt_FindsBothDirections(t *testing.T) {
	m, verts, _, edges := triangle(t)
	at := m.EdgesAt(verts[0])
	assert.ElementsMatch(t, []EdgeHandle{edges[0], edges[2]}, at)
}
