package transition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cellmesh/rnrmesh/internal/geometry"
	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/testutil"
	"github.com/cellmesh/rnrmesh/internal/transition"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

// edgeOn locates the half-edge src->trgt on the face boundary.
func edgeOn(t *testing.T, m *mesh.Mesh, f mesh.FaceHandle, src, trgt mesh.VertexHandle) mesh.EdgeHandle {
	t.Helper()
	cycle, err := m.EdgesOfFace(f)
	require.NoError(t, err)
	for _, eh := range cycle {
		e, err := m.Edge(eh)
		require.NoError(t, err)
		if e.Srce == src && e.Trgt == trgt {
			return eh
		}
	}
	t.Fatalf("edge %s->%s not on face %s", src, trgt, f)
	return mesh.NilEdge
}

func sides(t *testing.T, m *mesh.Mesh, f mesh.FaceHandle) int {
	t.Helper()
	got, err := m.Face(f)
	require.NoError(t, err)
	return got.NumSides
}

func TestIH_CollapsesRidge(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})

	res, err := en.IH(tp.Ridge)
	require.NoError(t, err)

	assert.Equal(t, transition.KindIH, res.Kind)
	assert.Equal(t, tp.Ridge.String(), res.Target)
	require.Len(t, res.NewVertices, 1)
	assert.ElementsMatch(t, []mesh.VertexHandle{tp.VA, tp.VB}, res.RemovedVertices)
	assert.Empty(t, res.NewEdges)
	assert.Empty(t, res.RemovedFaces)

	// One half-edge copy of the ridge pair per holding face: the two
	// pentagons and the two interface quads.
	assert.Len(t, res.RemovedEdges, 4)
	assert.Contains(t, res.RemovedEdges, tp.Ridge)

	assert.Equal(t, 15, tp.M.NumVertices())
	assert.Equal(t, 56, tp.M.NumEdges())
	assert.Equal(t, 14, tp.M.NumFaces())
	assert.Equal(t, 2, tp.M.NumCells())

	assert.Equal(t, 4, res.ResizedFaces[tp.TopA])
	assert.Equal(t, 4, res.ResizedFaces[tp.TopB])
	assert.Equal(t, 3, res.ResizedFaces[tp.InterfaceA])
	assert.Equal(t, 3, res.ResizedFaces[tp.InterfaceB])

	// The merge vertex sits at the ridge midpoint.
	pos, err := tp.M.Position(res.NewVertices[0])
	require.NoError(t, err)
	assert.InDelta(t, 0.0, pos.X, 1e-12)
	assert.InDelta(t, 0.5, pos.Y, 1e-12)
	assert.InDelta(t, 1.0, pos.Z, 1e-12)

	assert.False(t, tp.M.VertexAlive(tp.VA))
	assert.False(t, tp.M.VertexAlive(tp.VB))

	s, err := validity.Invalid(tp.M)
	require.NoError(t, err)
	assert.True(t, s.AllValid())
}

func TestIH_RefusesQuadOwningFace(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})
	before := tp.M.Dump()

	cycle, err := tp.M.EdgesOfFace(tp.InterfaceA)
	require.NoError(t, err)
	_, err = en.IH(cycle[0])
	require.Error(t, err)
	assert.True(t, transition.IsDegenerate(err))
	assert.Contains(t, err.Error(), "more than four sides")
	assert.Equal(t, before, tp.M.Dump())
}

func TestIH_RefusesWhenNeighborWouldDegenerate(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})

	_, err := en.IH(tp.Ridge)
	require.NoError(t, err)
	before := tp.M.Dump()

	// The floor copy of the short pair is still an IH candidate by length
	// and face arity, but collapsing it would shrink the interface triangle
	// to two sides.
	floor := edgeOn(t, tp.M, tp.BottomA, tp.FloorB, tp.FloorA)
	_, err = en.IH(floor)
	require.Error(t, err)
	assert.True(t, transition.IsDegenerate(err))
	assert.Contains(t, err.Error(), "would drop below three sides")
	assert.Equal(t, before, tp.M.Dump())
}

func TestIH_DanglingTarget(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})

	_, err := en.IH(mesh.EdgeHandle{Index: 999, Gen: 0})
	require.Error(t, err)
	assert.True(t, mesh.IsDanglingReference(err))

	// A committed transition invalidates its removed handles.
	_, err = en.IH(tp.Ridge)
	require.NoError(t, err)
	_, err = en.IH(tp.Ridge)
	require.Error(t, err)
	assert.True(t, mesh.IsDanglingReference(err))
}

func TestIH_RollsBackOnInvariantViolation(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)

	// Reflect the tissue through the origin: every surface winds the wrong
	// way, so the post-surgery sub-volume check must fire.
	for _, vh := range tp.M.Vertices() {
		v, err := tp.M.Vertex(vh)
		require.NoError(t, err)
		v.Pos = r3.Scale(-1, v.Pos)
	}
	require.NoError(t, geometry.UpdateAll(tp.M))
	s, err := validity.Invalid(tp.M)
	require.NoError(t, err)
	require.False(t, s.AllValid(), "reflected tissue must start invalid")

	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})
	before := tp.M.Dump()

	_, err = en.IH(tp.Ridge)
	require.Error(t, err)
	assert.True(t, transition.IsInvariantViolation(err))
	assert.Equal(t, before, tp.M.Dump())
	assert.True(t, tp.M.VertexAlive(tp.VA))
	assert.True(t, tp.M.VertexAlive(tp.VB))
}
