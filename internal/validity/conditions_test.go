package validity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/testutil"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

func TestCheckThreshold_Condition3(t *testing.T) {
	m := testutil.UnitCube() // mean edge length exactly 1

	assert.NoError(t, validity.CheckThreshold(m, validity.Config{ThresholdLength: 0.5}))

	err := validity.CheckThreshold(m, validity.Config{ThresholdLength: 0})
	require.Error(t, err)
	assert.True(t, validity.IsConfiguration(err))
	assert.Contains(t, err.Error(), "must be positive")

	err = validity.CheckThreshold(m, validity.Config{ThresholdLength: 1.5})
	require.Error(t, err)
	assert.True(t, validity.IsConfiguration(err))
	assert.Contains(t, err.Error(), "mean edge length")

	// Equality is rejected too: the threshold must be strictly below scale.
	err = validity.CheckThreshold(m, validity.Config{ThresholdLength: 1})
	assert.True(t, validity.IsConfiguration(err))
}

func TestCondition4i_FlagsDuplicateChord(t *testing.T) {
	m := mesh.New()
	v0 := m.AddVertex(r3.Vec{})
	v1 := m.AddVertex(r3.Vec{X: 1})
	v2 := m.AddVertex(r3.Vec{Y: 1})
	c := m.AddCell()
	f := m.AddFace(c)
	// Pinched quad: the cycle visits the v0-v1 chord twice.
	e0 := m.AddEdge(v0, v1, f, c)
	e1 := m.AddEdge(v1, v0, f, c)
	e2 := m.AddEdge(v0, v2, f, c)
	e3 := m.AddEdge(v2, v0, f, c)
	require.NoError(t, m.RelinkCycle(f, []mesh.EdgeHandle{e0, e1, e2, e3}))

	offenders, err := validity.Condition4i(m)
	require.NoError(t, err)
	assert.Equal(t, []mesh.FaceHandle{f}, offenders)
}

func TestCondition4i_CleanOnFixtures(t *testing.T) {
	offenders, err := validity.Condition4i(testutil.UnitCube())
	require.NoError(t, err)
	assert.Empty(t, offenders)

	offenders, err = validity.Condition4i(testutil.TwinPentagonPrisms(1).M)
	require.NoError(t, err)
	assert.Empty(t, offenders)
}

func TestCondition4ii_FlagsDoubleSharedBoundary(t *testing.T) {
	m := mesh.New()
	var v [5]mesh.VertexHandle
	coords := []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}, {X: 2}}
	for i, p := range coords {
		v[i] = m.AddVertex(p)
	}
	c := m.AddCell()
	addFace := func(ring []mesh.VertexHandle) mesh.FaceHandle {
		f := m.AddFace(c)
		cycle := make([]mesh.EdgeHandle, 0, len(ring))
		for i := range ring {
			cycle = append(cycle, m.AddEdge(ring[i], ring[(i+1)%len(ring)], f, c))
		}
		require.NoError(t, m.RelinkCycle(f, cycle))
		return f
	}
	f1 := addFace([]mesh.VertexHandle{v[0], v[1], v[2], v[3]})
	f2 := addFace([]mesh.VertexHandle{v[0], v[1], v[2], v[4]})

	offenders, err := validity.Condition4ii(m)
	require.NoError(t, err)
	require.Len(t, offenders, 1)
	assert.Equal(t, mesh.MakeFacePair(f1, f2), offenders[0])
}

func TestCondition4ii_ExcludesCrossCellMirrors(t *testing.T) {
	// The twin-prism interface quad exists once per adjacent cell and the
	// two copies share their entire boundary. That is the representation of
	// one shared face, not a degeneracy.
	tp := testutil.TwinPentagonPrisms(1)
	offenders, err := validity.Condition4ii(tp.M)
	require.NoError(t, err)
	assert.Empty(t, offenders)
}

func TestFindRearrangements_TwinPrisms(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	cfg := validity.Config{ThresholdLength: 0.7}
	require.NoError(t, validity.CheckThreshold(tp.M, cfg))

	cands, err := validity.FindRearrangements(tp.M, cfg)
	require.NoError(t, err)

	// The short ridge and floor edges are each held by two pentagonal faces
	// and two interface quads; only the pentagon copies qualify.
	assert.Len(t, cands.IHEdges, 4)
	assert.Contains(t, cands.IHEdges, tp.Ridge)
	assert.Empty(t, cands.HIFaces)

	for _, eh := range cands.IHEdges {
		e, err := tp.M.Edge(eh)
		require.NoError(t, err)
		f, err := tp.M.Face(e.Face)
		require.NoError(t, err)
		assert.Greater(t, f.NumSides, 4)
		assert.Less(t, e.Length, cfg.ThresholdLength)
	}
}

func TestFindRearrangements_NoCandidatesOnCube(t *testing.T) {
	cands, err := validity.FindRearrangements(testutil.UnitCube(), validity.Config{ThresholdLength: 0.5})
	require.NoError(t, err)
	assert.Empty(t, cands.IHEdges)
	assert.Empty(t, cands.HIFaces)
}
