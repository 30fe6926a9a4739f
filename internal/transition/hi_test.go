package transition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellmesh/rnrmesh/internal/geometry"
	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/testutil"
	"github.com/cellmesh/rnrmesh/internal/transition"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

func TestHI_RefusesNonTriangle(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})
	before := tp.M.Dump()

	_, err := en.HI(tp.TopA)
	require.Error(t, err)
	assert.True(t, transition.IsDegenerate(err))
	assert.Contains(t, err.Error(), "triangular")
	assert.Equal(t, before, tp.M.Dump())
}

func TestHI_RequiresPositiveThreshold(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})
	_, err := en.IH(tp.Ridge)
	require.NoError(t, err)

	en.SetThreshold(0)
	_, err = en.HI(tp.InterfaceA)
	require.Error(t, err)
	assert.True(t, validity.IsConfiguration(err))
}

func TestHI_RefusesTriangleWithLongEdges(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(1)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.7})
	_, err := en.IH(tp.Ridge)
	require.NoError(t, err)
	before := tp.M.Dump()

	// The interface triangle's slanted edges run the full prism height and
	// sit well above the threshold.
	_, err = en.HI(tp.InterfaceA)
	require.Error(t, err)
	assert.True(t, transition.IsDegenerate(err))
	assert.Contains(t, err.Error(), "below the threshold")
	assert.Equal(t, before, tp.M.Dump())
}

// TestHI_SplitsMergeVertex runs the full IH then HI sequence on squat twin
// prisms: collapsing the ridge leaves an interface triangle whose apex is
// the merge vertex, and at height 0.3 all three of its edges (0.6 and twice
// 0.424) sit under a 0.65 threshold that is itself below the 0.660 mean edge
// length. The HI split restores pentagonal tops and bottoms with the two
// cells now meeting along a fresh edge. Seed length is 0.2 * 0.65 = 0.13.
func TestHI_SplitsMergeVertex(t *testing.T) {
	tp := testutil.TwinPentagonPrisms(0.3)
	en := transition.New(tp.M, validity.Config{ThresholdLength: 0.65},
		transition.WithSeedFactor(0.2))

	ihRes, err := en.IH(tp.Ridge)
	require.NoError(t, err)
	vMerge := ihRes.NewVertices[0]

	res, err := en.HI(tp.InterfaceA)
	require.NoError(t, err)

	assert.Equal(t, transition.KindHI, res.Kind)
	assert.Equal(t, tp.InterfaceA.String(), res.Target)
	require.Len(t, res.NewVertices, 2)
	assert.ElementsMatch(t, []mesh.VertexHandle{tp.FloorA, tp.FloorB, vMerge},
		res.RemovedVertices)
	assert.ElementsMatch(t, []mesh.FaceHandle{tp.InterfaceA, tp.InterfaceB},
		res.RemovedFaces)
	assert.Len(t, res.NewEdges, 4)
	assert.Len(t, res.RemovedEdges, 12)

	assert.Equal(t, 14, tp.M.NumVertices())
	assert.Equal(t, 48, tp.M.NumEdges())
	assert.Equal(t, 12, tp.M.NumFaces())
	assert.Equal(t, 2, tp.M.NumCells())

	// Tops and bottoms regain their fifth side; the four walls that wrapped
	// the collapsing triangle drop to three.
	assert.Equal(t, 5, sides(t, tp.M, tp.TopA))
	assert.Equal(t, 5, sides(t, tp.M, tp.TopB))
	assert.Equal(t, 5, sides(t, tp.M, tp.BottomA))
	assert.Equal(t, 5, sides(t, tp.M, tp.BottomB))
	assert.Len(t, res.ResizedFaces, 8)
	triangles := 0
	for _, fh := range tp.M.Faces() {
		if sides(t, tp.M, fh) == 3 {
			triangles++
		}
	}
	assert.Equal(t, 4, triangles)

	// Seeds sit on the split axis, 0.065 either side of the barycenter.
	vA, vB := res.NewVertices[0], res.NewVertices[1]
	pA, err := tp.M.Position(vA)
	require.NoError(t, err)
	pB, err := tp.M.Position(vB)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, pA.X, 1e-12)
	assert.InDelta(t, 0.435, pA.Y, 1e-12)
	assert.InDelta(t, 0.1, pA.Z, 1e-12)
	assert.InDelta(t, 0.565, pB.Y, 1e-12)
	assert.InDelta(t, 0.1, pB.Z, 1e-12)
	l, err := geometry.EdgeLength(tp.M, res.NewEdges[0])
	require.NoError(t, err)
	assert.InDelta(t, 0.13, l, 1e-12)

	// Bridges pair as twins among themselves, inside their own cell.
	for _, eh := range res.NewEdges {
		e, err := tp.M.Edge(eh)
		require.NoError(t, err)
		require.False(t, e.Twin.IsNil())
		assert.Contains(t, res.NewEdges, e.Twin)
		twin, err := tp.M.Edge(e.Twin)
		require.NoError(t, err)
		assert.Equal(t, e.Cell, twin.Cell)
		assert.Equal(t, e.Srce, twin.Trgt)
		assert.Equal(t, e.Trgt, twin.Srce)
	}

	s, err := validity.Invalid(tp.M)
	require.NoError(t, err)
	assert.True(t, s.AllValid())

	// The rewrite drags the floor corners and the merge vertex to the
	// barycenter plane, pinching each 0.33 prism to 0.1802 (worked out from
	// the fan decomposition of the patched surfaces). Volumes stay positive
	// and equal across the mirror pair.
	volA, err := geometry.CellVolume(tp.M, tp.CellA)
	require.NoError(t, err)
	volB, err := geometry.CellVolume(tp.M, tp.CellB)
	require.NoError(t, err)
	assert.InDelta(t, 0.1802, volA, 0.005)
	assert.InDelta(t, volA, volB, 1e-9)
}
