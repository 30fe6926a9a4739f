package transition

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cellmesh/rnrmesh/internal/geometry"
	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// IH applies the IH transition to the given half-edge: its two endpoints
// merge into one new vertex at the edge midpoint, every half-edge copy of
// the collapsing vertex pair is removed, and each face that contained the
// pair loses one side.
//
// Preconditions, refused before mutation: the target's owning face must
// have more than four sides, and no face touching the collapsing pair may
// drop below three sides. After surgery the geometry is refreshed and
// I1-I5 are checked; on violation the mesh rolls back to its pre-call
// state.
func (en *Engine) IH(target mesh.EdgeHandle) (*Result, error) {
	m := en.mesh
	e, err := m.Edge(target)
	if err != nil {
		return nil, err
	}
	f, err := m.Face(e.Face)
	if err != nil {
		return nil, err
	}
	if f.NumSides <= 4 {
		return nil, newDegenerateError(target.String(),
			"IH requires an owning face with more than four sides")
	}
	va, vb := e.Srce, e.Trgt
	if va == vb {
		return nil, newDegenerateError(target.String(), "edge is a self loop")
	}
	pa, err := m.Position(va)
	if err != nil {
		return nil, err
	}
	pb, err := m.Position(vb)
	if err != nil {
		return nil, err
	}

	snapshot := m.Clone()
	vNew := m.AddVertex(r3.Scale(0.5, r3.Add(pa, pb)))
	merged := map[mesh.VertexHandle]bool{va: true, vb: true}
	assign := func(_, _ mesh.VertexHandle) (mesh.VertexHandle, mesh.VertexHandle, error) {
		return vNew, vNew, nil
	}

	out, err := collapseVertices(m, merged, assign, target.String())
	if err != nil {
		m.Restore(snapshot)
		return nil, err
	}
	if err := m.RemoveVertex(va); err != nil {
		m.Restore(snapshot)
		return nil, err
	}
	if err := m.RemoveVertex(vb); err != nil {
		m.Restore(snapshot)
		return nil, err
	}
	if err := geometry.UpdateAll(m); err != nil {
		m.Restore(snapshot)
		return nil, err
	}
	if violations := checkInvariants(m); len(violations) > 0 {
		m.Restore(snapshot)
		return nil, newInvariantError(target.String(), violations)
	}

	en.log.Debug("applied IH transition",
		"edge", target.String(),
		"new_vertex", vNew.String(),
		"removed_edges", len(out.removedEdges),
		"resized_faces", len(out.resized))

	return &Result{
		Kind:            KindIH,
		Target:          target.String(),
		NewVertices:     []mesh.VertexHandle{vNew},
		NewEdges:        out.newEdges,
		RemovedVertices: []mesh.VertexHandle{va, vb},
		RemovedEdges:    out.removedEdges,
		RemovedFaces:    out.removedFaces,
		ResizedFaces:    out.resized,
	}, nil
}
