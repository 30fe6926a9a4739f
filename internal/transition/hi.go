package transition

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cellmesh/rnrmesh/internal/geometry"
	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

// HI applies the HI transition to a uniformly short triangular face: its
// three vertices merge into two new vertices joined by a fresh edge, the
// triangle and its cross-cell mirror are purged, and the faces that wrapped
// around the collapsing triangle are re-routed to the new pair. Cells that
// met the patch only at a point afterwards meet along the new edge.
//
// Placement rule: the new vertices sit at the triangle barycenter displaced
// by half the seed length along the triangle's base axis. The base is the
// edge opposite the apex; the apex is the triangle vertex with the most
// referencing half-edges (ties broken by lowest handle index), which on a
// triangle produced by a preceding IH is the merge vertex. Each witness
// routes to the new vertex on its own side of the plane through the
// barycenter normal to the base axis.
func (en *Engine) HI(target mesh.FaceHandle) (*Result, error) {
	m := en.mesh
	f, err := m.Face(target)
	if err != nil {
		return nil, err
	}
	if f.NumSides != 3 {
		return nil, newDegenerateError(target.String(), "HI requires a triangular face")
	}
	if en.cfg.ThresholdLength <= 0 {
		return nil, &validity.ConfigurationError{
			Threshold: en.cfg.ThresholdLength,
			MeanEdge:  m.MeanEdgeLength(),
			Message:   "threshold length must be positive before an HI transition",
		}
	}
	cycle, err := m.EdgesOfFace(target)
	if err != nil {
		return nil, err
	}
	verts := make([]mesh.VertexHandle, 0, 3)
	for _, eh := range cycle {
		e, err := m.Edge(eh)
		if err != nil {
			return nil, err
		}
		if e.Length >= en.cfg.ThresholdLength {
			return nil, newDegenerateError(target.String(),
				"HI requires all three edges below the threshold length")
		}
		verts = append(verts, e.Srce)
	}
	if verts[0] == verts[1] || verts[1] == verts[2] || verts[0] == verts[2] {
		return nil, newDegenerateError(target.String(), "triangle vertices are not distinct")
	}

	apex, base1, base2 := splitFrame(m, verts)
	p1, err := m.Position(base1)
	if err != nil {
		return nil, err
	}
	p2, err := m.Position(base2)
	if err != nil {
		return nil, err
	}
	pApex, err := m.Position(apex)
	if err != nil {
		return nil, err
	}
	axis := r3.Sub(p2, p1)
	if geometry.Degenerate(r3.Norm(axis)) {
		return nil, newDegenerateError(target.String(), "triangle base has zero length")
	}
	axis = r3.Unit(axis)
	center := r3.Scale(1.0/3.0, r3.Add(pApex, r3.Add(p1, p2)))
	seed := en.seedFactor * en.cfg.ThresholdLength

	snapshot := m.Clone()
	vA := m.AddVertex(r3.Add(center, r3.Scale(-seed/2, axis)))
	vB := m.AddVertex(r3.Add(center, r3.Scale(seed/2, axis)))

	sideOf := func(w mesh.VertexHandle) (mesh.VertexHandle, error) {
		p, err := m.Position(w)
		if err != nil {
			return mesh.NilVertex, err
		}
		if r3.Dot(r3.Sub(p, center), axis) >= 0 {
			return vB, nil
		}
		return vA, nil
	}
	assign := func(before, after mesh.VertexHandle) (mesh.VertexHandle, mesh.VertexHandle, error) {
		ra, err := sideOf(before)
		if err != nil {
			return mesh.NilVertex, mesh.NilVertex, err
		}
		rb, err := sideOf(after)
		if err != nil {
			return mesh.NilVertex, mesh.NilVertex, err
		}
		return ra, rb, nil
	}

	merged := map[mesh.VertexHandle]bool{verts[0]: true, verts[1]: true, verts[2]: true}
	out, err := collapseVertices(m, merged, assign, target.String())
	if err != nil {
		m.Restore(snapshot)
		return nil, err
	}
	if len(out.newEdges) == 0 {
		// No surviving face spans the split plane, so the fresh edge would
		// dangle. Happens only on malformed patches, never on an interface
		// triangle between two cells.
		m.Restore(snapshot)
		return nil, newDegenerateError(target.String(), "no face spans the split, new edge would dangle")
	}
	for _, vh := range verts {
		if err := m.RemoveVertex(vh); err != nil {
			m.Restore(snapshot)
			return nil, err
		}
	}
	if err := geometry.UpdateAll(m); err != nil {
		m.Restore(snapshot)
		return nil, err
	}
	if violations := checkInvariants(m); len(violations) > 0 {
		m.Restore(snapshot)
		return nil, newInvariantError(target.String(), violations)
	}

	en.log.Debug("applied HI transition",
		"face", target.String(),
		"new_vertices", []string{vA.String(), vB.String()},
		"new_edges", len(out.newEdges),
		"removed_faces", len(out.removedFaces))

	return &Result{
		Kind:            KindHI,
		Target:          target.String(),
		NewVertices:     []mesh.VertexHandle{vA, vB},
		NewEdges:        out.newEdges,
		RemovedVertices: verts,
		RemovedEdges:    out.removedEdges,
		RemovedFaces:    out.removedFaces,
		ResizedFaces:    out.resized,
	}, nil
}

// splitFrame picks the apex (most referencing half-edges, ties by lowest
// index) and orders the base pair by handle index so the split axis is
// deterministic.
func splitFrame(m *mesh.Mesh, verts []mesh.VertexHandle) (apex, base1, base2 mesh.VertexHandle) {
	ordered := slices.Clone(verts)
	slices.SortFunc(ordered, func(a, b mesh.VertexHandle) int {
		if c := cmp.Compare(len(m.EdgesAt(b)), len(m.EdgesAt(a))); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	apex = ordered[0]
	base1, base2 = ordered[1], ordered[2]
	if base2.Index < base1.Index {
		base1, base2 = base2, base1
	}
	return apex, base1, base2
}
