package transition

import (
	"fmt"

	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// assignFunc chooses the replacement vertices for one maximal run of merged
// vertices in a face cycle. before and after are the witnesses: the nearest
// surviving vertices on either side of the run. Returning equal handles
// collapses the run to a single vertex; returning different handles splits
// it, and a bridging half-edge is created between them.
type assignFunc func(before, after mesh.VertexHandle) (mesh.VertexHandle, mesh.VertexHandle, error)

// collapseOutcome records the patch replacement performed by
// collapseVertices.
type collapseOutcome struct {
	newEdges     []mesh.EdgeHandle
	removedEdges []mesh.EdgeHandle
	removedFaces []mesh.FaceHandle
	resized      map[mesh.FaceHandle]int
}

// planOp is one slot of a rewritten boundary cycle: an existing edge to
// keep with possibly relinked endpoints, or (edge == NilEdge) a bridge to
// create.
type planOp struct {
	edge mesh.EdgeHandle
	srce mesh.VertexHandle
	trgt mesh.VertexHandle
}

// facePlan is the dry-run rewrite of one affected face.
type facePlan struct {
	face    mesh.FaceHandle
	cell    mesh.CellHandle
	purge   bool
	ops     []planOp
	removed []mesh.EdgeHandle
}

// planFace computes the rewrite of fh under the merge set, without
// mutating. Returns nil if the face does not touch the merge set.
func planFace(m *mesh.Mesh, fh mesh.FaceHandle, merged map[mesh.VertexHandle]bool, assign assignFunc) (*facePlan, error) {
	f, err := m.Face(fh)
	if err != nil {
		return nil, err
	}
	cycle, err := m.EdgesOfFace(fh)
	if err != nil {
		return nil, err
	}
	n := len(cycle)
	ring := make([]mesh.VertexHandle, n)
	touched := 0
	start := -1
	for i, eh := range cycle {
		e, err := m.Edge(eh)
		if err != nil {
			return nil, err
		}
		ring[i] = e.Srce
		if merged[e.Srce] {
			touched++
		} else if start < 0 {
			start = i
		}
	}
	if touched == 0 {
		return nil, nil
	}
	plan := &facePlan{face: fh, cell: f.Cell}
	if touched == n {
		// The face lies entirely inside the merge set: it is the collapsing
		// face itself (or its cross-cell mirror) and is purged whole.
		plan.purge = true
		plan.removed = cycle
		return plan, nil
	}

	// Walk the cycle from an unmerged vertex. Every directly visited edge
	// has an unmerged source; an edge with a merged target opens a run.
	i := 0
	for i < n {
		p := (start + i) % n
		eh := cycle[p]
		src := ring[p]
		dst := ring[(p+1)%n]
		if !merged[dst] {
			plan.ops = append(plan.ops, planOp{edge: eh, srce: src, trgt: dst})
			i++
			continue
		}
		k := 1
		for merged[ring[(p+1+k)%n]] {
			k++
		}
		after := ring[(p+1+k)%n]
		ra, rb, err := assign(src, after)
		if err != nil {
			return nil, err
		}
		plan.ops = append(plan.ops, planOp{edge: eh, srce: src, trgt: ra})
		if ra != rb {
			plan.ops = append(plan.ops, planOp{edge: mesh.NilEdge, srce: ra, trgt: rb})
		}
		for j := 1; j < k; j++ {
			plan.removed = append(plan.removed, cycle[(p+j)%n])
		}
		plan.ops = append(plan.ops, planOp{edge: cycle[(p+k)%n], srce: rb, trgt: after})
		i += k + 1
	}
	return plan, nil
}

// collapseVertices merges the given vertex set and rewrites every face
// cycle touching it. Refusals (a surviving face dropping below three
// sides) are detected during the dry-run pass and returned as degenerate
// TransitionErrors before any mutation. The merged vertices themselves are
// left for the caller to purge.
func collapseVertices(m *mesh.Mesh, merged map[mesh.VertexHandle]bool, assign assignFunc, target string) (*collapseOutcome, error) {
	var plans []*facePlan
	for _, fh := range m.Faces() {
		plan, err := planFace(m, fh, merged, assign)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			plans = append(plans, plan)
		}
	}
	for _, plan := range plans {
		if !plan.purge && len(plan.ops) < 3 {
			return nil, newDegenerateError(target,
				fmt.Sprintf("face %s would drop below three sides", plan.face))
		}
	}

	out := &collapseOutcome{resized: make(map[mesh.FaceHandle]int)}
	for _, plan := range plans {
		if plan.purge {
			out.removedEdges = append(out.removedEdges, plan.removed...)
			out.removedFaces = append(out.removedFaces, plan.face)
			if err := m.PurgeFace(plan.face); err != nil {
				return nil, err
			}
			continue
		}
		for _, eh := range plan.removed {
			if err := m.RemoveEdge(eh); err != nil {
				return nil, err
			}
		}
		out.removedEdges = append(out.removedEdges, plan.removed...)

		final := make([]mesh.EdgeHandle, 0, len(plan.ops))
		for _, op := range plan.ops {
			if op.edge.IsNil() {
				bridge := m.AddEdge(op.srce, op.trgt, plan.face, plan.cell)
				out.newEdges = append(out.newEdges, bridge)
				final = append(final, bridge)
				continue
			}
			e, err := m.Edge(op.edge)
			if err != nil {
				return nil, err
			}
			e.Srce = op.srce
			e.Trgt = op.trgt
			final = append(final, op.edge)
		}
		if err := m.RelinkCycle(plan.face, final); err != nil {
			return nil, err
		}
		out.resized[plan.face] = len(final)
	}

	if err := pairBridgeTwins(m, out.newEdges); err != nil {
		return nil, err
	}
	return out, nil
}

// pairBridgeTwins links the created bridges as twins. Both copies of a
// bridging edge within one cell surface are new, so pairing searches the
// new set only: opposite endpoints, same cell.
func pairBridgeTwins(m *mesh.Mesh, bridges []mesh.EdgeHandle) error {
	for i, bh := range bridges {
		b, err := m.Edge(bh)
		if err != nil {
			return err
		}
		if !b.Twin.IsNil() {
			continue
		}
		srce, trgt, cell := b.Srce, b.Trgt, b.Cell
		for _, oh := range bridges[i+1:] {
			o, err := m.Edge(oh)
			if err != nil {
				return err
			}
			if !o.Twin.IsNil() || o.Cell != cell {
				continue
			}
			if o.Srce == trgt && o.Trgt == srce {
				if err := m.PairTwins(bh, oh); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}
