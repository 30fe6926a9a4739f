package transition

import (
	"fmt"

	"github.com/cellmesh/rnrmesh/internal/mesh"
	"github.com/cellmesh/rnrmesh/internal/validity"
)

// subVolTolerance absorbs floating-point noise when testing sub-volume
// positivity right after a transition.
const subVolTolerance = 1e-9

// checkInvariants verifies I1-I5 on the whole mesh and returns the list of
// violations, empty when healthy. Geometry must be fresh. The whole-mesh
// scan is deliberate: at tissue scale it is cheap, and a patch-local check
// cannot see a reference leaked outside the patch.
func checkInvariants(m *mesh.Mesh) []string {
	var violations []string

	// I1: every face is a closed cycle of at least three sides, and every
	// half-edge belongs to exactly one face cycle.
	visited := make(map[mesh.EdgeHandle]int, m.NumEdges())
	for _, fh := range m.Faces() {
		f, err := m.Face(fh)
		if err != nil {
			violations = append(violations, err.Error())
			continue
		}
		if f.NumSides < 3 {
			violations = append(violations, fmt.Sprintf("I1: face %s has %d sides", fh, f.NumSides))
			continue
		}
		if !validity.FaceCycleClosed(m, fh) {
			violations = append(violations, fmt.Sprintf("I1: face %s cycle does not close", fh))
			continue
		}
		cycle, err := m.EdgesOfFace(fh)
		if err != nil {
			violations = append(violations, err.Error())
			continue
		}
		for _, eh := range cycle {
			visited[eh]++
		}
	}
	for eh, n := range visited {
		if n > 1 {
			violations = append(violations, fmt.Sprintf("I1: halfedge %s appears in %d cycles", eh, n))
		}
	}
	if len(visited) != m.NumEdges() {
		violations = append(violations,
			fmt.Sprintf("I1: %d halfedges live but %d reachable from face cycles", m.NumEdges(), len(visited)))
	}

	// I2: non-negative sub-volumes, strictly positive cell volumes.
	for _, eh := range m.Edges() {
		e, err := m.Edge(eh)
		if err != nil {
			violations = append(violations, err.Error())
			continue
		}
		if e.SubVol < -subVolTolerance {
			violations = append(violations, fmt.Sprintf("I2: halfedge %s has negative sub-volume %g", eh, e.SubVol))
		}
	}
	for _, ch := range m.Cells() {
		c, err := m.Cell(ch)
		if err != nil {
			violations = append(violations, err.Error())
			continue
		}
		if c.Volume <= 0 {
			violations = append(violations, fmt.Sprintf("I2: cell %s has non-positive volume %g", ch, c.Volume))
		}
	}

	// I3: no dangling references, no unreferenced vertices, consistent twins.
	referenced := make(map[mesh.VertexHandle]bool, m.NumVertices())
	for _, eh := range m.Edges() {
		e, err := m.Edge(eh)
		if err != nil {
			continue
		}
		referenced[e.Srce] = true
		referenced[e.Trgt] = true
		if !m.VertexAlive(e.Srce) || !m.VertexAlive(e.Trgt) {
			violations = append(violations, fmt.Sprintf("I3: halfedge %s references a dead vertex", eh))
		}
		if !m.FaceAlive(e.Face) {
			violations = append(violations, fmt.Sprintf("I3: halfedge %s references dead face", eh))
		}
		if !m.CellAlive(e.Cell) {
			violations = append(violations, fmt.Sprintf("I3: halfedge %s references dead cell", eh))
		}
		if e.Twin.IsNil() {
			violations = append(violations, fmt.Sprintf("I3: halfedge %s has no twin", eh))
			continue
		}
		tw, err := m.Edge(e.Twin)
		if err != nil {
			violations = append(violations, fmt.Sprintf("I3: halfedge %s twin is dead", eh))
			continue
		}
		if tw.Twin != eh || tw.Srce != e.Trgt || tw.Trgt != e.Srce || tw.Cell != e.Cell {
			violations = append(violations, fmt.Sprintf("I3: halfedge %s twin link inconsistent", eh))
		}
	}
	for _, vh := range m.Vertices() {
		if !referenced[vh] {
			violations = append(violations, fmt.Sprintf("I3: vertex %s is unreferenced", vh))
		}
	}

	// I4/I5: Conditions 4(i) and 4(ii).
	offenders4i, err := validity.Condition4i(m)
	if err != nil {
		violations = append(violations, err.Error())
	}
	for _, fh := range offenders4i {
		violations = append(violations, fmt.Sprintf("I4: face %s repeats a vertex pair", fh))
	}
	offenders4ii, err := validity.Condition4ii(m)
	if err != nil {
		violations = append(violations, err.Error())
	}
	for _, pair := range offenders4ii {
		violations = append(violations, fmt.Sprintf("I5: faces %s and %s share two or more edges", pair.A, pair.B))
	}

	return violations
}
