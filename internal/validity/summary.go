package validity

import (
	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// subVolTolerance absorbs floating-point noise in the signed sub-volume
// positivity test.
const subVolTolerance = 1e-9

// Summary holds per-element validity flags: true means invalid. A healthy
// mesh has every flag false.
type Summary struct {
	Vertices map[mesh.VertexHandle]bool
	Edges    map[mesh.EdgeHandle]bool
	Faces    map[mesh.FaceHandle]bool
	Cells    map[mesh.CellHandle]bool
}

// AllValid reports whether no element is flagged.
func (s *Summary) AllValid() bool {
	for _, bad := range s.Vertices {
		if bad {
			return false
		}
	}
	for _, bad := range s.Edges {
		if bad {
			return false
		}
	}
	for _, bad := range s.Faces {
		if bad {
			return false
		}
	}
	for _, bad := range s.Cells {
		if bad {
			return false
		}
	}
	return true
}

// Invalid scans the mesh and flags:
//
//   - vertices referenced by no half-edge (dead, should have been purged)
//   - half-edges with dangling references or negative sub-volume
//   - faces with fewer than three sides, broken boundary cycles, or
//     offending Condition 4(i)/4(ii)
//   - cells with non-positive volume
//
// Geometry must be fresh for the sub-volume and volume flags to mean
// anything.
func Invalid(m *mesh.Mesh) (*Summary, error) {
	s := &Summary{
		Vertices: make(map[mesh.VertexHandle]bool, m.NumVertices()),
		Edges:    make(map[mesh.EdgeHandle]bool, m.NumEdges()),
		Faces:    make(map[mesh.FaceHandle]bool, m.NumFaces()),
		Cells:    make(map[mesh.CellHandle]bool, m.NumCells()),
	}

	referenced := make(map[mesh.VertexHandle]bool, m.NumVertices())
	for _, eh := range m.Edges() {
		e, err := m.Edge(eh)
		if err != nil {
			return nil, err
		}
		referenced[e.Srce] = true
		referenced[e.Trgt] = true
		bad := !m.VertexAlive(e.Srce) || !m.VertexAlive(e.Trgt) ||
			!m.FaceAlive(e.Face) || !m.CellAlive(e.Cell) ||
			e.SubVol < -subVolTolerance
		s.Edges[eh] = bad
	}

	for _, vh := range m.Vertices() {
		s.Vertices[vh] = !referenced[vh]
	}

	for _, fh := range m.Faces() {
		f, err := m.Face(fh)
		if err != nil {
			return nil, err
		}
		s.Faces[fh] = f.NumSides < 3 || !m.CellAlive(f.Cell) || !FaceCycleClosed(m, fh)
	}
	offenders4i, err := Condition4i(m)
	if err != nil {
		return nil, err
	}
	for _, fh := range offenders4i {
		s.Faces[fh] = true
	}
	offenders4ii, err := Condition4ii(m)
	if err != nil {
		return nil, err
	}
	for _, pair := range offenders4ii {
		s.Faces[pair.A] = true
		s.Faces[pair.B] = true
	}

	for _, ch := range m.Cells() {
		c, err := m.Cell(ch)
		if err != nil {
			return nil, err
		}
		s.Cells[ch] = c.Volume <= 0
	}
	return s, nil
}

// FaceCycleClosed checks invariant I1 for one face: following Next from the
// anchor for NumSides steps stays inside the face, chains target to source,
// and returns to the anchor.
func FaceCycleClosed(m *mesh.Mesh, fh mesh.FaceHandle) bool {
	f, err := m.Face(fh)
	if err != nil || f.NumSides < 1 || f.Edge.IsNil() {
		return false
	}
	eh := f.Edge
	prevTrgt := mesh.NilVertex
	for i := 0; i < f.NumSides; i++ {
		e, err := m.Edge(eh)
		if err != nil {
			return false
		}
		if e.Face != fh {
			return false
		}
		if i > 0 && e.Srce != prevTrgt {
			return false
		}
		prevTrgt = e.Trgt
		eh = e.Next
	}
	if eh != f.Edge {
		return false
	}
	first, err := m.Edge(f.Edge)
	if err != nil {
		return false
	}
	return first.Srce == prevTrgt
}
