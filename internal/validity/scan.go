package validity

import (
	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// Candidates is the result of a rearrangement scan: half-edges eligible for
// an IH transition and faces eligible for an HI transition. Both sets are
// sorted ascending by handle index; the engine applies one transition at a
// time and the caller re-scans, so adjacent candidates resolve
// lowest-index-first.
type Candidates struct {
	IHEdges []mesh.EdgeHandle
	HIFaces []mesh.FaceHandle
}

// FindRearrangements partitions short elements into transition candidates:
//
//   - IH candidates: half-edges shorter than the threshold whose owning face
//     has more than four sides. Quads are excluded; collapsing a quad's
//     short edge is not a well-formed IH move, the quad instead becomes the
//     triangle when a neighboring edge collapses.
//   - HI candidates: triangular faces all of whose bounding edges are
//     shorter than the threshold, i.e. the face has uniformly collapsed to
//     near a point.
//
// Geometry must be fresh: lengths are read from derived storage.
func FindRearrangements(m *mesh.Mesh, cfg Config) (Candidates, error) {
	var c Candidates
	for _, eh := range m.Edges() {
		e, err := m.Edge(eh)
		if err != nil {
			return Candidates{}, err
		}
		if e.Length >= cfg.ThresholdLength {
			continue
		}
		f, err := m.Face(e.Face)
		if err != nil {
			return Candidates{}, err
		}
		if f.NumSides > 4 {
			c.IHEdges = append(c.IHEdges, eh)
		}
	}
	for _, fh := range m.Faces() {
		f, err := m.Face(fh)
		if err != nil {
			return Candidates{}, err
		}
		if f.NumSides != 3 {
			continue
		}
		cycle, err := m.EdgesOfFace(fh)
		if err != nil {
			return Candidates{}, err
		}
		short := true
		for _, eh := range cycle {
			e, err := m.Edge(eh)
			if err != nil {
				return Candidates{}, err
			}
			if e.Length >= cfg.ThresholdLength {
				short = false
				break
			}
		}
		if short {
			c.HIFaces = append(c.HIFaces, fh)
		}
	}
	return c, nil
}
