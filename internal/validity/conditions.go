package validity

import (
	"cmp"
	"slices"

	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// CheckThreshold evaluates Condition 3: the threshold must be positive and
// strictly smaller than the representative length scale of the mesh, taken
// as the mean live edge length. A scalar comparison, not a correction.
func CheckThreshold(m *mesh.Mesh, cfg Config) error {
	meanEdge := m.MeanEdgeLength()
	if cfg.ThresholdLength <= 0 {
		return &ConfigurationError{
			Threshold: cfg.ThresholdLength,
			MeanEdge:  meanEdge,
			Message:   "threshold length must be positive",
		}
	}
	if cfg.ThresholdLength >= meanEdge {
		return &ConfigurationError{
			Threshold: cfg.ThresholdLength,
			MeanEdge:  meanEdge,
			Message:   "threshold length must be smaller than the mean edge length",
		}
	}
	return nil
}

// Condition4i returns the faces whose boundary contains two half-edges
// connecting the same unordered vertex pair. Within one face such a
// duplicate chord makes the polygon degenerate.
func Condition4i(m *mesh.Mesh) ([]mesh.FaceHandle, error) {
	var offenders []mesh.FaceHandle
	for _, fh := range m.Faces() {
		cycle, err := m.EdgesOfFace(fh)
		if mesh.IsDanglingReference(err) {
			continue // broken cycle, flagged by the closure check
		}
		if err != nil {
			return nil, err
		}
		seen := make(map[mesh.VertexPair]bool, len(cycle))
		for _, eh := range cycle {
			e, err := m.Edge(eh)
			if err != nil {
				return nil, err
			}
			key := mesh.MakeVertexPair(e.Srce, e.Trgt)
			if seen[key] {
				offenders = append(offenders, fh)
				break
			}
			seen[key] = true
		}
	}
	return offenders, nil
}

// Condition4ii returns the unordered pairs of distinct faces sharing two or
// more bounding edges by vertex-pair identity. Faces are indexed by
// vertex-pair key, so the scan is linear in the number of half-edges rather
// than quadratic in face pairs.
//
// Cross-cell mirror copies of an interface face share their entire boundary
// by construction of the per-cell representation; a pair in different cells
// sharing exactly its full boundary is the representation of one shared
// face, not a degeneracy, and is excluded.
func Condition4ii(m *mesh.Mesh) ([]mesh.FacePair, error) {
	byPair := make(map[mesh.VertexPair][]mesh.FaceHandle)
	for _, fh := range m.Faces() {
		cycle, err := m.EdgesOfFace(fh)
		if mesh.IsDanglingReference(err) {
			continue // broken cycle, flagged by the closure check
		}
		if err != nil {
			return nil, err
		}
		seen := make(map[mesh.VertexPair]bool, len(cycle))
		for _, eh := range cycle {
			e, err := m.Edge(eh)
			if err != nil {
				return nil, err
			}
			key := mesh.MakeVertexPair(e.Srce, e.Trgt)
			if seen[key] {
				continue // counted once per face; duplicates are Condition 4(i)'s concern
			}
			seen[key] = true
			byPair[key] = append(byPair[key], fh)
		}
	}

	shared := make(map[mesh.FacePair]int)
	for _, faces := range byPair {
		for i := 0; i < len(faces); i++ {
			for j := i + 1; j < len(faces); j++ {
				shared[mesh.MakeFacePair(faces[i], faces[j])]++
			}
		}
	}

	var offenders []mesh.FacePair
	for pair, n := range shared {
		if n < 2 {
			continue
		}
		mirror, err := isMirrorPair(m, pair, n)
		if err != nil {
			return nil, err
		}
		if !mirror {
			offenders = append(offenders, pair)
		}
	}
	slices.SortFunc(offenders, func(a, b mesh.FacePair) int {
		if c := cmp.Compare(a.A.Index, b.A.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.B.Index, b.B.Index)
	})
	return offenders, nil
}

// isMirrorPair reports whether the pair is the two per-cell copies of one
// interface face: different cells, equal side counts, sharing their entire
// boundary.
func isMirrorPair(m *mesh.Mesh, pair mesh.FacePair, shared int) (bool, error) {
	fa, err := m.Face(pair.A)
	if err != nil {
		return false, err
	}
	fb, err := m.Face(pair.B)
	if err != nil {
		return false, err
	}
	return fa.Cell != fb.Cell &&
		fa.NumSides == fb.NumSides &&
		shared == fa.NumSides, nil
}
