package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// UpdateAll recomputes every derived attribute, in dependency order:
// edge vectors and lengths, then face centers, normals and areas, then cell
// reference points, then sub-volumes and cell volumes.
func UpdateAll(m *mesh.Mesh) error {
	if err := updateEdges(m); err != nil {
		return err
	}
	if err := updateFaces(m); err != nil {
		return err
	}
	if err := updateCells(m); err != nil {
		return err
	}
	return updateVolumes(m)
}

func updateEdges(m *mesh.Mesh) error {
	for _, eh := range m.Edges() {
		e, err := m.Edge(eh)
		if err != nil {
			return err
		}
		src, err := m.Position(e.Srce)
		if err != nil {
			return err
		}
		dst, err := m.Position(e.Trgt)
		if err != nil {
			return err
		}
		e.Vec = r3.Sub(dst, src)
		e.Length = r3.Norm(e.Vec)
	}
	return nil
}

func updateFaces(m *mesh.Mesh) error {
	for _, fh := range m.Faces() {
		center, err := faceCenter(m, fh)
		if err != nil {
			return err
		}
		normal, area, err := faceNormalArea(m, fh, center)
		if err != nil {
			return err
		}
		f, err := m.Face(fh)
		if err != nil {
			return err
		}
		f.Center = center
		f.Normal = normal
		f.Area = area
	}
	return nil
}

// faceCenter is the length-weighted average of edge midpoints:
//
//	r = sum over edges ij of l_ij * (r_i + r_j)/2, divided by sum of l_ij
//
// Weighting by length keeps the center invariant under edge subdivision and
// stable on skew, non-convex boundaries. Falls back to the plain vertex
// mean when the boundary has collapsed to zero total length.
func faceCenter(m *mesh.Mesh, fh mesh.FaceHandle) (r3.Vec, error) {
	cycle, err := m.EdgesOfFace(fh)
	if err != nil {
		return r3.Vec{}, err
	}
	var weighted, plain r3.Vec
	var total float64
	for _, eh := range cycle {
		e, err := m.Edge(eh)
		if err != nil {
			return r3.Vec{}, err
		}
		src, err := m.Position(e.Srce)
		if err != nil {
			return r3.Vec{}, err
		}
		dst, err := m.Position(e.Trgt)
		if err != nil {
			return r3.Vec{}, err
		}
		mid := r3.Scale(0.5, r3.Add(src, dst))
		weighted = r3.Add(weighted, r3.Scale(e.Length, mid))
		plain = r3.Add(plain, src)
		total += e.Length
	}
	if total > 0 {
		return r3.Scale(1/total, weighted), nil
	}
	if n := len(cycle); n > 0 {
		return r3.Scale(1/float64(n), plain), nil
	}
	return r3.Vec{}, nil
}

// faceNormalArea fans the boundary around the face center. The normal is
// the normalized sum of the triangle cross products; the area is the sum of
// their magnitudes halved, which also covers near-planar skew faces.
func faceNormalArea(m *mesh.Mesh, fh mesh.FaceHandle, center r3.Vec) (r3.Vec, float64, error) {
	cycle, err := m.EdgesOfFace(fh)
	if err != nil {
		return r3.Vec{}, 0, err
	}
	var nsum r3.Vec
	var area float64
	for _, eh := range cycle {
		e, err := m.Edge(eh)
		if err != nil {
			return r3.Vec{}, 0, err
		}
		src, err := m.Position(e.Srce)
		if err != nil {
			return r3.Vec{}, 0, err
		}
		dst, err := m.Position(e.Trgt)
		if err != nil {
			return r3.Vec{}, 0, err
		}
		cr := r3.Cross(r3.Sub(src, center), r3.Sub(dst, center))
		nsum = r3.Add(nsum, cr)
		area += 0.5 * r3.Norm(cr)
	}
	if n := r3.Norm(nsum); n > 0 {
		nsum = r3.Scale(1/n, nsum)
	}
	return nsum, area, nil
}

func updateCells(m *mesh.Mesh) error {
	for _, ch := range m.Cells() {
		faces := m.FacesOfCell(ch)
		var sum r3.Vec
		for _, fh := range faces {
			f, err := m.Face(fh)
			if err != nil {
				return err
			}
			sum = r3.Add(sum, f.Center)
		}
		c, err := m.Cell(ch)
		if err != nil {
			return err
		}
		if len(faces) > 0 {
			c.Ref = r3.Scale(1/float64(len(faces)), sum)
		} else {
			c.Ref = r3.Vec{}
		}
	}
	return nil
}

// updateVolumes writes each half-edge's sub-volume, the signed volume of
// the tetrahedron (srce, trgt, face center, cell reference point), then
// sums them per cell. With outward-wound faces every sub-volume of a valid
// convex-ish cell is positive and the per-cell sum is its volume.
func updateVolumes(m *mesh.Mesh) error {
	for _, ch := range m.Cells() {
		c, err := m.Cell(ch)
		if err != nil {
			return err
		}
		c.Volume = 0
	}
	for _, eh := range m.Edges() {
		e, err := m.Edge(eh)
		if err != nil {
			return err
		}
		src, err := m.Position(e.Srce)
		if err != nil {
			return err
		}
		dst, err := m.Position(e.Trgt)
		if err != nil {
			return err
		}
		f, err := m.Face(e.Face)
		if err != nil {
			return err
		}
		c, err := m.Cell(e.Cell)
		if err != nil {
			return err
		}
		ref := c.Ref
		e.SubVol = r3.Dot(r3.Cross(r3.Sub(src, ref), r3.Sub(dst, ref)), r3.Sub(f.Center, ref)) / 6
		c.Volume += e.SubVol
	}
	return nil
}

// Read accessors over the stored derived attributes.

// EdgeVector returns the stored edge vector.
func EdgeVector(m *mesh.Mesh, eh mesh.EdgeHandle) (r3.Vec, error) {
	e, err := m.Edge(eh)
	if err != nil {
		return r3.Vec{}, err
	}
	return e.Vec, nil
}

// EdgeLength returns the stored edge length.
func EdgeLength(m *mesh.Mesh, eh mesh.EdgeHandle) (float64, error) {
	e, err := m.Edge(eh)
	if err != nil {
		return 0, err
	}
	return e.Length, nil
}

// Center returns the stored face center.
func Center(m *mesh.Mesh, fh mesh.FaceHandle) (r3.Vec, error) {
	f, err := m.Face(fh)
	if err != nil {
		return r3.Vec{}, err
	}
	return f.Center, nil
}

// FaceArea returns the stored face area.
func FaceArea(m *mesh.Mesh, fh mesh.FaceHandle) (float64, error) {
	f, err := m.Face(fh)
	if err != nil {
		return 0, err
	}
	return f.Area, nil
}

// CellVolume returns the stored cell volume.
func CellVolume(m *mesh.Mesh, ch mesh.CellHandle) (float64, error) {
	c, err := m.Cell(ch)
	if err != nil {
		return 0, err
	}
	return c.Volume, nil
}

// Degenerate reports whether a length is numerically zero.
func Degenerate(l float64) bool {
	return math.Abs(l) < 1e-12
}
