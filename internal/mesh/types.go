package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Vertex is a point of the tissue. A vertex with no referencing half-edge
// is dead weight and is purged by the transition that orphaned it.
type Vertex struct {
	Pos r3.Vec
}

// HalfEdge is an oriented arc from Srce to Trgt, owned by exactly one face
// and one cell. Next walks the owning face's boundary cycle; Twin is the
// opposite-oriented copy in the adjacent face of the same cell surface.
//
// Vec, Length and SubVol are derived attributes written by the geometry
// evaluator. SubVol is the signed volume of the tetrahedron spanned by the
// edge endpoints, the owning face's center and the owning cell's reference
// point; it must stay non-negative on a valid, non-self-intersecting cell.
type HalfEdge struct {
	Srce VertexHandle
	Trgt VertexHandle
	Face FaceHandle
	Cell CellHandle
	Next EdgeHandle
	Twin EdgeHandle

	Vec    r3.Vec
	Length float64
	SubVol float64
}

// Face is a near-planar polygon bounded by a cyclic sequence of half-edges.
// Edge anchors the cycle; NumSides is its length. A face with NumSides == 3
// is triangular, the precondition for an HI transition.
//
// Center, Normal and Area are derived attributes. Center is the
// length-weighted average of edge midpoints, which is invariant under edge
// subdivision and stable on skew polygons, unlike a plain vertex mean.
type Face struct {
	Edge     EdgeHandle
	Cell     CellHandle
	NumSides int

	Center r3.Vec
	Normal r3.Vec
	Area   float64
}

// Cell is a closed polyhedron of faces. Ref is the reference point used for
// sub-volume tetrahedra (the mean of the cell's face centers); Volume is the
// sum of its half-edges' sub-volumes. Both are derived attributes.
type Cell struct {
	Ref    r3.Vec
	Volume float64
}

// FacePair is an unordered pair of distinct faces, normalized so that A has
// the lower index.
type FacePair struct {
	A FaceHandle
	B FaceHandle
}

// MakeFacePair normalizes the pair ordering.
func MakeFacePair(a, b FaceHandle) FacePair {
	if b.Index < a.Index {
		a, b = b, a
	}
	return FacePair{A: a, B: b}
}

// VertexPair is an unordered pair of vertex indices, the identity of a
// geometric edge. Used as index key by the validity scans.
type VertexPair struct {
	Lo int32
	Hi int32
}

// MakeVertexPair normalizes the pair ordering.
func MakeVertexPair(a, b VertexHandle) VertexPair {
	if b.Index < a.Index {
		a, b = b, a
	}
	return VertexPair{Lo: a.Index, Hi: b.Index}
}
