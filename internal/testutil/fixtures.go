// Package testutil provides hand-built tissue fixtures with exactly known
// element counts and geometry, shared by the package tests.
package testutil

import (
	"fmt"

	"github.com/cellmesh/rnrmesh/internal/geometry"
	"github.com/cellmesh/rnrmesh/internal/loader"
	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// UnitCube builds a single cubic cell spanning [0,1]^3: 8 vertices, 6 quad
// faces, 24 half-edges, volume 1. Geometry is refreshed before return.
func UnitCube() *mesh.Mesh {
	b := loader.NewBuilder()
	// Bottom square then top square.
	b.Vertex(0, 0, 0) // 0
	b.Vertex(1, 0, 0) // 1
	b.Vertex(1, 1, 0) // 2
	b.Vertex(0, 1, 0) // 3
	b.Vertex(0, 0, 1) // 4
	b.Vertex(1, 0, 1) // 5
	b.Vertex(1, 1, 1) // 6
	b.Vertex(0, 1, 1) // 7

	_, _, err := b.Cell([][]int{
		{0, 3, 2, 1}, // bottom, -z
		{4, 5, 6, 7}, // top, +z
		{0, 1, 5, 4}, // front, -y
		{1, 2, 6, 5}, // right, +x
		{2, 3, 7, 6}, // back, +y
		{3, 0, 4, 7}, // left, -x
	})
	if err != nil {
		panic(fmt.Sprintf("testutil: unit cube: %v", err))
	}
	m := b.Mesh()
	if err := geometry.UpdateAll(m); err != nil {
		panic(fmt.Sprintf("testutil: unit cube geometry: %v", err))
	}
	return m
}

// TwinPrisms is a two-cell tissue: pentagonal prisms A (x<0) and B (x>0)
// sharing one vertical interface quad in the x=0 plane. The shared ridge
// edge along the top of the interface is short (length 0.6) while every
// other horizontal edge is near unit length, so the ridge is the natural
// reconnection site.
type TwinPrisms struct {
	M *mesh.Mesh

	// Shared vertices: the ridge pair on top and its floor counterparts.
	VA, VB         mesh.VertexHandle
	FloorA, FloorB mesh.VertexHandle

	CellA, CellB mesh.CellHandle

	TopA, TopB         mesh.FaceHandle
	BottomA, BottomB   mesh.FaceHandle
	InterfaceA         mesh.FaceHandle
	InterfaceB         mesh.FaceHandle

	// Ridge is the half-edge VA->VB in TopA.
	Ridge mesh.EdgeHandle
}

// TwinPentagonPrisms builds the twin-prism tissue with the given height.
// Height 1 gives near-unit side edges; a squat height makes the post-IH
// interface triangles uniformly short, which is how the HI scan tests set
// themselves up.
//
// Counts: 16 vertices, 60 half-edges, 14 faces, 2 cells.
func TwinPentagonPrisms(height float64) *TwinPrisms {
	h := height
	b := loader.NewBuilder()

	va := b.Vertex(0, 0.2, h) // 0
	vb := b.Vertex(0, 0.8, h) // 1
	fa := b.Vertex(0, 0.2, 0) // 2
	fb := b.Vertex(0, 0.8, 0) // 3

	a1t := b.Vertex(-1, 0, h)       // 4
	amid := b.Vertex(-1.6, 0.5, h)  // 5
	a2t := b.Vertex(-1, 1, h)       // 6
	a1b := b.Vertex(-1, 0, 0)       // 7
	amidb := b.Vertex(-1.6, 0.5, 0) // 8
	a2b := b.Vertex(-1, 1, 0)       // 9

	c1t := b.Vertex(1, 0, h)       // 10
	cmid := b.Vertex(1.6, 0.5, h)  // 11
	c2t := b.Vertex(1, 1, h)       // 12
	c1b := b.Vertex(1, 0, 0)       // 13
	cmidb := b.Vertex(1.6, 0.5, 0) // 14
	c2b := b.Vertex(1, 1, 0)       // 15

	cellA, facesA, err := b.Cell([][]int{
		{va, vb, a2t, amid, a1t},    // top
		{a1b, amidb, a2b, fb, fa},   // bottom
		{fa, fb, vb, va},            // interface copy
		{fb, a2b, a2t, vb},          // wall at vb
		{a2b, amidb, amid, a2t},     // far wall
		{amidb, a1b, a1t, amid},     // far wall
		{a1b, fa, va, a1t},          // wall at va
	})
	if err != nil {
		panic(fmt.Sprintf("testutil: twin prisms cell A: %v", err))
	}
	cellB, facesB, err := b.Cell([][]int{
		{vb, va, c1t, cmid, c2t},    // top
		{c2b, cmidb, c1b, fa, fb},   // bottom
		{fb, fa, va, vb},            // interface copy
		{fa, c1b, c1t, va},          // wall at va
		{c1b, cmidb, cmid, c1t},     // far wall
		{cmidb, c2b, c2t, cmid},     // far wall
		{c2b, fb, vb, c2t},          // wall at vb
	})
	if err != nil {
		panic(fmt.Sprintf("testutil: twin prisms cell B: %v", err))
	}

	m := b.Mesh()
	if err := geometry.UpdateAll(m); err != nil {
		panic(fmt.Sprintf("testutil: twin prisms geometry: %v", err))
	}

	tp := &TwinPrisms{
		M:          m,
		VA:         b.VertexHandle(va),
		VB:         b.VertexHandle(vb),
		FloorA:     b.VertexHandle(fa),
		FloorB:     b.VertexHandle(fb),
		CellA:      cellA,
		CellB:      cellB,
		TopA:       facesA[0],
		BottomA:    facesA[1],
		InterfaceA: facesA[2],
		TopB:       facesB[0],
		BottomB:    facesB[1],
		InterfaceB: facesB[2],
	}
	tp.Ridge = findEdge(m, tp.TopA, tp.VA, tp.VB)
	return tp
}

// findEdge locates the half-edge src->trgt on the face's boundary.
func findEdge(m *mesh.Mesh, f mesh.FaceHandle, src, trgt mesh.VertexHandle) mesh.EdgeHandle {
	cycle, err := m.EdgesOfFace(f)
	if err != nil {
		panic(fmt.Sprintf("testutil: %v", err))
	}
	for _, eh := range cycle {
		e, err := m.Edge(eh)
		if err != nil {
			panic(fmt.Sprintf("testutil: %v", err))
		}
		if e.Srce == src && e.Trgt == trgt {
			return eh
		}
	}
	panic(fmt.Sprintf("testutil: edge %s->%s not on face %s", src, trgt, f))
}
