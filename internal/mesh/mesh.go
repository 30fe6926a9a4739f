package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Mesh owns the four element arenas and their relational indices.
//
// Mutation discipline: the mesh is a single shared mutable structure and all
// mutation is single-threaded. Element pointers returned by accessors are
// valid until the next Add* call on the same element kind (arena growth may
// move slots); surgery code re-resolves handles after allocating.
type Mesh struct {
	verts arena[Vertex]
	edges arena[HalfEdge]
	faces arena[Face]
	cells arena[Cell]
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// Counts.

// NumVertices returns the live vertex count.
func (m *Mesh) NumVertices() int { return m.verts.count }

// NumEdges returns the live half-edge count.
func (m *Mesh) NumEdges() int { return m.edges.count }

// NumFaces returns the live face count.
func (m *Mesh) NumFaces() int { return m.faces.count }

// NumCells returns the live cell count.
func (m *Mesh) NumCells() int { return m.cells.count }

// Checked accessors. A stale or out-of-range handle surfaces a
// DanglingReferenceError; it is never silently ignored.

// Vertex resolves a vertex handle.
func (m *Mesh) Vertex(h VertexHandle) (*Vertex, error) {
	if v := m.verts.get(h.Index, h.Gen); v != nil {
		return v, nil
	}
	return nil, &DanglingReferenceError{Kind: KindVertex, Index: h.Index, Gen: h.Gen}
}

// Edge resolves a half-edge handle.
func (m *Mesh) Edge(h EdgeHandle) (*HalfEdge, error) {
	if e := m.edges.get(h.Index, h.Gen); e != nil {
		return e, nil
	}
	return nil, &DanglingReferenceError{Kind: KindEdge, Index: h.Index, Gen: h.Gen}
}

// Face resolves a face handle.
func (m *Mesh) Face(h FaceHandle) (*Face, error) {
	if f := m.faces.get(h.Index, h.Gen); f != nil {
		return f, nil
	}
	return nil, &DanglingReferenceError{Kind: KindFace, Index: h.Index, Gen: h.Gen}
}

// Cell resolves a cell handle.
func (m *Mesh) Cell(h CellHandle) (*Cell, error) {
	if c := m.cells.get(h.Index, h.Gen); c != nil {
		return c, nil
	}
	return nil, &DanglingReferenceError{Kind: KindCell, Index: h.Index, Gen: h.Gen}
}

// Alive reports whether a handle still resolves, without surfacing an error.

// VertexAlive reports whether h resolves.
func (m *Mesh) VertexAlive(h VertexHandle) bool { return m.verts.get(h.Index, h.Gen) != nil }

// EdgeAlive reports whether h resolves.
func (m *Mesh) EdgeAlive(h EdgeHandle) bool { return m.edges.get(h.Index, h.Gen) != nil }

// FaceAlive reports whether h resolves.
func (m *Mesh) FaceAlive(h FaceHandle) bool { return m.faces.get(h.Index, h.Gen) != nil }

// CellAlive reports whether h resolves.
func (m *Mesh) CellAlive(h CellHandle) bool { return m.cells.get(h.Index, h.Gen) != nil }

// Handle enumeration, always in ascending index order so every scan that
// derives candidate sets or summaries is deterministic.

// Vertices returns the live vertex handles.
func (m *Mesh) Vertices() []VertexHandle {
	hs := make([]VertexHandle, 0, m.verts.count)
	m.verts.each(func(idx int32, gen uint32, _ *Vertex) {
		hs = append(hs, VertexHandle{Index: idx, Gen: gen})
	})
	return hs
}

// Edges returns the live half-edge handles.
func (m *Mesh) Edges() []EdgeHandle {
	hs := make([]EdgeHandle, 0, m.edges.count)
	m.edges.each(func(idx int32, gen uint32, _ *HalfEdge) {
		hs = append(hs, EdgeHandle{Index: idx, Gen: gen})
	})
	return hs
}

// Faces returns the live face handles.
func (m *Mesh) Faces() []FaceHandle {
	hs := make([]FaceHandle, 0, m.faces.count)
	m.faces.each(func(idx int32, gen uint32, _ *Face) {
		hs = append(hs, FaceHandle{Index: idx, Gen: gen})
	})
	return hs
}

// Cells returns the live cell handles.
func (m *Mesh) Cells() []CellHandle {
	hs := make([]CellHandle, 0, m.cells.count)
	m.cells.each(func(idx int32, gen uint32, _ *Cell) {
		hs = append(hs, CellHandle{Index: idx, Gen: gen})
	})
	return hs
}

// Column queries, aligned with the corresponding handle enumeration.

// EdgeLengths returns the lengths column, aligned with Edges().
func (m *Mesh) EdgeLengths() []float64 {
	out := make([]float64, 0, m.edges.count)
	m.edges.each(func(_ int32, _ uint32, e *HalfEdge) {
		out = append(out, e.Length)
	})
	return out
}

// FaceSides returns the side-count column, aligned with Faces().
func (m *Mesh) FaceSides() []int {
	out := make([]int, 0, m.faces.count)
	m.faces.each(func(_ int32, _ uint32, f *Face) {
		out = append(out, f.NumSides)
	})
	return out
}

// CellVolumes returns the volume column, aligned with Cells().
func (m *Mesh) CellVolumes() []float64 {
	out := make([]float64, 0, m.cells.count)
	m.cells.each(func(_ int32, _ uint32, c *Cell) {
		out = append(out, c.Volume)
	})
	return out
}

// MeanEdgeLength returns the mean length over live half-edges, the
// representative length scale for the threshold well-posedness check.
func (m *Mesh) MeanEdgeLength() float64 {
	if m.edges.count == 0 {
		return 0
	}
	var sum float64
	m.edges.each(func(_ int32, _ uint32, e *HalfEdge) {
		sum += e.Length
	})
	return sum / float64(m.edges.count)
}

// EdgesOfFace returns the boundary cycle of f in Next order, starting at the
// face's anchor edge. The walk is bounded by NumSides; a cycle that fails to
// close within that budget is reported as broken by the invariant checks,
// not here.
func (m *Mesh) EdgesOfFace(h FaceHandle) ([]EdgeHandle, error) {
	f, err := m.Face(h)
	if err != nil {
		return nil, err
	}
	out := make([]EdgeHandle, 0, f.NumSides)
	eh := f.Edge
	for i := 0; i < f.NumSides; i++ {
		e, err := m.Edge(eh)
		if err != nil {
			return nil, err
		}
		out = append(out, eh)
		eh = e.Next
	}
	return out, nil
}

// FacesOfCell returns the faces owned by the cell, in index order.
func (m *Mesh) FacesOfCell(h CellHandle) []FaceHandle {
	var out []FaceHandle
	m.faces.each(func(idx int32, gen uint32, f *Face) {
		if f.Cell == h {
			out = append(out, FaceHandle{Index: idx, Gen: gen})
		}
	})
	return out
}

// EdgesOfCell returns the half-edges owned by the cell, in index order.
func (m *Mesh) EdgesOfCell(h CellHandle) []EdgeHandle {
	var out []EdgeHandle
	m.edges.each(func(idx int32, gen uint32, e *HalfEdge) {
		if e.Cell == h {
			out = append(out, EdgeHandle{Index: idx, Gen: gen})
		}
	})
	return out
}

// EdgesAt returns every half-edge that references v as source or target.
func (m *Mesh) EdgesAt(v VertexHandle) []EdgeHandle {
	var out []EdgeHandle
	m.edges.each(func(idx int32, gen uint32, e *HalfEdge) {
		if e.Srce == v || e.Trgt == v {
			out = append(out, EdgeHandle{Index: idx, Gen: gen})
		}
	})
	return out
}

// Position returns the position of a vertex handle.
func (m *Mesh) Position(h VertexHandle) (r3.Vec, error) {
	v, err := m.Vertex(h)
	if err != nil {
		return r3.Vec{}, err
	}
	return v.Pos, nil
}
