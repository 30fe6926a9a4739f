package mesh

// CompactResult maps pre-compaction handles to their post-compaction
// equivalents. Handles absent from a map were dead at compaction time.
type CompactResult struct {
	Vertices map[VertexHandle]VertexHandle
	Edges    map[EdgeHandle]EdgeHandle
	Faces    map[FaceHandle]FaceHandle
	Cells    map[CellHandle]CellHandle
}

// Compact rebuilds the arenas without tombstoned slots and remaps every
// cross-reference. All outstanding handles are invalidated; callers holding
// handle sets translate them through the returned maps. Rebuilt slots start
// one generation above the highest the old arena ever issued, so a stale
// handle whose index lands on a shifted survivor misses instead of aliasing
// it. Compaction is the only point at which slot indices are reused, which
// is why it is caller controlled rather than implicit.
func (m *Mesh) Compact() CompactResult {
	res := CompactResult{
		Vertices: make(map[VertexHandle]VertexHandle, m.verts.count),
		Edges:    make(map[EdgeHandle]EdgeHandle, m.edges.count),
		Faces:    make(map[FaceHandle]FaceHandle, m.faces.count),
		Cells:    make(map[CellHandle]CellHandle, m.cells.count),
	}

	nv := arena[Vertex]{gen: m.verts.maxGen() + 1}
	m.verts.each(func(idx int32, gen uint32, v *Vertex) {
		ni, ng := nv.alloc(*v)
		res.Vertices[VertexHandle{Index: idx, Gen: gen}] = VertexHandle{Index: ni, Gen: ng}
	})
	ne := arena[HalfEdge]{gen: m.edges.maxGen() + 1}
	m.edges.each(func(idx int32, gen uint32, e *HalfEdge) {
		ni, ng := ne.alloc(*e)
		res.Edges[EdgeHandle{Index: idx, Gen: gen}] = EdgeHandle{Index: ni, Gen: ng}
	})
	nf := arena[Face]{gen: m.faces.maxGen() + 1}
	m.faces.each(func(idx int32, gen uint32, f *Face) {
		ni, ng := nf.alloc(*f)
		res.Faces[FaceHandle{Index: idx, Gen: gen}] = FaceHandle{Index: ni, Gen: ng}
	})
	nc := arena[Cell]{gen: m.cells.maxGen() + 1}
	m.cells.each(func(idx int32, gen uint32, c *Cell) {
		ni, ng := nc.alloc(*c)
		res.Cells[CellHandle{Index: idx, Gen: gen}] = CellHandle{Index: ni, Gen: ng}
	})

	mapV := func(h VertexHandle) VertexHandle {
		if h.IsNil() {
			return NilVertex
		}
		return res.Vertices[h]
	}
	mapE := func(h EdgeHandle) EdgeHandle {
		if h.IsNil() {
			return NilEdge
		}
		if nh, ok := res.Edges[h]; ok {
			return nh
		}
		return NilEdge
	}
	mapF := func(h FaceHandle) FaceHandle {
		if h.IsNil() {
			return NilFace
		}
		return res.Faces[h]
	}
	mapC := func(h CellHandle) CellHandle {
		if h.IsNil() {
			return NilCell
		}
		return res.Cells[h]
	}

	ne.each(func(_ int32, _ uint32, e *HalfEdge) {
		e.Srce = mapV(e.Srce)
		e.Trgt = mapV(e.Trgt)
		e.Face = mapF(e.Face)
		e.Cell = mapC(e.Cell)
		e.Next = mapE(e.Next)
		e.Twin = mapE(e.Twin)
	})
	nf.each(func(_ int32, _ uint32, f *Face) {
		f.Edge = mapE(f.Edge)
		f.Cell = mapC(f.Cell)
	})

	m.verts = nv
	m.edges = ne
	m.faces = nf
	m.cells = nc
	return res
}
