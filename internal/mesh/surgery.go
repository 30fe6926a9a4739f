package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Low-level surgery primitives. These maintain arena bookkeeping only; the
// transition engine is responsible for leaving the connectivity invariants
// intact at its transaction boundaries.

// AddVertex allocates a vertex at pos.
func (m *Mesh) AddVertex(pos r3.Vec) VertexHandle {
	idx, gen := m.verts.alloc(Vertex{Pos: pos})
	return VertexHandle{Index: idx, Gen: gen}
}

// AddEdge allocates a half-edge with the given endpoints and owners.
// Next and Twin start nil; the caller links them.
func (m *Mesh) AddEdge(srce, trgt VertexHandle, face FaceHandle, cell CellHandle) EdgeHandle {
	idx, gen := m.edges.alloc(HalfEdge{
		Srce: srce,
		Trgt: trgt,
		Face: face,
		Cell: cell,
		Next: NilEdge,
		Twin: NilEdge,
	})
	return EdgeHandle{Index: idx, Gen: gen}
}

// AddFace allocates a face owned by cell, with no boundary yet.
func (m *Mesh) AddFace(cell CellHandle) FaceHandle {
	idx, gen := m.faces.alloc(Face{Edge: NilEdge, Cell: cell})
	return FaceHandle{Index: idx, Gen: gen}
}

// AddCell allocates an empty cell.
func (m *Mesh) AddCell() CellHandle {
	idx, gen := m.cells.alloc(Cell{})
	return CellHandle{Index: idx, Gen: gen}
}

// RemoveVertex tombstones a vertex. The caller must already have relinked
// or removed every half-edge referencing it.
func (m *Mesh) RemoveVertex(h VertexHandle) error {
	if !m.verts.kill(h.Index, h.Gen) {
		return &DanglingReferenceError{Kind: KindVertex, Index: h.Index, Gen: h.Gen}
	}
	return nil
}

// RemoveEdge tombstones a half-edge and clears the Twin backlink if its twin
// is still live.
func (m *Mesh) RemoveEdge(h EdgeHandle) error {
	e, err := m.Edge(h)
	if err != nil {
		return err
	}
	if !e.Twin.IsNil() {
		if tw := m.edges.get(e.Twin.Index, e.Twin.Gen); tw != nil && tw.Twin == h {
			tw.Twin = NilEdge
		}
	}
	m.edges.kill(h.Index, h.Gen)
	return nil
}

// RemoveFace tombstones a face. Its boundary half-edges must be removed or
// reassigned first.
func (m *Mesh) RemoveFace(h FaceHandle) error {
	if !m.faces.kill(h.Index, h.Gen) {
		return &DanglingReferenceError{Kind: KindFace, Index: h.Index, Gen: h.Gen}
	}
	return nil
}

// RemoveCell tombstones a cell.
func (m *Mesh) RemoveCell(h CellHandle) error {
	if !m.cells.kill(h.Index, h.Gen) {
		return &DanglingReferenceError{Kind: KindCell, Index: h.Index, Gen: h.Gen}
	}
	return nil
}

// PurgeFace removes a face together with its entire boundary cycle.
func (m *Mesh) PurgeFace(h FaceHandle) error {
	cycle, err := m.EdgesOfFace(h)
	if err != nil {
		return err
	}
	for _, eh := range cycle {
		if err := m.RemoveEdge(eh); err != nil {
			return err
		}
	}
	return m.RemoveFace(h)
}

// RelinkCycle rewires a face to the given boundary, setting Next links in
// order, the anchor edge and the side count. Every edge must already carry
// the face as owner.
func (m *Mesh) RelinkCycle(h FaceHandle, cycle []EdgeHandle) error {
	f, err := m.Face(h)
	if err != nil {
		return err
	}
	n := len(cycle)
	for i, eh := range cycle {
		e, err := m.Edge(eh)
		if err != nil {
			return err
		}
		e.Face = h
		e.Next = cycle[(i+1)%n]
	}
	f.Edge = cycle[0]
	f.NumSides = n
	return nil
}

// PairTwins links a and b as twins. They must be opposite-oriented copies of
// one geometric edge within the same cell surface.
func (m *Mesh) PairTwins(a, b EdgeHandle) error {
	ea, err := m.Edge(a)
	if err != nil {
		return err
	}
	eb, err := m.Edge(b)
	if err != nil {
		return err
	}
	ea.Twin = b
	eb.Twin = a
	return nil
}

// MirrorFace returns the cross-cell mirror of f: the face, in another cell,
// whose boundary covers the same vertex pairs. In bulk tissue an interface
// face exists once per adjacent cell; on the tissue exterior there is no
// mirror and NilFace is returned.
func (m *Mesh) MirrorFace(h FaceHandle) (FaceHandle, error) {
	cycle, err := m.EdgesOfFace(h)
	if err != nil {
		return NilFace, err
	}
	if len(cycle) == 0 {
		return NilFace, nil
	}
	f, err := m.Face(h)
	if err != nil {
		return NilFace, err
	}
	pairs := make(map[VertexPair]bool, len(cycle))
	for _, eh := range cycle {
		e, err := m.Edge(eh)
		if err != nil {
			return NilFace, err
		}
		pairs[MakeVertexPair(e.Srce, e.Trgt)] = true
	}
	var mirror FaceHandle = NilFace
	m.faces.each(func(idx int32, gen uint32, g *Face) {
		if g.Cell == f.Cell || g.NumSides != len(cycle) || !mirror.IsNil() {
			return
		}
		gh := FaceHandle{Index: idx, Gen: gen}
		gcycle, err := m.EdgesOfFace(gh)
		if err != nil {
			return
		}
		for _, eh := range gcycle {
			e, err := m.Edge(eh)
			if err != nil {
				return
			}
			if !pairs[MakeVertexPair(e.Srce, e.Trgt)] {
				return
			}
		}
		mirror = gh
	})
	return mirror, nil
}
