package mesh

// Clone returns a deep copy of the mesh, preserving slot indices,
// generations and tombstones, so every handle valid on the original is
// valid on the copy. The transition engine snapshots the mesh this way
// before surgery and swaps the snapshot back on rollback.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		verts: arena[Vertex]{slots: make([]slot[Vertex], len(m.verts.slots)), count: m.verts.count, gen: m.verts.gen},
		edges: arena[HalfEdge]{slots: make([]slot[HalfEdge], len(m.edges.slots)), count: m.edges.count, gen: m.edges.gen},
		faces: arena[Face]{slots: make([]slot[Face], len(m.faces.slots)), count: m.faces.count, gen: m.faces.gen},
		cells: arena[Cell]{slots: make([]slot[Cell], len(m.cells.slots)), count: m.cells.count, gen: m.cells.gen},
	}
	copy(c.verts.slots, m.verts.slots)
	copy(c.edges.slots, m.edges.slots)
	copy(c.faces.slots, m.faces.slots)
	copy(c.cells.slots, m.cells.slots)
	return c
}

// Restore overwrites the mesh in place with the snapshot's state. Handles
// resolved against the snapshot resolve identically afterwards.
func (m *Mesh) Restore(snapshot *Mesh) {
	*m = *snapshot.Clone()
}
