package loader

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/cellmesh/rnrmesh/internal/mesh"
)

// Builder assembles a tissue mesh cell by cell. Vertices are registered
// once and shared between cells; each cell is given as a set of
// outward-wound vertex rings, one per face. The builder creates the
// half-edge cycles and pairs twins within each cell surface.
type Builder struct {
	m     *mesh.Mesh
	verts []mesh.VertexHandle
}

// NewBuilder returns a builder over an empty mesh.
func NewBuilder() *Builder {
	return &Builder{m: mesh.New()}
}

// Vertex registers a vertex and returns its local id, the index used in
// face rings.
func (b *Builder) Vertex(x, y, z float64) int {
	b.verts = append(b.verts, b.m.AddVertex(r3.Vec{X: x, Y: y, Z: z}))
	return len(b.verts) - 1
}

// VertexHandle resolves a local id to its mesh handle.
func (b *Builder) VertexHandle(id int) mesh.VertexHandle {
	return b.verts[id]
}

// Cell adds a closed polyhedron. Each ring lists local vertex ids in
// outward winding (counter-clockwise seen from outside the cell). Every
// geometric edge must appear exactly twice across the cell's rings, in
// opposite orientations; the two copies become twins.
func (b *Builder) Cell(rings [][]int) (mesh.CellHandle, []mesh.FaceHandle, error) {
	ch := b.m.AddCell()
	faces := make([]mesh.FaceHandle, 0, len(rings))
	open := make(map[mesh.VertexPair]mesh.EdgeHandle)

	for ri, ring := range rings {
		if len(ring) < 3 {
			return mesh.NilCell, nil, fmt.Errorf("cell %s face %d: ring has %d vertices, need at least 3", ch, ri, len(ring))
		}
		for _, id := range ring {
			if id < 0 || id >= len(b.verts) {
				return mesh.NilCell, nil, fmt.Errorf("cell %s face %d: vertex id %d out of range", ch, ri, id)
			}
		}
		fh := b.m.AddFace(ch)
		cycle := make([]mesh.EdgeHandle, 0, len(ring))
		for i, id := range ring {
			src := b.verts[id]
			trgt := b.verts[ring[(i+1)%len(ring)]]
			if src == trgt {
				return mesh.NilCell, nil, fmt.Errorf("cell %s face %d: degenerate edge at vertex %d", ch, ri, id)
			}
			eh := b.m.AddEdge(src, trgt, fh, ch)
			key := mesh.MakeVertexPair(src, trgt)
			if other, ok := open[key]; ok {
				o, err := b.m.Edge(other)
				if err != nil {
					return mesh.NilCell, nil, err
				}
				if o.Srce != trgt || o.Trgt != src {
					return mesh.NilCell, nil, fmt.Errorf("cell %s face %d: edge %d-%d repeated with same orientation", ch, ri, key.Lo, key.Hi)
				}
				if err := b.m.PairTwins(eh, other); err != nil {
					return mesh.NilCell, nil, err
				}
				delete(open, key)
			} else {
				open[key] = eh
			}
			cycle = append(cycle, eh)
		}
		if err := b.m.RelinkCycle(fh, cycle); err != nil {
			return mesh.NilCell, nil, err
		}
		faces = append(faces, fh)
	}

	if len(open) > 0 {
		return mesh.NilCell, nil, fmt.Errorf("cell %s surface is not closed: %d unpaired edges", ch, len(open))
	}
	return ch, faces, nil
}

// Mesh returns the built mesh.
func (b *Builder) Mesh() *mesh.Mesh { return b.m }
