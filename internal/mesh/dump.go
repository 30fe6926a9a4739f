package mesh

import (
	"fmt"
	"strings"
)

// Dump renders the connectivity as canonical text: one line per live
// element, in ascending index order, positions with %.6g. Derived floats
// are excluded so the dump is a pure function of connectivity and
// positions, suitable for golden-file comparison.
func (m *Mesh) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "vertices=%d halfedges=%d faces=%d cells=%d\n",
		m.verts.count, m.edges.count, m.faces.count, m.cells.count)

	m.verts.each(func(idx int32, _ uint32, v *Vertex) {
		fmt.Fprintf(&b, "v%d: (%.6g, %.6g, %.6g)\n", idx, v.Pos.X, v.Pos.Y, v.Pos.Z)
	})
	m.edges.each(func(idx int32, _ uint32, e *HalfEdge) {
		twin := "-"
		if !e.Twin.IsNil() {
			twin = fmt.Sprintf("e%d", e.Twin.Index)
		}
		fmt.Fprintf(&b, "e%d: v%d->v%d face=f%d cell=c%d next=e%d twin=%s\n",
			idx, e.Srce.Index, e.Trgt.Index, e.Face.Index, e.Cell.Index, e.Next.Index, twin)
	})
	m.faces.each(func(idx int32, gen uint32, f *Face) {
		fmt.Fprintf(&b, "f%d: cell=c%d sides=%d cycle=[", idx, f.Cell.Index, f.NumSides)
		cycle, err := m.EdgesOfFace(FaceHandle{Index: idx, Gen: gen})
		if err == nil {
			for i, eh := range cycle {
				if i > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "e%d", eh.Index)
			}
		} else {
			b.WriteString("broken")
		}
		b.WriteString("]\n")
	})
	m.cells.each(func(idx int32, gen uint32, _ *Cell) {
		fmt.Fprintf(&b, "c%d: faces=[", idx)
		for i, fh := range m.FacesOfCell(CellHandle{Index: idx, Gen: gen}) {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "f%d", fh.Index)
		}
		b.WriteString("]\n")
	})
	return b.String()
}
