package transition

import "github.com/cellmesh/rnrmesh/internal/mesh"

// Kind names a transition operation.
type Kind string

const (
	KindIH Kind = "IH"
	KindHI Kind = "HI"
)

// Result records the local patch replacement performed by a committed
// transition: the elements created and purged, and the faces whose side
// counts changed. Journals persist results; tests assert against them.
type Result struct {
	Kind   Kind
	Target string // handle string of the edge (IH) or face (HI)

	NewVertices     []mesh.VertexHandle
	NewEdges        []mesh.EdgeHandle
	RemovedVertices []mesh.VertexHandle
	RemovedEdges    []mesh.EdgeHandle
	RemovedFaces    []mesh.FaceHandle

	// ResizedFaces maps each surviving rewritten face to its new side count.
	ResizedFaces map[mesh.FaceHandle]int
}
