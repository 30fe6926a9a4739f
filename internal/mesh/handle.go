package mesh

import "fmt"

// A handle names an arena slot together with the generation the caller saw.
// A handle resolves only while the slot is live at the same generation, so
// deletions invalidate every outstanding handle to the element.

// VertexHandle identifies a vertex.
type VertexHandle struct {
	Index int32
	Gen   uint32
}

// EdgeHandle identifies a half-edge.
type EdgeHandle struct {
	Index int32
	Gen   uint32
}

// FaceHandle identifies a face.
type FaceHandle struct {
	Index int32
	Gen   uint32
}

// CellHandle identifies a cell.
type CellHandle struct {
	Index int32
	Gen   uint32
}

// Nil handles; the zero slot is a valid element, so "no element" is index -1.
var (
	NilVertex = VertexHandle{Index: -1}
	NilEdge   = EdgeHandle{Index: -1}
	NilFace   = FaceHandle{Index: -1}
	NilCell   = CellHandle{Index: -1}
)

// IsNil reports whether the handle names no vertex.
func (h VertexHandle) IsNil() bool { return h.Index < 0 }

// IsNil reports whether the handle names no half-edge.
func (h EdgeHandle) IsNil() bool { return h.Index < 0 }

// IsNil reports whether the handle names no face.
func (h FaceHandle) IsNil() bool { return h.Index < 0 }

// IsNil reports whether the handle names no cell.
func (h CellHandle) IsNil() bool { return h.Index < 0 }

func (h VertexHandle) String() string { return fmt.Sprintf("v%d@%d", h.Index, h.Gen) }
func (h EdgeHandle) String() string   { return fmt.Sprintf("e%d@%d", h.Index, h.Gen) }
func (h FaceHandle) String() string   { return fmt.Sprintf("f%d@%d", h.Index, h.Gen) }
func (h CellHandle) String() string   { return fmt.Sprintf("c%d@%d", h.Index, h.Gen) }

// Handles marshal to their String form so journaled records stay readable
// and maps keyed by handles can be serialized.

func parseHandle(text []byte, prefix byte) (int32, uint32, error) {
	var idx int32
	var gen uint32
	if _, err := fmt.Sscanf(string(text), string(prefix)+"%d@%d", &idx, &gen); err != nil {
		return 0, 0, fmt.Errorf("malformed %c-handle %q: %w", prefix, text, err)
	}
	return idx, gen, nil
}

// MarshalText implements encoding.TextMarshaler.
func (h VertexHandle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *VertexHandle) UnmarshalText(text []byte) error {
	idx, gen, err := parseHandle(text, 'v')
	if err != nil {
		return err
	}
	h.Index, h.Gen = idx, gen
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (h EdgeHandle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *EdgeHandle) UnmarshalText(text []byte) error {
	idx, gen, err := parseHandle(text, 'e')
	if err != nil {
		return err
	}
	h.Index, h.Gen = idx, gen
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (h FaceHandle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *FaceHandle) UnmarshalText(text []byte) error {
	idx, gen, err := parseHandle(text, 'f')
	if err != nil {
		return err
	}
	h.Index, h.Gen = idx, gen
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (h CellHandle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *CellHandle) UnmarshalText(text []byte) error {
	idx, gen, err := parseHandle(text, 'c')
	if err != nil {
		return err
	}
	h.Index, h.Gen = idx, gen
	return nil
}
