package mesh

import (
	"errors"
	"fmt"
)

// ElementKind names the arena an element lives in.
type ElementKind string

const (
	KindVertex ElementKind = "vertex"
	KindEdge   ElementKind = "halfedge"
	KindFace   ElementKind = "face"
	KindCell   ElementKind = "cell"
)

// DanglingReferenceError reports an operation given a handle for an element
// that was deleted, never existed, or predates a compaction.
type DanglingReferenceError struct {
	Kind  ElementKind
	Index int32
	Gen   uint32
}

// Error implements the error interface.
func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("DANGLING_REFERENCE: %s %d@%d does not resolve", e.Kind, e.Index, e.Gen)
}

// IsDanglingReference reports whether err is a DanglingReferenceError.
// Uses errors.As to handle wrapped errors.
func IsDanglingReference(err error) bool {
	var de *DanglingReferenceError
	return errors.As(err, &de)
}
