// Package geometry recomputes the derived attributes of a tissue mesh:
// edge vectors and lengths, face centers, normals and areas, cell reference
// points, per-half-edge sub-volumes and cell volumes.
//
// The evaluator is purely functional over connectivity: it writes only
// derived-attribute storage and never touches links. Running it twice in a
// row without an intervening mutation produces identical values. It must be
// re-run after every transition before any derived value is trusted; the
// transition engine does this itself before committing.
package geometry
