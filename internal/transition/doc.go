// Package transition implements the two reconnection operations of the
// reversible network reconnection model: the IH transition, collapsing a
// short edge into a vertex, and the HI transition, expanding a collapsed
// triangular face back into an edge.
//
// ARCHITECTURE:
//
// Transactional surgery:
// Every transition either replaces its local patch with a valid new patch
// or leaves the mesh untouched. The engine snapshots the mesh before
// surgery, refuses degenerate targets before mutating, re-runs the geometry
// evaluator after surgery, checks invariants I1-I5, and commits or restores
// the snapshot. No partial mutation is ever observable.
//
// Run collapse:
// Both operations are expressed as one primitive, collapseVertices: a set
// of vertices is merged and every face cycle touching the set is rewritten.
// Maximal runs of merged vertices in a cycle are replaced by one or two
// replacement vertices, chosen per run from the nearest surviving cycle
// neighbors (the witnesses). A run whose witnesses map to two different
// replacements receives a new bridging half-edge between them, which is how
// the HI transition reintroduces the edge that an IH transition removed.
//
// Sequencing:
// Transitions apply one local patch at a time, single-threaded. One
// transition can change neighboring faces' side counts and re-flag or
// un-flag them, so the candidate scan is re-run after each application.
package transition
