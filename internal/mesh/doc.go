// Package mesh implements the half-edge store for polyhedral cell tissues.
//
// The store owns four element arenas: vertices, half-edges, faces and cells.
// Elements refer to each other through typed handles (index plus generation
// counter) rather than pointers, so a stale handle held across a deletion is
// detected instead of silently resolving to a recycled element.
//
// ARCHITECTURE:
//
// Arena slots are never reused while the mesh is live. Deleting an element
// tombstones its slot and bumps the slot generation; the slot index is only
// reclaimed by an explicit Compact call, which rebuilds the arenas and
// remaps every cross-reference. Callers that hold handle sets (candidate
// scans, journals) decide when compaction is safe.
//
// Connectivity model:
//   - Each half-edge has a source and target vertex, an owning face and an
//     owning cell, and a Next link forming the face's boundary cycle.
//   - Each cell is a closed polyhedron; within one cell's surface every
//     half-edge pairs with a Twin of opposite orientation in the adjacent
//     face of the same cell.
//   - A face shared by two cells in bulk tissue appears once per cell, as
//     two opposite-oriented copies.
//
// Derived attributes (edge lengths, face centers and areas, sub-volumes,
// cell volumes) are stored on the elements but are only written by the
// geometry evaluator; the store itself never computes them.
package mesh
