// Package loader is the boundary to the mesh-construction collaborator:
// it turns tissue dataset files into mesh.Mesh values and loads the scan
// configuration.
//
// Datasets are YAML tables of vertices and cells, where each cell lists its
// faces as outward-wound vertex rings. Files are validated against an
// embedded CUE schema before any mesh is built, so structural mistakes are
// reported with positions instead of surfacing later as invariant
// violations.
//
// The Builder is the programmatic face of the same collaborator; fixtures
// and datasets both go through it, so twin pairing and closed-surface
// checking live in one place.
package loader
