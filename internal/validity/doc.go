// Package validity implements the read-only well-posedness scans over a
// tissue mesh: the threshold check (Condition 3), the two non-degeneracy
// conditions on shared edges and faces (Conditions 4(i) and 4(ii)), the
// candidate scan feeding the transition engine, and the per-element
// validity summary.
//
// Every scan is pure: it reads connectivity and derived attributes and
// returns sets of flagged elements, never mutating. Scans must run against
// fresh geometry; comparing thresholds against stale lengths is a
// correctness bug in the caller, not a staleness issue.
//
// Flagged sets are returned in ascending handle order so that repeated
// scans of the same mesh are byte-for-byte reproducible.
package validity
