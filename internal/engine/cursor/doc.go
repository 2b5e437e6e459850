// Package cursor implements the editor's multi-cursor collection: a bounded
// set of (anchor, position) pairs that self-normalizes back to the
// invariants of a well-formed selection set every time a mutation session
// ends.
//
// Cursors are never indexed for writing directly. A MutGuard, obtained via
// Collection.MutGuard, exposes the mutating operations and runs
// normalization exactly once when released — sorting by range, merging
// overlapping cursors, and relocating the main cursor index. Callers may
// freely build intermediate overlapping or unsorted states during a
// session; only the state at guard release is guaranteed to satisfy the
// invariants.
package cursor
