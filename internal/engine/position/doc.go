// Package position implements the editor's coordinate system: byte-indexed
// line/column positions and ranges, plus the two shift functions every
// other package uses to keep stored positions valid across edits.
//
// A Pos never indexes a byte; it indexes a boundary between bytes. Ranges
// always store their endpoints in ascending order. Shifting a Pos against
// an edit's Range is the single source of truth for position arithmetic —
// every package that stores positions (cursor, lint, history, buffer) calls
// Insert/Delete here rather than re-deriving the shift itself.
package position
