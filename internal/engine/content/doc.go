// Package content implements the buffer's line-indexed text storage: a
// vector of lines paired with a cached display-length vector, plus the
// splitting/merging operations that keep both in sync across edits.
//
// Content never stores positions outside of itself — insertion and
// deletion return the position.Range the edit now occupies so callers
// (cursor, history, lint) can shift their own state with
// position.Insert/position.Delete.
package content
