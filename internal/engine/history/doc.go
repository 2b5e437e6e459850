// Package history implements the buffer's undo/redo log: an append-only
// sequence of edits plus a vector of group ranges over that log, where
// adjacent edits belonging to the same "commit" are merged into one record
// at the moment they're recorded rather than replayed one at a time.
//
// Typing N characters in a row and then undoing once removes all N; this
// falls out of the merge table in AddEdit rather than any special-casing
// at the call site. Edit text is kept in a single growable arena; merges
// never splice into the arena's interior, only append and repoint, so only
// a merged edit's own Range (and, for other group members after it, theirs
// too) ever needs adjusting — never their arena spans.
package history
