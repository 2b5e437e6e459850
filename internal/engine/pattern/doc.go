// Package pattern implements a small bytecode pattern matcher: a compact
// grammar for character classes, groups, sequences, repeats and an
// end-of-input anchor, compiled to a flat vector of jump-threaded ops and
// executed by a tight dispatch loop. Matching can pause at the end of
// available input and resume later against the next chunk, which is what
// lets the syntax highlighter feed a pattern one line at a time without
// re-scanning from the start of a multi-line construct.
package pattern
