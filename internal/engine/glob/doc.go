// Package glob compiles and evaluates path globs: "?", "*", "**", "[...]"
// and "[!...]" ranges, and "{a,b,c}" alternation. It shares the pattern
// engine's op-vector shape (a flat instruction list plus a side byte
// buffer) but its own op set is path-specific: a separator-aware
// ManyComponents op for "**", and a SubPatternGroup/SubPattern pair for
// alternation, evaluated with an explicit continuation stack rather than
// recursion-through-jumps.
package glob
