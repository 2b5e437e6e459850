// Package lint tracks position-bearing annotations — diagnostics from an
// external linter process and user-set breakpoints — that must shift
// along with the buffer's text exactly as cursors do.
package lint
