// Package highlight turns buffer lines into token streams using the
// pattern engine, and keeps those streams in sync as the buffer is
// edited. A Syntax bundles the rules for one file type; a
// HighlightedBuffer layers per-line parse state over a content.Content
// and exposes a bounded, resumable re-highlight call so the core's
// caller can spread the work across multiple time slices.
package highlight
