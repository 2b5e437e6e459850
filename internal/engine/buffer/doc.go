// Package buffer ties content, cursor history, syntax highlighting, and
// lint/breakpoint tracking into one editable unit. A Buffer owns one
// content.Content plus the derived state that shadows it; a Collection
// owns a reusable set of Buffers addressed by opaque Handle values and
// drains queued edits out to each Buffer's derived state.
package buffer
