package history

import (
	"fmt"
	"strings"

	"github.com/modaltext/core/internal/engine/position"
)

// Kind distinguishes the two edit shapes the history records.
type Kind int

const (
	// Insert records that Text now occupies Range (the post-insertion span).
	Insert Kind = iota
	// Delete records that Text was removed, and Range is what was removed.
	Delete
)

func (k Kind) String() string {
	if k == Insert {
		return "insert"
	}
	return "delete"
}

// Edit is a single recorded change, fully resolved (its text read out of
// the arena, for Insert/Delete records stored internally).
type Edit struct {
	Kind  Kind
	Range position.Range
	Text  string
}

// String renders the edit for debugging.
func (e Edit) String() string {
	return fmt.Sprintf("%s@%s %q", e.Kind, e.Range, e.Text)
}

// invert swaps Insert/Delete, keeping Range and Text as-is: an Insert's
// Range already identifies exactly the span a Delete must remove to undo
// it, and a Delete's Range identifies exactly where an Insert must place
// its Text to restore it.
func invert(e Edit) Edit {
	if e.Kind == Insert {
		return Edit{Kind: Delete, Range: e.Range, Text: e.Text}
	}
	return Edit{Kind: Insert, Range: e.Range, Text: e.Text}
}

// endPosAfterText returns the position immediately after text, were it
// inserted starting at from — the same line-splitting rule content.Content
// uses, expressed purely in terms of positions so history need not depend
// on content.
func endPosAfterText(from position.Pos, text string) position.Pos {
	if !strings.Contains(text, "\n") {
		return position.Pos{Line: from.Line, Column: from.Column + uint32(len(text))}
	}
	parts := strings.Split(text, "\n")
	last := parts[len(parts)-1]
	return position.Pos{Line: from.Line + uint32(len(parts)-1), Column: uint32(len(last))}
}
