package cursor

import (
	"fmt"

	"github.com/modaltext/core/internal/engine/position"
)

// Cursor is a pair (anchor, position). The selection is the range between
// them; Position is the end that moves on keyboard navigation and is where
// text input appears.
type Cursor struct {
	Anchor   position.Pos
	Position position.Pos
}

// New returns a cursor with no selection, anchored at p.
func New(p position.Pos) Cursor {
	return Cursor{Anchor: p, Position: p}
}

// HasSelection reports whether the cursor's anchor and position differ.
func (c Cursor) HasSelection() bool { return c.Anchor != c.Position }

// Range returns the ordered range between anchor and position.
func (c Cursor) Range() position.Range { return position.NewRange(c.Anchor, c.Position) }

// IsForward reports whether Position is at or after Anchor.
func (c Cursor) IsForward() bool { return !c.Position.Before(c.Anchor) }

// MoveTo collapses the cursor to p with no selection.
func (c Cursor) MoveTo(p position.Pos) Cursor { return Cursor{Anchor: p, Position: p} }

// ExtendTo moves Position to p, keeping Anchor fixed, growing or shrinking
// the selection.
func (c Cursor) ExtendTo(p position.Pos) Cursor { return Cursor{Anchor: c.Anchor, Position: p} }

// Collapse drops the selection, keeping Position as the sole point.
func (c Cursor) Collapse() Cursor { return Cursor{Anchor: c.Position, Position: c.Position} }

// Insert shifts both endpoints across an edit's occupied range, per
// position.Insert.
func (c Cursor) Insert(e position.Range) Cursor {
	return Cursor{Anchor: position.Insert(c.Anchor, e), Position: position.Insert(c.Position, e)}
}

// Delete shifts both endpoints across a deleted range, per position.Delete.
func (c Cursor) Delete(e position.Range) Cursor {
	return Cursor{Anchor: position.Delete(c.Anchor, e), Position: position.Delete(c.Position, e)}
}

// String renders the cursor as "anchor->position".
func (c Cursor) String() string { return fmt.Sprintf("%s->%s", c.Anchor, c.Position) }
