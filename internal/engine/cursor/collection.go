package cursor

import (
	"fmt"
	"sort"

	"github.com/modaltext/core/internal/engine/position"
)

// MaxCursors is the largest number of cursors a Collection may hold.
const MaxCursors = 255

// Collection holds a bounded, self-normalizing set of cursors, one of which
// is designated main. Direct indexing is read-only; mutation goes through
// MutGuard.
type Collection struct {
	cursors      []Cursor
	mainIndex    int
	savedColumns []uint32
}

// NewCollection returns a collection with a single default cursor at the
// origin, designated main.
func NewCollection() *Collection {
	return &Collection{cursors: []Cursor{New(position.Origin)}}
}

// Len returns the number of cursors.
func (c *Collection) Len() int { return len(c.cursors) }

// At returns a copy of the cursor at index i.
func (c *Collection) At(i int) (Cursor, error) {
	if i < 0 || i >= len(c.cursors) {
		return Cursor{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return c.cursors[i], nil
}

// All returns a copy of every cursor, in sorted order.
func (c *Collection) All() []Cursor {
	out := make([]Cursor, len(c.cursors))
	copy(out, c.cursors)
	return out
}

// MainIndex returns the index of the main cursor.
func (c *Collection) MainIndex() int { return c.mainIndex }

// Main returns a copy of the main cursor.
func (c *Collection) Main() Cursor { return c.cursors[c.mainIndex] }

// SavedColumnByteIndices returns the columns cursors had before the most
// recent vertical motion, or nil if none were saved.
func (c *Collection) SavedColumnByteIndices() []uint32 {
	if c.savedColumns == nil {
		return nil
	}
	out := make([]uint32, len(c.savedColumns))
	copy(out, c.savedColumns)
	return out
}

// Insert shifts every cursor across an edit's occupied range.
func (c *Collection) Insert(e position.Range) {
	for i := range c.cursors {
		c.cursors[i] = c.cursors[i].Insert(e)
	}
}

// Delete shifts every cursor across a deleted range.
func (c *Collection) Delete(e position.Range) {
	for i := range c.cursors {
		c.cursors[i] = c.cursors[i].Delete(e)
	}
}

// MutGuard exposes mutating operations on a Collection. It runs
// normalization exactly once, when Release is called.
type MutGuard struct {
	c        *Collection
	touched  bool // SaveColumnByteIndices was called this session
	released bool
}

// MutGuard opens a mutation session on c.
func (c *Collection) MutGuard() *MutGuard {
	return &MutGuard{c: c}
}

func (g *MutGuard) checkReleased() {
	if g.released {
		panic(ErrGuardReleased)
	}
}

// Len returns the current number of cursors.
func (g *MutGuard) Len() int {
	g.checkReleased()
	return len(g.c.cursors)
}

// At returns a copy of the cursor at index i.
func (g *MutGuard) At(i int) (Cursor, error) {
	g.checkReleased()
	if i < 0 || i >= len(g.c.cursors) {
		return Cursor{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return g.c.cursors[i], nil
}

// Set overwrites the cursor at index i.
func (g *MutGuard) Set(i int, cur Cursor) error {
	g.checkReleased()
	if i < 0 || i >= len(g.c.cursors) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	g.c.cursors[i] = cur
	return nil
}

// Add appends a new cursor, failing once the collection is at MaxCursors.
func (g *MutGuard) Add(cur Cursor) error {
	g.checkReleased()
	if len(g.c.cursors) >= MaxCursors {
		return ErrTooManyCursors
	}
	g.c.cursors = append(g.c.cursors, cur)
	return nil
}

// RemoveRange removes cursors at indices [from, to).
func (g *MutGuard) RemoveRange(from, to int) error {
	g.checkReleased()
	if from < 0 || to > len(g.c.cursors) || from > to {
		return fmt.Errorf("%w: [%d,%d)", ErrIndexOutOfRange, from, to)
	}
	g.c.cursors = append(g.c.cursors[:from], g.c.cursors[to:]...)
	return nil
}

// Clear removes every cursor; Release will re-insert the default origin
// cursor per the normalization algorithm.
func (g *MutGuard) Clear() {
	g.checkReleased()
	g.c.cursors = g.c.cursors[:0]
}

// SaveColumnByteIndices records each cursor's current column as its saved
// column byte index, for restoring after vertical motion through shorter
// lines. The saved vector survives Release only if this was called during
// the session.
func (g *MutGuard) SaveColumnByteIndices() {
	g.checkReleased()
	g.touched = true
	saved := make([]uint32, len(g.c.cursors))
	for i, cur := range g.c.cursors {
		saved[i] = cur.Position.Column
	}
	g.c.savedColumns = saved
}

// SetMainCursorIndex designates the cursor at index i as main.
func (g *MutGuard) SetMainCursorIndex(i int) error {
	g.checkReleased()
	if i < 0 || i >= len(g.c.cursors) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	g.c.mainIndex = i
	return nil
}

// MainCursor returns a copy of the current main cursor.
func (g *MutGuard) MainCursor() (Cursor, error) {
	g.checkReleased()
	return g.At(g.c.mainIndex)
}

// rangeContainsForMerge reports whether p falls within r using an
// inclusive test on both ends (r.From <= p <= r.To), so two cursors that
// merely touch (one's From equal to the other's To) still fuse, matching
// the ground truth's `range.from <= other_range.from && other_range.from
// <= range.to`.
func rangeContainsForMerge(r position.Range, p position.Pos) bool {
	return !p.Before(r.From) && !p.After(r.To)
}

// Release runs the normalization algorithm and ends the session. Calling
// Release more than once is a no-op.
func (g *MutGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	c := g.c

	// 1. An empty collection gets a default origin cursor, designated main.
	if len(c.cursors) == 0 {
		c.cursors = []Cursor{New(position.Origin)}
		c.mainIndex = 0
		if !g.touched {
			c.savedColumns = nil
		}
		return
	}

	prevMainPosition := c.cursors[c.mainIndex].Position

	// 2. Sort by range.from.
	sort.SliceStable(c.cursors, func(i, j int) bool {
		return c.cursors[i].Range().From.Before(c.cursors[j].Range().From)
	})

	// 3. Relocate main by binary-searching for its previous position;
	// fall back to 0 on a miss.
	newMain := sort.Search(len(c.cursors), func(i int) bool {
		return !c.cursors[i].Position.Before(prevMainPosition)
	})
	if newMain >= len(c.cursors) || c.cursors[newMain].Position != prevMainPosition {
		newMain = 0
	}
	c.mainIndex = newMain

	// 4. Merge overlapping cursors, scanning each i against descending j > i.
	for i := 0; i < len(c.cursors); i++ {
		for j := len(c.cursors) - 1; j > i; j-- {
			ri, rj := c.cursors[i].Range(), c.cursors[j].Range()
			if !rangeContainsForMerge(ri, rj.From) {
				continue
			}
			to := ri.To
			if rj.To.After(to) {
				to = rj.To
			}
			merged := Cursor{Anchor: ri.From, Position: to}
			if !c.cursors[i].IsForward() {
				merged = Cursor{Anchor: to, Position: ri.From}
			}
			c.cursors[i] = merged
			c.cursors = append(c.cursors[:j], c.cursors[j+1:]...)
			if j <= c.mainIndex {
				c.mainIndex--
			}
		}
	}

	// 5. Saved column byte indices persist only if touched this session.
	if !g.touched {
		c.savedColumns = nil
	}
}
