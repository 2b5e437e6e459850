package buffer

import (
	"github.com/modaltext/core/internal/engine/event"
	"github.com/modaltext/core/internal/engine/highlight"
	"github.com/modaltext/core/internal/engine/history"
	"github.com/modaltext/core/internal/engine/position"
)

// Handle addresses one Buffer within a Collection. It doubles as the
// event.BufferHandle tag carried on every event that Buffer emits.
type Handle = event.BufferHandle

// Collection owns every Buffer, reusing a dead slot's storage before
// growing: AddNew scans for the first !alive slot, and failing that
// appends a fresh one.
type Collection struct {
	buffers []*Buffer
	insert  []insertProcess
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection { return &Collection{} }

// AddNew returns a live Buffer with the given properties, reusing a
// dead slot if one exists.
func (c *Collection) AddNew(props Properties) (Handle, *Buffer) {
	for i, b := range c.buffers {
		if !b.alive {
			b.reset()
			b.alive = true
			b.Properties = props
			return Handle(i), b
		}
	}
	h := Handle(len(c.buffers))
	b := newBuffer(h)
	b.Properties = props
	c.buffers = append(c.buffers, b)
	return h, b
}

func (c *Collection) slot(h Handle) (*Buffer, bool) {
	i := int(h)
	if i < 0 || i >= len(c.buffers) || !c.buffers[i].alive {
		return nil, false
	}
	return c.buffers[i], true
}

// Get resolves h to its Buffer, or ok=false if h is stale or unknown.
func (c *Collection) Get(h Handle) (*Buffer, bool) { return c.slot(h) }

// FindWithPath returns the handle of the first live buffer whose Path
// equals path.
func (c *Collection) FindWithPath(path string) (Handle, bool) {
	for i, b := range c.buffers {
		if b.alive && b.Path == path {
			return Handle(i), true
		}
	}
	return 0, false
}

// Iter calls fn for every live buffer, in handle order.
func (c *Collection) Iter(fn func(Handle, *Buffer)) {
	for i, b := range c.buffers {
		if b.alive {
			fn(Handle(i), b)
		}
	}
}

// DeferRemove queues h's buffer for removal by emitting a BufferClose
// event; the slot itself is only freed once RemoveNow runs, giving
// observers a chance to react to the close event first.
func (c *Collection) DeferRemove(h Handle, q *event.Queue) {
	if _, ok := c.slot(h); ok {
		q.EnqueueBufferClose(h)
	}
}

// RemoveNow disposes h's slot (clearing its word-database entries first,
// if enabled) and cancels any insert process still targeting it, making
// the slot available to a future AddNew.
func (c *Collection) RemoveNow(h Handle, words WordDatabase) {
	b, ok := c.slot(h)
	if !ok {
		return
	}
	if b.Properties.WordDatabaseEnabled && words != nil {
		for line := uint32(0); line < uint32(b.content.LineCount()); line++ {
			removeWordsOnLine(words, b.content, line)
		}
	}
	b.reset()

	for i := range c.insert {
		if c.insert[i].alive && c.insert[i].buffer == h {
			c.insert[i].alive = false
		}
	}
}

// OnBufferTextInserts propagates each insert range to h's highlighter
// and lint/breakpoint set, and to any insert-process position still
// tracking h, and enqueues BufferBreakpointsChanged on q when a
// breakpoint moved or disappeared.
func (c *Collection) OnBufferTextInserts(h Handle, inserts []position.Range, q *event.Queue) {
	b, ok := c.slot(h)
	if !ok {
		return
	}
	breakpointsChanged := false
	for _, r := range inserts {
		b.highlighted.OnInsert(r)
		if c.lintsApplyInsert(b, r) {
			breakpointsChanged = true
		}
	}
	if breakpointsChanged {
		q.EnqueueBufferBreakpointsChanged(h)
	}

	for i := range c.insert {
		p := &c.insert[i]
		if !p.alive || p.buffer != h {
			continue
		}
		for _, r := range inserts {
			p.pos = position.Insert(p.pos, r)
		}
	}
}

// OnBufferRangeDeletes is the symmetric drain for deleted ranges.
func (c *Collection) OnBufferRangeDeletes(h Handle, deletes []position.Range, q *event.Queue) {
	b, ok := c.slot(h)
	if !ok {
		return
	}
	breakpointsChanged := false
	for _, r := range deletes {
		b.highlighted.OnDelete(r)
		if c.lintsApplyDelete(b, r) {
			breakpointsChanged = true
		}
	}
	if breakpointsChanged {
		q.EnqueueBufferBreakpointsChanged(h)
	}

	for i := range c.insert {
		p := &c.insert[i]
		if !p.alive || p.buffer != h {
			continue
		}
		for _, r := range deletes {
			p.pos = position.Delete(p.pos, r)
		}
	}
}

// SpawnInsertProcess registers pos as a tracked position within h's
// buffer, reusing a dead slot if one exists, and returns its id.
func (c *Collection) SpawnInsertProcess(h Handle, pos position.Pos) ProcessID {
	for i := range c.insert {
		if !c.insert[i].alive {
			c.insert[i] = insertProcess{alive: true, buffer: h, pos: pos}
			return ProcessID(i)
		}
	}
	c.insert = append(c.insert, insertProcess{alive: true, buffer: h, pos: pos})
	return ProcessID(len(c.insert) - 1)
}

// InsertProcessPosition returns id's current, edit-shifted position.
func (c *Collection) InsertProcessPosition(id ProcessID) (position.Pos, bool) {
	i := int(id)
	if i < 0 || i >= len(c.insert) || !c.insert[i].alive {
		return position.Pos{}, false
	}
	return c.insert[i].pos, true
}

// StopInsertProcess frees id's slot for reuse.
func (c *Collection) StopInsertProcess(id ProcessID) {
	i := int(id)
	if i < 0 || i >= len(c.insert) {
		return
	}
	c.insert[i].alive = false
}

func (c *Collection) lintsApplyInsert(b *Buffer, r position.Range) bool {
	return b.lints.ApplyEdit(history.Edit{Kind: history.Insert, Range: r})
}

func (c *Collection) lintsApplyDelete(b *Buffer, r position.Range) bool {
	return b.lints.ApplyEdit(history.Edit{Kind: history.Delete, Range: r})
}

// RefreshSyntaxes re-resolves the syntax for every live buffer, as
// happens after the syntax collection's registry itself changes.
func (c *Collection) RefreshSyntaxes(syntaxes *highlight.Collection) {
	c.Iter(func(_ Handle, b *Buffer) { b.RefreshSyntax(syntaxes) })
}
