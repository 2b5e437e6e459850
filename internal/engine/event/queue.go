package event

import "github.com/modaltext/core/internal/engine/position"

// store is one side of the double buffer: a log of events plus the
// arena their Text fields index into.
type store struct {
	events []Event
	texts  []byte
}

func (s *store) reset() {
	s.events = s.events[:0]
	s.texts = s.texts[:0]
}

// Queue is a double-buffered event log. Producers call the Enqueue*
// methods, which always append to the write side; consumers call Events
// and Text against the read side, which only Flip ever changes. This
// means a consumer mid-iteration over Events never observes an event a
// producer appends later in the same tick.
type Queue struct {
	read  store
	write store
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue { return &Queue{} }

// Enqueue appends e to the write side.
func (q *Queue) Enqueue(e Event) { q.write.events = append(q.write.events, e) }

// EnqueueIdle records that a tick produced no buffer activity.
func (q *Queue) EnqueueIdle() { q.Enqueue(Event{Kind: Idle}) }

// EnqueueBufferRead records that h was read from its backing file, which
// discards h's history and, for a file buffer, replaces its content.
func (q *Queue) EnqueueBufferRead(h BufferHandle) {
	q.Enqueue(Event{Kind: BufferRead, Handle: h})
}

// EnqueueBufferInsertText copies text into the write side's arena and
// records an insertion event referencing it. The copy means the caller
// is free to reuse or discard text immediately after this call.
func (q *Queue) EnqueueBufferInsertText(h BufferHandle, r position.Range, text string) {
	start := len(q.write.texts)
	q.write.texts = append(q.write.texts, text...)
	end := len(q.write.texts)
	q.Enqueue(Event{Kind: BufferInsertText, Handle: h, Range: r, Text: TextRef{From: start, To: end}})
}

// EnqueueBufferDeleteText records that the bytes within r were removed
// from h. Unlike an insertion, no text needs to survive the edit, so no
// arena copy is made.
func (q *Queue) EnqueueBufferDeleteText(h BufferHandle, r position.Range) {
	q.Enqueue(Event{Kind: BufferDeleteText, Handle: h, Range: r})
}

// EnqueueBufferSave records that h was written to disk. newPath is nil
// unless the write targeted a different path than h currently holds.
func (q *Queue) EnqueueBufferSave(h BufferHandle, newPath *string) {
	q.Enqueue(Event{Kind: BufferSave, Handle: h, NewPath: newPath})
}

// EnqueueBufferClose records that h was removed from its collection.
func (q *Queue) EnqueueBufferClose(h BufferHandle) {
	q.Enqueue(Event{Kind: BufferClose, Handle: h})
}

// EnqueueBufferBreakpointsChanged records that an edit shifted, dropped,
// or otherwise altered h's breakpoint set.
func (q *Queue) EnqueueBufferBreakpointsChanged(h BufferHandle) {
	q.Enqueue(Event{Kind: BufferBreakpointsChanged, Handle: h})
}

// Flip makes everything enqueued since the previous Flip observable via
// Events and Text, and clears the way for the next round of enqueues.
// It first resets the read side (already fully drained by the caller),
// then swaps read and write, so the new read side is what was just
// written and the new write side is ready to receive again.
func (q *Queue) Flip() {
	q.read.reset()
	q.read, q.write = q.write, q.read
}

// Events returns the events made observable by the last Flip, in
// enqueue order. The slice is only valid until the next Flip.
func (q *Queue) Events() []Event { return q.read.events }

// Text resolves ref against the read side's arena. Valid only until the
// next Flip; callers that need the text to outlive a Flip must copy it.
func (q *Queue) Text(ref TextRef) string { return string(q.read.texts[ref.From:ref.To]) }
