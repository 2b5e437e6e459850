package event

import "github.com/modaltext/core/internal/engine/position"

// Kind identifies which variant an Event holds. Unlike the teacher's
// topic-string pub/sub, this queue is a closed sum type: every kind a
// buffer can report is enumerated here rather than published under an
// arbitrary topic.
type Kind int

const (
	// Idle carries no payload. It lets a drain loop distinguish "nothing
	// happened this flip" from "the queue is empty because nobody asked".
	Idle Kind = iota
	BufferRead
	BufferInsertText
	BufferDeleteText
	BufferSave
	BufferClose
	BufferBreakpointsChanged
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case BufferRead:
		return "buffer-read"
	case BufferInsertText:
		return "buffer-insert-text"
	case BufferDeleteText:
		return "buffer-delete-text"
	case BufferSave:
		return "buffer-save"
	case BufferClose:
		return "buffer-close"
	case BufferBreakpointsChanged:
		return "buffer-breakpoints-changed"
	default:
		return "unknown"
	}
}

// BufferHandle identifies the buffer an event concerns. It is an opaque
// index minted by whatever owns the buffer collection; this package
// never interprets it.
type BufferHandle int

// TextRef is a byte range into a Queue's shared text arena. It is only
// meaningful against the Queue that produced it, and only until that
// Queue's next Flip discards the arena it points into.
type TextRef struct {
	From, To int
}

// Event is the one payload shape every queued notification uses. Only
// the fields relevant to Kind are populated; the rest are zero.
type Event struct {
	Kind   Kind
	Handle BufferHandle

	// Range is populated for BufferInsertText and BufferDeleteText.
	Range position.Range

	// Text is populated for BufferInsertText; resolve it against the
	// Queue's read buffer with Queue.Text.
	Text TextRef

	// NewPath is populated for BufferSave when the buffer was saved
	// under a different path than it currently holds (a "save as").
	// Nil means the buffer was saved to its existing path.
	NewPath *string
}
