package highlight

import (
	"sort"

	"github.com/modaltext/core/internal/engine/content"
	"github.com/modaltext/core/internal/engine/position"
)

// defaultMaxHighlightBytes bounds one HighlightDirtyLines call. The
// reference tunes this to 128 KiB in release builds and 8 KiB in debug
// builds; Go has no equivalent build-profile switch, so this package
// always uses the larger figure and leaves the smaller one reachable
// through WithMaxHighlightBytes for tests that want to exercise the
// Pending/resume path without constructing huge buffers.
const defaultMaxHighlightBytes = 128 * 1024

// Status reports whether a HighlightDirtyLines call finished all queued
// work or ran out of budget and needs another call.
type Status int

const (
	Complete Status = iota
	Pending
)

// HighlightedLine is one source line's most recent parse result.
type HighlightedLine struct {
	State  ParseState
	Tokens []Token
}

// HighlightedBuffer layers a per-line token cache over a content.Content,
// tracking which lines need re-parsing and re-parsing only those (plus
// whatever follows them while parse state keeps changing) on demand.
type HighlightedBuffer struct {
	highlightedLen int
	lines          []HighlightedLine
	dirty          []int
	maxBytes       int
}

// Option configures a HighlightedBuffer at construction time.
type Option func(*HighlightedBuffer)

// WithMaxHighlightBytes overrides the per-call highlighting byte budget.
func WithMaxHighlightBytes(n int) Option {
	return func(b *HighlightedBuffer) { b.maxBytes = n }
}

// New returns a HighlightedBuffer for a single empty line, matching the
// state a fresh content.Content starts in.
func New(opts ...Option) *HighlightedBuffer {
	b := &HighlightedBuffer{
		highlightedLen: 1,
		lines:          []HighlightedLine{{}},
		maxBytes:       defaultMaxHighlightBytes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Clear resets the buffer back to a single empty, finished line.
func (b *HighlightedBuffer) Clear() {
	b.highlightedLen = 1
	b.lines[0] = HighlightedLine{}
	b.dirty = b.dirty[:0]
}

// Lines returns the logically valid prefix of tracked lines.
func (b *HighlightedBuffer) Lines() []HighlightedLine { return b.lines[:b.highlightedLen] }

func reverseLines(s []HighlightedLine) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func rotateLeftLines(s []HighlightedLine, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k = ((k % n) + n) % n
	if k == 0 {
		return
	}
	reverseLines(s[:k])
	reverseLines(s[k:])
	reverseLines(s)
}

func rotateRightLines(s []HighlightedLine, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k = ((k % n) + n) % n
	rotateLeftLines(s, n-k)
}

// OnInsert must be called with the exact range content.InsertText just
// returned, before the next HighlightDirtyLines call.
func (b *HighlightedBuffer) OnInsert(r position.Range) {
	insertLineCount := int(r.To.Line - r.From.Line)
	b.highlightedLen += insertLineCount

	if insertLineCount > 0 {
		if b.highlightedLen > len(b.lines) {
			b.lines = append(b.lines, make([]HighlightedLine, b.highlightedLen-len(b.lines))...)
		}
		insertIndex := int(r.From.Line) + 1
		rotateRightLines(b.lines[insertIndex:], insertLineCount)

		for i, idx := range b.dirty {
			if insertIndex <= idx {
				b.dirty[i] = idx + insertLineCount
			}
		}
	}

	for i := r.From.Line; i <= r.To.Line; i++ {
		b.dirty = append(b.dirty, int(i))
	}
}

// OnDelete must be called with the exact range content.DeleteRange was
// given, before the next HighlightDirtyLines call.
func (b *HighlightedBuffer) OnDelete(r position.Range) {
	deleteLineCount := int(r.To.Line - r.From.Line)
	b.highlightedLen -= deleteLineCount

	if deleteLineCount > 0 {
		deleteIndex := int(r.From.Line) + 1
		rotateLeftLines(b.lines[deleteIndex:], deleteLineCount)

		for i, idx := range b.dirty {
			if int(r.To.Line) <= idx {
				b.dirty[i] = idx - deleteLineCount
			} else if deleteIndex <= idx {
				b.dirty[i] = int(r.From.Line)
			}
		}
	}

	b.dirty = append(b.dirty, int(r.From.Line))
}

// HighlightDirtyLines re-parses every line queued as dirty, propagating
// forward while parse state keeps changing so multi-line constructs
// (block comments, etc.) settle correctly. It stops early once the
// configured byte budget is spent, re-queuing whatever is left and
// returning Pending; callers should keep calling until it returns
// Complete.
func (b *HighlightedBuffer) HighlightDirtyLines(syntax *Syntax, ct *content.Content) Status {
	if len(b.dirty) == 0 {
		return Complete
	}
	sort.Ints(b.dirty)

	budget := b.maxBytes
	index := b.dirty[0]
	lastDirtyIndex := -1

	var previous ParseState
	if index > 0 && index <= len(b.lines) {
		previous = b.lines[index-1].State
	} else {
		previous = Finished
	}

	for di := 0; di < len(b.dirty); di++ {
		dirtyIndex := b.dirty[di]
		if dirtyIndex < index || dirtyIndex == lastDirtyIndex {
			continue
		}
		index = dirtyIndex
		lastDirtyIndex = index

		for index < b.highlightedLen {
			if budget <= 0 {
				leftover := append([]int{index}, b.dirty[di:]...)
				b.dirty = leftover
				return Pending
			}

			text, err := ct.LineText(uint32(index))
			if err != nil {
				break
			}
			hline := &b.lines[index]
			previousState := hline.State
			tokens, next := syntax.ParseLine(text, previous)
			hline.Tokens = tokens
			hline.State = next
			budget -= len(text)
			previous = next
			index++

			if previousState.IsFinished() && next.IsFinished() {
				break
			}
		}
	}

	b.dirty = b.dirty[:0]
	return Complete
}

// FindTokenKindAt returns the TokenKind covering byteIndex on lineIndex,
// or Text if the line is out of range or no token covers it.
func (b *HighlightedBuffer) FindTokenKindAt(lineIndex, byteIndex int) TokenKind {
	if lineIndex < 0 || lineIndex >= b.highlightedLen {
		return Text
	}
	tokens := b.lines[lineIndex].Tokens
	lo, hi := 0, len(tokens)
	for lo < hi {
		mid := (lo + hi) / 2
		t := tokens[mid]
		switch {
		case byteIndex < int(t.From):
			hi = mid
		case byteIndex >= int(t.To):
			lo = mid + 1
		default:
			return t.Kind
		}
	}
	return Text
}
