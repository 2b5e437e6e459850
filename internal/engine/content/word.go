package content

import (
	"unicode"
	"unicode/utf8"

	"github.com/modaltext/core/internal/engine/position"
)

// WordKind classifies a run of characters for word-motion purposes.
type WordKind int

const (
	WordIdentifier WordKind = iota // alphanumeric or '_'
	WordWhitespace
	WordSymbol
	WordOther
)

func classify(r rune) WordKind {
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return WordIdentifier
	case unicode.IsSpace(r):
		return WordWhitespace
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return WordSymbol
	default:
		return WordOther
	}
}

// Word is a maximal run of same-kind characters.
type Word struct {
	Range position.Range
	Kind  WordKind
	Text  string
}

// lineWordAt returns the byte-range [start,end) of the run sharing col's
// WordKind within a single line's text.
func lineWordAt(lineText []byte, col uint32) (uint32, uint32, WordKind) {
	if len(lineText) == 0 {
		return 0, 0, WordWhitespace
	}
	r, _ := utf8.DecodeRune(lineText[col:])
	kind := classify(r)

	start := col
	for start > 0 {
		pr, size := utf8.DecodeLastRune(lineText[:start])
		if classify(pr) != kind {
			break
		}
		start -= uint32(size)
	}
	end := col
	for end < uint32(len(lineText)) {
		nr, size := utf8.DecodeRune(lineText[end:])
		if classify(nr) != kind {
			break
		}
		end += uint32(size)
	}
	return start, end, kind
}

// WordAt returns the word (or line-break, classified Whitespace) containing
// pos.
func (c *Content) WordAt(pos position.Pos) Word {
	pos = c.SaturatePosition(pos)
	lineText := c.lines[pos.Line].text
	if pos.Column >= uint32(len(lineText)) {
		to := pos
		if pos.Line+1 < uint32(len(c.lines)) {
			to = position.Pos{Line: pos.Line + 1, Column: 0}
		}
		return Word{Range: position.Range{From: pos, To: to}, Kind: WordWhitespace, Text: "\n"}
	}
	start, end, kind := lineWordAt(lineText, pos.Column)
	from := position.Pos{Line: pos.Line, Column: start}
	upto := position.Pos{Line: pos.Line, Column: end}
	return Word{Range: position.Range{From: from, To: upto}, Kind: kind, Text: string(lineText[start:end])}
}

func (c *Content) positionBefore(pos position.Pos) position.Pos {
	if pos.Column == 0 {
		if pos.Line == 0 {
			return pos
		}
		prev := c.lines[pos.Line-1].text
		return position.Pos{Line: pos.Line - 1, Column: uint32(len(prev))}
	}
	lineText := c.lines[pos.Line].text
	_, size := utf8.DecodeLastRune(lineText[:pos.Column])
	return position.Pos{Line: pos.Line, Column: pos.Column - uint32(size)}
}

// WordIter lazily walks words outward from a starting point, in one
// direction only.
type WordIter struct {
	c       *Content
	next    position.Pos
	forward bool
	done    bool
}

// WordsFrom returns the word containing pos, plus a leftward and a
// rightward lazy iterator over the words adjacent to it.
func (c *Content) WordsFrom(pos position.Pos) (Word, *WordIter, *WordIter) {
	w := c.WordAt(pos)
	left := &WordIter{c: c, next: w.Range.From, forward: false}
	right := &WordIter{c: c, next: w.Range.To, forward: true}
	return w, left, right
}

// Next returns the next word in the iterator's direction, or ok=false at
// the start/end of the buffer.
func (it *WordIter) Next() (Word, bool) {
	if it.done {
		return Word{}, false
	}
	if it.forward {
		if it.next.Line >= uint32(len(it.c.lines)) {
			it.done = true
			return Word{}, false
		}
		w := it.c.WordAt(it.next)
		if w.Range.From == w.Range.To {
			it.done = true
			return Word{}, false
		}
		it.next = w.Range.To
		return w, true
	}
	if it.next.IsZero() {
		it.done = true
		return Word{}, false
	}
	prev := it.c.positionBefore(it.next)
	w := it.c.WordAt(prev)
	it.next = w.Range.From
	return w, true
}
