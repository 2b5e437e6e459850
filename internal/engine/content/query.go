package content

import "github.com/modaltext/core/internal/engine/position"

// RangeIter lazily yields alternating line-slices and synthetic "\n"
// separators over a range, terminating once it has caught up to the
// range's end.
type RangeIter struct {
	c    *Content
	cur  position.Pos
	to   position.Pos
	atNL bool
	done bool
}

// TextRange returns a lazy iterator over r's text.
func (c *Content) TextRange(r position.Range) *RangeIter {
	return &RangeIter{c: c, cur: r.From, to: r.To}
}

// Next returns the next chunk of text, or ok=false once exhausted.
func (it *RangeIter) Next() (string, bool) {
	if it.done || it.cur == it.to {
		it.done = true
		return "", false
	}
	if it.atNL {
		it.atNL = false
		it.cur = position.Pos{Line: it.cur.Line + 1, Column: 0}
		return "\n", true
	}
	lineText := it.c.lines[it.cur.Line].text
	var end uint32
	if it.cur.Line == it.to.Line {
		end = it.to.Column
	} else {
		end = uint32(len(lineText))
	}
	s := string(lineText[it.cur.Column:end])
	if it.cur.Line == it.to.Line {
		it.cur = it.to
	} else {
		it.cur.Column = end
		it.atNL = true
	}
	return s, true
}

func (c *Content) scanLeft(pos position.Pos, match func(byte) bool) (position.Pos, bool) {
	line, col := pos.Line, pos.Column
	for {
		if col == 0 {
			if line == 0 {
				return position.Pos{}, false
			}
			line--
			col = uint32(len(c.lines[line].text))
			continue
		}
		col--
		if match(c.lines[line].text[col]) {
			return position.Pos{Line: line, Column: col}, true
		}
	}
}

func (c *Content) scanRight(pos position.Pos, match func(byte) bool) (position.Pos, bool) {
	line, col := pos.Line, pos.Column
	for {
		text := c.lines[line].text
		if col >= uint32(len(text)) {
			if line+1 >= uint32(len(c.lines)) {
				return position.Pos{}, false
			}
			line++
			col = 0
			continue
		}
		if match(text[col]) {
			return position.Pos{Line: line, Column: col}, true
		}
		col++
	}
}

// FindDelimiterPairAt locates the enclosing ch...ch pair that contains pos,
// scanning outwards across lines, and returns the inner range (exclusive
// of both delimiters).
func (c *Content) FindDelimiterPairAt(pos position.Pos, ch byte) (position.Range, bool) {
	isCh := func(b byte) bool { return b == ch }
	left, ok := c.scanLeft(pos, isCh)
	if !ok {
		return position.Range{}, false
	}
	right, ok := c.scanRight(pos, isCh)
	if !ok {
		return position.Range{}, false
	}
	from := position.Pos{Line: left.Line, Column: left.Column + 1}
	return position.Range{From: from, To: right}, true
}

// FindBalancedCharsAt locates the enclosing left...right pair that contains
// pos, tracking a balance counter so nested pairs resolve correctly, and
// returns the inner range (exclusive of both delimiters).
func (c *Content) FindBalancedCharsAt(pos position.Pos, left, right byte) (position.Range, bool) {
	leftDepth := 0
	openPos, ok := c.scanLeft(pos, func(b byte) bool {
		switch {
		case b == right:
			leftDepth++
			return false
		case b == left:
			if leftDepth == 0 {
				return true
			}
			leftDepth--
			return false
		default:
			return false
		}
	})
	if !ok {
		return position.Range{}, false
	}

	rightDepth := 0
	closePos, ok := c.scanRight(pos, func(b byte) bool {
		switch {
		case b == left:
			rightDepth++
			return false
		case b == right:
			if rightDepth == 0 {
				return true
			}
			rightDepth--
			return false
		default:
			return false
		}
	})
	if !ok {
		return position.Range{}, false
	}

	from := position.Pos{Line: openPos.Line, Column: openPos.Column + 1}
	return position.Range{From: from, To: closePos}, true
}
