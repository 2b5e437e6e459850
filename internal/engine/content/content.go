package content

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/modaltext/core/internal/engine/position"
)

// DisplayLen caches how wide a line renders: the number of visible
// characters (grapheme clusters, excluding tabs) and a separate tab count.
// Total display width is Chars + Tabs*tabSize; keeping the two counts apart
// means a tab-size change never invalidates the cache.
type DisplayLen struct {
	Chars uint32
	Tabs  uint32
}

// Width returns the rendered column width of the line for a given tab size.
func (d DisplayLen) Width(tabSize uint32) uint32 {
	return d.Chars + d.Tabs*tabSize
}

func computeDisplayLen(s string) DisplayLen {
	var d DisplayLen
	for len(s) > 0 {
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
		if cluster == "\t" {
			d.Tabs++
		} else {
			d.Chars++
		}
		s = rest
	}
	return d
}

// line is the pooled, mutable backing object for one Buffer Line. Its text
// is never shared outside of Content; callers only ever see copies or
// read-only slices.
type line struct {
	text    []byte
	display DisplayLen
}

func (l *line) setText(text []byte) {
	l.text = text
	l.display = computeDisplayLen(string(text))
}

// Option configures a Content at construction time.
type Option func(*Content)

// WithTabWidth sets the tab size used by DisplayLen.Width. Default is 4.
func WithTabWidth(n uint32) Option {
	return func(c *Content) { c.tabWidth = n }
}

// Content is the buffer's line-indexed text storage: a vector of lines with
// a parallel, cached DisplayLen per line. It always holds at least one
// line, even when empty.
type Content struct {
	lines    []*line
	pool     []*line
	revision position.RevisionID
	tabWidth uint32
}

// New returns an empty Content: a single empty line.
func New(opts ...Option) *Content {
	c := &Content{tabWidth: 4}
	c.lines = []*line{c.acquireLine(nil)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Content) acquireLine(text []byte) *line {
	if n := len(c.pool); n > 0 {
		l := c.pool[n-1]
		c.pool = c.pool[:n-1]
		l.setText(text)
		return l
	}
	l := &line{}
	l.setText(text)
	return l
}

func (c *Content) releaseLine(l *line) {
	l.text = nil
	c.pool = append(c.pool, l)
}

// LineCount returns the number of lines, always >= 1.
func (c *Content) LineCount() int { return len(c.lines) }

// TabWidth returns the tab size used for DisplayLen.Width.
func (c *Content) TabWidth() uint32 { return c.tabWidth }

// SetTabWidth changes the tab size. It does not recompute any DisplayLen
// cache entry, since Chars/Tabs counts are independent of tab size.
func (c *Content) SetTabWidth(n uint32) { c.tabWidth = n }

// Revision returns the id of the most recent mutation, or the zero value
// if the content has never been mutated since construction.
func (c *Content) Revision() position.RevisionID { return c.revision }

// IsEmpty reports whether the content is the single empty line.
func (c *Content) IsEmpty() bool {
	return len(c.lines) == 1 && len(c.lines[0].text) == 0
}

// LineText returns a copy of line i's text.
func (c *Content) LineText(i uint32) (string, error) {
	if i >= uint32(len(c.lines)) {
		return "", fmt.Errorf("%w: %d", ErrLineOutOfRange, i)
	}
	return string(c.lines[i].text), nil
}

// LineLen returns the byte length of line i.
func (c *Content) LineLen(i uint32) (uint32, error) {
	if i >= uint32(len(c.lines)) {
		return 0, fmt.Errorf("%w: %d", ErrLineOutOfRange, i)
	}
	return uint32(len(c.lines[i].text)), nil
}

// LineDisplayLen returns the cached DisplayLen of line i.
func (c *Content) LineDisplayLen(i uint32) (DisplayLen, error) {
	if i >= uint32(len(c.lines)) {
		return DisplayLen{}, fmt.Errorf("%w: %d", ErrLineOutOfRange, i)
	}
	return c.lines[i].display, nil
}

// End returns the last valid position in the content (the end of the last
// line).
func (c *Content) End() position.Pos {
	last := uint32(len(c.lines) - 1)
	return position.Pos{Line: last, Column: uint32(len(c.lines[last].text))}
}

// Text returns the entire content joined with '\n'.
func (c *Content) Text() string {
	var b strings.Builder
	for i, l := range c.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(l.text)
	}
	return b.String()
}

func (c *Content) validatePos(p position.Pos) error {
	if p.Line >= uint32(len(c.lines)) {
		return fmt.Errorf("%w: line %d", ErrPositionOutOfRange, p.Line)
	}
	if p.Column > uint32(len(c.lines[p.Line].text)) {
		return fmt.Errorf("%w: column %d on line %d", ErrPositionOutOfRange, p.Column, p.Line)
	}
	return nil
}

func (c *Content) validateRange(r position.Range) error {
	if r.From.After(r.To) {
		return ErrRangeInvalid
	}
	if err := c.validatePos(r.From); err != nil {
		return err
	}
	return c.validatePos(r.To)
}

// SaturatePosition clamps p to the last valid position in the buffer.
func (c *Content) SaturatePosition(p position.Pos) position.Pos {
	last := uint32(len(c.lines) - 1)
	if p.Line > last {
		p.Line = last
	}
	maxCol := uint32(len(c.lines[p.Line].text))
	if p.Column > maxCol {
		p.Column = maxCol
	}
	return p
}

// InsertText inserts text at pos and returns the range it now occupies.
//
// A newline-free insertion is appended directly into the existing line. A
// multi-line insertion splits the line at pos: the first fragment joins the
// line's head, each interior fragment becomes a whole new line, and the
// original tail either starts a fresh line of its own (if text ends with
// '\n') or is appended after the final fragment.
func (c *Content) InsertText(pos position.Pos, text string) (position.Range, error) {
	if err := c.validatePos(pos); err != nil {
		return position.Range{}, err
	}
	if text == "" {
		return position.Range{From: pos, To: pos}, nil
	}
	c.revision = position.NextRevisionID()

	if !strings.Contains(text, "\n") {
		l := c.lines[pos.Line]
		col := pos.Column
		newText := make([]byte, 0, len(l.text)+len(text))
		newText = append(newText, l.text[:col]...)
		newText = append(newText, text...)
		newText = append(newText, l.text[col:]...)
		l.setText(newText)
		end := position.Pos{Line: pos.Line, Column: pos.Column + uint32(len(text))}
		return position.Range{From: pos, To: end}, nil
	}

	orig := c.lines[pos.Line]
	col := pos.Column
	head := append([]byte(nil), orig.text[:col]...)
	tail := append([]byte(nil), orig.text[col:]...)

	parts := strings.Split(text, "\n")
	firstLineText := append(head, parts[0]...)
	c.lines[pos.Line].setText(firstLineText)

	newLines := make([]*line, 0, len(parts)-1)
	for i := 1; i < len(parts)-1; i++ {
		newLines = append(newLines, c.acquireLine([]byte(parts[i])))
	}

	lastPart := parts[len(parts)-1]
	var end position.Pos
	if lastPart == "" {
		// text ended with '\n': the original tail starts a fresh line.
		newLines = append(newLines, c.acquireLine(tail))
		end = position.Pos{Line: pos.Line + uint32(len(parts)-1), Column: 0}
	} else {
		lastLineText := append([]byte(lastPart), tail...)
		newLines = append(newLines, c.acquireLine(lastLineText))
		end = position.Pos{Line: pos.Line + uint32(len(parts)-1), Column: uint32(len(lastPart))}
	}

	rest := append([]*line(nil), c.lines[pos.Line+1:]...)
	c.lines = append(c.lines[:pos.Line+1], newLines...)
	c.lines = append(c.lines, rest...)

	return position.Range{From: pos, To: end}, nil
}

// DeleteRange removes r and returns the deleted text.
//
// A single-line range drains the bytes in place. A multi-line range
// truncates the from-line at its column, recycles the strictly interior
// lines into the pool, and appends the to-line's suffix onto the
// now-truncated from-line before dropping the to-line.
func (c *Content) DeleteRange(r position.Range) (string, error) {
	if err := c.validateRange(r); err != nil {
		return "", err
	}
	if r.IsEmpty() {
		return "", nil
	}
	c.revision = position.NextRevisionID()

	if r.IsSingleLine() {
		l := c.lines[r.From.Line]
		removed := string(l.text[r.From.Column:r.To.Column])
		newText := make([]byte, 0, len(l.text)-len(removed))
		newText = append(newText, l.text[:r.From.Column]...)
		newText = append(newText, l.text[r.To.Column:]...)
		l.setText(newText)
		return removed, nil
	}

	fromLine := c.lines[r.From.Line]
	toLine := c.lines[r.To.Line]

	var removed strings.Builder
	removed.Write(fromLine.text[r.From.Column:])
	for i := r.From.Line + 1; i < r.To.Line; i++ {
		removed.WriteByte('\n')
		removed.Write(c.lines[i].text)
	}
	removed.WriteByte('\n')
	removed.Write(toLine.text[:r.To.Column])

	head := append([]byte(nil), fromLine.text[:r.From.Column]...)
	merged := append(head, toLine.text[r.To.Column:]...)

	for i := r.From.Line + 1; i <= r.To.Line; i++ {
		c.releaseLine(c.lines[i])
	}
	fromLine.setText(merged)

	rest := append([]*line(nil), c.lines[r.To.Line+1:]...)
	c.lines = append(c.lines[:r.From.Line+1], rest...)

	return removed.String(), nil
}
