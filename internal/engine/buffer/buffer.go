package buffer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/modaltext/core/internal/engine/content"
	"github.com/modaltext/core/internal/engine/event"
	"github.com/modaltext/core/internal/engine/highlight"
	"github.com/modaltext/core/internal/engine/history"
	"github.com/modaltext/core/internal/engine/lint"
	"github.com/modaltext/core/internal/engine/pattern"
	"github.com/modaltext/core/internal/engine/position"
)

// Buffer is one editable document: content plus everything derived from
// it (syntax tokens, lints, breakpoints, undo history) and the file
// identity it round-trips through.
type Buffer struct {
	handle event.BufferHandle
	alive  bool

	Path       string
	Properties Properties

	content      *content.Content
	syntax       highlight.Handle
	highlighted  *highlight.HighlightedBuffer
	history      *history.History
	lints        *lint.Set
	searchRanges []position.Range
	needsSave    bool
}

func newBuffer(h event.BufferHandle) *Buffer {
	return &Buffer{
		handle:      h,
		alive:       true,
		content:     content.New(),
		highlighted: highlight.New(),
		history:     history.New(),
		lints:       lint.NewSet(),
	}
}

// reset clears a Buffer back to its just-constructed state, for reuse by
// a Collection after RemoveNow.
func (b *Buffer) reset() {
	b.alive = false
	b.Path = ""
	b.Properties = Properties{}
	b.content = content.New()
	b.syntax = highlight.Handle{}
	b.highlighted.Clear()
	b.history = history.New()
	b.lints = lint.NewSet()
	b.searchRanges = nil
	b.needsSave = false
}

// Handle returns the identity this Buffer was minted with.
func (b *Buffer) Handle() event.BufferHandle { return b.handle }

// Content returns the buffer's underlying text storage.
func (b *Buffer) Content() *content.Content { return b.content }

// Highlighted returns the buffer's cached syntax tokens.
func (b *Buffer) Highlighted() *highlight.HighlightedBuffer { return b.highlighted }

// Lints returns the buffer's diagnostics and breakpoints.
func (b *Buffer) Lints() *lint.Set { return b.lints }

// NeedsSave reports whether the buffer has unsaved changes worth acting
// on: saving must actually be enabled for this to matter.
func (b *Buffer) NeedsSave() bool { return b.Properties.SavingEnabled && b.needsSave }

// SearchRanges returns the ranges found by the most recent SetSearch.
func (b *Buffer) SearchRanges() []position.Range { return b.searchRanges }

// RefreshSyntax re-resolves which syntax definition applies to Path and,
// if it changed, clears cached highlighting and marks every line dirty.
func (b *Buffer) RefreshSyntax(syntaxes *highlight.Collection) {
	if b.Path == "" {
		return
	}
	h, _ := syntaxes.FindHandleByPath(b.Path)
	if h == b.syntax {
		return
	}
	b.syntax = h
	b.highlighted.Clear()
	last := uint32(b.content.LineCount() - 1)
	b.highlighted.OnInsert(position.Range{From: position.Origin, To: position.Pos{Line: last, Column: 0}})
}

// UpdateHighlighting drains queued highlighting work, a bounded time
// slice at a time. Call it repeatedly until it returns highlight.Complete.
func (b *Buffer) UpdateHighlighting(syntaxes *highlight.Collection) highlight.Status {
	return b.highlighted.HighlightDirtyLines(syntaxes.Get(b.syntax), b.content)
}

func lineTextOrEmpty(c *content.Content, line uint32) string {
	s, _ := c.LineText(line)
	return s
}

func (b *Buffer) insertTextNoHistory(words WordDatabase, pos position.Pos, text string) (position.Range, error) {
	if b.Properties.WordDatabaseEnabled && words != nil {
		removeWordsOnLine(words, b.content, pos.Line)
	}
	r, err := b.content.InsertText(pos, text)
	if err != nil {
		return position.Range{}, err
	}
	if b.Properties.WordDatabaseEnabled && words != nil {
		addWordsInRange(words, b.content, r.From.Line, r.To.Line)
	}
	return r, nil
}

func (b *Buffer) deleteRangeNoHistory(words WordDatabase, r position.Range) (string, error) {
	if b.Properties.WordDatabaseEnabled && words != nil {
		removeWordsInRange(words, b.content, r.From.Line, r.To.Line)
	}
	removed, err := b.content.DeleteRange(r)
	if err != nil {
		return "", err
	}
	if b.Properties.WordDatabaseEnabled && words != nil {
		addWordsOnLine(words, b.content, r.From.Line)
	}
	return removed, nil
}

// InsertText saturates pos into the content, inserts text, and records
// an Insert history edit (when history is enabled) and a
// BufferInsertText event. Returns the range the inserted text now
// occupies.
func (b *Buffer) InsertText(words WordDatabase, pos position.Pos, text string, q *event.Queue) (position.Range, error) {
	b.searchRanges = nil
	pos = b.content.SaturatePosition(pos)
	if text == "" {
		return position.Range{From: pos, To: pos}, nil
	}
	b.needsSave = true

	r, err := b.insertTextNoHistory(words, pos, text)
	if err != nil {
		return position.Range{}, err
	}
	q.EnqueueBufferInsertText(b.handle, r, text)
	if b.Properties.HistoryEnabled {
		b.history.AddEdit(history.Edit{Kind: history.Insert, Range: r, Text: text})
	}
	return r, nil
}

// recordDeleteHistory logs the Delete edits describing r before its text
// disappears. A multi-line range is split into a to-line prefix delete,
// then one newline+tail pair per interior line working backward, then
// the from-line's own newline+tail pair: replaying that sequence in
// undo order reconstructs the content line by line.
func (b *Buffer) recordDeleteHistory(r position.Range) {
	addLine := func(from position.Pos) {
		lineText := lineTextOrEmpty(b.content, from.Line)
		nlRange := position.Range{
			From: position.Pos{Line: from.Line, Column: uint32(len(lineText))},
			To:   position.Pos{Line: from.Line + 1, Column: 0},
		}
		b.history.AddEdit(history.Edit{Kind: history.Delete, Range: nlRange, Text: "\n"})
		tailRange := position.Range{From: from, To: nlRange.From}
		b.history.AddEdit(history.Edit{Kind: history.Delete, Range: tailRange, Text: lineText[from.Column:]})
	}

	if r.IsSingleLine() {
		lineText := lineTextOrEmpty(b.content, r.From.Line)
		text := lineText[r.From.Column:r.To.Column]
		b.history.AddEdit(history.Edit{Kind: history.Delete, Range: r, Text: text})
		return
	}

	toLineText := lineTextOrEmpty(b.content, r.To.Line)
	prefixRange := position.Range{From: position.Pos{Line: r.To.Line, Column: 0}, To: r.To}
	b.history.AddEdit(history.Edit{Kind: history.Delete, Range: prefixRange, Text: toLineText[:r.To.Column]})

	for line := r.To.Line - 1; line > r.From.Line; line-- {
		addLine(position.Pos{Line: line, Column: 0})
	}
	addLine(r.From)
}

// DeleteRange saturates r into the content, removes it, and records the
// Delete history edits and a BufferDeleteText event before mutating.
func (b *Buffer) DeleteRange(words WordDatabase, r position.Range, q *event.Queue) error {
	b.searchRanges = nil
	from := b.content.SaturatePosition(r.From)
	to := b.content.SaturatePosition(r.To)
	r = position.Range{From: from, To: to}
	if r.IsEmpty() {
		return nil
	}
	b.needsSave = true

	q.EnqueueBufferDeleteText(b.handle, r)
	if b.Properties.HistoryEnabled {
		b.recordDeleteHistory(r)
	}
	_, err := b.deleteRangeNoHistory(words, r)
	return err
}

// CommitEdits closes the history's current building group, so a
// following edit starts a fresh undo step instead of merging into this
// one.
func (b *Buffer) CommitEdits() { b.history.CommitEdits() }

func (b *Buffer) applyHistoryEdits(words WordDatabase, q *event.Queue, selector func() []history.Edit) []history.Edit {
	b.searchRanges = nil
	b.needsSave = true

	edits := selector()
	for _, e := range edits {
		if e.Kind == history.Insert {
			if _, err := b.insertTextNoHistory(words, e.Range.From, e.Text); err != nil {
				continue
			}
			q.EnqueueBufferInsertText(b.handle, e.Range, e.Text)
		} else {
			if _, err := b.deleteRangeNoHistory(words, e.Range); err != nil {
				continue
			}
			q.EnqueueBufferDeleteText(b.handle, e.Range)
		}
	}
	return edits
}

// Undo replays the most recent undo group's inverted edits against the
// content without re-entering the history, and returns them so callers
// can reposition cursors.
func (b *Buffer) Undo(words WordDatabase, q *event.Queue) []history.Edit {
	return b.applyHistoryEdits(words, q, b.history.UndoEdits)
}

// Redo is the symmetric replay of the next redo group.
func (b *Buffer) Redo(words WordDatabase, q *event.Queue) []history.Edit {
	return b.applyHistoryEdits(words, q, b.history.RedoEdits)
}

// SetSearch recomputes SearchRanges by scanning every line with p. An
// empty pattern (nil) clears the ranges without scanning.
func (b *Buffer) SetSearch(p *pattern.Pattern) {
	b.searchRanges = b.searchRanges[:0]
	if p == nil {
		return
	}
	for line := uint32(0); line < uint32(b.content.LineCount()); line++ {
		text := lineTextOrEmpty(b.content, line)
		b.searchRanges = append(b.searchRanges, findMatchesOnLine(p, line, text)...)
	}
}

func findMatchesOnLine(p *pattern.Pattern, line uint32, text string) []position.Range {
	var ranges []position.Range
	col := 0
	for col <= len(text) {
		res := p.Matches(text[col:])
		if res.Outcome == pattern.Matched && res.End > 0 {
			ranges = append(ranges, position.Range{
				From: position.Pos{Line: line, Column: uint32(col)},
				To:   position.Pos{Line: line, Column: uint32(col + res.End)},
			})
			col += res.End
		} else {
			col++
		}
	}
	return ranges
}

// ReadFromFile replaces the buffer's content with Path's contents. It
// always clears needsSave, the history and the search ranges and enqueues
// BufferRead; for non-file buffers (Properties.IsFile false) the content
// is left untouched. A missing path reports ErrFileNotFound, non-UTF-8
// content reports ErrInvalidData, and any other failure reports
// ErrOtherRead. A failure after the file was opened resets the buffer to
// an empty single line rather than leaving it partially read; a failure
// to open the file leaves the content as it was.
func (b *Buffer) ReadFromFile(words WordDatabase, q *event.Queue) error {
	b.needsSave = false
	b.history = history.New()
	b.searchRanges = nil
	q.EnqueueBufferRead(b.handle)

	if !b.Properties.IsFile {
		return nil
	}
	if b.Path == "" {
		return ErrFileNotFound
	}

	file, err := os.Open(b.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound
		}
		return fmt.Errorf("%w: %v", ErrOtherRead, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		b.clearOnFailedRead(words)
		return fmt.Errorf("%w: %v", ErrOtherRead, err)
	}
	if !utf8.Valid(data) {
		b.clearOnFailedRead(words)
		return ErrInvalidData
	}

	if b.Properties.WordDatabaseEnabled && words != nil {
		for line := uint32(0); line < uint32(b.content.LineCount()); line++ {
			removeWordsOnLine(words, b.content, line)
		}
	}
	b.content = content.New()
	if err := b.content.Read(bytes.NewReader(data)); err != nil {
		b.clearOnFailedRead(words)
		return fmt.Errorf("%w: %v", ErrOtherRead, err)
	}
	b.highlighted.Clear()
	last := uint32(b.content.LineCount() - 1)
	b.highlighted.OnInsert(position.Range{From: position.Origin, To: position.Pos{Line: last, Column: 0}})

	if b.Properties.WordDatabaseEnabled && words != nil {
		for line := uint32(0); line < uint32(b.content.LineCount()); line++ {
			addWordsOnLine(words, b.content, line)
		}
	}
	return nil
}

func (b *Buffer) clearOnFailedRead(words WordDatabase) {
	if b.Properties.WordDatabaseEnabled && words != nil {
		for line := uint32(0); line < uint32(b.content.LineCount()); line++ {
			removeWordsOnLine(words, b.content, line)
		}
	}
	b.content = content.New()
	b.highlighted.Clear()
}

// WriteToFile writes the buffer's content to newPath (or its existing
// Path, if newPath is empty) and clears the needs-save flag. A newPath
// also enables saving and marks the buffer as file-backed, matching how
// a "save as" on a scratch buffer turns it into a real file.
func (b *Buffer) WriteToFile(newPath string, q *event.Queue) error {
	var pathChanged *string
	if newPath != "" {
		b.Properties.SavingEnabled = true
		b.Properties.IsFile = true
		b.Path = newPath
		pathChanged = &newPath
	}

	if !b.Properties.SavingEnabled {
		return ErrSavingDisabled
	}
	if b.Properties.IsFile {
		file, err := os.Create(b.Path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCouldNotWriteToFile, err)
		}
		defer file.Close()
		w := bufio.NewWriter(file)
		if err := b.content.Write(w); err != nil {
			return fmt.Errorf("%w: %v", ErrCouldNotWriteToFile, err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("%w: %v", ErrCouldNotWriteToFile, err)
		}
	}

	b.needsSave = false
	q.EnqueueBufferSave(b.handle, pathChanged)
	return nil
}
