package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modaltext/core/internal/engine/event"
	"github.com/modaltext/core/internal/engine/pattern"
	"github.com/modaltext/core/internal/engine/position"
)

func p(line, col uint32) position.Pos { return position.Pos{Line: line, Column: col} }
func rng(fromLine, fromCol, toLine, toCol uint32) position.Range {
	return position.Range{From: p(fromLine, fromCol), To: p(toLine, toCol)}
}

type fakeWords struct {
	added, removed []string
}

func (f *fakeWords) AddWord(w string)    { f.added = append(f.added, w) }
func (f *fakeWords) RemoveWord(w string) { f.removed = append(f.removed, w) }

func newTestBuffer() (*Collection, Handle, *Buffer) {
	c := NewCollection()
	h, b := c.AddNew(TextProperties())
	return c, h, b
}

func TestInsertTextReturnsRangeAndMarksNeedsSave(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()

	r, err := b.InsertText(nil, p(0, 0), "hello", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := rng(0, 0, 0, 5)
	if r != want {
		t.Fatalf("got range %+v, want %+v", r, want)
	}
	if !b.NeedsSave() {
		t.Fatalf("expected needs-save after a non-empty insert")
	}
	if got, _ := b.Content().LineText(0); got != "hello" {
		t.Fatalf("got line %q, want %q", got, "hello")
	}
}

func TestInsertTextEmptyIsNoOp(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()

	r, err := b.InsertText(nil, p(0, 0), "", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.From != r.To {
		t.Fatalf("expected an empty range for an empty insert, got %+v", r)
	}
	if b.NeedsSave() {
		t.Fatalf("an empty insert should not mark needs-save")
	}
	q.Flip()
	if len(q.Events()) != 0 {
		t.Fatalf("an empty insert should not enqueue an event")
	}
}

func TestInsertTextEnqueuesResolvableEvent(t *testing.T) {
	_, h, b := newTestBuffer()
	q := event.NewQueue()

	if _, err := b.InsertText(nil, p(0, 0), "hi", q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.Flip()
	got := q.Events()
	if len(got) != 1 || got[0].Kind != event.BufferInsertText || got[0].Handle != h {
		t.Fatalf("unexpected events: %+v", got)
	}
	if text := q.Text(got[0].Text); text != "hi" {
		t.Fatalf("got event text %q, want %q", text, "hi")
	}
}

func TestInsertTextUpdatesWordDatabase(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()
	words := &fakeWords{}

	if _, err := b.InsertText(words, p(0, 0), "foo bar", q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words.added) != 2 || words.added[0] != "foo" || words.added[1] != "bar" {
		t.Fatalf("got added words %v, want [foo bar]", words.added)
	}
}

func TestDeleteRangeSingleLineRoundTripsThroughUndo(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()

	if _, err := b.InsertText(nil, p(0, 0), "hello world", q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	b.CommitEdits()
	original := b.Content().Text()

	if err := b.DeleteRange(nil, rng(0, 5, 0, 11), q); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := b.Content().Text(); got != "hello" {
		t.Fatalf("got %q after delete, want %q", got, "hello")
	}

	b.Undo(nil, q)
	if got := b.Content().Text(); got != original {
		t.Fatalf("got %q after undo, want %q", got, original)
	}
}

func TestDeleteRangeMultiLineRoundTripsThroughUndo(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()

	if _, err := b.InsertText(nil, p(0, 0), "one\ntwo\nthree\nfour", q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	b.CommitEdits()
	original := b.Content().Text()

	// delete from middle of "two" through middle of "four", spanning the
	// entire "three" line.
	if err := b.DeleteRange(nil, rng(1, 1, 3, 2), q); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := b.Content().Text(); got != "one\ntur" {
		t.Fatalf("got %q after delete, want %q", got, "one\ntur")
	}

	edits := b.Undo(nil, q)
	if len(edits) == 0 {
		t.Fatalf("expected undo to replay at least one edit")
	}
	if got := b.Content().Text(); got != original {
		t.Fatalf("got %q after undo, want %q", got, original)
	}
}

func TestRedoReappliesAfterUndo(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()

	if _, err := b.InsertText(nil, p(0, 0), "abc", q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	b.CommitEdits()
	b.Undo(nil, q)
	if got := b.Content().Text(); got != "" {
		t.Fatalf("got %q after undo, want empty", got)
	}
	b.Redo(nil, q)
	if got := b.Content().Text(); got != "abc" {
		t.Fatalf("got %q after redo, want %q", got, "abc")
	}
}

func TestSetSearchFindsAllNonOverlappingMatches(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()
	if _, err := b.InsertText(nil, p(0, 0), "abcabcabc", q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	pat, err := pattern.New("abc")
	if err != nil {
		t.Fatalf("pattern.New: %v", err)
	}
	b.SetSearch(pat)
	got := b.SearchRanges()
	if len(got) != 3 {
		t.Fatalf("got %d matches, want 3: %+v", len(got), got)
	}
	if got[0] != rng(0, 0, 0, 3) || got[1] != rng(0, 3, 0, 6) || got[2] != rng(0, 6, 0, 9) {
		t.Fatalf("unexpected match ranges: %+v", got)
	}
}

func TestSetSearchNilPatternClears(t *testing.T) {
	_, _, b := newTestBuffer()
	q := event.NewQueue()
	if _, err := b.InsertText(nil, p(0, 0), "abc", q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	pat, _ := pattern.New("abc")
	b.SetSearch(pat)
	if len(b.SearchRanges()) == 0 {
		t.Fatalf("expected a match before clearing")
	}
	b.SetSearch(nil)
	if len(b.SearchRanges()) != 0 {
		t.Fatalf("expected SetSearch(nil) to clear ranges")
	}
}

func TestWriteThenReadFromFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	_, _, b := newTestBuffer()
	q := event.NewQueue()
	if _, err := b.InsertText(nil, p(0, 0), "line one\nline two", q); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := b.WriteToFile(path, q); err != nil {
		t.Fatalf("write: %v", err)
	}
	if b.NeedsSave() {
		t.Fatalf("expected needs-save cleared after write")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back written file: %v", err)
	}
	if string(data) != "line one\nline two\n" {
		t.Fatalf("got file contents %q", string(data))
	}

	_, _, b2 := newTestBuffer()
	b2.Path = path
	if err := b2.ReadFromFile(nil, q); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := b2.Content().Text(); got != "line one\nline two" {
		t.Fatalf("got %q after read, want %q", got, "line one\nline two")
	}
}

func TestReadFromFileMissingPathReportsNotFound(t *testing.T) {
	_, _, b := newTestBuffer()
	b.Path = filepath.Join(t.TempDir(), "does-not-exist.txt")
	q := event.NewQueue()
	err := b.ReadFromFile(nil, q)
	if err != ErrFileNotFound {
		t.Fatalf("got err %v, want ErrFileNotFound", err)
	}
}

func TestReadFromFileInvalidUTF8ResetsBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.dat")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644); err != nil {
		t.Fatalf("writing binary fixture: %v", err)
	}

	_, _, b := newTestBuffer()
	b.Path = path
	q := event.NewQueue()
	if _, err := b.InsertText(nil, p(0, 0), "stale content", q); err != nil {
		t.Fatalf("insert: %v", err)
	}

	err := b.ReadFromFile(nil, q)
	if err != ErrInvalidData {
		t.Fatalf("got err %v, want ErrInvalidData", err)
	}
	if got := b.Content().Text(); got != "" {
		t.Fatalf("expected content reset to empty, got %q", got)
	}
}

func TestWriteToFileSavingDisabledIsRejected(t *testing.T) {
	_, _, b := newTestBuffer()
	b.Properties.SavingEnabled = false
	q := event.NewQueue()
	if err := b.WriteToFile("", q); err != ErrSavingDisabled {
		t.Fatalf("got err %v, want ErrSavingDisabled", err)
	}
}
