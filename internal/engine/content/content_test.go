package content

import (
	"strings"
	"testing"

	"github.com/modaltext/core/internal/engine/position"
)

func mustText(t *testing.T, c *Content, i uint32) string {
	t.Helper()
	s, err := c.LineText(i)
	if err != nil {
		t.Fatalf("LineText(%d): %v", i, err)
	}
	return s
}

func TestNewHasOneEmptyLine(t *testing.T) {
	c := New()
	if c.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", c.LineCount())
	}
	if !c.IsEmpty() {
		t.Fatal("expected new content to be empty")
	}
}

func TestInsertTextSingleLine(t *testing.T) {
	c := New()
	if _, err := c.InsertText(position.Pos{}, "hello"); err != nil {
		t.Fatal(err)
	}
	r, err := c.InsertText(position.Pos{Line: 0, Column: 5}, " world")
	if err != nil {
		t.Fatal(err)
	}
	want := position.Range{From: position.Pos{0, 5}, To: position.Pos{0, 11}}
	if r != want {
		t.Errorf("range = %v, want %v", r, want)
	}
	if got := mustText(t, c, 0); got != "hello world" {
		t.Errorf("line = %q", got)
	}
}

func TestInsertTextSplitsLine(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "abcdef")
	r, err := c.InsertText(position.Pos{Line: 0, Column: 2}, "X\nY")
	if err != nil {
		t.Fatal(err)
	}
	if c.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", c.LineCount())
	}
	if got := mustText(t, c, 0); got != "abX" {
		t.Errorf("line 0 = %q, want abX", got)
	}
	if got := mustText(t, c, 1); got != "Ycdef" {
		t.Errorf("line 1 = %q, want Ycdef", got)
	}
	want := position.Range{From: position.Pos{0, 2}, To: position.Pos{1, 1}}
	if r != want {
		t.Errorf("range = %v, want %v", r, want)
	}
}

func TestInsertTextEndingInNewlineStartsFreshLine(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "abcdef")
	r, err := c.InsertText(position.Pos{Line: 0, Column: 2}, "X\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := mustText(t, c, 0); got != "abX" {
		t.Errorf("line 0 = %q", got)
	}
	if got := mustText(t, c, 1); got != "cdef" {
		t.Errorf("line 1 = %q", got)
	}
	want := position.Range{From: position.Pos{0, 2}, To: position.Pos{1, 0}}
	if r != want {
		t.Errorf("range = %v, want %v", r, want)
	}
}

func TestInsertTextMultipleInteriorLines(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "ab")
	_, err := c.InsertText(position.Pos{Line: 0, Column: 1}, "1\n2\n3")
	if err != nil {
		t.Fatal(err)
	}
	if c.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", c.LineCount())
	}
	if got := mustText(t, c, 0); got != "a1" {
		t.Errorf("line 0 = %q", got)
	}
	if got := mustText(t, c, 1); got != "2" {
		t.Errorf("line 1 = %q", got)
	}
	if got := mustText(t, c, 2); got != "3b" {
		t.Errorf("line 2 = %q", got)
	}
}

func TestDeleteRangeSingleLine(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "hello world")
	removed, err := c.DeleteRange(position.Range{From: position.Pos{0, 5}, To: position.Pos{0, 11}})
	if err != nil {
		t.Fatal(err)
	}
	if removed != " world" {
		t.Errorf("removed = %q", removed)
	}
	if got := mustText(t, c, 0); got != "hello" {
		t.Errorf("line = %q", got)
	}
}

func TestDeleteRangeMultiLine(t *testing.T) {
	c := New()
	c.Read(strings.NewReader("abX\nYcdef\n"))
	removed, err := c.DeleteRange(position.Range{From: position.Pos{0, 2}, To: position.Pos{1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if removed != "X\nY" {
		t.Errorf("removed = %q", removed)
	}
	if c.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", c.LineCount())
	}
	if got := mustText(t, c, 0); got != "abcdef" {
		t.Errorf("line = %q, want abcdef", got)
	}
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "abcdef")
	r, err := c.InsertText(position.Pos{Line: 0, Column: 2}, "X\nY")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.DeleteRange(r); err != nil {
		t.Fatal(err)
	}
	if c.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", c.LineCount())
	}
	if got := mustText(t, c, 0); got != "abcdef" {
		t.Errorf("line = %q, want abcdef", got)
	}
}

func TestReadStripsBOMAndCRLF(t *testing.T) {
	c := New()
	data := "\xEF\xBB\xBFfirst\r\nsecond\r\nthird"
	if err := c.Read(strings.NewReader(data)); err != nil {
		t.Fatal(err)
	}
	if c.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", c.LineCount())
	}
	for i, want := range []string{"first", "second", "third"} {
		if got := mustText(t, c, uint32(i)); got != want {
			t.Errorf("line %d = %q, want %q", i, got, want)
		}
	}
}

func TestReadEmptyStreamYieldsOneEmptyLine(t *testing.T) {
	c := New()
	if err := c.Read(strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if c.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", c.LineCount())
	}
	if got := mustText(t, c, 0); got != "" {
		t.Errorf("line = %q, want empty", got)
	}
}

func TestWriteEmitsTrailingLF(t *testing.T) {
	c := New()
	c.Read(strings.NewReader("a\nb"))
	var buf strings.Builder
	if err := c.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a\nb\n" {
		t.Errorf("Write() = %q, want %q", got, "a\nb\n")
	}
}

func TestSaturatePositionClamps(t *testing.T) {
	c := New()
	c.Read(strings.NewReader("ab\nc"))
	got := c.SaturatePosition(position.Pos{Line: 99, Column: 99})
	want := position.Pos{Line: 1, Column: 1}
	if got != want {
		t.Errorf("SaturatePosition() = %v, want %v", got, want)
	}
}

func TestTextRangeIteratesAcrossLines(t *testing.T) {
	c := New()
	c.Read(strings.NewReader("abc\ndef\nghi"))
	it := c.TextRange(position.Range{From: position.Pos{0, 1}, To: position.Pos{2, 2}})
	var got []string
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, s)
	}
	want := []string{"bc", "\n", "def", "\n", "gh"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFindDelimiterPairAt(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, `x = "hello" end`)
	r, ok := c.FindDelimiterPairAt(position.Pos{Line: 0, Column: 7}, '"')
	if !ok {
		t.Fatal("expected a match")
	}
	text, _ := c.LineText(0)
	if got := text[r.From.Column:r.To.Column]; got != "hello" {
		t.Errorf("inner text = %q, want hello", got)
	}
}

func TestFindBalancedCharsAtNested(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "f(a, g(b, c), d)")
	// position inside the inner "g(b, c)" call, just after "b,".
	r, ok := c.FindBalancedCharsAt(position.Pos{Line: 0, Column: 9}, '(', ')')
	if !ok {
		t.Fatal("expected a match")
	}
	text, _ := c.LineText(0)
	if got := text[r.From.Column:r.To.Column]; got != "b, c" {
		t.Errorf("inner text = %q, want %q", got, "b, c")
	}
}

func TestFindBalancedCharsAtOuter(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "f(a, g(b, c), d)")
	r, ok := c.FindBalancedCharsAt(position.Pos{Line: 0, Column: 2}, '(', ')')
	if !ok {
		t.Fatal("expected a match")
	}
	text, _ := c.LineText(0)
	if got := text[r.From.Column:r.To.Column]; got != "a, g(b, c), d" {
		t.Errorf("inner text = %q", got)
	}
}

func TestWordsFromClassifiesAndWalksBothWays(t *testing.T) {
	c := New()
	c.InsertText(position.Pos{}, "foo bar baz")
	w, left, right := c.WordsFrom(position.Pos{Line: 0, Column: 5}) // inside "bar"
	if w.Text != "bar" || w.Kind != WordIdentifier {
		t.Fatalf("WordAt = %+v, want bar/Identifier", w)
	}
	lw, ok := left.Next()
	if !ok || lw.Text != " " {
		t.Fatalf("left.Next() = %+v, ok=%v, want space", lw, ok)
	}
	lw, ok = left.Next()
	if !ok || lw.Text != "foo" {
		t.Fatalf("left.Next() = %+v, ok=%v, want foo", lw, ok)
	}
	rw, ok := right.Next()
	if !ok || rw.Text != " " {
		t.Fatalf("right.Next() = %+v, ok=%v, want space", rw, ok)
	}
	rw, ok = right.Next()
	if !ok || rw.Text != "baz" {
		t.Fatalf("right.Next() = %+v, ok=%v, want baz", rw, ok)
	}
}

func TestDisplayLenSeparatesTabsFromChars(t *testing.T) {
	c := New(WithTabWidth(4))
	c.InsertText(position.Pos{}, "a\tb")
	d, err := c.LineDisplayLen(0)
	if err != nil {
		t.Fatal(err)
	}
	if d.Chars != 2 || d.Tabs != 1 {
		t.Fatalf("DisplayLen = %+v, want Chars=2 Tabs=1", d)
	}
	if got := d.Width(4); got != 6 {
		t.Errorf("Width(4) = %d, want 6", got)
	}
	c.SetTabWidth(8)
	d2, _ := c.LineDisplayLen(0)
	if d2 != d {
		t.Errorf("changing tab width should not invalidate the cache: got %+v", d2)
	}
}
