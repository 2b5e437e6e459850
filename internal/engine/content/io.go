package content

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/modaltext/core/internal/engine/position"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read replaces all content with lines read from r. A trailing CR then LF
// is stripped from each line, a leading UTF-8 BOM is stripped if present,
// and the result always has at least one line.
func (c *Content) Read(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("content: read: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	raw := bytes.Split(data, []byte("\n"))
	if len(raw) > 1 && len(raw[len(raw)-1]) == 0 {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		raw = [][]byte{{}}
	}

	for _, l := range c.lines {
		c.releaseLine(l)
	}
	lines := make([]*line, len(raw))
	for i, r := range raw {
		r = bytes.TrimSuffix(r, []byte("\r"))
		lines[i] = c.acquireLine(append([]byte(nil), r...))
	}
	c.lines = lines
	c.revision = position.NextRevisionID()
	return nil
}

// Write emits each line followed by a single LF.
func (c *Content) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, l := range c.lines {
		if _, err := bw.Write(l.text); err != nil {
			return fmt.Errorf("content: write: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("content: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("content: write: %w", err)
	}
	return nil
}
