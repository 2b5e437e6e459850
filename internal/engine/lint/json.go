package lint

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/modaltext/core/internal/engine/position"
)

// ParseJSONDiagnostics decodes one diagnostic per line from r, the shape
// real LSP-adjacent CLI linters emit on stdout:
//
//	{"range":{"start":{"line":3,"character":1},"end":{"line":3,"character":9}},
//	 "severity":1,"source":"golint","message":"exported function Foo should have a comment"}
//
// Unknown extra fields are ignored: gjson pulls only the paths this
// function reads, so a linter-specific field never breaks ingestion.
func ParseJSONDiagnostics(r io.Reader) ([]Diagnostic, error) {
	var diagnostics []Diagnostic

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidDiagnosticJSON, lineNo)
		}

		v := gjson.ParseBytes(line)
		diagnostics = append(diagnostics, Diagnostic{
			Range: position.Range{
				From: position.Pos{
					Line:   uint32(v.Get("range.start.line").Int()),
					Column: uint32(v.Get("range.start.character").Int()),
				},
				To: position.Pos{
					Line:   uint32(v.Get("range.end.line").Int()),
					Column: uint32(v.Get("range.end.character").Int()),
				},
			},
			Severity: severityFromJSON(v.Get("severity").Int()),
			Source:   v.Get("source").String(),
			Message:  v.Get("message").String(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return diagnostics, nil
}

func severityFromJSON(n int64) Severity {
	switch n {
	case int64(SeverityError), int64(SeverityWarning), int64(SeverityInfo), int64(SeverityHint):
		return Severity(n)
	default:
		return SeverityError
	}
}
