package lint

import (
	"github.com/modaltext/core/internal/engine/history"
	"github.com/modaltext/core/internal/engine/position"
)

// Set holds a buffer's diagnostics and breakpoints side by side, both
// shifted the same way cursors are whenever the buffer's text changes.
type Set struct {
	diagnostics []Diagnostic
	breakpoints []Breakpoint
}

// NewSet returns an empty Set.
func NewSet() *Set { return &Set{} }

// Diagnostics returns the current diagnostics, in ingestion order.
func (s *Set) Diagnostics() []Diagnostic { return s.diagnostics }

// SetDiagnostics replaces the diagnostic list wholesale, as happens
// whenever an external linter reports a fresh batch.
func (s *Set) SetDiagnostics(diags []Diagnostic) { s.diagnostics = diags }

// Breakpoints returns the current breakpoints, ordered by line.
func (s *Set) Breakpoints() []Breakpoint { return s.breakpoints }

// ToggleBreakpoint removes the breakpoint at line if there is one, and
// otherwise inserts an enabled one, preserving breakpoints' sort order by
// line.
func (s *Set) ToggleBreakpoint(line uint32) {
	for i, bp := range s.breakpoints {
		if bp.Line == line {
			s.breakpoints = append(s.breakpoints[:i], s.breakpoints[i+1:]...)
			return
		}
	}
	i := 0
	for i < len(s.breakpoints) && s.breakpoints[i].Line < line {
		i++
	}
	s.breakpoints = append(s.breakpoints, Breakpoint{})
	copy(s.breakpoints[i+1:], s.breakpoints[i:])
	s.breakpoints[i] = Breakpoint{Line: line, Enabled: true}
}

func shiftPos(e history.Edit) func(position.Pos) position.Pos {
	if e.Kind == history.Insert {
		return func(p position.Pos) position.Pos { return position.Insert(p, e.Range) }
	}
	return func(p position.Pos) position.Pos { return position.Delete(p, e.Range) }
}

// ApplyEdit shifts every diagnostic and breakpoint across e, the same
// way a cursor.Collection shifts across edits. It reports whether any
// breakpoint moved or was dropped, so the caller knows to re-emit a
// breakpoints-changed notification.
func (s *Set) ApplyEdit(e history.Edit) (breakpointsChanged bool) {
	shift := shiftPos(e)

	for i, d := range s.diagnostics {
		s.diagnostics[i] = Diagnostic{
			Range:    position.Range{From: shift(d.Range.From), To: shift(d.Range.To)},
			Severity: d.Severity,
			Source:   d.Source,
			Message:  d.Message,
		}
	}

	kept := s.breakpoints[:0]
	for _, bp := range s.breakpoints {
		lineStart := position.Pos{Line: bp.Line, Column: 0}
		lineEnd := position.Pos{Line: bp.Line + 1, Column: 0}
		newStart, newEnd := shift(lineStart), shift(lineEnd)
		if newEnd.Line <= newStart.Line {
			breakpointsChanged = true
			continue
		}
		if newStart.Line != bp.Line {
			breakpointsChanged = true
		}
		bp.Line = newStart.Line
		kept = append(kept, bp)
	}
	s.breakpoints = kept

	return breakpointsChanged
}
