package highlight

import "github.com/modaltext/core/internal/engine/pattern"

// ParseState is what one line's parse leaves behind for the next line to
// resume from: either Finished, or mid-match against one rule.
type ParseState struct {
	mid          bool
	ruleIndex    int
	patternState pattern.State
}

// Finished is the start-of-buffer parse state, and ParseState's zero value.
var Finished = ParseState{}

func unfinished(ruleIndex int, s pattern.State) ParseState {
	return ParseState{mid: true, ruleIndex: ruleIndex, patternState: s}
}

// IsFinished reports whether no rule is mid-match.
func (s ParseState) IsFinished() bool { return !s.mid }
