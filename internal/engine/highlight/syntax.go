package highlight

import (
	"unicode/utf8"

	"github.com/modaltext/core/internal/engine/glob"
	"github.com/modaltext/core/internal/engine/pattern"
)

type rule struct {
	kind    TokenKind
	pattern *pattern.Pattern
}

// Syntax is one file type's token rules plus the Glob selecting which
// paths use it.
type Syntax struct {
	glob  *glob.Glob
	rules []rule
}

// NewSyntax returns an empty Syntax: no glob, no rules. Parsing a line against
// it yields a single Text token spanning the whole line, matching the
// behavior of the default syntax every Collection starts with.
func NewSyntax() *Syntax {
	return &Syntax{}
}

// SetGlob attaches the path glob used to select this syntax.
func (s *Syntax) SetGlob(g *glob.Glob) { s.glob = g }

// Glob returns the syntax's path glob, or nil if none was set.
func (s *Syntax) Glob() *glob.Glob { return s.glob }

// AddRule appends one (kind, pattern) rule. Rules are tried in the order
// added; ParseLine picks the longest match among those that succeed.
func (s *Syntax) AddRule(kind TokenKind, p *pattern.Pattern) {
	s.rules = append(s.rules, rule{kind: kind, pattern: p})
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isCharBoundary(line string, i int) bool {
	if i <= 0 || i >= len(line) {
		return true
	}
	return utf8.RuneStart(line[i])
}

// ParseLine tokenizes one line, resuming from previous (typically the
// prior line's returned state) and returning the state the line after
// this one should resume from.
func (s *Syntax) ParseLine(line string, previous ParseState) ([]Token, ParseState) {
	if len(s.rules) == 0 {
		return []Token{{Kind: Text, From: 0, To: uint32(len(line))}}, Finished
	}

	var tokens []Token
	lineLen := uint32(len(line))
	var lineIndex uint32

	if previous.mid {
		r := s.rules[previous.ruleIndex]
		res := r.pattern.MatchesWithState(line, previous.patternState)
		switch res.Outcome {
		case pattern.Matched:
			tokens = append(tokens, Token{Kind: r.kind, From: 0, To: uint32(res.End)})
			lineIndex = uint32(res.End)
		case pattern.MatchPending:
			tokens = append(tokens, Token{Kind: r.kind, From: 0, To: lineLen})
			return tokens, unfinished(previous.ruleIndex, res.State)
		case pattern.NoMatch:
			// the in-progress construct broke; start fresh from column 0.
		}
	}

	for lineIndex < lineLen {
		slice := line[lineIndex:]
		whitespaceLen := 0
		for whitespaceLen < len(slice) && isASCIIWhitespace(slice[whitespaceLen]) {
			whitespaceLen++
		}
		matchSlice := slice[whitespaceLen:]

		bestIndex := 0
		maxLen := 0
		for i := range s.rules {
			res := s.rules[i].pattern.Matches(matchSlice)
			switch res.Outcome {
			case pattern.Matched:
				if res.End > maxLen {
					maxLen = res.End
					bestIndex = i
				}
			case pattern.MatchPending:
				tokens = append(tokens, Token{Kind: s.rules[i].kind, From: lineIndex, To: lineLen})
				return tokens, unfinished(i, res.State)
			case pattern.NoMatch:
			}
		}

		kind := s.rules[bestIndex].kind
		if maxLen == 0 {
			kind = Text
			n := 0
			for n < len(matchSlice) && isASCIIAlnum(matchSlice[n]) {
				n++
			}
			if n == 0 {
				n = 1
			}
			maxLen = n
		}

		maxLen += whitespaceLen
		from := lineIndex
		next := lineIndex + uint32(maxLen)
		if next > lineLen {
			next = lineLen
		}
		for !isCharBoundary(line, int(next)) {
			next++
		}
		lineIndex = next

		tokens = append(tokens, Token{Kind: kind, From: from, To: lineIndex})
	}

	return tokens, Finished
}

// Handle refers to one Syntax within a Collection. The zero value refers
// to the Collection's default, ruleless syntax.
type Handle struct{ index int }

// Collection holds every known Syntax, selected by matching a path
// against each one's Glob in registration order; index 0 is always the
// default empty syntax every new buffer starts with.
type Collection struct {
	syntaxes []*Syntax
}

// NewCollection returns a Collection containing only the default syntax.
func NewCollection() *Collection {
	return &Collection{syntaxes: []*Syntax{NewSyntax()}}
}

// FindHandleByPath returns the first non-default syntax whose Glob
// matches path.
func (c *Collection) FindHandleByPath(path string) (Handle, bool) {
	for i := 1; i < len(c.syntaxes); i++ {
		if g := c.syntaxes[i].Glob(); g != nil && g.Matches(path) {
			return Handle{index: i}, true
		}
	}
	return Handle{}, false
}

// Add registers a new syntax and returns its handle.
func (c *Collection) Add(s *Syntax) Handle {
	c.syntaxes = append(c.syntaxes, s)
	return Handle{index: len(c.syntaxes) - 1}
}

// Get resolves a handle to its Syntax.
func (c *Collection) Get(h Handle) *Syntax { return c.syntaxes[h.index] }
