package history

import (
	"strings"

	"github.com/modaltext/core/internal/engine/position"
)

// mergeOutcome is the result of testing whether a new edit n merges with
// the previous edit p at the current scan position.
type mergeOutcome struct {
	matched    bool
	annihilate bool // Insert-Delete exact cancel: drop p, no replacement
	breakNow   bool // Delete-Insert: stop scanning, force a fresh append
	edit       Edit // valid when matched && !annihilate: p's replacement
}

// mergeEdits implements the §4.D case table for a pair (previous, new).
func mergeEdits(p, n Edit) mergeOutcome {
	switch {
	case p.Kind == Delete && n.Kind == Insert:
		return mergeOutcome{breakNow: true}

	case p.Kind == Insert && n.Kind == Insert:
		switch {
		case n.Range.From == p.Range.To: // contiguous
			end := position.Insert(p.Range.To, n.Range)
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Insert, Range: position.Range{From: p.Range.From, To: end}, Text: p.Text + n.Text,
			}}
		case n.Range.From == p.Range.From: // at-point
			end := position.Insert(p.Range.To, n.Range)
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Insert, Range: position.Range{From: p.Range.From, To: end}, Text: n.Text + p.Text,
			}}
		}

	case p.Kind == Delete && n.Kind == Delete:
		switch {
		case n.Range.From == p.Range.From: // same anchor, forward delete
			end := position.Insert(p.Range.To, n.Range)
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Delete, Range: position.Range{From: p.Range.From, To: end}, Text: p.Text + n.Text,
			}}
		case n.Range.To == p.Range.From: // backward, backspace
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Delete, Range: position.Range{From: n.Range.From, To: p.Range.To}, Text: n.Text + p.Text,
			}}
		}

	case p.Kind == Insert && n.Kind == Delete:
		switch {
		case p.Range == n.Range && p.Text == n.Text: // exact
			return mergeOutcome{matched: true, annihilate: true}

		case p.Range.From == n.Range.From && n.Range.To.Before(p.Range.To) && strings.HasPrefix(p.Text, n.Text):
			newText := p.Text[len(n.Text):]
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Insert, Range: position.Range{From: p.Range.From, To: endPosAfterText(p.Range.From, newText)}, Text: newText,
			}}

		case p.Range.To == n.Range.To && n.Range.From.After(p.Range.From) && strings.HasSuffix(p.Text, n.Text):
			newText := p.Text[:len(p.Text)-len(n.Text)]
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Insert, Range: position.Range{From: p.Range.From, To: endPosAfterText(p.Range.From, newText)}, Text: newText,
			}}

		case n.Range.From == p.Range.From && n.Range.To.After(p.Range.To) && strings.HasPrefix(n.Text, p.Text):
			excess := n.Text[len(p.Text):]
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Delete, Range: position.Range{From: p.Range.From, To: endPosAfterText(p.Range.From, excess)}, Text: excess,
			}}

		case n.Range.To == p.Range.To && n.Range.From.Before(p.Range.From) && strings.HasSuffix(n.Text, p.Text):
			excess := n.Text[:len(n.Text)-len(p.Text)]
			return mergeOutcome{matched: true, edit: Edit{
				Kind: Delete, Range: position.Range{From: n.Range.From, To: p.Range.From}, Text: excess,
			}}
		}
	}
	return mergeOutcome{}
}

// shiftPast re-expresses n's range as it would have been before p was
// applied, so it can be compared against the edit preceding p in the same
// group. This is the exact inverse of applying p.
func shiftPast(n Edit, p Edit) Edit {
	from, to := n.Range.From, n.Range.To
	if p.Kind == Insert {
		from, to = position.Delete(from, p.Range), position.Delete(to, p.Range)
	} else {
		from, to = position.Insert(from, p.Range), position.Insert(to, p.Range)
	}
	return Edit{Kind: n.Kind, Range: position.Range{From: from, To: to}, Text: n.Text}
}

// undoEffect reverses p's effect on r (used to rebase a later group
// member's range when an earlier member's size changes).
func undoEffect(r position.Range, p Edit) position.Range {
	if p.Kind == Insert {
		return position.Range{From: position.Delete(r.From, p.Range), To: position.Delete(r.To, p.Range)}
	}
	return position.Range{From: position.Insert(r.From, p.Range), To: position.Insert(r.To, p.Range)}
}

// applyEffect applies e's effect to r.
func applyEffect(r position.Range, e Edit) position.Range {
	if e.Kind == Insert {
		return position.Range{From: position.Insert(r.From, e.Range), To: position.Insert(r.To, e.Range)}
	}
	return position.Range{From: position.Delete(r.From, e.Range), To: position.Delete(r.To, e.Range)}
}
