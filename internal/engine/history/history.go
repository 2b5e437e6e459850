package history

import "github.com/modaltext/core/internal/engine/position"

type groupRange struct {
	Start, End int // half-open range of log indices
}

// record is the internal, arena-backed representation of a logged edit.
type record struct {
	kind               Kind
	rng                position.Range
	textStart, textEnd int
}

// History is an append-only log of edits plus a vector of group ranges
// over that log. It is either "positioned" at a group boundary (ready to
// undo/redo) or "building" a group that new edits may still merge into.
type History struct {
	arena []byte
	log   []record

	groups     []groupRange
	groupIndex int // number of groups currently applied, 0..len(groups)

	building      bool
	buildingStart int // log index where the building group begins
}

// New returns an empty History, positioned with nothing to undo or redo.
func New() *History {
	return &History{}
}

func (h *History) textOf(r record) string {
	return string(h.arena[r.textStart:r.textEnd])
}

func (h *History) appendText(s string) (start, end int) {
	start = len(h.arena)
	h.arena = append(h.arena, s...)
	end = len(h.arena)
	return
}

func (h *History) truncateLogTo(cut int) {
	if cut >= len(h.log) {
		return
	}
	// A merged record's text is appended at the arena's tail, so an earlier
	// record can end past later ones: keep everything any survivor uses.
	arenaCut := 0
	for _, r := range h.log[:cut] {
		if r.textEnd > arenaCut {
			arenaCut = r.textEnd
		}
	}
	h.arena = h.arena[:arenaCut]
	h.log = h.log[:cut]
}

func (h *History) appendNew(e Edit) {
	start, end := h.appendText(e.Text)
	h.log = append(h.log, record{kind: e.Kind, rng: e.Range, textStart: start, textEnd: end})
}

func (h *History) mergeReplace(i int, old record, replacement Edit) {
	start, end := h.appendText(replacement.Text)
	newR := record{kind: replacement.Kind, rng: replacement.Range, textStart: start, textEnd: end}
	for k := i + 1; k < len(h.log); k++ {
		h.log[k].rng = applyEffect(undoEffect(h.log[k].rng, Edit{Kind: old.kind, Range: old.rng}), replacement)
	}
	h.log[i] = newR
}

func (h *History) mergeAnnihilate(i int, old record) {
	oldEdit := Edit{Kind: old.kind, Range: old.rng}
	for k := i + 1; k < len(h.log); k++ {
		h.log[k].rng = undoEffect(h.log[k].rng, oldEdit)
	}
	h.log = append(h.log[:i], h.log[i+1:]...)
}

// tryMerge attempts to fold e into the current building group, scanning
// backward from its most recent edit. It returns true if e was absorbed
// (merged, annihilated, or converted) and no new log entry is needed.
func (h *History) tryMerge(e Edit) bool {
	n := e
	for i := len(h.log) - 1; i >= h.buildingStart; i-- {
		p := h.log[i]
		pEdit := Edit{Kind: p.kind, Range: p.rng, Text: h.textOf(p)}
		outcome := mergeEdits(pEdit, n)
		switch {
		case outcome.breakNow:
			return false
		case outcome.matched && outcome.annihilate:
			h.mergeAnnihilate(i, p)
			return true
		case outcome.matched:
			h.mergeReplace(i, p, outcome.edit)
			return true
		default:
			n = shiftPast(n, pEdit)
		}
	}
	return false
}

// AddEdit records e, merging it into the current building group where
// possible. If the history was positioned, any redo groups past the
// current point are discarded and a new building group starts.
func (h *History) AddEdit(e Edit) {
	if !h.building {
		cut := 0
		if h.groupIndex > 0 {
			cut = h.groups[h.groupIndex-1].End
		}
		h.truncateLogTo(cut)
		h.groups = h.groups[:h.groupIndex]
		h.building = true
		h.buildingStart = cut
	}
	if h.tryMerge(e) {
		return
	}
	h.appendNew(e)
}

// CommitEdits closes the current building group (if any and non-empty),
// transitioning to positioned past it.
func (h *History) CommitEdits() {
	if !h.building {
		return
	}
	if len(h.log) > h.buildingStart {
		h.groups = append(h.groups, groupRange{Start: h.buildingStart, End: len(h.log)})
		h.groupIndex = len(h.groups)
	}
	h.building = false
}

// UndoEdits commits any in-progress group, then returns the edits of the
// previous group in reverse order with Insert/Delete swapped, ready to
// apply. Returns nil if there is nothing to undo.
func (h *History) UndoEdits() []Edit {
	h.CommitEdits()
	if h.groupIndex == 0 {
		return nil
	}
	h.groupIndex--
	g := h.groups[h.groupIndex]
	edits := make([]Edit, 0, g.End-g.Start)
	for i := g.End - 1; i >= g.Start; i-- {
		r := h.log[i]
		edits = append(edits, invert(Edit{Kind: r.kind, Range: r.rng, Text: h.textOf(r)}))
	}
	return edits
}

// RedoEdits commits any in-progress group, then returns the edits of the
// next group in original order. Returns nil if there is nothing to redo.
func (h *History) RedoEdits() []Edit {
	h.CommitEdits()
	if h.groupIndex >= len(h.groups) {
		return nil
	}
	g := h.groups[h.groupIndex]
	edits := make([]Edit, 0, g.End-g.Start)
	for i := g.Start; i < g.End; i++ {
		r := h.log[i]
		edits = append(edits, Edit{Kind: r.kind, Range: r.rng, Text: h.textOf(r)})
	}
	h.groupIndex++
	return edits
}

// CanUndo reports whether UndoEdits would return a non-nil result.
func (h *History) CanUndo() bool {
	return h.groupIndex > 0 || (h.building && len(h.log) > h.buildingStart)
}

// CanRedo reports whether RedoEdits would return a non-nil result.
func (h *History) CanRedo() bool {
	return !h.building && h.groupIndex < len(h.groups)
}

// GroupCount returns the number of committed groups currently retained.
func (h *History) GroupCount() int { return len(h.groups) }

// GroupIndex returns the number of groups currently "applied" (available
// to undo).
func (h *History) GroupIndex() int { return h.groupIndex }
