package history

import (
	"reflect"
	"testing"

	"github.com/modaltext/core/internal/engine/position"
)

func p(line, col uint32) position.Pos { return position.Pos{Line: line, Column: col} }
func rng(fromLine, fromCol, toLine, toCol uint32) position.Range {
	return position.Range{From: p(fromLine, fromCol), To: p(toLine, toCol)}
}

func TestScenario1InsertMerges(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "abc"})
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 3, 0, 6), Text: "def"})

	got := h.UndoEdits()
	want := []Edit{{Kind: Delete, Range: rng(0, 0, 0, 6), Text: "abcdef"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UndoEdits() = %v, want %v", got, want)
	}
}

func TestScenario2BackwardBackspaceMerge(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Delete, Range: rng(0, 3, 0, 6), Text: "abc"})
	h.AddEdit(Edit{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "def"})

	got := h.UndoEdits()
	want := []Edit{{Kind: Insert, Range: rng(0, 0, 0, 6), Text: "defabc"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UndoEdits() = %v, want %v", got, want)
	}
}

func TestScenario3InsertDeleteSuffix(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 6), Text: "abcdef"})
	h.AddEdit(Edit{Kind: Delete, Range: rng(0, 3, 0, 6), Text: "def"})

	got := h.UndoEdits()
	want := []Edit{{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "abc"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UndoEdits() = %v, want %v", got, want)
	}
}

func TestInsertDeleteExactAnnihilates(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "abc"})
	h.AddEdit(Edit{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "abc"})

	if h.CanUndo() {
		t.Fatal("expected the exact insert+delete pair to cancel out entirely")
	}
	if got := h.UndoEdits(); got != nil {
		t.Fatalf("UndoEdits() = %v, want nil", got)
	}
}

func TestInsertDeletePrefixShrinksFromStart(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 6), Text: "abcdef"})
	h.AddEdit(Edit{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "abc"})

	got := h.UndoEdits()
	want := []Edit{{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "def"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UndoEdits() = %v, want %v", got, want)
	}
}

func TestInsertOverDeleteEndConvertsToDelete(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 2, 0, 5), Text: "abc"})
	// deletes the inserted "abc" plus two bytes that existed before it.
	h.AddEdit(Edit{Kind: Delete, Range: rng(0, 0, 0, 5), Text: "xyabc"})

	got := h.UndoEdits()
	want := []Edit{{Kind: Insert, Range: rng(0, 0, 0, 2), Text: "xy"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UndoEdits() = %v, want %v", got, want)
	}
}

func TestDeleteInsertNeverMerges(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "abc"})
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "xyz"})

	h.CommitEdits()
	if h.GroupCount() != 1 {
		t.Fatalf("GroupCount() = %d, want 1 (one group, two unmerged edits)", h.GroupCount())
	}
}

func TestUnrelatedEditsDoNotMerge(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "abc"})
	h.AddEdit(Edit{Kind: Insert, Range: rng(5, 0, 5, 3), Text: "xyz"})

	got := h.UndoEdits()
	want := []Edit{
		{Kind: Delete, Range: rng(5, 0, 5, 3), Text: "xyz"},
		{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "abc"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UndoEdits() = %v, want %v", got, want)
	}
}

func TestCommitSeparatesGroups(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "abc"})
	h.CommitEdits()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 3, 0, 6), Text: "def"})
	h.CommitEdits()

	if h.GroupCount() != 2 {
		t.Fatalf("GroupCount() = %d, want 2", h.GroupCount())
	}
	got := h.UndoEdits()
	want := []Edit{{Kind: Delete, Range: rng(0, 3, 0, 6), Text: "def"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("first UndoEdits() = %v, want %v", got, want)
	}
	got = h.UndoEdits()
	want = []Edit{{Kind: Delete, Range: rng(0, 0, 0, 3), Text: "abc"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("second UndoEdits() = %v, want %v", got, want)
	}
	if h.CanUndo() {
		t.Fatal("expected nothing left to undo")
	}
}

func TestRedoReplaysInOriginalOrder(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "abc"})
	h.CommitEdits()

	h.UndoEdits()
	if !h.CanRedo() {
		t.Fatal("expected a redo to be available")
	}
	got := h.RedoEdits()
	want := []Edit{{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "abc"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RedoEdits() = %v, want %v", got, want)
	}
	if h.CanRedo() {
		t.Fatal("expected no further redo")
	}
}

func TestNewEditAfterUndoDiscardsRedoHistory(t *testing.T) {
	h := New()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 0, 0, 3), Text: "abc"})
	h.CommitEdits()
	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 3, 0, 6), Text: "def"})
	h.CommitEdits()

	h.UndoEdits() // back to after "abc"
	if !h.CanRedo() {
		t.Fatal("expected redo available before a new edit")
	}

	h.AddEdit(Edit{Kind: Insert, Range: rng(0, 3, 0, 6), Text: "xyz"})
	h.CommitEdits()

	if h.CanRedo() {
		t.Fatal("a new edit after undo should discard redo history")
	}
	if h.GroupCount() != 2 {
		t.Fatalf("GroupCount() = %d, want 2", h.GroupCount())
	}
	got := h.UndoEdits()
	want := []Edit{{Kind: Delete, Range: rng(0, 3, 0, 6), Text: "xyz"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UndoEdits() = %v, want %v", got, want)
	}
}

func TestEmptyHistoryCannotUndoOrRedo(t *testing.T) {
	h := New()
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("expected a fresh history to have nothing to undo or redo")
	}
	if got := h.UndoEdits(); got != nil {
		t.Errorf("UndoEdits() = %v, want nil", got)
	}
	if got := h.RedoEdits(); got != nil {
		t.Errorf("RedoEdits() = %v, want nil", got)
	}
}
