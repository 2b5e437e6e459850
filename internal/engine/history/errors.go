package history

import "errors"

// ErrNothingToUndo and ErrNothingToRedo are informational sentinels for
// "nothing happened". History itself does not return them: UndoEdits and
// RedoEdits report an empty step by returning nil.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)
