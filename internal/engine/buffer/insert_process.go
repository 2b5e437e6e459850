package buffer

import (
	"github.com/modaltext/core/internal/engine/event"
	"github.com/modaltext/core/internal/engine/position"
)

// insertProcess tracks a position within one buffer that must keep
// shifting as that buffer is edited, independent of any cursor — for an
// external writer (a formatter, a completion source) streaming text in
// at a point that may move before the writer catches up. Spawning and
// driving the external work itself lives outside this package; only the
// position bookkeeping belongs here.
type insertProcess struct {
	alive  bool
	buffer event.BufferHandle
	pos    position.Pos
}

// ProcessID addresses one tracked insert-process position within a
// Collection.
type ProcessID int
