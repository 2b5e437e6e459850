package cursor

import "errors"

var (
	// ErrTooManyCursors is returned by MutGuard.Add when the collection
	// already holds MaxCursors cursors.
	ErrTooManyCursors = errors.New("cursor: collection already holds the maximum number of cursors")
	// ErrIndexOutOfRange is returned by index-taking guard operations.
	ErrIndexOutOfRange = errors.New("cursor: index out of range")
	// ErrGuardReleased is the panic value when a MutGuard is used after Release.
	ErrGuardReleased = errors.New("cursor: guard used after release")
)
