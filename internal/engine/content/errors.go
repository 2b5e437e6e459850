package content

import "errors"

var (
	// ErrLineOutOfRange is returned when a line index is not within [0, LineCount).
	ErrLineOutOfRange = errors.New("content: line index out of range")
	// ErrPositionOutOfRange is returned when a position's line or column
	// exceeds the buffer's bounds and the caller asked for exact validation
	// rather than saturation.
	ErrPositionOutOfRange = errors.New("content: position out of range")
	// ErrRangeInvalid is returned when a range's From is after its To.
	ErrRangeInvalid = errors.New("content: range has From after To")
)
