package glob

import "errors"

// ErrInvalidGlob is the single error kind a glob pattern can fail to
// compile with.
var ErrInvalidGlob = errors.New("invalid glob pattern")
