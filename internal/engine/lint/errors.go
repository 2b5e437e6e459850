package lint

import "errors"

// ErrInvalidDiagnosticJSON is returned when a line of diagnostic input
// is not valid JSON.
var ErrInvalidDiagnosticJSON = errors.New("invalid diagnostic JSON")
