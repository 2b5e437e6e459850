package buffer

import "errors"

// Read errors. ErrInvalidData covers non-UTF-8 file content: unlike
// content.Content, which stores lines as raw bytes and never validates
// encoding, a file read validates UTF-8 up front so a binary file never
// silently becomes a buffer full of mojibake.
var (
	ErrFileNotFound = errors.New("buffer: file not found")
	ErrInvalidData  = errors.New("buffer: invalid data while reading file")
	ErrOtherRead    = errors.New("buffer: could not read file")
)

// Write errors.
var (
	ErrSavingDisabled      = errors.New("buffer: saving is disabled for this buffer")
	ErrCouldNotWriteToFile = errors.New("buffer: could not write to file")
)

// ErrUnknownHandle names a Handle that no longer (or never did) address a
// live Buffer. No Collection method returns it: they report an unknown
// handle with a false result or by doing nothing.
var ErrUnknownHandle = errors.New("buffer: unknown handle")
