package pk2

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrTruncated          = errors.New("pk2: truncated input")
	ErrUnsupportedVersion = errors.New("pk2: unsupported version")
	ErrIO                 = errors.New("pk2: unable to access file")
	ErrNotFound           = errors.New("pk2: sprite not found")
	ErrNoReference        = errors.New("pk2: reference is empty")
)

// FormatError reports a structural problem with the input, along with the
// offset at which it was detected and the size that was expected there.
type FormatError struct {
	Err    error // ErrTruncated or ErrUnsupportedVersion
	Offset int   // Offending byte offset
	Size   int   // Expected size, if known
}

// Error implements error
func (e *FormatError) Error() string {
	switch {
	case errors.Is(e.Err, ErrTruncated):
		return fmt.Sprintf("%v: got %d bytes, want %d", e.Err, e.Offset, e.Size)
	default:
		return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
	}
}

// Unwrap returns the underlying error kind
func (e *FormatError) Unwrap() error {
	return e.Err
}
