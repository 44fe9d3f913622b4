// Package sprfile provides memory-mapped access to sprite prototype files.
package sprfile

import (
	"errors"
	"fmt"

	"codeberg.org/go-mmap/mmap"
)

// TagSize is the size of the version tag at the beginning of every file.
const TagSize = 4

// Errors
var (
	ErrReaderClosed = errors.New("sprfile: reader is closed")
	ErrOutOfBounds  = errors.New("sprfile: read operation would exceed file bounds")
)

// Reader provides access to the content of a single sprite file
type Reader struct {
	file   *mmap.File // Mapped file
	closed bool       // Flag to track if reader is closed
}

// Open maps the file into memory for reading
func Open(filename string) (*Reader, error) {
	file, err := mmap.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to map sprite file: %w", err)
	}

	return &Reader{file: file}, nil
}

// Len returns the size of the file in bytes
func (r *Reader) Len() int {
	if r.closed {
		return 0
	}
	return r.file.Len()
}

// Read returns a copy of length bytes starting at the offset
func (r *Reader) Read(offset, length int) ([]byte, error) {
	out := make([]byte, length)
	if err := r.ReadAt(out, offset); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadAt fills p with the bytes starting at the offset
func (r *Reader) ReadAt(p []byte, offset int) error {
	switch {
	case r.closed:
		return ErrReaderClosed
	case offset < 0 || offset+len(p) > r.file.Len():
		return ErrOutOfBounds
	case len(p) == 0:
		return nil
	}

	if _, err := r.file.ReadAt(p, int64(offset)); err != nil {
		return fmt.Errorf("failed to read %d bytes at offset %d: %w", len(p), offset, err)
	}
	return nil
}

// Close releases the mapping
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("failed to close sprite file: %w", err)
	}
	return nil
}
