// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package pk2

import (
	"bytes"
	"fmt"

	"github.com/teawithsand/pk2-sprite/internal/sprfile"
)

// Version is the tag stored in the first four bytes of a sprite file.
type Version [sprfile.TagSize]byte

// Version13 is the tag of the only supported sprite file revision.
var Version13 = Version{'1', '.', '3', 0}

// String returns the version text before the first zero byte
func (v Version) String() string {
	if n := bytes.IndexByte(v[:], 0); n >= 0 {
		return string(v[:n])
	}
	return string(v[:])
}

// Supported returns whether records tagged with this version can be decoded
func (v Version) Supported() bool {
	return v == Version13
}

// File is a decoded sprite file.
type File struct {
	Version  Version // Version tag
	Sprite   *Sprite // Decoded record
	Trailing int     // Number of bytes following the record
}

// ParseFile checks the version tag of the file contents and decodes the
// record that follows it.
func ParseFile(data []byte) (*File, error) {
	if len(data) < sprfile.TagSize {
		return nil, &FormatError{Err: ErrTruncated, Offset: len(data), Size: sprfile.TagSize + RecordSize}
	}

	var version Version
	copy(version[:], data)
	if !version.Supported() {
		return nil, &FormatError{Err: ErrUnsupportedVersion, Offset: 0, Size: sprfile.TagSize}
	}

	sprite, err := Decode(data[sprfile.TagSize:])
	if err != nil {
		return nil, &FormatError{Err: ErrTruncated, Offset: len(data), Size: sprfile.TagSize + RecordSize}
	}

	return &File{
		Version:  version,
		Sprite:   sprite,
		Trailing: len(data) - sprfile.TagSize - RecordSize,
	}, nil
}

// ReadFile reads and decodes the sprite file at the given path
func ReadFile(path string) (*File, error) {
	reader, err := sprfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrIO, path, err)
	}
	defer reader.Close()

	data, err := reader.Read(0, reader.Len())
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrIO, path, err)
	}

	file, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("pk2: unable to decode '%s': %w", path, err)
	}
	return file, nil
}

// EncodeFile encodes the sprite, prefixed with the supported version tag
func EncodeFile(s *Sprite) []byte {
	out := make([]byte, 0, sprfile.TagSize+RecordSize)
	out = append(out, Version13[:]...)
	return AppendEncode(out, s)
}
