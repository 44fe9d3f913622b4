// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package pk2

import (
	"encoding/binary"
	"math"
)

// Decode decodes a sprite record from the data, which must hold at least
// RecordSize bytes and must not include the version tag. Bytes past the record
// are ignored. The data is not retained.
func Decode(data []byte) (*Sprite, error) {
	if len(data) < RecordSize {
		return nil, &FormatError{Err: ErrTruncated, Offset: len(data), Size: RecordSize}
	}

	s := new(Sprite)
	for _, f := range layout {
		if f.Encoding == EncodingPadding {
			continue
		}

		for i := 0; i < f.Count; i++ {
			at := f.Offset + i*f.Width
			decodeValue(f.ref(s, i), data[at:at+f.Width])
		}
	}

	return s, nil
}

// decodeValue stores the element into the destination returned by a field
func decodeValue(dst any, src []byte) {
	switch v := dst.(type) {
	case []byte:
		copy(v, src)
	case *uint8:
		*v = src[0]
	case *bool:
		*v = src[0] != 0
	case *uint32:
		*v = binary.LittleEndian.Uint32(src)
	case *float64:
		*v = math.Float64frombits(binary.LittleEndian.Uint64(src))
	}
}

// Encode encodes the sprite record into RecordSize bytes, using the same
// layout as Decode. Padding is written as zeroes and booleans as 0 or 1.
func Encode(s *Sprite) []byte {
	return AppendEncode(make([]byte, 0, RecordSize), s)
}

// AppendEncode appends the encoded sprite record to the buffer
func AppendEncode(buffer []byte, s *Sprite) []byte {
	start := len(buffer)
	buffer = append(buffer, make([]byte, RecordSize)...)
	out := buffer[start:]

	for _, f := range layout {
		if f.Encoding == EncodingPadding {
			continue
		}

		for i := 0; i < f.Count; i++ {
			at := f.Offset + i*f.Width
			encodeValue(out[at:at+f.Width], f.ref(s, i))
		}
	}

	return buffer
}

// encodeValue writes the element found at the source of a field
func encodeValue(dst []byte, src any) {
	switch v := src.(type) {
	case []byte:
		copy(dst, v)
	case *uint8:
		dst[0] = *v
	case *bool:
		if *v {
			dst[0] = 1
		}
	case *uint32:
		binary.LittleEndian.PutUint32(dst, *v)
	case *float64:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(*v))
	}
}

// MarshalBinary implements encoding.BinaryMarshaler
func (s *Sprite) MarshalBinary() ([]byte, error) {
	return Encode(s), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (s *Sprite) UnmarshalBinary(data []byte) error {
	out, err := Decode(data)
	if err != nil {
		return err
	}

	*s = *out
	return nil
}
