// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package pk2

import (
	"fmt"
)

// RecordSize is the size in bytes of a sprite record, excluding the version tag.
const RecordSize = 1668

// Encoding describes how the bytes of a field element are interpreted.
type Encoding uint8

// Field encodings
const (
	EncodingPadding Encoding = iota // Alignment gap, carries no data
	EncodingText                    // Null-padded fixed-length text
	EncodingUint8                   // Unsigned byte
	EncodingUint32                  // Little-endian unsigned 32-bit integer
	EncodingFloat64                 // Little-endian IEEE-754 double
	EncodingBool                    // Single byte, any non-zero value is true
)

// String returns a readable name of the encoding
func (e Encoding) String() string {
	switch e {
	case EncodingPadding:
		return "padding"
	case EncodingText:
		return "text"
	case EncodingUint8:
		return "uint8"
	case EncodingUint32:
		return "uint32"
	case EncodingFloat64:
		return "float64"
	case EncodingBool:
		return "bool"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// alignment returns the natural alignment of an element of the given width
func (e Encoding) alignment(width int) int {
	switch e {
	case EncodingUint32, EncodingFloat64:
		return width
	default:
		return 1
	}
}

// Field describes one entry of the record layout: Count consecutive elements
// of Width bytes each, starting at Offset.
type Field struct {
	Name     string   // Name of the field
	Offset   int      // Offset of the first element within the record
	Width    int      // Size of a single element
	Count    int      // Number of elements
	Encoding Encoding // Interpretation of each element

	ref func(s *Sprite, i int) any // Destination of the i-th element
}

// Size returns the total size of the field in bytes
func (f Field) Size() int {
	return f.Width * f.Count
}

// End returns the offset right after the field
func (f Field) End() int {
	return f.Offset + f.Size()
}

// String returns a readable description of the field
func (f Field) String() string {
	return fmt.Sprintf("%s@%d[%dx%d %s]", f.Name, f.Offset, f.Count, f.Width, f.Encoding)
}

// Values returns the decoded elements of the field within the sprite. Text
// elements are returned as strings, padding yields nil.
func (f Field) Values(s *Sprite) []any {
	if f.ref == nil {
		return nil
	}

	out := make([]any, 0, f.Count)
	for i := 0; i < f.Count; i++ {
		switch v := f.ref(s, i).(type) {
		case []byte:
			out = append(out, readStringFromBytes(v))
		case *uint8:
			out = append(out, *v)
		case *uint32:
			out = append(out, *v)
		case *float64:
			out = append(out, *v)
		case *bool:
			out = append(out, *v)
		}
	}
	return out
}

// layout is the record layout, built once
var layout = buildLayout()

// Layout returns a copy of the ordered record layout, including padding.
func Layout() []Field {
	out := make([]Field, len(layout))
	copy(out, layout)
	return out
}

// LookupField returns the layout entry with the given name
func LookupField(name string) (Field, bool) {
	for _, f := range layout {
		if f.Name == name && f.Encoding != EncodingPadding {
			return f, true
		}
	}
	return Field{}, false
}

// ValidateLayout checks that the fields are contiguous, that every multi-byte
// element sits on its natural alignment and that the layout spans exactly
// RecordSize bytes.
func ValidateLayout(fields []Field) error {
	end := 0
	for _, f := range fields {
		switch {
		case f.Width <= 0 || f.Count <= 0:
			return fmt.Errorf("invalid field %s: empty", f)
		case f.Offset < end:
			return fmt.Errorf("invalid field %s: overlaps previous field ending at %d", f, end)
		case f.Offset > end:
			return fmt.Errorf("invalid field %s: gap of %d bytes after offset %d", f, f.Offset-end, end)
		case f.Offset%f.Encoding.alignment(f.Width) != 0:
			return fmt.Errorf("invalid field %s: misaligned", f)
		}
		end = f.End()
	}

	if end != RecordSize {
		return fmt.Errorf("invalid layout: spans %d bytes, want %d", end, RecordSize)
	}
	return nil
}

// layoutBuilder appends fields the way a C compiler lays out a struct: each
// element is aligned to its own width and alignment gaps become padding fields.
type layoutBuilder struct {
	fields []Field
	offset int
}

func (b *layoutBuilder) add(name string, enc Encoding, width, count int, ref func(*Sprite, int) any) {
	if pad := b.offset % enc.alignment(width); pad != 0 {
		b.pad(enc.alignment(width) - pad)
	}

	b.fields = append(b.fields, Field{
		Name:     name,
		Offset:   b.offset,
		Width:    width,
		Count:    count,
		Encoding: enc,
		ref:      ref,
	})
	b.offset += width * count
}

func (b *layoutBuilder) pad(n int) {
	b.fields = append(b.fields, Field{
		Name:     "padding",
		Offset:   b.offset,
		Width:    1,
		Count:    n,
		Encoding: EncodingPadding,
	})
	b.offset += n
}

func (b *layoutBuilder) text(name string, width, count int, ref func(*Sprite, int) any) {
	b.add(name, EncodingText, width, count, ref)
}

func (b *layoutBuilder) u8(name string, ref func(*Sprite) *uint8) {
	b.add(name, EncodingUint8, 1, 1, func(s *Sprite, _ int) any { return ref(s) })
}

func (b *layoutBuilder) u32(name string, ref func(*Sprite) *uint32) {
	b.add(name, EncodingUint32, 4, 1, func(s *Sprite, _ int) any { return ref(s) })
}

func (b *layoutBuilder) f64(name string, ref func(*Sprite) *float64) {
	b.add(name, EncodingFloat64, 8, 1, func(s *Sprite, _ int) any { return ref(s) })
}

func (b *layoutBuilder) flag(name string, ref func(*Sprite) *bool) {
	b.add(name, EncodingBool, 1, 1, func(s *Sprite, _ int) any { return ref(s) })
}

// buildLayout declares the sprite record in on-disk order
func buildLayout() []Field {
	b := new(layoutBuilder)
	b.u32("type", func(s *Sprite) *uint32 { return (*uint32)(&s.Type) })
	b.text("image_path", PathLength, 1, func(s *Sprite, _ int) any { return s.ImagePath[:] })
	b.text("sound_paths", PathLength, SoundSlots, func(s *Sprite, i int) any { return s.SoundPaths[i][:] })
	b.add("sound_types", EncodingUint32, 4, SoundSlots, func(s *Sprite, i int) any { return &s.SoundTypes[i] })
	b.u8("frame_count", func(s *Sprite) *uint8 { return &s.FrameCount })

	// The animation entry is a struct of bytes only, so it packs without gaps
	for i := 0; i < AnimationSlots; i++ {
		prefix := fmt.Sprintf("animations[%d]", i)
		b.add(prefix+".sequence", EncodingUint8, 1, SequenceLength, func(s *Sprite, j int) any { return &s.Animations[i].Sequence[j] })
		b.u8(prefix+".frames", func(s *Sprite) *uint8 { return &s.Animations[i].Frames })
		b.flag(prefix+".loop", func(s *Sprite) *bool { return &s.Animations[i].Loop })
	}

	b.u8("animation_count", func(s *Sprite) *uint8 { return &s.AnimationCount })
	b.u8("frame_rate", func(s *Sprite) *uint8 { return &s.FrameRate })
	b.u32("first_frame_x", func(s *Sprite) *uint32 { return &s.FrameX })
	b.u32("first_frame_y", func(s *Sprite) *uint32 { return &s.FrameY })
	b.u32("frame_width", func(s *Sprite) *uint32 { return &s.FrameWidth })
	b.u32("frame_height", func(s *Sprite) *uint32 { return &s.FrameHeight })
	b.u32("frame_spacing", func(s *Sprite) *uint32 { return &s.FrameSpacing })
	b.text("name", NameLength, 1, func(s *Sprite, _ int) any { return s.Name[:] })
	b.u32("width", func(s *Sprite) *uint32 { return &s.Width })
	b.u32("height", func(s *Sprite) *uint32 { return &s.Height })
	b.f64("weight", func(s *Sprite) *float64 { return &s.Weight })
	b.flag("enemy", func(s *Sprite) *bool { return &s.Enemy })
	b.u32("energy", func(s *Sprite) *uint32 { return &s.Energy })
	b.u32("damage", func(s *Sprite) *uint32 { return &s.Damage })
	b.u8("damage_type", func(s *Sprite) *uint8 { return &s.DamageType })
	b.u8("protection_type", func(s *Sprite) *uint8 { return &s.ProtectionType })
	b.u32("score", func(s *Sprite) *uint32 { return &s.Score })
	b.add("ai", EncodingUint32, 4, AISlots, func(s *Sprite, i int) any { return &s.AI[i] })
	b.u8("max_jump", func(s *Sprite) *uint8 { return &s.MaxJump })
	b.f64("max_speed", func(s *Sprite) *float64 { return &s.MaxSpeed })
	b.u32("charge_time", func(s *Sprite) *uint32 { return &s.ChargeTime })
	b.u8("color", func(s *Sprite) *uint8 { return (*uint8)(&s.Color) })
	b.flag("wall", func(s *Sprite) *bool { return &s.Wall })
	b.u32("destruction", func(s *Sprite) *uint32 { return &s.Destruction })
	b.flag("opens_locks", func(s *Sprite) *bool { return &s.OpensLocks })
	b.flag("vibrates", func(s *Sprite) *bool { return &s.Vibrates })
	b.u8("bonus_count", func(s *Sprite) *uint8 { return &s.BonusCount })
	b.u32("attack1_time", func(s *Sprite) *uint32 { return &s.AttackOneTime })
	b.u32("attack2_time", func(s *Sprite) *uint32 { return &s.AttackTwoTime })
	b.u32("parallax_type", func(s *Sprite) *uint32 { return &s.ParallaxType })
	b.text("transforms_into", PathLength, 1, func(s *Sprite, _ int) any { return s.TransformsInto[:] })
	b.text("bonus", PathLength, 1, func(s *Sprite, _ int) any { return s.Bonus[:] })
	b.text("ammo1", PathLength, 1, func(s *Sprite, _ int) any { return s.AmmoOne[:] })
	b.text("ammo2", PathLength, 1, func(s *Sprite, _ int) any { return s.AmmoTwo[:] })
	b.flag("tile_check", func(s *Sprite) *bool { return &s.TileCheck })
	b.u32("sound_frequency", func(s *Sprite) *uint32 { return &s.SoundFrequency })
	b.flag("random_frequency", func(s *Sprite) *bool { return &s.RandomFrequency })
	b.flag("wall_up", func(s *Sprite) *bool { return &s.WallUp })
	b.flag("wall_down", func(s *Sprite) *bool { return &s.WallDown })
	b.flag("wall_right", func(s *Sprite) *bool { return &s.WallRight })
	b.flag("wall_left", func(s *Sprite) *bool { return &s.WallLeft })
	b.u8("transparency", func(s *Sprite) *uint8 { return &s.Transparency })
	b.flag("glows", func(s *Sprite) *bool { return &s.Glows })
	b.u32("fire_charge_delay", func(s *Sprite) *uint32 { return &s.FireChargeDelay })
	b.flag("can_glide", func(s *Sprite) *bool { return &s.CanGlide })
	b.flag("boss", func(s *Sprite) *bool { return &s.Boss })
	b.flag("always_drops_bonus", func(s *Sprite) *bool { return &s.AlwaysDropsBonus })
	b.flag("can_swim", func(s *Sprite) *bool { return &s.CanSwim })
	return b.fields
}
