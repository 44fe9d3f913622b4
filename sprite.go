// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package pk2

import (
	"bytes"
	"encoding/json"
	"image"
	"math"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Capacities of the fixed-size arrays and text buffers of a sprite record.
const (
	PathLength       = 100 // Length of a file name buffer
	NameLength       = 30  // Length of the display name buffer
	SoundSlots       = 7   // Number of sound paths and sound types
	AnimationSlots   = 20  // Number of animation entries
	AISlots          = 10  // Number of AI type codes
	SequenceLength   = 10  // Number of frame indices in an animation
	DefaultFrequency = 22050
)

// Path is a fixed-length, null-padded file name buffer.
type Path [PathLength]byte

// MakePath creates a path buffer from a string. The string is encoded as
// Windows-1252 and truncated so that the buffer always keeps a terminating zero.
func MakePath(s string) (p Path) {
	writeText(p[:], s)
	return
}

// String returns the text before the first zero byte
func (p Path) String() string {
	return readStringFromBytes(p[:])
}

// MarshalText implements encoding.TextMarshaler
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Name is a fixed-length, null-padded display name buffer.
type Name [NameLength]byte

// MakeName creates a name buffer from a string, see MakePath.
func MakeName(s string) (n Name) {
	writeText(n[:], s)
	return
}

// String returns the text before the first zero byte
func (n Name) String() string {
	return readStringFromBytes(n[:])
}

// MarshalText implements encoding.TextMarshaler
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Animation is a single animation entry. Only the first Frames indices of
// the sequence are part of the animation.
type Animation struct {
	Sequence [SequenceLength]uint8 `json:"sequence"`
	Frames   uint8                 `json:"frames"`
	Loop     bool                  `json:"loop"`
}

// Active returns the frame indices which are part of the animation
func (a Animation) Active() []uint8 {
	return a.Sequence[:min(int(a.Frames), SequenceLength)]
}

// Sprite is a decoded sprite prototype. Every fixed-capacity array is kept
// at its full capacity; the matching count fields tell which entries are valid.
type Sprite struct {
	Type             Type                      `json:"type"`
	ImagePath        Path                      `json:"image_path"`
	SoundPaths       [SoundSlots]Path          `json:"sound_paths"`
	SoundTypes       [SoundSlots]uint32        `json:"sound_types"`
	FrameCount       uint8                     `json:"frame_count"`
	Animations       [AnimationSlots]Animation `json:"animations"`
	AnimationCount   uint8                     `json:"animation_count"`
	FrameRate        uint8                     `json:"frame_rate"`
	FrameX           uint32                    `json:"first_frame_x"`
	FrameY           uint32                    `json:"first_frame_y"`
	FrameWidth       uint32                    `json:"frame_width"`
	FrameHeight      uint32                    `json:"frame_height"`
	FrameSpacing     uint32                    `json:"frame_spacing"`
	Name             Name                      `json:"name"`
	Width            uint32                    `json:"width"`
	Height           uint32                    `json:"height"`
	Weight           float64                   `json:"weight"`
	Enemy            bool                      `json:"enemy"`
	Energy           uint32                    `json:"energy"`
	Damage           uint32                    `json:"damage"`
	DamageType       uint8                     `json:"damage_type"`
	ProtectionType   uint8                     `json:"protection_type"`
	Score            uint32                    `json:"score"`
	AI               [AISlots]uint32           `json:"ai"`
	MaxJump          uint8                     `json:"max_jump"`
	MaxSpeed         float64                   `json:"max_speed"`
	ChargeTime       uint32                    `json:"charge_time"`
	Color            Color                     `json:"color"`
	Wall             bool                      `json:"wall"`
	Destruction      uint32                    `json:"destruction"`
	OpensLocks       bool                      `json:"opens_locks"`
	Vibrates         bool                      `json:"vibrates"`
	BonusCount       uint8                     `json:"bonus_count"`
	AttackOneTime    uint32                    `json:"attack1_time"`
	AttackTwoTime    uint32                    `json:"attack2_time"`
	ParallaxType     uint32                    `json:"parallax_type"`
	TransformsInto   Path                      `json:"transforms_into"`
	Bonus            Path                      `json:"bonus"`
	AmmoOne          Path                      `json:"ammo1"`
	AmmoTwo          Path                      `json:"ammo2"`
	TileCheck        bool                      `json:"tile_check"`
	SoundFrequency   uint32                    `json:"sound_frequency"`
	RandomFrequency  bool                      `json:"random_frequency"`
	WallUp           bool                      `json:"wall_up"`
	WallDown         bool                      `json:"wall_down"`
	WallRight        bool                      `json:"wall_right"`
	WallLeft         bool                      `json:"wall_left"`
	Transparency     uint8                     `json:"transparency"` // unused by the game
	Glows            bool                      `json:"glows"`        // unused by the game
	FireChargeDelay  uint32                    `json:"fire_charge_delay"`
	CanGlide         bool                      `json:"can_glide"`
	Boss             bool                      `json:"boss"` // unused by the game
	AlwaysDropsBonus bool                      `json:"always_drops_bonus"`
	CanSwim          bool                      `json:"can_swim"`
}

// ActiveAnimations returns the animation entries covered by the animation count
func (s *Sprite) ActiveAnimations() []Animation {
	return s.Animations[:min(int(s.AnimationCount), AnimationSlots)]
}

// Animation returns the animation stored in the given slot. The second return
// value is false when the slot is outside the active animations.
func (s *Sprite) Animation(slot AnimationSlot) (Animation, bool) {
	if slot < 0 || int(slot) >= len(s.ActiveAnimations()) {
		return Animation{}, false
	}
	return s.Animations[slot], true
}

// ActiveAI returns the non-zero AI type codes, in order
func (s *Sprite) ActiveAI() []uint32 {
	out := make([]uint32, 0, AISlots)
	for _, ai := range s.AI {
		if ai != 0 {
			out = append(out, ai)
		}
	}
	return out
}

// Sounds returns the sound file names of the non-empty sound slots
func (s *Sprite) Sounds() map[SoundSlot]string {
	out := make(map[SoundSlot]string, SoundSlots)
	for i, p := range s.SoundPaths {
		if name := p.String(); name != "" {
			out[SoundSlot(i)] = name
		}
	}
	return out
}

// Frequency returns the sound frequency, defaulting to 22050 Hz when unset
func (s *Sprite) Frequency() int {
	if s.SoundFrequency == 0 {
		return DefaultFrequency
	}
	return int(s.SoundFrequency)
}

// Reference returns the sprite file name stored in the reference field
func (s *Sprite) Reference(ref Reference) string {
	switch ref {
	case RefTransformsInto:
		return s.TransformsInto.String()
	case RefBonus:
		return s.Bonus.String()
	case RefAmmoOne:
		return s.AmmoOne.String()
	case RefAmmoTwo:
		return s.AmmoTwo.String()
	default:
		return ""
	}
}

// References returns all non-empty references to other sprites
func (s *Sprite) References() map[Reference]string {
	out := make(map[Reference]string, 4)
	for ref := RefTransformsInto; ref <= RefAmmoTwo; ref++ {
		if name := s.Reference(ref); name != "" {
			out[ref] = name
		}
	}
	return out
}

// Frames returns the rectangles of the frames on the sprite sheet. Frames are
// laid out in a single row starting at the first frame position.
func (s *Sprite) Frames() []image.Rectangle {
	frames := make([]image.Rectangle, 0, s.FrameCount)
	x, y := int(s.FrameX), int(s.FrameY)
	w, h := int(s.FrameWidth), int(s.FrameHeight)
	for i := 0; i < int(s.FrameCount); i++ {
		frames = append(frames, image.Rect(x, y, x+w, y+h))
		x += w + int(s.FrameSpacing)
	}
	return frames
}

// MarshalJSON implements json.Marshaler. Doubles are stored unvalidated, so
// NaN and infinities are written as the strings "NaN", "+Inf" and "-Inf".
func (s Sprite) MarshalJSON() ([]byte, error) {
	type sprite Sprite
	return json.Marshal(struct {
		sprite
		Weight   jsonFloat `json:"weight"`
		MaxSpeed jsonFloat `json:"max_speed"`
	}{sprite(s), jsonFloat(s.Weight), jsonFloat(s.MaxSpeed)})
}

// jsonFloat is a double which also encodes non-finite values
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.AppendQuote(nil, strconv.FormatFloat(v, 'g', -1, 64)), nil
	}
	return json.Marshal(v)
}

// readStringFromBytes reads a null-terminated Windows-1252 string from a
// fixed-length byte array
func readStringFromBytes(b []byte) string {
	n := bytes.IndexByte(b, 0)
	if n == -1 {
		n = len(b)
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(b[:n])
	if err != nil {
		return string(b[:n])
	}
	return string(out)
}

// writeText encodes the string as Windows-1252 into a fixed-length buffer,
// always leaving at least one terminating zero
func writeText(dst []byte, s string) {
	clear(dst)
	enc, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		enc = []byte(s)
	}
	copy(dst[:len(dst)-1], enc)
}
