// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package pk2

import "fmt"

// Type represents the kind of a sprite prototype.
type Type uint32

// Sprite type constants
const (
	TypeNothing    Type = 0
	TypeCharacter  Type = 1
	TypeBonus      Type = 2
	TypeProjectile Type = 3
	TypeTeleport   Type = 4
	TypeBackground Type = 5
)

// String returns a readable name of the sprite type
func (t Type) String() string {
	switch t {
	case TypeNothing:
		return "nothing"
	case TypeCharacter:
		return "character"
	case TypeBonus:
		return "bonus"
	case TypeProjectile:
		return "projectile"
	case TypeTeleport:
		return "teleport"
	case TypeBackground:
		return "background"
	default:
		return fmt.Sprintf("type(%d)", uint32(t))
	}
}

// Color is the palette shift applied to the sprite sheet when drawing.
type Color uint8

// Color constants
const (
	ColorGray      Color = 0
	ColorBlue      Color = 32
	ColorRed       Color = 64
	ColorGreen     Color = 96
	ColorOrange    Color = 128
	ColorViolet    Color = 160
	ColorTurquoise Color = 192
	ColorNormal    Color = 255
)

// String returns a readable name of the color
func (c Color) String() string {
	switch c {
	case ColorGray:
		return "gray"
	case ColorBlue:
		return "blue"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorOrange:
		return "orange"
	case ColorViolet:
		return "violet"
	case ColorTurquoise:
		return "turquoise"
	case ColorNormal:
		return "normal"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// AnimationSlot is the index of an animation in the animation table. The
// game looks animations up by their slot, not by their position.
type AnimationSlot int

// Animation slots
const (
	AnimationIdle AnimationSlot = iota
	AnimationWalking
	AnimationJumpUp
	AnimationJumpDown
	AnimationSquat
	AnimationDamage
	AnimationDeath
	AnimationAttackOne
	AnimationAttackTwo
)

var animationSlotNames = [...]string{
	"idle", "walking", "jump-up", "jump-down", "squat",
	"damage", "death", "attack-1", "attack-2",
}

// String returns a readable name of the animation slot
func (a AnimationSlot) String() string {
	if a >= 0 && int(a) < len(animationSlotNames) {
		return animationSlotNames[a]
	}
	return fmt.Sprintf("animation(%d)", int(a))
}

// SoundSlot is the index of a sound in the sound path table.
type SoundSlot int

// Sound slots
const (
	SoundDamage SoundSlot = iota
	SoundDestruction
	SoundAttackOne
	SoundAttackTwo
	SoundRandom
	SoundSpecialOne
	SoundSpecialTwo
)

var soundSlotNames = [...]string{
	"damage", "destruction", "attack-1", "attack-2", "random", "special-1", "special-2",
}

// String returns a readable name of the sound slot
func (s SoundSlot) String() string {
	if s >= 0 && int(s) < len(soundSlotNames) {
		return soundSlotNames[s]
	}
	return fmt.Sprintf("sound(%d)", int(s))
}

// Reference identifies one of the fields through which a sprite refers to
// another sprite by its file name.
type Reference int

// Reference fields
const (
	RefTransformsInto Reference = iota
	RefBonus
	RefAmmoOne
	RefAmmoTwo
)

// String returns a readable name of the reference
func (r Reference) String() string {
	switch r {
	case RefTransformsInto:
		return "transforms-into"
	case RefBonus:
		return "bonus"
	case RefAmmoOne:
		return "ammo-1"
	case RefAmmoTwo:
		return "ammo-2"
	default:
		return fmt.Sprintf("reference(%d)", int(r))
	}
}
