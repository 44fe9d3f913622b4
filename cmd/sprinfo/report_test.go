package main

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teawithsand/pk2-sprite"
	uotest "github.com/teawithsand/pk2-sprite/internal/testing"
)

func newHen() *pk2.Sprite {
	s := &pk2.Sprite{
		Type:       pk2.TypeCharacter,
		Name:       pk2.MakeName("Kana"),
		Energy:     3,
		Weight:     1.5,
		Color:      pk2.ColorRed,
		AmmoOne:    pk2.MakePath("egg.spr"),
		FrameCount: 12,
	}
	s.AI[0] = 1
	return s
}

// fixture writes a few sprite files and returns the directory
func fixture(t *testing.T) string {
	return uotest.Dir(t, map[string][]byte{
		"hen.spr":    pk2.EncodeFile(newHen()),
		"pöllö.spr":  pk2.EncodeFile(&pk2.Sprite{Type: pk2.TypeBonus, Name: pk2.MakeName("Pöllö")}),
		"broken.spr": []byte("1.3\x00tooshort"),
		"old.spr":    append([]byte("1.2\x00"), pk2.Encode(newHen())...),
	})
}

func TestReport_Text(t *testing.T) {
	dir := fixture(t)
	path := filepath.Join(dir, "hen.spr")

	var out bytes.Buffer
	require.NoError(t, report(&out, path, options{Format: "text"}))

	text := out.String()
	assert.Contains(t, text, "version 1.3, 0 trailing bytes")
	assert.Contains(t, text, `"Kana"`)
	assert.Contains(t, text, "1 (character)")
	assert.Contains(t, text, "64 (red)")
	assert.Contains(t, text, "1.5")
	assert.Contains(t, text, `"egg.spr"`)
	assert.NotContains(t, text, "enemy")

	// Labels are padded to the widest one
	for _, line := range strings.Split(strings.TrimSpace(text), "\n")[1:] {
		assert.True(t, strings.HasPrefix(line, "  "), line)
	}

	out.Reset()
	require.NoError(t, report(&out, path, options{Format: "text", All: true}))
	assert.Contains(t, out.String(), "enemy")
	assert.Contains(t, out.String(), "animations[19].loop")
	assert.NotContains(t, out.String(), "padding")
}

func TestReport_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, report(&out, filepath.Join(fixture(t), "hen.spr"), options{Format: "json"}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Kana", decoded["name"])
	assert.Equal(t, 3.0, decoded["energy"])
}

func TestReport_Query(t *testing.T) {
	var out bytes.Buffer
	opts := options{Format: "text", Query: ".name, .energy"}
	require.NoError(t, opts.validate())
	require.NoError(t, report(&out, filepath.Join(fixture(t), "hen.spr"), opts))
	assert.Equal(t, "\"Kana\"\n3\n", out.String())

	out.Reset()
	opts.Query = ".name | error"
	assert.Error(t, report(&out, filepath.Join(fixture(t), "hen.spr"), opts))
}

func TestReport_Errors(t *testing.T) {
	dir := fixture(t)

	t.Run("Truncated", func(t *testing.T) {
		err := report(new(bytes.Buffer), filepath.Join(dir, "broken.spr"), options{Format: "text"})
		assert.ErrorIs(t, err, pk2.ErrTruncated)
		assert.Contains(t, describe(err), "truncated at byte 12 of 1672")
	})

	t.Run("Version", func(t *testing.T) {
		err := report(new(bytes.Buffer), filepath.Join(dir, "old.spr"), options{Format: "text"})
		assert.ErrorIs(t, err, pk2.ErrUnsupportedVersion)
		assert.Contains(t, describe(err), "malformed at byte 0")
	})

	t.Run("Missing", func(t *testing.T) {
		err := report(new(bytes.Buffer), filepath.Join(dir, "missing.spr"), options{Format: "text"})
		assert.ErrorIs(t, err, pk2.ErrIO)
		assert.Contains(t, describe(err), "missing.spr")
	})
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, options{Format: "json"}.validate())
	assert.Error(t, options{Format: "yaml"}.validate())
	assert.Error(t, options{Format: "text", Query: ".name |"}.validate())
}

func TestSummarize(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, summarize(&out, fixture(t)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "broken.spr")
	assert.Contains(t, lines[0], "truncated")
	assert.Contains(t, lines[1], `character    "Kana"`)
	assert.Contains(t, lines[2], "unsupported version")
	assert.Contains(t, lines[3], `"Pöllö"`)

	// Values start in the same column regardless of the name width
	column := func(line, value string) int {
		return uniseg.StringWidth(line[:strings.Index(line, value)])
	}
	assert.Equal(t, column(lines[1], "character"), column(lines[3], "bonus"))

	assert.Error(t, summarize(&out, filepath.Join(t.TempDir(), "missing")))
}

func TestFormatValues(t *testing.T) {
	assert.Equal(t, "5 (background)", formatValues("type", []any{uint32(5)}))
	assert.Equal(t, "255 (normal)", formatValues("color", []any{uint8(255)}))
	assert.Equal(t, "[1 2]", formatValues("ai", []any{uint32(1), uint32(2)}))
	assert.Equal(t, `"a"`, formatValues("name", []any{"a"}))
	assert.True(t, isZero([]any{"", uint8(0), uint32(0), 0.0, false}))
	assert.False(t, isZero([]any{"", true}))
}

func TestReport_InactiveAnimations(t *testing.T) {
	s := newHen()
	s.AnimationCount = 1
	s.Animations[0] = pk2.Animation{Sequence: [pk2.SequenceLength]uint8{1, 2}, Frames: 2, Loop: true}
	s.Animations[5] = pk2.Animation{Sequence: [pk2.SequenceLength]uint8{7}, Frames: 1}
	path := filepath.Join(uotest.Dir(t, map[string][]byte{"hen.spr": pk2.EncodeFile(s)}), "hen.spr")

	var out bytes.Buffer
	require.NoError(t, report(&out, path, options{Format: "text"}))
	assert.Contains(t, out.String(), "animations[0].sequence")
	assert.NotContains(t, out.String(), "animations[5]")

	out.Reset()
	require.NoError(t, report(&out, path, options{Format: "text", All: true}))
	assert.Contains(t, out.String(), "animations[5].frames")
	assert.Contains(t, out.String(), "animations[19].loop")
}

func TestReport_NonFinite(t *testing.T) {
	s := newHen()
	s.Weight = math.Inf(1)
	s.MaxSpeed = math.NaN()
	path := filepath.Join(uotest.Dir(t, map[string][]byte{"hen.spr": pk2.EncodeFile(s)}), "hen.spr")

	var out bytes.Buffer
	require.NoError(t, report(&out, path, options{Format: "text"}))
	assert.Contains(t, out.String(), "+Inf")

	out.Reset()
	require.NoError(t, report(&out, path, options{Format: "json"}))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "+Inf", decoded["weight"])
	assert.Equal(t, "NaN", decoded["max_speed"])

	out.Reset()
	require.NoError(t, report(&out, path, options{Format: "text", Query: ".name, .weight"}))
	assert.Equal(t, "\"Kana\"\n\"+Inf\"\n", out.String())
}
