package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/gookit/color"
	"github.com/itchyny/gojq"
	"github.com/pkg/errors"
	"github.com/rivo/uniseg"
	"github.com/teawithsand/pk2-sprite"
)

// options controls how a sprite is reported
type options struct {
	Format string // "text" or "json"
	Query  string // Optional jq expression
	All    bool   // Include zero-valued fields and inactive animations
	Color  bool   // Colorize labels
}

func (o options) validate() error {
	switch o.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown format %q", o.Format)
	}

	if o.Query != "" {
		if _, err := gojq.Parse(o.Query); err != nil {
			return errors.Wrap(err, "parsing query")
		}
	}
	return nil
}

// report reads the sprite file at path and writes its fields to w
func report(w io.Writer, path string, opts options) error {
	file, err := pk2.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	if file.Trailing > 0 {
		glog.V(1).Infof("%s: %d trailing bytes after the record", path, file.Trailing)
	}

	switch {
	case opts.Query != "":
		return writeQuery(w, file.Sprite, opts.Query)
	case opts.Format == "json":
		return writeJSON(w, file.Sprite)
	default:
		fmt.Fprintf(w, "%s: version %s, %d trailing bytes\n", path, file.Version, file.Trailing)
		writeText(w, file.Sprite, opts)
		return nil
	}
}

// writeText prints one aligned line per field of the layout
func writeText(w io.Writer, sprite *pk2.Sprite, opts options) {
	type line struct{ label, value string }
	var lines []line
	width := 0
	for _, f := range pk2.Layout() {
		values := f.Values(sprite)
		if len(values) == 0 || (!opts.All && (isZero(values) || inactive(f.Name, sprite))) {
			continue
		}

		lines = append(lines, line{f.Name, formatValues(f.Name, values)})
		width = max(width, uniseg.StringWidth(f.Name))
	}

	for _, l := range lines {
		pad := strings.Repeat(" ", width-uniseg.StringWidth(l.label))
		label := l.label
		if opts.Color {
			label = color.Cyan.Sprint(label)
		}
		fmt.Fprintf(w, "  %s%s  %s\n", label, pad, l.value)
	}
}

// writeJSON prints the sprite as indented JSON
func writeJSON(w io.Writer, sprite *pk2.Sprite) error {
	out, err := json.MarshalIndent(sprite, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding json")
	}

	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

// writeQuery runs the jq expression against the JSON form of the sprite and
// prints every result on its own line
func writeQuery(w io.Writer, sprite *pk2.Sprite, expr string) error {
	q, err := gojq.Parse(expr)
	if err != nil {
		return errors.Wrap(err, "parsing query")
	}

	input, err := toJSONValue(sprite)
	if err != nil {
		return err
	}

	iter := q.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, ok := v.(error); ok {
			return errors.Wrap(err, "running query")
		}

		out, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "encoding result")
		}
		fmt.Fprintf(w, "%s\n", out)
	}
}

// toJSONValue converts the sprite into the generic form gojq operates on
func toJSONValue(sprite *pk2.Sprite) (any, error) {
	data, err := json.Marshal(sprite)
	if err != nil {
		return nil, errors.Wrap(err, "encoding json")
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "decoding json")
	}
	return out, nil
}

// formatValues renders the elements of a field, naming enumerated values
func formatValues(name string, values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch x := v.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%q", x))
		case float64:
			parts = append(parts, fmt.Sprintf("%g", x))
		default:
			parts = append(parts, fmt.Sprint(x))
		}
	}

	out := strings.Join(parts, " ")
	if len(values) > 1 {
		return "[" + out + "]"
	}

	switch name {
	case "type":
		out += fmt.Sprintf(" (%s)", pk2.Type(values[0].(uint32)))
	case "color":
		out += fmt.Sprintf(" (%s)", pk2.Color(values[0].(uint8)))
	}
	return out
}

// inactive returns whether the field belongs to an animation entry past the
// animation count
func inactive(name string, sprite *pk2.Sprite) bool {
	var slot int
	if _, err := fmt.Sscanf(name, "animations[%d]", &slot); err != nil {
		return false
	}
	return slot >= len(sprite.ActiveAnimations())
}

// isZero returns whether every element holds its zero value
func isZero(values []any) bool {
	for _, v := range values {
		switch x := v.(type) {
		case string:
			if x != "" {
				return false
			}
		case uint8:
			if x != 0 {
				return false
			}
		case uint32:
			if x != 0 {
				return false
			}
		case float64:
			if x != 0 {
				return false
			}
		case bool:
			if x {
				return false
			}
		}
	}
	return true
}

// summarize prints one line per sprite file of the directory
func summarize(w io.Writer, directory string) error {
	sdk, err := pk2.Open(directory)
	if err != nil {
		return errors.Wrap(err, "opening directory")
	}
	defer sdk.Close()

	names := sdk.Names()
	width := 0
	for _, name := range names {
		width = max(width, uniseg.StringWidth(name))
	}

	for _, name := range names {
		pad := strings.Repeat(" ", width-uniseg.StringWidth(name))
		file, err := sdk.File(name)
		if err != nil {
			fmt.Fprintf(w, "%s%s  error: %s\n", name, pad, describe(err))
			continue
		}

		fmt.Fprintf(w, "%s%s  %-12s %q\n", name, pad, file.Sprite.Type, file.Sprite.Name)
	}
	return nil
}

// describe renders an error, spelling out where a malformed file went wrong
func describe(err error) string {
	var formatErr *pk2.FormatError
	if !errors.As(err, &formatErr) {
		return err.Error()
	}

	switch {
	case errors.Is(err, pk2.ErrTruncated):
		return fmt.Sprintf("%v (truncated at byte %d of %d)", err, formatErr.Offset, formatErr.Size)
	default:
		return fmt.Sprintf("%v (malformed at byte %d)", err, formatErr.Offset)
	}
}
