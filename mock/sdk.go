package mock

import (
	"fmt"
	"iter"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teawithsand/pk2-sprite"
)

// SDK is a lightweight in-memory implementation of the pk2.Interface.
type SDK struct {
	SpritesMap map[string]*pk2.Sprite
}

// New creates an empty mock SDK.
func New() *SDK {
	return &SDK{
		SpritesMap: make(map[string]*pk2.Sprite),
	}
}

// Open mirrors pk2.Open but simply returns an empty SDK.
func Open(_ string) (*SDK, error) { return New(), nil }

// Add registers a sprite under the given file name. The value may be a
// *pk2.Sprite, a pk2.Sprite or the raw content of a sprite file.
func (s *SDK) Add(name string, v any) error {
	switch x := v.(type) {
	case *pk2.Sprite:
		s.SpritesMap[normalize(name)] = x
	case pk2.Sprite:
		s.SpritesMap[normalize(name)] = &x
	case []byte:
		file, err := pk2.ParseFile(x)
		if err != nil {
			return err
		}
		s.SpritesMap[normalize(name)] = file.Sprite
	default:
		return fmt.Errorf("mock: unsupported value %T", v)
	}
	return nil
}

// Close is a no-op for the mock SDK.
func (*SDK) Close() error { return nil }

// BasePath returns an empty string.
func (*SDK) BasePath() string { return "" }

// Sprite returns a copy of a stored sprite.
func (s *SDK) Sprite(name string) (*pk2.Sprite, error) {
	v, ok := s.SpritesMap[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", pk2.ErrNotFound, name)
	}

	out := *v
	return &out, nil
}

// Sprites iterates over copies of the stored sprites, ordered by name.
func (s *SDK) Sprites() iter.Seq[*pk2.Sprite] {
	names := make([]string, 0, len(s.SpritesMap))
	for name := range s.SpritesMap {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(yield func(*pk2.Sprite) bool) {
		for _, name := range names {
			sprite := *s.SpritesMap[name]
			if !yield(&sprite) {
				break
			}
		}
	}
}

// Resolve returns the stored sprite the reference points to.
func (s *SDK) Resolve(sprite *pk2.Sprite, ref pk2.Reference) (*pk2.Sprite, error) {
	name := sprite.Reference(ref)
	if name == "" {
		return nil, pk2.ErrNoReference
	}
	return s.Sprite(name)
}

// normalize returns the key under which a sprite is stored
func normalize(name string) string {
	name = strings.ToLower(filepath.Base(name))
	return strings.TrimSuffix(name, ".spr")
}
