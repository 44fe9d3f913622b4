package pk2

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kelindar/intmap"
)

// Interface is the read-only surface shared by the SDK and its mock.
type Interface interface {
	Sprite(name string) (*Sprite, error)
	Sprites() iter.Seq[*Sprite]
	Resolve(s *Sprite, ref Reference) (*Sprite, error)
	Close() error
}

// SDK provides access to a directory of sprite prototype files. Files are
// decoded lazily on first access and cached; the SDK is safe for concurrent use.
type SDK struct {
	mu        sync.RWMutex      // Guards basePath and names against Close
	basePath  string            // Path to the sprite directory
	extension string            // Extension of sprite files, lowercase
	names     []string          // File names of the sprites, sorted
	index     *intmap.Map       // Hash of the normalized name to position in names
	overflow  map[string]uint32 // Normalized names whose hash collides
	aliases   map[string]uint32 // Exact file names whose normalized name is taken
	files     sync.Map          // Lazily decoded files (position to *File)
}

// Option configures an SDK instance
type Option func(*SDK)

// WithExtension sets the extension of the sprite files, ".spr" by default
func WithExtension(ext string) Option {
	return func(s *SDK) {
		s.extension = strings.ToLower(ext)
	}
}

// Open initializes a new SDK instance for the specified sprite directory.
// The directory is listed once; files added afterwards are not visible.
func Open(directory string, options ...Option) (*SDK, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pk2: sprite directory '%s' does not exist: %w", directory, err)
		}
		return nil, fmt.Errorf("%w '%s': %w", ErrIO, directory, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("pk2: provided path '%s' is not a directory", directory)
	}

	sdk := &SDK{
		basePath:  directory,
		extension: ".spr",
		overflow:  make(map[string]uint32),
		aliases:   make(map[string]uint32),
	}

	for _, option := range options {
		option(sdk)
	}

	if err := sdk.scan(); err != nil {
		return nil, err
	}

	return sdk, nil
}

// Close releases the cached sprites. Lookups made afterwards fail with
// ErrNotFound.
func (s *SDK) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files.Range(func(key, _ any) bool {
		s.files.Delete(key)
		return true
	})

	s.basePath = ""
	s.names = nil
	return nil
}

// BasePath returns the base directory path provided when the SDK was opened.
func (s *SDK) BasePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.basePath
}

// Names returns the file names of all sprites in the directory
func (s *SDK) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// File returns the decoded sprite file with the given name. The name is
// matched case-insensitively, with or without the extension. When several
// files only differ in case, the exact file name selects between them.
func (s *SDK) File(name string) (*File, error) {
	file, err := s.load(name)
	if err != nil {
		return nil, err
	}

	sprite := *file.Sprite
	return &File{
		Version:  file.Version,
		Sprite:   &sprite,
		Trailing: file.Trailing,
	}, nil
}

// Sprite returns the sprite with the given name. See File for name matching.
func (s *SDK) Sprite(name string) (*Sprite, error) {
	file, err := s.load(name)
	if err != nil {
		return nil, err
	}

	sprite := *file.Sprite
	return &sprite, nil
}

// Sprites returns an iterator over all sprites which can be decoded
func (s *SDK) Sprites() iter.Seq[*Sprite] {
	names := s.Names()
	return func(yield func(*Sprite) bool) {
		for _, name := range names {
			sprite, err := s.Sprite(name)
			if err != nil {
				continue
			}

			if !yield(sprite) {
				break
			}
		}
	}
}

// Resolve returns the sprite that the given reference field points to
func (s *SDK) Resolve(sprite *Sprite, ref Reference) (*Sprite, error) {
	name := sprite.Reference(ref)
	if name == "" {
		return nil, fmt.Errorf("%w: %s of '%s'", ErrNoReference, ref, sprite.Name)
	}

	return s.Sprite(name)
}

// normalize returns the lookup key of a sprite name
func (s *SDK) normalize(name string) string {
	name = strings.ToLower(filepath.Base(name))
	return strings.TrimSuffix(name, s.extension)
}

// scan lists the sprite files of the directory and indexes their names
func (s *SDK) scan() error {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return fmt.Errorf("%w '%s': %w", ErrIO, s.basePath, err)
	}

	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasSuffix(strings.ToLower(entry.Name()), s.extension) {
			s.names = append(s.names, entry.Name())
		}
	}

	s.index = intmap.New(max(len(s.names), 16), .90)
	for i, name := range s.names {
		s.insert(name, uint32(i))
	}
	return nil
}
