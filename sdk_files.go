package pk2

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
)

// hashOf returns the index key of a normalized sprite name
func hashOf(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// insert adds the file name at the given position to the index. Names that
// only differ in case from an indexed one are reachable by their exact name.
func (s *SDK) insert(name string, position uint32) {
	key := s.normalize(name)
	hash := hashOf(key)
	existing, ok := s.index.Load(hash)
	switch {
	case !ok:
		s.index.Store(hash, position)
	case s.normalize(s.names[existing]) == key:
		s.aliases[name] = position
	default:
		if _, taken := s.overflow[key]; taken {
			s.aliases[name] = position
			return
		}
		s.overflow[key] = position
	}
}

// lookup returns the position of the sprite file with the given name. An
// exact file name match wins, otherwise the first file in sorted order whose
// normalized name matches.
func (s *SDK) lookup(name string) (uint32, bool) {
	position, ok := s.aliases[filepath.Base(name)]
	if !ok {
		key := s.normalize(name)
		if position, ok = s.overflow[key]; !ok {
			position, ok = s.index.Load(hashOf(key))
			ok = ok && int(position) < len(s.names) && s.normalize(s.names[position]) == key
		}
	}

	return position, ok && int(position) < len(s.names)
}

// load returns the cached file with the given name, decoding it on first use
func (s *SDK) load(name string) (*File, error) {
	s.mu.RLock()
	position, ok := s.lookup(name)
	var path string
	if ok {
		path = filepath.Join(s.basePath, s.names[position])
	}
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}

	if f, ok := s.files.Load(position); ok {
		return f.(*File), nil
	}

	file, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Another goroutine may have decoded the same file meanwhile
	actual, _ := s.files.LoadOrStore(position, file)
	return actual.(*File), nil
}
