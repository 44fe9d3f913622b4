// Package testing contains helpers shared by the tests of the sprite packages.
package testing

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

// Dir writes the files into a fresh temporary directory and returns its path.
func Dir(tb testing.TB, files map[string][]byte) string {
	tb.Helper()
	dir := tb.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			tb.Fatalf("unable to write %s: %v", name, err)
		}
	}
	return dir
}

// Rand returns a deterministic random source, so failures can be reproduced.
func Rand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Bytes returns n random bytes drawn from the source
func Bytes(r *rand.Rand, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.UintN(256))
	}
	return out
}
