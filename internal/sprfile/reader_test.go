package sprfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// write creates a temporary file with the given content
func write(t *testing.T, content []byte) string {
	path := filepath.Join(t.TempDir(), "test.spr")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestOpen_Missing(t *testing.T) {
	reader, err := Open(filepath.Join(t.TempDir(), "missing.spr"))
	assert.Error(t, err)
	assert.Nil(t, reader)
}

func TestReader(t *testing.T) {
	reader, err := Open(write(t, []byte{'1', '.', '3', 0, 10, 20, 30, 40, 50}))
	require.NoError(t, err)
	defer reader.Close()

	t.Run("Len", func(t *testing.T) {
		assert.Equal(t, 9, reader.Len())
	})

	t.Run("Read", func(t *testing.T) {
		data, err := reader.Read(5, 3)
		assert.NoError(t, err)
		assert.Equal(t, []byte{20, 30, 40}, data)
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		_, err := reader.Read(8, 2)
		assert.ErrorIs(t, err, ErrOutOfBounds)

		_, err = reader.Read(-1, 1)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestReader_ShortFile(t *testing.T) {
	reader, err := Open(write(t, []byte{'1', '.'}))
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.Read(0, TagSize)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestReader_Close(t *testing.T) {
	reader, err := Open(write(t, []byte{'1', '.', '3', 0}))
	require.NoError(t, err)

	assert.NoError(t, reader.Close())
	assert.NoError(t, reader.Close())
	assert.Equal(t, 0, reader.Len())

	_, err = reader.Read(0, 1)
	assert.ErrorIs(t, err, ErrReaderClosed)
}
