package badger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mirror")
	backend, err := OpenBackend(dir, false, nil)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_InvalidPath(t *testing.T) {
	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := OpenBackend(file, false, nil)
		assert.ErrorIs(t, err, ErrInvalidMirror)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := OpenBackend("", false, nil)
		assert.ErrorIs(t, err, ErrInvalidMirror)
	})
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestPostingKeys(t *testing.T) {
	key := makePostingKey(taxonomyPostingPrefix, "device_name", "catheter", 42)
	id, ok := postingID(key)
	require.True(t, ok)
	assert.EqualValues(t, 42, id)

	partial := makePartialPostingKey(taxonomyPostingPrefix, "device_name", "cath")
	assert.True(t, len(key) > len(partial) && string(key[:len(partial)]) == string(partial))

	_, ok = postingID([]byte("short"))
	assert.False(t, ok)
}
