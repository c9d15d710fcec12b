package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "config")

	require.NoError(t, fs.WriteFileAtomic(path, []byte("first\n"), 0o600))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))

	info, err := fs.GetFileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())

	// Overwrite through the same path leaves no temp files behind.
	require.NoError(t, fs.WriteFileAtomic(path, []byte("second\n"), 0o600))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err = fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestExistsAndIsDir(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, fs.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, fs.Exists(dir))
	assert.True(t, fs.IsDir(dir))
	assert.True(t, fs.Exists(file))
	assert.False(t, fs.IsDir(file))
	assert.False(t, fs.Exists(filepath.Join(dir, "missing")))
}

func TestRename(t *testing.T) {
	t.Parallel()

	fs := NewRealFileSystem()
	dir := t.TempDir()
	from := filepath.Join(dir, "from")
	to := filepath.Join(dir, "to")
	require.NoError(t, fs.WriteFile(from, []byte("x"), 0o644))

	require.NoError(t, fs.Rename(from, to))
	assert.False(t, fs.Exists(from))
	assert.True(t, fs.Exists(to))
}
