package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		title string
		year  int
		want  string
	}{
		{"The Matrix", 1999, "The Matrix_1999"},
		{"The Matrix", 0, "The Matrix"},
		{"Spider-Man", 0, "Spider-Man"},
		{"What's Up?", 0, "Whats Up"},
		{"Léon: The Professional", 1994, "Leon The Professional_1994"},
		{"  padded  ", 0, "padded"},
		{"", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, CacheKey(tt.title, tt.year))
		})
	}
}

func TestKeyFileName(t *testing.T) {
	assert.Equal(t, "The_Matrix_1999", keyFileName("The Matrix_1999"))
	assert.Equal(t, "a_b", keyFileName("  a b  "))

	long := strings.Repeat("x", 300) + "_1999"
	name := keyFileName(long)
	assert.Len(t, name, maxKeyFileLength)
}

func TestDiskCache_Placeholder(t *testing.T) {
	dir := t.TempDir()
	c, err := NewDiskCache(filepath.Join(dir, "posters"))
	require.NoError(t, err)

	info, err := os.Stat(c.Placeholder())
	require.NoError(t, err, "placeholder must be materialized at construction")
	assert.Greater(t, info.Size(), int64(0))
}

func TestDiskCache_WriteLookupRemove(t *testing.T) {
	c, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	key := CacheKey("The Matrix", 1999)
	_, ok := c.Lookup(key)
	assert.False(t, ok, "empty cache should miss")

	data := []byte("jpeg-bytes")
	path, err := c.WritePoster(key, data)
	require.NoError(t, err)
	assert.Equal(t, c.PosterPath(key), path)

	got, ok := c.Lookup(key)
	require.True(t, ok)
	onDisk, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	require.NoError(t, c.Remove(key))
	_, ok = c.Lookup(key)
	assert.False(t, ok)

	// Removing an absent entry is fine.
	require.NoError(t, c.Remove(key))
}

func TestDiskCache_KeysDoNotCollide(t *testing.T) {
	c, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	keyA := CacheKey("Dune", 1984)
	keyB := CacheKey("Dune", 2021)
	require.NotEqual(t, c.PosterPath(keyA), c.PosterPath(keyB))

	_, err = c.WritePoster(keyA, []byte("a"))
	require.NoError(t, err)
	_, err = c.WritePoster(keyB, []byte("b"))
	require.NoError(t, err)

	pathA, _ := c.Lookup(keyA)
	gotA, err := os.ReadFile(pathA)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), gotA)
}

func TestDiskCache_ImportImage_MissingSource(t *testing.T) {
	c, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	key := CacheKey("Ghost", 0)
	_, err = c.ImportImage(key, filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)

	_, ok := c.Lookup(key)
	assert.False(t, ok, "failed import must leave no entry behind")
}
