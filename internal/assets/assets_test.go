package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadSearchesRootsInOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, second, "floor.jpg", "second")
	writeFile(t, second, "roof.jpg", "roof")
	writeFile(t, first, "floor.jpg", "first")

	m := NewManager(first, second)

	data, err := m.Load("floor.jpg")
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	data, err = m.Load("roof.jpg")
	require.NoError(t, err)
	assert.Equal(t, "roof", string(data))
}

func TestLoadMissing(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.Load("nope.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", "x")

	m := NewManager(dir)
	reads := 0
	m.ReadFile = func(path string) ([]byte, error) {
		reads++
		return os.ReadFile(path)
	}

	for i := 0; i < 3; i++ {
		_, err := m.Load("a.png")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, reads)

	hits, misses := m.cache.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)

	m.Close()
	hits, misses = m.cache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestAbsolutePathBypassesRoots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abs.png", "abs")

	m := NewManager()
	data, err := m.Load(filepath.Join(dir, "abs.png"))
	require.NoError(t, err)
	assert.Equal(t, "abs", string(data))
}

func TestHomeRootExpanded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	m := NewManager("~/textures")
	assert.Equal(t, []string{filepath.Join(home, "textures")}, m.Roots())
}
