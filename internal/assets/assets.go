// Package assets locates texture and shader files on disk and caches
// their bytes.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/go-homedir"
)

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager resolves relative asset names against a list of search roots.
// It is safe for concurrent use.
type Manager struct {
	// ReadFile reads a resolved path. Defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)

	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager searching roots in order. A leading "~" in
// a root is expanded to the user's home directory; roots that cannot be
// expanded are skipped.
func NewManager(roots ...string) *Manager {
	m := &Manager{
		ReadFile: os.ReadFile,
		cache:    NewCache(),
	}
	for _, r := range roots {
		m.AddRoot(r)
	}
	return m
}

// AddRoot appends a search root. Later roots have lower priority.
func (m *Manager) AddRoot(root string) {
	expanded, err := homedir.Expand(root)
	if err != nil || expanded == "" {
		return
	}
	m.mu.Lock()
	m.roots = append(m.roots, expanded)
	m.mu.Unlock()
}

// Roots returns the expanded search roots.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.roots))
	copy(out, m.roots)
	return out
}

// Load returns the bytes of name from the first root that has it.
// Absolute names are read directly.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	if filepath.IsAbs(name) {
		data, err := m.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		m.cache.Set(name, data)
		return data, nil
	}

	for _, root := range m.Roots() {
		data, err := m.ReadFile(filepath.Join(root, name))
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", name, root, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Close drops every cached file.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
