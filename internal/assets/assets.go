// Package assets resolves asset file names against search paths and caches
// loaded file contents.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when no search path contains the requested file.
var ErrNotFound = errors.New("asset not found")

// DefaultSearchPath is where textures are looked up when nothing else is configured.
const DefaultSearchPath = "assets"

// Manager resolves and loads asset files from search paths.
// Paths are searched in reverse order (last added = highest priority).
type Manager struct {
	paths []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager searching the given paths.
func NewManager(paths ...string) *Manager {
	m := &Manager{
		cache: NewCache(),
	}
	for _, p := range paths {
		m.AddSearchPath(p)
	}
	return m
}

// AddSearchPath adds a directory to search.
func (m *Manager) AddSearchPath(dir string) {
	m.mu.Lock()
	m.paths = append(m.paths, filepath.Clean(dir))
	m.mu.Unlock()
}

// SearchPaths returns the search paths in priority order.
func (m *Manager) SearchPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.paths))
	for i := len(m.paths) - 1; i >= 0; i-- {
		out = append(out, m.paths[i])
	}
	return out
}

// Resolve returns the path of the first regular file matching name.
// Absolute names are checked as they are.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for _, dir := range m.SearchPaths() {
		p := filepath.Join(dir, name)
		if isFile(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load resolves name and returns the file contents.
func (m *Manager) Load(name string) ([]byte, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}

	// Cache is keyed by the resolved path so a higher priority path added
	// later is not shadowed by an earlier hit.
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	m.cache.Set(path, data)
	return data, nil
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops the search paths and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paths = nil
	m.cache.Clear()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
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

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
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
