package npi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache is a JSON-file-backed lookup cache keyed by NPI. Concurrent writers
// follow last-writer-wins on Save; a missing or corrupt file is treated as
// an empty cache so a bad write never blocks lookups.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]Location
}

// OpenCache loads the cache at path, tolerating absence and corruption.
func OpenCache(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]Location)}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	var entries map[string]Location
	if err := json.Unmarshal(data, &entries); err != nil {
		return c
	}
	c.entries = entries
	return c
}

// Get returns the cached location for an NPI.
func (c *Cache) Get(npi string) (Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	loc, ok := c.entries[npi]
	return loc, ok
}

// Put records a location without persisting. Call Save to flush.
func (c *Cache) Put(loc Location) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[loc.NPI] = loc
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Save writes the cache back to disk, replacing whatever is there.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal npi cache: %w", err)
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create npi cache dir: %w", err)
		}
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write npi cache: %w", err)
	}
	return nil
}
