// Package assets handles asset loading and caching. Scenes enqueue the
// files they need during setup; the lifecycle awaits the batch before
// the first frame.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
)

// Manager loads files from an asset directory with an in-memory cache.
type Manager struct {
	dir string

	mu      sync.RWMutex
	cache   map[string][]byte
	pending []string

	hits   int
	misses int
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   dir,
		cache: make(map[string][]byte),
	}
}

// Enqueue records a file to be loaded by the next Await. Duplicate and
// already-cached paths are skipped.
func (m *Manager) Enqueue(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cache[path]; ok {
		return
	}
	for _, p := range m.pending {
		if p == path {
			return
		}
	}
	m.pending = append(m.pending, path)
}

// Await loads every enqueued file concurrently and caches the results.
// All failures are aggregated into the returned error; succeeding files
// are cached regardless.
func (m *Manager) Await() error {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var errs error

	for _, path := range batch {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			data, err := os.ReadFile(filepath.Join(m.dir, path))
			if err != nil {
				errMu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("loading %s: %w", path, err))
				errMu.Unlock()
				return
			}
			m.mu.Lock()
			m.cache[path] = data
			m.mu.Unlock()
		}(path)
	}
	wg.Wait()

	return errs
}

// Load returns a file's contents, reading through the cache.
func (m *Manager) Load(path string) ([]byte, error) {
	m.mu.Lock()
	if data, ok := m.cache[path]; ok {
		m.hits++
		m.mu.Unlock()
		return data, nil
	}
	m.misses++
	m.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(m.dir, path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	m.mu.Lock()
	m.cache[path] = data
	m.mu.Unlock()
	return data, nil
}

// Stats returns cache hit/miss counts.
func (m *Manager) Stats() (hits, misses int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses
}

// Clear drops the cache and any pending queue.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string][]byte)
	m.pending = nil
	m.hits = 0
	m.misses = 0
}
