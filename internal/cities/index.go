// Package cities keeps the list of supported city names in memory,
// refreshed periodically from the recommendation source.
package cities

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Index provides in-memory storage and lookup for city names.
type Index struct {
	mu         sync.RWMutex
	names      []string
	lastReload time.Time
}

func NewIndex() *Index {
	return &Index{}
}

// Update replaces the city list. Names are deduplicated and sorted so
// the API output is stable across reloads.
func (idx *Index) Update(names []string) {
	seen := make(map[string]bool, len(names))
	clean := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		clean = append(clean, n)
	}
	sort.Strings(clean)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.names = clean
	idx.lastReload = time.Now()
}

// All returns a copy of the current city list.
func (idx *Index) All() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]string, len(idx.names))
	copy(out, idx.names)
	return out
}

// Contains reports whether a city is in the supported list.
// Matching is case-insensitive.
func (idx *Index) Contains(city string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, n := range idx.names {
		if strings.EqualFold(n, city) {
			return true
		}
	}
	return false
}

// Count returns the number of cities in the index.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.names)
}

// LastReload returns the timestamp of the last successful update.
func (idx *Index) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastReload
}
