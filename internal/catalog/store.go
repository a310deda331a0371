package catalog

import (
	"sync"

	"starhub/pkg/models"
)

// EntryStatus is the introspection view of one cached category.
type EntryStatus struct {
	Loaded bool `json:"loaded"`
	Count  int  `json:"count"`
}

// Store is the in-memory cache of enriched collections, one entry per
// category. The loader is its only writer; handlers read snapshots. Entries
// live for the process lifetime, there is no eviction or teardown.
type Store struct {
	mu      sync.RWMutex
	entries map[Category]*entry
}

type entry struct {
	items  []models.Record
	loaded bool
}

func NewStore() *Store {
	entries := make(map[Category]*entry, len(All))
	for _, cat := range All {
		entries[cat] = &entry{items: []models.Record{}}
	}
	return &Store{entries: entries}
}

// Snapshot returns the current collection for a category and whether it is
// complete. The returned slice is replaced wholesale on publish and records
// are immutable, so callers may read it without holding any lock.
func (s *Store) Snapshot(cat Category) ([]models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.entries[cat]
	return e.items, e.loaded
}

// Loaded reports whether the category's collection is complete.
func (s *Store) Loaded(cat Category) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[cat].loaded
}

// Publish atomically installs the final collection for a category and marks
// it loaded. Every reader observing loaded=true sees this exact collection.
func (s *Store) Publish(cat Category, items []models.Record) {
	if items == nil {
		items = []models.Record{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[cat]
	e.items = items
	e.loaded = true
}

// Status reports {loaded, count} for every category. Pure read, no blocking
// on in-flight loads.
func (s *Store) Status() map[string]EntryStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]EntryStatus, len(s.entries))
	for cat, e := range s.entries {
		out[string(cat)] = EntryStatus{Loaded: e.loaded, Count: len(e.items)}
	}
	return out
}
