package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore implements Store in memory.
type MemoryStore struct {
	entries map[string]*Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Library.Name] = copyEntry(entry)
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, library string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[library]
	if !ok {
		return nil, ErrNotFound
	}
	return copyEntry(e), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, library string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, library)
	return nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) ([]*LibraryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]*LibraryInfo, 0, len(s.entries))
	for _, e := range s.entries {
		info := e.Library
		infos = append(infos, &info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Search implements Store.
func (s *MemoryStore) Search(ctx context.Context, q *Query) ([]*Symbol, error) {
	if q == nil {
		q = &Query{}
	}
	text := strings.ToLower(q.Text)

	s.mu.RLock()
	var results []*Symbol
	for _, e := range s.entries {
		if q.Library != "" && e.Library.Name != q.Library {
			continue
		}
		for _, sym := range e.Symbols {
			if q.Kind != "" && sym.Kind != q.Kind {
				continue
			}
			if text != "" &&
				!strings.Contains(strings.ToLower(sym.Name), text) &&
				!strings.Contains(strings.ToLower(sym.Description), text) {
				continue
			}
			symCopy := *sym
			results = append(results, &symCopy)
		}
	}
	s.mu.RUnlock()

	sortSymbols(results)
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

// Lookup implements Store.
func (s *MemoryStore) Lookup(ctx context.Context, name string) ([]*Symbol, error) {
	s.mu.RLock()
	var results []*Symbol
	for _, e := range s.entries {
		for _, sym := range e.Symbols {
			if sym.Name == name {
				symCopy := *sym
				results = append(results, &symCopy)
			}
		}
	}
	s.mu.RUnlock()

	sortSymbols(results)
	return results, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

func copyEntry(e *Entry) *Entry {
	out := &Entry{Library: e.Library, Symbols: make([]*Symbol, len(e.Symbols))}
	out.Library.Dependencies = append([]string(nil), e.Library.Dependencies...)
	for i, sym := range e.Symbols {
		symCopy := *sym
		out.Symbols[i] = &symCopy
	}
	return out
}

func sortSymbols(symbols []*Symbol) {
	sort.SliceStable(symbols, func(i, j int) bool {
		a, b := symbols[i], symbols[j]
		if a.Library != b.Library {
			return a.Library < b.Library
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name < b.Name
	})
}
