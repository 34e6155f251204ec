package store

import (
	"sort"
	"sync"
)

// MemoryStore keeps run summaries in memory. Useful for tests and for
// short-lived runs that only need in-process aggregation.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   map[string]Summary
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]Summary)}
}

// Save implements Store.
func (m *MemoryStore) Save(s Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	// Deep-copy the bins so callers can't mutate stored data.
	cp := s
	cp.Bins = append([]Bin(nil), s.Bins...)
	m.runs[s.RunID] = cp
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(runID string) (Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Summary{}, ErrStoreClosed
	}
	s, ok := m.runs[runID]
	if !ok {
		return Summary{}, ErrNotFound
	}
	cp := s
	cp.Bins = append([]Bin(nil), s.Bins...)
	return cp, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	infos := make([]Info, 0, len(m.runs))
	for _, s := range m.runs {
		infos = append(infos, Info{RunID: s.RunID, CreatedAt: s.CreatedAt, Realizations: s.Realizations})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.runs, runID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
