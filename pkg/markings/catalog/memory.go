package catalog

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory catalog store for tests and one-shot commands.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	closed  bool
}

// NewMemoryStore creates a new in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(entry Entry) (Entry, error) {
	if !validName(entry.Name) {
		return Entry{}, ErrInvalidName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, ErrStoreClosed
	}

	if prev, ok := m.entries[entry.Name]; ok {
		entry.ID = prev.ID
		entry.Revision = prev.Revision + 1
	} else {
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		entry.Revision = 1
	}
	entry.UpdatedAt = time.Now().UTC()

	m.entries[entry.Name] = entry
	return entry, nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Entry{}, ErrStoreClosed
	}

	entry, ok := m.entries[name]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	entries := make([]Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.entries, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.entries = nil
	return nil
}

// Len returns the number of stored entries.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
