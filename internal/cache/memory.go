package cache

import (
	"context"
	"sync"
	"time"

	"github.com/betpilot/tipster/internal/metrics"
)

// DefaultMemoryCapacity bounds the in-process fallback store.
const DefaultMemoryCapacity = 100

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the bounded in-process fallback. Eviction is FIFO by
// insertion order; there is no access-recency tracking and no creation
// timestamp, so Age always reports unknown.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	order    []string
	capacity int

	now func() time.Time
}

// NewMemoryStore creates a memory store holding at most capacity entries.
// capacity <= 0 uses DefaultMemoryCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{
		entries:  make(map[string]memoryEntry),
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the value if present and unexpired. Expired entries are
// deleted lazily on read.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if m.now().After(entry.expiresAt) {
		m.remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set upserts the value. Re-setting an existing key keeps its original
// insertion position; a brand-new key over capacity evicts the oldest.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = memoryEntry{value: value, expiresAt: m.now().Add(ttl)}

	for len(m.order) > m.capacity {
		oldest := m.order[0]
		m.remove(oldest)
		metrics.CacheEvictions.Inc()
	}
	return nil
}

// Delete removes the entry; absent keys are a no-op.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(key)
	return nil
}

// SweepExpired removes all expired entries, re-checking expiry under the
// lock at delete time.
func (m *MemoryStore) SweepExpired(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for _, key := range append([]string(nil), m.order...) {
		if entry, ok := m.entries[key]; ok && now.After(entry.expiresAt) {
			m.remove(key)
			removed++
		}
	}
	return removed, nil
}

// Age is always unknown: the fallback tracks expiry, not creation time.
func (m *MemoryStore) Age(_ context.Context, _ string) (time.Duration, bool, error) {
	return 0, false, nil
}

// Len reports the current entry count.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// remove deletes key from the map and the insertion-order list.
// Caller must hold the lock.
func (m *MemoryStore) remove(key string) {
	if _, ok := m.entries[key]; !ok {
		return
	}
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
