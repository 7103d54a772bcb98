package data

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCacheRepo is an in-process CacheRepository used when Redis is disabled.
// Expired entries are dropped lazily on access.
type MemoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCacheRepo creates an empty in-memory cache.
func NewMemoryCacheRepo() *MemoryCacheRepo {
	return NewMemoryCacheRepoWithTimeProvider(RealTimeProvider{})
}

// NewMemoryCacheRepoWithTimeProvider creates an empty in-memory cache with a custom clock.
func NewMemoryCacheRepoWithTimeProvider(tp TimeProvider) *MemoryCacheRepo {
	return &MemoryCacheRepo{entries: make(map[string]memoryEntry), now: tp.Now}
}

// Set stores a copy of value. A ttl of 0 never expires.
func (m *MemoryCacheRepo) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return ErrKeyRequired
	}
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the stored value, or nil when missing or expired.
func (m *MemoryCacheRepo) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.live(key)
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), entry.value...), nil
}

// Delete removes key and reports whether a live entry existed.
func (m *MemoryCacheRepo) Delete(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrKeyRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live(key)
	delete(m.entries, key)
	return ok, nil
}

// Health always succeeds.
func (m *MemoryCacheRepo) Health(context.Context) error {
	return nil
}

// live must be called with mu held.
func (m *MemoryCacheRepo) live(key string) (memoryEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}
