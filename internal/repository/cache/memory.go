package cache

import (
	"context"
	"sync"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/config"
)

type entry struct {
	count   int64
	expires time.Time
}

// Memory implements Cache in process memory. Expired entries are dropped lazily.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*entry), now: time.Now}
}

// live returns the unexpired entry for key. Caller holds the lock.
func (m *Memory) live(key string) *entry {
	e, ok := m.entries[key]
	if !ok {
		return nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil
	}
	return e
}

func (m *Memory) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !until.After(m.now()) {
		return nil
	}
	m.sweep()
	m.entries[config.CacheKey.RevokedTokenKey(tokenID)] = &entry{count: 1, expires: until}
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live(config.CacheKey.RevokedTokenKey(tokenID)) != nil, nil
}

func (m *Memory) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.live(key)
	if e == nil {
		m.sweep()
		e = &entry{expires: m.now().Add(window)}
		m.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// sweep drops expired entries once the map grows. Caller holds the lock.
func (m *Memory) sweep() {
	if len(m.entries) < 1024 {
		return
	}
	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}
