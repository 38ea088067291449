package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	page      []byte
	expiresAt time.Time
}

// Memory is an in-process page cache with a fixed TTL. A zero TTL keeps pages forever.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	now := m.now()
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if m.ttl > 0 && !e.expiresAt.After(now) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}

	return e.page, true, nil
}

func (m *Memory) Set(_ context.Context, key string, page []byte) error {
	if key == "" {
		return nil
	}

	expiresAt := time.Time{}
	if m.ttl > 0 {
		expiresAt = m.now().Add(m.ttl)
	}

	// callers may reuse their buffer
	stored := append([]byte(nil), page...)

	m.mu.Lock()
	m.entries[key] = entry{
		page:      stored,
		expiresAt: expiresAt,
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
