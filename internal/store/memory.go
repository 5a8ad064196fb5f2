package store

import (
	"context"
	"sync"
	"time"

	"github.com/hyeonlab/pagelink/internal/shortener"
)

type entry struct {
	value    string
	deadline time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.deadline.IsZero() && now.After(e.deadline)
}

// MemoryLinkStore is an in-memory implementation of shortener.Store
// with TTL support, for tests and running without Redis. Expired
// entries are dropped lazily on access.
type MemoryLinkStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewMemoryLinkStore creates an empty in-memory link store.
func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{
		entries: make(map[string]entry),
	}
}

// live returns the entry for key if present and not expired.
// Caller must hold mu.
func (m *MemoryLinkStore) live(key string) (entry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return entry{}, false
	}

	if e.expired(time.Now()) {
		delete(m.entries, key)

		return entry{}, false
	}

	return e, true
}

func deadlineFor(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}

	return time.Now().Add(ttl)
}

func (m *MemoryLinkStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(key)
	if !ok {
		return "", shortener.ErrNotFound
	}

	return e.value, nil
}

func (m *MemoryLinkStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{value: value, deadline: deadlineFor(ttl)}

	return nil
}

func (m *MemoryLinkStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.live(key); ok {
		return false, nil
	}

	m.entries[key] = entry{value: value, deadline: deadlineFor(ttl)}

	return true, nil
}

func (m *MemoryLinkStore) Expire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(key)
	if !ok {
		return false, nil
	}

	e.deadline = deadlineFor(ttl)
	m.entries[key] = e

	return true, nil
}

func (m *MemoryLinkStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.live(key)

	return ok, nil
}

// Compile-time check.
var _ shortener.Store = (*MemoryLinkStore)(nil)
