package cache

import (
	"context"
	"strings"
	"time"

	"github.com/bluehands/branchfinder/internal/domain/providers"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryAdapter is an in-process CacheProvider used when Redis is not configured.
// Entries live in a size-bounded LRU whose own expiry caps every entry at
// maxTTL; shorter per-call TTLs are enforced on read.
type MemoryAdapter struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

// NewMemoryAdapter creates an in-memory cache holding at most size entries
// (unbounded when size <= 0). A non-positive maxTTL disables LRU expiry.
func NewMemoryAdapter(size int, maxTTL time.Duration) *MemoryAdapter {
	return &MemoryAdapter{
		lru: expirable.NewLRU[string, entry](size, nil, maxTTL),
		now: time.Now,
	}
}

func (m *MemoryAdapter) live(key string) (entry, bool) {
	e, ok := m.lru.Get(key)
	if !ok {
		return entry{}, false
	}
	if e.expired(m.now()) {
		m.lru.Remove(key)
		return entry{}, false
	}
	return e, true
}

// Get retrieves a value from cache
func (m *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := m.live(key)
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores a value; a zero ttl lasts until LRU expiry or eviction
func (m *MemoryAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.lru.Add(key, e)
	return nil
}

// Delete removes a value from cache
func (m *MemoryAdapter) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Exists checks if a live key exists in cache
func (m *MemoryAdapter) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.live(key)
	return ok, nil
}

// DeletePrefix removes every key starting with prefix
func (m *MemoryAdapter) DeletePrefix(_ context.Context, prefix string) (int, error) {
	deleted := 0
	for _, key := range m.lru.Keys() {
		if strings.HasPrefix(key, prefix) && m.lru.Remove(key) {
			deleted++
		}
	}
	return deleted, nil
}

// Len returns the number of stored entries
func (m *MemoryAdapter) Len() int {
	return m.lru.Len()
}

// Close drops every entry
func (m *MemoryAdapter) Close() {
	m.lru.Purge()
}
