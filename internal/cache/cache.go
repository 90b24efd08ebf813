// Package cache holds the per-locale resolution cache that shields the
// lookup path from repeated storage reads.
package cache

import (
	"sync"
	"time"

	"github.com/simfra/lingod/internal/model"
)

// DefaultTTL is how long a cached locale entry stays fresh without an
// explicit invalidation.
const DefaultTTL = 24 * time.Hour

// Cache stores the fully materialized, grouped translation set per locale.
// Implementations must tolerate concurrent readers and writers; rebuilds for
// the same locale may race, last writer wins.
type Cache interface {
	// Get returns the cached entry for locale, or ok=false on a miss
	// (absent or expired).
	Get(locale string) (model.Grouped, bool)
	// Set replaces the whole per-locale entry atomically.
	Set(locale string, g model.Grouped)
	// Invalidate removes the entry for locale; the next Get is a
	// guaranteed miss.
	Invalidate(locale string)
}

type entry struct {
	grouped   model.Grouped
	expiresAt time.Time
}

// Memory is an in-process Cache backed by a map with per-entry TTL.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	entries map[string]entry
}

// Compile-time check that Memory implements Cache.
var _ Cache = (*Memory)(nil)

// NewMemory returns a Memory cache. A non-positive ttl falls back to
// DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(locale string) (model.Grouped, bool) {
	m.mu.RLock()
	e, ok := m.entries[locale]
	m.mu.RUnlock()
	if !ok || m.now().After(e.expiresAt) {
		return nil, false
	}
	return e.grouped, true
}

func (m *Memory) Set(locale string, g model.Grouped) {
	m.mu.Lock()
	m.entries[locale] = entry{grouped: g, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
}

func (m *Memory) Invalidate(locale string) {
	m.mu.Lock()
	delete(m.entries, locale)
	m.mu.Unlock()
}
