// FILE: internal/cache/tier.go
package cache

import (
	"strings"
	"sync"
	"time"
)

// Tier is an in-memory TTL cache for one shape of data.
type Tier struct {
	name  string
	mu    sync.RWMutex
	items map[string]Entry
	ttl   time.Duration
	now   func() time.Time
}

// Entry stores value and absolute expiry.
type Entry struct {
	Value     any
	ExpiresAt time.Time
}

// Option configures a Tier.
type Option func(*Tier)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tier) { t.now = now }
}

// NewTier creates a Tier whose entries live for ttl unless overridden.
func NewTier(name string, ttl time.Duration, opts ...Option) *Tier {
	t := &Tier{
		name:  name,
		items: make(map[string]Entry),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Name returns the tier name.
func (t *Tier) Name() string { return t.name }

// TTL returns the default time-to-live.
func (t *Tier) TTL() time.Duration { return t.ttl }

// Get returns value and true if present and fresh. Expired entries are left for Cleanup.
func (t *Tier) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}
	t.mu.RLock()
	entry, ok := t.items[key]
	t.mu.RUnlock()
	if !ok || !t.now().Before(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Value, true
}

// Set inserts or replaces key with the default TTL.
func (t *Tier) Set(key string, value any) {
	t.SetWithTTL(key, value, 0)
}

// SetWithTTL inserts or replaces key. A ttl <= 0 means the tier default.
func (t *Tier) SetWithTTL(key string, value any, ttl time.Duration) {
	if t == nil {
		return
	}
	if ttl <= 0 {
		ttl = t.ttl
	}
	t.mu.Lock()
	t.items[key] = Entry{Value: value, ExpiresAt: t.now().Add(ttl)}
	t.mu.Unlock()
}

// Delete removes key if present.
func (t *Tier) Delete(key string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	delete(t.items, key)
	t.mu.Unlock()
}

// DeleteNamespace removes the key equal to ns and every key of the form ns?params.
// It returns the number of entries removed.
func (t *Tier) DeleteNamespace(ns string) int {
	if t == nil {
		return 0
	}
	prefix := ns + "?"
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k := range t.items {
		if k == ns || strings.HasPrefix(k, prefix) {
			delete(t.items, k)
			n++
		}
	}
	return n
}

// Clear drops every entry.
func (t *Tier) Clear() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.items = make(map[string]Entry)
	t.mu.Unlock()
}

// Size returns current number of items, expired or not.
func (t *Tier) Size() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	sz := len(t.items)
	t.mu.RUnlock()
	return sz
}

// Cleanup removes expired entries and returns how many were dropped.
func (t *Tier) Cleanup() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	n := 0
	for k, e := range t.items {
		if !now.Before(e.ExpiresAt) {
			delete(t.items, k)
			n++
		}
	}
	return n
}

// GetAs returns the cached value as T. A value of another type counts as a miss.
func GetAs[T any](t *Tier, key string) (T, bool) {
	var zero T
	v, ok := t.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
