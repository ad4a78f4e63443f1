// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package cache provides the in-process data structures shared by the
// matching engines: a TTL cache with an injectable clock (used for
// collaborative-filtering similarity results) and a seeded Bloom filter
// (used by the approximate-matching benchmark).
package cache

import (
	"sync"
	"time"
)

// Clock abstracts time for testable expiry. The zero-dependency production
// implementation is RealClock; tests inject a fake.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }

// entry holds a cached value and the instant it was inserted.
type entry struct {
	value      interface{}
	insertedAt time.Time
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Keys      int
}

// TTL is a thread-safe in-memory cache with a fixed time-to-live.
//
// Entries expire TTL after insertion; expiry is checked lazily on read.
// Invalidation is coarse-grained: Clear drops everything at once. There is
// no per-entry eviction policy - the cache is bounded by the key space of
// its callers, which is small (one entry per subject).
type TTL struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   Clock

	statsMu sync.Mutex
	stats   Stats
}

// NewTTL creates a cache whose entries expire ttl after insertion.
// A nil clock defaults to RealClock.
func NewTTL(ttl time.Duration, clock Clock) *TTL {
	if clock == nil {
		clock = RealClock{}
	}
	return &TTL{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get retrieves a value by key. Expired entries are removed and reported
// as misses.
func (c *TTL) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.clock.Now().Sub(e.insertedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry between the read and write sections.
		if cur, ok := c.entries[key]; ok && cur.insertedAt.Equal(e.insertedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return e.value, true
}

// Set stores a value under key, replacing any existing entry.
func (c *TTL) Set(key string, value interface{}) {
	now := c.clock.Now()
	c.mu.Lock()
	c.entries[key] = entry{value: value, insertedAt: now}
	c.mu.Unlock()
}

// Clear removes all entries. This is the administrative invalidation path;
// there is no automatic background cleanup.
func (c *TTL) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the current number of entries, including any not yet
// lazily expired.
func (c *TTL) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of cache counters.
func (c *TTL) Stats() Stats {
	c.statsMu.Lock()
	s := c.stats
	c.statsMu.Unlock()

	c.mu.RLock()
	s.Keys = len(c.entries)
	c.mu.RUnlock()
	return s
}

func (c *TTL) recordHit() {
	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
}

func (c *TTL) recordMiss() {
	c.statsMu.Lock()
	c.stats.Misses++
	c.statsMu.Unlock()
}

func (c *TTL) recordEviction() {
	c.statsMu.Lock()
	c.stats.Evictions++
	c.statsMu.Unlock()
}
