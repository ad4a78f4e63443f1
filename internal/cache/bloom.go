// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package cache

import "sync"

// maxBloomHashes caps the number of hash functions used by the filter.
const maxBloomHashes = 5

// BloomFilter is a probabilistic set-membership structure over string keys.
//
// Key characteristics:
//   - No false negatives: if Test returns false, the key was never added
//   - Possible false positives: if Test returns true, the key might have
//     been added; callers must verify against an authoritative source
//   - Cannot remove keys
//
// The slot table is a set rather than a bit array, and hashing is a family
// of up to five multiplicative string hashes seeded 1..5 over a slot space
// of expectedElements*10. Build and query use the same hash family over the
// same key extraction, which is what rules out false negatives.
type BloomFilter struct {
	mu      sync.RWMutex
	slots   map[uint64]struct{}
	space   uint64
	hashFns int
	count   int
}

// NewBloomFilter creates a filter sized for the expected number of keys.
func NewBloomFilter(expectedElements int) *BloomFilter {
	if expectedElements <= 0 {
		expectedElements = 1000
	}
	return &BloomFilter{
		slots:   make(map[uint64]struct{}),
		space:   uint64(expectedElements) * 10,
		hashFns: maxBloomHashes,
	}
}

// Add inserts a key into the filter.
func (bf *BloomFilter) Add(key string) {
	bf.mu.Lock()
	defer bf.mu.Unlock()

	for seed := 1; seed <= bf.hashFns; seed++ {
		bf.slots[bf.hash(key, uint64(seed))] = struct{}{}
	}
	bf.count++
}

// Test reports whether a key might be in the filter. A false result is
// definitive; a true result requires verification.
func (bf *BloomFilter) Test(key string) bool {
	bf.mu.RLock()
	defer bf.mu.RUnlock()

	for seed := 1; seed <= bf.hashFns; seed++ {
		if _, ok := bf.slots[bf.hash(key, uint64(seed))]; !ok {
			return false
		}
	}
	return true
}

// Count returns the number of keys added.
func (bf *BloomFilter) Count() int {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	return bf.count
}

// SlotsUsed returns the number of distinct occupied slots, a proxy for the
// filter's memory footprint.
func (bf *BloomFilter) SlotsUsed() int {
	bf.mu.RLock()
	defer bf.mu.RUnlock()
	return len(bf.slots)
}

// hash is a multiplicative string hash parameterized by seed. Distinct
// seeds give (approximately) independent hash functions over the slot space.
func (bf *BloomFilter) hash(key string, seed uint64) uint64 {
	h := seed
	for i := 0; i < len(key); i++ {
		h = (h*31 + uint64(key[i])) % bf.space
	}
	return h
}
