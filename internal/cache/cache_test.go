// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced Clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestTTL_SetGet(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL(time.Hour, clock)

	c.Set("mentor:42", "cached")

	got, ok := c.Get("mentor:42")
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got != "cached" {
		t.Errorf("Get() = %v, want cached", got)
	}
}

func TestTTL_MissOnUnknownKey(t *testing.T) {
	c := NewTTL(time.Hour, newFakeClock())

	if _, ok := c.Get("absent"); ok {
		t.Error("Get() hit for absent key")
	}
	if s := c.Stats(); s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
}

func TestTTL_ExpiresAfterTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL(time.Hour, clock)
	c.Set("k", 1)

	clock.Advance(59 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired before TTL elapsed")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry survived past TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry, want 0", c.Len())
	}
}

func TestTTL_SetRefreshesExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL(time.Hour, clock)
	c.Set("k", "old")

	clock.Advance(50 * time.Minute)
	c.Set("k", "new")

	clock.Advance(30 * time.Minute)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("refreshed entry expired early")
	}
	if got != "new" {
		t.Errorf("Get() = %v, want new", got)
	}
}

func TestTTL_ClearDropsEverything(t *testing.T) {
	c := NewTTL(time.Hour, newFakeClock())
	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get("k3"); ok {
		t.Error("Get() hit after Clear")
	}
}

func TestTTL_ConcurrentAccess(t *testing.T) {
	c := NewTTL(time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%10)
				c.Set(key, n)
				c.Get(key)
				if j%25 == 0 {
					c.Clear()
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestBloomFilter_NoFalseNegatives(t *testing.T) {
	bf := NewBloomFilter(100)

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = fmt.Sprintf("user%d_user%d@example.com_%d", i, i, i)
		bf.Add(keys[i])
	}

	for _, k := range keys {
		if !bf.Test(k) {
			t.Fatalf("Test(%q) = false for an added key", k)
		}
	}
}

func TestBloomFilter_RejectsMostUnknownKeys(t *testing.T) {
	bf := NewBloomFilter(1000)
	for i := 0; i < 1000; i++ {
		bf.Add(fmt.Sprintf("present-%d", i))
	}

	falsePositives := 0
	const probes = 1000
	for i := 0; i < probes; i++ {
		if bf.Test(fmt.Sprintf("absent-%d", i)) {
			falsePositives++
		}
	}

	// The construction targets a small false positive rate; anything above
	// 20% means the hash family or slot space is broken.
	if falsePositives > probes/5 {
		t.Errorf("false positives = %d/%d, want far fewer", falsePositives, probes)
	}
}

func TestBloomFilter_EmptyFilterRejectsAll(t *testing.T) {
	bf := NewBloomFilter(10)
	if bf.Test("anything") {
		t.Error("empty filter reported membership")
	}
}

func TestBloomFilter_Counters(t *testing.T) {
	bf := NewBloomFilter(10)
	bf.Add("a")
	bf.Add("b")

	if bf.Count() != 2 {
		t.Errorf("Count() = %d, want 2", bf.Count())
	}
	if bf.SlotsUsed() == 0 {
		t.Error("SlotsUsed() = 0 after adds")
	}
}
