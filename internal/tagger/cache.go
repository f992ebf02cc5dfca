package tagger

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	ticker    string
	hash      uint64
	eventDate time.Time
}

// RepeatCache is a bounded, FIFO-evicted in-memory set of recent event
// fingerprints used for duplicate-event detection.
type RepeatCache struct {
	mu       sync.Mutex
	entries  []cacheEntry
	capacity int
}

// NewRepeatCache creates a cache holding at most capacity entries.
func NewRepeatCache(capacity int) *RepeatCache {
	if capacity <= 0 {
		capacity = 256
	}
	return &RepeatCache{capacity: capacity}
}

// Add appends a fingerprint, evicting the oldest entry once capacity is exceeded.
func (c *RepeatCache) Add(ticker string, hash uint64, eventDate time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, cacheEntry{
		ticker:    strings.ToUpper(strings.TrimSpace(ticker)),
		hash:      hash,
		eventDate: eventDate,
	})
	if len(c.entries) > c.capacity {
		c.entries = c.entries[len(c.entries)-c.capacity:]
	}
}

// Scan reports whether any entry for ticker dated on or after cutoff has a
// fingerprint bit similarity of at least threshold against hash.
func (c *RepeatCache) Scan(ticker string, hash uint64, cutoff time.Time, threshold float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := strings.ToUpper(strings.TrimSpace(ticker))
	for _, e := range c.entries {
		if e.ticker != t || e.eventDate.Before(cutoff) {
			continue
		}
		if BitSimilarity(e.hash, hash) >= threshold {
			return true
		}
	}
	return false
}

// Len returns the current number of cached fingerprints.
func (c *RepeatCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
