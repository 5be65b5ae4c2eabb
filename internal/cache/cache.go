package cache

import (
	"sync"

	"cli-roulette/internal/domain"
)

const DefaultRecent = 8

// RoundCache collects the results of one session. It keeps every result
// until drained, and a circular buffer of the most recent ones for display.
type RoundCache struct {
	mu      sync.Mutex
	pending []domain.RoundResult
	recent  []domain.RoundResult // circular buffer, up to size entries
	size    int
}

// NewRoundCache returns ready cache
func NewRoundCache(size int) *RoundCache {
	if size <= 0 {
		size = DefaultRecent
	}
	return &RoundCache{
		recent: make([]domain.RoundResult, 0, size),
		size:   size,
	}
}

func (c *RoundCache) Add(r domain.RoundResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, r)
	if len(c.recent) >= c.size {
		copy(c.recent, c.recent[1:])
		c.recent[c.size-1] = r
	} else {
		c.recent = append(c.recent, r)
	}
}

// Recent returns up to n of the latest results, oldest first.
func (c *RoundCache) Recent(n int) []domain.RoundResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 || len(c.recent) == 0 {
		return nil
	}
	if n > len(c.recent) {
		n = len(c.recent)
	}
	out := make([]domain.RoundResult, n)
	copy(out, c.recent[len(c.recent)-n:])
	return out
}

func (c *RoundCache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Drain takes every result added since the last drain and clears them.
// The recent window is left intact.
func (c *RoundCache) Drain() []domain.RoundResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return nil
	}
	out := c.pending
	c.pending = nil
	return out
}
