package store

import (
	"sync"
	"time"
)

// IDGenerator issues unique int64 ids based on wall-clock milliseconds.
// Two ids requested within the same millisecond never collide: the
// generator keeps a monotonic floor and bumps past it.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewIDGenerator returns a generator starting from the current time.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns a fresh id, strictly greater than any id this generator
// has issued before.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
