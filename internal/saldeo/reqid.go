package saldeo

import (
	"sync"
	"time"
)

// reqIDLayout is the provider's request identifier format:
// wall-clock time at millisecond resolution, 17 digits.
const reqIDLayout = "20060102150405.000"

// requestIDGenerator issues unique request identifiers in the provider's
// timestamp format. The raw format collides under concurrent calls within
// the same millisecond, so the generator bumps monotonically past the last
// issued instant instead of trusting the clock alone.
type requestIDGenerator struct {
	mu   sync.Mutex
	last time.Time
}

func (g *requestIDGenerator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().Truncate(time.Millisecond)
	if !now.After(g.last) {
		now = g.last.Add(time.Millisecond)
	}
	g.last = now

	// The layout renders milliseconds as ".000"; the provider's format has
	// no separator.
	id := now.Format(reqIDLayout)
	return id[:14] + id[15:]
}
