package domain

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator mints the type-tagged ids the document format uses:
// a wall-clock millisecond timestamp prefixed with "f", "m", "s" or "file"
// (user ids carry no prefix). The clock value is bumped when two creations
// land on the same millisecond, so ids are unique as long as creations go
// through one generator - which holds, since the store serializes writers.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator returns a generator backed by the real clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// NewIDGeneratorAt returns a generator backed by the given clock, for tests.
func NewIDGeneratorAt(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

func (g *IDGenerator) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

func (g *IDGenerator) Faculty() string { return "f" + g.next() }
func (g *IDGenerator) Major() string   { return "m" + g.next() }
func (g *IDGenerator) Subject() string { return "s" + g.next() }
func (g *IDGenerator) File() string    { return "file" + g.next() }
func (g *IDGenerator) User() string    { return g.next() }
