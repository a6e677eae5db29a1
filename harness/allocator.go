package harness

import (
	"math/rand/v2"
)

// Allocator is a queue.Allocator that refuses a configurable
// percentage of requests and keeps count of what is still allocated,
// so the console can report leaks.
type Allocator struct {
	rng      *rand.Rand
	failRate int

	live     int
	bytes    int
	failures int
}

// NewAllocator returns an allocator that fails failRate percent of
// requests, drawing from rng. A nil rng never fails.
func NewAllocator(rng *rand.Rand, failRate int) *Allocator {
	return &Allocator{rng: rng, failRate: min(max(failRate, 0), 100)}
}

// Allocate records one block of size bytes, unless the request is
// chosen to fail.
func (a *Allocator) Allocate(size int) bool {
	if a.failRate > 0 && a.rng != nil && a.rng.IntN(100) < a.failRate {
		a.failures++
		return false
	}

	a.live++
	a.bytes += size
	return true
}

// Release returns one block of size bytes.
func (a *Allocator) Release(size int) {
	a.live--
	a.bytes -= size
}

// SetFailRate changes the failure percentage, clamped to [0, 100].
func (a *Allocator) SetFailRate(rate int) { a.failRate = min(max(rate, 0), 100) }

// FailRate returns the failure percentage.
func (a *Allocator) FailRate() int { return a.failRate }

// Live returns the number of blocks allocated and not released.
func (a *Allocator) Live() int { return a.live }

// Bytes returns the payload bytes allocated and not released.
func (a *Allocator) Bytes() int { return a.bytes }

// Failures returns how many requests were refused.
func (a *Allocator) Failures() int { return a.failures }
