package landscape

import (
	"math/rand"
	"time"
)

// NewRand returns a deterministic random source for the given seed.
// Seed 0 selects a time-based seed for callers that want a fresh
// instance per run.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
