// Package rng derives deterministic per-(sensor,radar) random
// sub-streams from one scenario-level root seed (§5). The scenario
// owns a single root seed; each (sensor,radar) pair gets its own
// *rand.Rand seeded by folding the pair's names into that root via
// CityHash64 — the same hash primitive the teacher's sensor registry
// uses to turn a name into a stable numeric identity, applied here to
// a pair of names instead of one.
package rng

import (
	"math/rand"

	"github.com/go-faster/city"
)

// SubStream returns a *rand.Rand seeded deterministically from root,
// sensorName and radarName: identical inputs always produce identical
// draws, independent of iteration order or goroutine scheduling.
func SubStream(root int64, sensorName, radarName string) *rand.Rand {
	h := city.Hash64([]byte(sensorName + "\x00" + radarName))
	seed := int64(h) ^ root
	return rand.New(rand.NewSource(seed))
}
