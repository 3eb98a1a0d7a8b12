// Package randutil derives reproducible random streams from integer seeds.
package randutil

import (
	"hash/fnv"
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand whose sequence depends only on seed
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Now returns a generator seeded from the wall clock
func Now() *rand.Rand {
	return New(time.Now().UnixNano())
}

// ForKey derives an independent stream per key from one base seed, so every
// room of a seeded server deals its own reproducible cards.
func ForKey(seed int64, key string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return New(seed ^ int64(h.Sum64()))
}

// splitmix64 finalizer
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
