// Package rng provides the seeded pseudo-random source trees are grown with.
package rng

import (
	"encoding/binary"
	"math/rand/v2"
)

// New returns a ChaCha8 source keyed from seed. Equal seeds yield equal
// streams on every platform.
func New(seed uint64) *rand.Rand {
	var key [32]byte
	state := seed
	for i := 0; i < len(key); i += 8 {
		binary.LittleEndian.PutUint64(key[i:], splitmix64(&state))
	}
	return rand.New(rand.NewChaCha8(key))
}

// Seed draws a nonzero seed from the unseeded global source.
func Seed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
