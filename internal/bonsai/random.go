package bonsai

// Random is the seeded source every draw goes through. *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Noise is a deterministic 2D coherent noise field with a fixed bounded range.
type Noise interface {
	Sample(x, y float64) float64
}

// intRange returns a uniform integer in [lo, hi].
func intRange(r Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

func chance(r Random, p float64) bool {
	return r.Float64() < p
}

func choose[T any](r Random, items []T) T {
	return items[r.IntN(len(items))]
}
