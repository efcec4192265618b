package analysis

import (
	"math"
	"sort"

	"github.com/san-kum/bonsai/internal/sim"
)

// Stats describe one metric over a set of trees.
type Stats struct {
	N      int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// Values pulls one metric out of each result, in order.
func Values(results []*sim.Result, metric string) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Metrics[metric]
	}
	return out
}

// Summarize uses the population standard deviation. An empty input gives
// zero Stats.
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := Stats{N: len(sorted), Min: sorted[0], Max: sorted[len(sorted)-1]}
	for _, v := range sorted {
		s.Mean += v
	}
	s.Mean /= float64(s.N)

	for _, v := range sorted {
		d := v - s.Mean
		s.StdDev += d * d
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(s.N))

	mid := s.N / 2
	if s.N%2 == 1 {
		s.Median = sorted[mid]
	} else {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return s
}

// Histogram counts values into n equal-width buckets spanning [min, max].
// It returns the counts and the lower edge of each bucket.
func Histogram(values []float64, n int) ([]int, []float64) {
	if len(values) == 0 || n <= 0 {
		return nil, nil
	}
	s := Summarize(values)
	width := (s.Max - s.Min) / float64(n)

	counts := make([]int, n)
	edges := make([]float64, n)
	for i := range edges {
		edges[i] = s.Min + float64(i)*width
	}
	for _, v := range values {
		i := n - 1
		if width > 0 {
			i = min(int((v-s.Min)/width), n-1)
		}
		counts[i]++
	}
	return counts, edges
}
