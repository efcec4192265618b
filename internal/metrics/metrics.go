package metrics

import "github.com/san-kum/bonsai/internal/bonsai"

// Metric measures one property of a tree, grown or partially grown.
type Metric interface {
	Name() string
	Measure(t *bonsai.Tree) float64
}

type branchCount struct{}

func (branchCount) Name() string { return "branches" }

// Measure counts side branches; the trunk is not included.
func (branchCount) Measure(t *bonsai.Tree) float64 {
	return float64(max(len(t.Branches())-1, 0))
}

type leafCount struct{}

func (leafCount) Name() string                   { return "leaves" }
func (leafCount) Measure(t *bonsai.Tree) float64 { return float64(len(t.Leaves())) }

type frameCount struct{}

func (frameCount) Name() string                   { return "frames" }
func (frameCount) Measure(t *bonsai.Tree) float64 { return float64(t.Frames()) }

type trunkWidth struct{}

func (trunkWidth) Name() string { return "trunk_width" }

func (trunkWidth) Measure(t *bonsai.Tree) float64 {
	return float64(t.Appearance().TrunkWidth)
}

// trunkHeight is the number of rows between the trunk's base and its
// highest step.
type trunkHeight struct{}

func (trunkHeight) Name() string { return "trunk_height" }

func (trunkHeight) Measure(t *bonsai.Tree) float64 {
	trunk := t.Trunk()
	if trunk == nil {
		return 0
	}
	base, top := trunk.Steps[0].Pos.Y, trunk.Steps[0].Pos.Y
	for _, s := range trunk.Steps {
		top = min(top, s.Pos.Y)
	}
	return float64(base - top)
}

// spread is the horizontal extent covered by wood and leaves.
type spread struct{}

func (spread) Name() string { return "spread" }

func (spread) Measure(t *bonsai.Tree) float64 {
	first := true
	var lo, hi int
	see := func(x int) {
		if first {
			lo, hi, first = x, x, false
			return
		}
		lo, hi = min(lo, x), max(hi, x)
	}
	for _, b := range t.Branches() {
		for _, s := range b.Steps {
			see(s.Pos.X)
		}
	}
	for _, l := range t.Leaves() {
		see(l.Pos.X)
	}
	if first {
		return 0
	}
	return float64(hi - lo + 1)
}

var (
	Branches    Metric = branchCount{}
	Leaves      Metric = leafCount{}
	Frames      Metric = frameCount{}
	TrunkWidth  Metric = trunkWidth{}
	TrunkHeight Metric = trunkHeight{}
	Spread      Metric = spread{}
)

func Default() []Metric {
	return []Metric{Branches, Leaves, Frames, TrunkWidth, TrunkHeight, Spread}
}

func Collect(t *bonsai.Tree, ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Measure(t)
	}
	return out
}

// TrunkProfile returns the trunk width at every step, base first.
func TrunkProfile(t *bonsai.Tree) []float64 {
	trunk := t.Trunk()
	if trunk == nil {
		return nil
	}
	out := make([]float64, len(trunk.Steps))
	for i, s := range trunk.Steps {
		out[i] = float64(s.Width)
	}
	return out
}
