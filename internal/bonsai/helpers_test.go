package bonsai

import "testing"

// fixedRandom returns the same draws forever.
type fixedRandom struct {
	f float64
	n int
}

func (r fixedRandom) Float64() float64 { return r.f }
func (r fixedRandom) IntN(n int) int   { return r.n % n }

type constNoise float64

func (c constNoise) Sample(x, y float64) float64 { return float64(c) }

const frameCap = 100000

func growAll(t *testing.T, tree *Tree) *Recorder {
	t.Helper()
	rec := &Recorder{}
	for i := 0; tree.Step(rec); i++ {
		if i > frameCap {
			t.Fatalf("seed %d: tree still growing after %d frames (phase %s)", tree.Seed(), frameCap, tree.Phase())
		}
	}
	return rec
}

func plant(t *testing.T, seed uint64, trunk uint, w, h int) *Tree {
	t.Helper()
	tree, err := Plant(Options{Seed: seed, TrunkWidth: trunk, Screen: Screen{Width: w, Height: h}})
	if err != nil {
		t.Fatalf("plant failed: %v", err)
	}
	return tree
}
