package bonsai

import (
	"math"
	"testing"
)

func TestShapeDecay(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		expected []float64
	}{
		{"trunk", TrunkShape(), []float64{0.8, 0.6, 0.5, 0.4, 0.3, 0.23, 0.23, 0.23}},
		{"branch", BranchShape(), []float64{0.28, 0.28, 0.28}},
	}

	for _, tt := range tests {
		s := tt.shape
		for i, want := range tt.expected {
			s.decay()
			if math.Abs(s.WidthLossChance-want) > 1e-9 {
				t.Errorf("%s: decay %d: expected %.2f, got %.4f", tt.name, i, want, s.WidthLossChance)
			}
			if s.WidthLossChance < s.MinWidthLossChance {
				t.Errorf("%s: decay %d: chance %.4f below floor", tt.name, i, s.WidthLossChance)
			}
		}
	}
}

func TestGrowExhaustedBranch(t *testing.T) {
	b := NewBranch(Point{X: 10, Y: 10}, Up, 0, TrunkShape(), fixedRandom{})
	if _, ok := b.Grow(constNoise(0), fixedRandom{}, Screen{Width: 40, Height: 20}, 0); ok {
		t.Fatal("zero width branch should not grow")
	}
	if len(b.Steps) != 1 {
		t.Errorf("expected 1 step, got %d", len(b.Steps))
	}
	if b.Alive() {
		t.Error("zero width branch should not be alive")
	}
}

func TestGrowWidthLoss(t *testing.T) {
	screen := Screen{Width: 40, Height: 40}
	tests := []struct {
		name     string
		width    uint
		chance   float64
		draw     float64
		progress float64
		expected uint
	}{
		{"no loss", 6, 0.3, 0.5, 0, 6},
		{"loss", 6, 0.3, 0.1, 0, 5},
		{"quarter forces thick", 10, 0.0, 0.4, 0.3, 9},
		{"quarter spares thin", 6, 0.0, 0.4, 0.3, 6},
		{"half forces", 6, 0.0, 0.7, 0.5, 5},
		{"half spares thin", 4, 0.0, 0.7, 0.5, 4},
		{"edge double loss", 6, 0.0, 0.99, 0.8, 4},
		{"edge thin", 1, 0.0, 0.99, 0.9, 0},
	}

	for _, tt := range tests {
		b := NewBranch(Point{X: 20, Y: 20}, Up, tt.width, Shape{WidthLossChance: tt.chance, MinWidthLossChance: 0, WidthLossRatio: 1}, fixedRandom{})
		step, ok := b.Grow(constNoise(0), fixedRandom{f: tt.draw}, screen, tt.progress)
		if !ok {
			t.Fatalf("%s: expected growth", tt.name)
		}
		if step.Width != tt.expected {
			t.Errorf("%s: expected width %d, got %d", tt.name, tt.expected, step.Width)
		}
	}
}

func TestGrowUpFollowsNoise(t *testing.T) {
	b := NewBranch(Point{X: 20, Y: 20}, Up, 5, TrunkShape(), fixedRandom{})
	step, _ := b.Grow(constNoise(-1.6), fixedRandom{f: 0.99}, Screen{Width: 40, Height: 40}, 0)

	if step.Diff != (Point{X: -2, Y: -1}) {
		t.Errorf("expected diff (-2,-1), got %v", step.Diff)
	}
	if step.Pos != (Point{X: 18, Y: 19}) {
		t.Errorf("expected pos (18,19), got %v", step.Pos)
	}
}

func TestGrowSideways(t *testing.T) {
	screen := Screen{Width: 80, Height: 40}
	tests := []struct {
		dir      Direction
		expected int
	}{
		{Left, -4},
		{Right, 4},
	}

	for _, tt := range tests {
		b := NewBranch(Point{X: 40, Y: 20}, tt.dir, 3, Shape{WidthLossChance: 0, WidthLossRatio: 1}, fixedRandom{})
		step, _ := b.Grow(constNoise(-1.2), fixedRandom{f: 0.99}, screen, 0)
		if step.Diff.X != tt.expected {
			t.Errorf("%s: expected dx %d, got %d", tt.dir, tt.expected, step.Diff.X)
		}
		if step.Diff.Y != 0 {
			t.Errorf("%s: young branch should not climb, got dy %d", tt.dir, step.Diff.Y)
		}
	}
}

func TestGrowSidewaysDrift(t *testing.T) {
	b := NewBranch(Point{X: 10, Y: 20}, Right, 3, Shape{WidthLossChance: 0, WidthLossRatio: 1}, fixedRandom{})
	r := fixedRandom{f: 0.1}
	screen := Screen{Width: 200, Height: 40}
	for i := 0; i < driftAfter; i++ {
		b.Grow(constNoise(0), r, screen, 0)
	}
	step, _ := b.Grow(constNoise(0), r, screen, 0)
	if step.Diff.Y != -1 {
		t.Errorf("expected climb after %d steps, got dy %d", driftAfter, step.Diff.Y)
	}
}

func TestSidewaysLengthCap(t *testing.T) {
	b := NewBranch(Point{X: 5, Y: 20}, Right, 9, Shape{WidthLossChance: 0, WidthLossRatio: 1}, fixedRandom{})
	screen := Screen{Width: 1000, Height: 40}
	for b.Alive() {
		b.Grow(constNoise(0), fixedRandom{f: 0.99}, screen, 0)
	}
	if len(b.Steps) != sidewaysStepLimit+2 {
		t.Errorf("expected %d steps, got %d", sidewaysStepLimit+2, len(b.Steps))
	}
	if b.Steps[sidewaysStepLimit].Width == 0 {
		t.Error("step 10 should still carry width")
	}
}

func TestGrowClampsToMargin(t *testing.T) {
	screen := Screen{Width: 20, Height: 20}
	b := NewBranch(Point{X: Margin, Y: Margin}, Up, 5, TrunkShape(), fixedRandom{})
	step, _ := b.Grow(constNoise(-2), fixedRandom{f: 0.99}, screen, 0)
	if step.Pos != (Point{X: Margin, Y: Margin}) {
		t.Errorf("expected clamp to margin, got %v", step.Pos)
	}

	r := NewBranch(Point{X: 18, Y: 10}, Right, 5, Shape{WidthLossRatio: 1}, fixedRandom{})
	step, _ = r.Grow(constNoise(2), fixedRandom{f: 0.99}, screen, 0)
	if step.Pos.X != screen.Width-1 {
		t.Errorf("expected clamp to right edge, got %v", step.Pos)
	}
}

func TestNewBranchResolvesHorizontal(t *testing.T) {
	left := NewBranch(Point{}, RandomHorizontal, 1, BranchShape(), fixedRandom{n: 0})
	right := NewBranch(Point{}, RandomHorizontal, 1, BranchShape(), fixedRandom{n: 1})
	if left.Direction != Left || right.Direction != Right {
		t.Errorf("expected left/right, got %s/%s", left.Direction, right.Direction)
	}
}

func TestBranchGlyph(t *testing.T) {
	tests := []struct {
		diff  Point
		width uint
		lead  rune
	}{
		{Point{0, -1}, 3, '/'},
		{Point{0, 0}, 0, '/'},
		{Point{-2, -1}, 1, '\\'},
		{Point{3, -1}, 1, '/'},
		{Point{-6, 0}, 2, '\\'},
		{Point{6, 0}, 2, '/'},
		{Point{0, 1}, 2, '?'},
	}

	for _, tt := range tests {
		g := []rune(branchGlyph(tt.diff, tt.width, fixedRandom{n: 1}))
		if len(g) != int(tt.width)+1 {
			t.Errorf("diff %v: expected %d runes, got %d", tt.diff, tt.width+1, len(g))
		}
		if g[0] != tt.lead {
			t.Errorf("diff %v: expected lead %q, got %q", tt.diff, tt.lead, g[0])
		}
	}
}
