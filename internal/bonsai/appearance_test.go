package bonsai

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/bonsai/internal/rng"
)

func TestRandomAppearanceRanges(t *testing.T) {
	palette := map[Color]bool{Green: true, Red: true, Yellow: true, Rose: true}
	rainbowCount := 0
	const runs = 2000

	for seed := uint64(1); seed <= runs; seed++ {
		w := uint(seed % 20)
		r := rng.New(seed)
		a := RandomAppearance(r, w)

		if a.LeafCount < minLeafCount || a.LeafCount > maxLeafCount {
			t.Fatalf("seed %d: leaf count %d out of range", seed, a.LeafCount)
		}
		if want := int(math.Round(float64(w) / 5)); a.TrunkWidthBonus != want {
			t.Fatalf("seed %d: expected bonus %d, got %d", seed, want, a.TrunkWidthBonus)
		}
		if a.TrunkWidth != w {
			t.Fatalf("seed %d: expected trunk width %d, got %d", seed, w, a.TrunkWidth)
		}
		if a.Scatter.MinX >= 0 || a.Scatter.MaxX <= 0 || a.Scatter.MinY >= 0 || a.Scatter.MaxY != 1 {
			t.Fatalf("seed %d: unexpected extents %+v", seed, a.Scatter)
		}
		if a.LeafColor.Rainbow {
			rainbowCount++
		} else if !palette[a.LeafColor.Base] {
			t.Fatalf("seed %d: leaf colour %s not in palette", seed, a.LeafColor)
		}

		for i := 0; i < 20; i++ {
			n := a.ScatterCount(r)
			if n < minScatterCount || n > maxScatterCount+3*a.TrunkWidthBonus {
				t.Fatalf("seed %d: scatter count %d out of range", seed, n)
			}
		}
	}

	ratio := float64(rainbowCount) / runs
	if ratio < 0.02 || ratio > 0.09 {
		t.Errorf("expected rainbow in about 5%% of trees, got %.3f", ratio)
	}
}

func TestScatterExtentsByFamily(t *testing.T) {
	pointy := scatterExtents(Pointy, 1)
	round := scatterExtents(Round, 1)
	if pointy.MaxX-pointy.MinX <= round.MaxX-round.MinX {
		t.Error("pointy leaves should spread wider than round leaves")
	}
	if -round.MinY <= round.MaxY {
		t.Error("leaves should reach further up than down")
	}
}

func TestPotLines(t *testing.T) {
	tests := []struct {
		style       PotStyle
		trunk       uint
		width       int
		left, right string
	}{
		{LargePot, 7, 18, `\`, `/`},
		{SmallPot, 7, 14, "(", ")"},
		{SmallPot, 0, 7, "(", ")"},
	}

	for _, tt := range tests {
		lines := PotLines(tt.style, tt.trunk)
		if len(lines) != 3 {
			t.Fatalf("%s pot: expected 3 lines, got %d", tt.style, len(lines))
		}
		if len(lines[0]) != tt.width || len(lines[1]) != tt.width {
			t.Errorf("%s pot: expected width %d, got %d/%d", tt.style, tt.width, len(lines[0]), len(lines[1]))
		}
		if strings.Trim(lines[0], " _") != "" {
			t.Errorf("%s pot: rim should be underscores, got %q", tt.style, lines[0])
		}
		if !strings.HasPrefix(lines[1], tt.left) || !strings.HasSuffix(lines[1], tt.right) {
			t.Errorf("%s pot: unexpected walls %q", tt.style, lines[1])
		}
	}
}

func TestColorJitter(t *testing.T) {
	c := Color{R: 10, G: 200, B: 5}
	got := c.Jitter(fixedRandom{n: 20}, 30)
	if got != (Color{R: 0, G: 180, B: 0}) {
		t.Errorf("expected saturating subtraction, got %+v", got)
	}
	if c.Jitter(fixedRandom{n: 20}, 0) != c {
		t.Error("zero jitter should keep colour")
	}
	if c.Hex() != "#0ac805" {
		t.Errorf("expected #0ac805, got %s", c.Hex())
	}
}

func TestRainbowResolvesFromPalette(t *testing.T) {
	lc := LeafColor{Rainbow: true}
	r := rng.New(3)
	for i := 0; i < 50; i++ {
		c := lc.resolve(r)
		found := false
		for _, p := range rainbow {
			found = found || p == c
		}
		if !found {
			t.Fatalf("resolved colour %s not in rainbow", c.Hex())
		}
	}
}
