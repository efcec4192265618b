package bonsai

import (
	"math"
	"strings"
)

// LeafFamily selects the glyph set leaves are drawn from.
type LeafFamily int

const (
	Pointy LeafFamily = iota
	Round
)

var leafGlyphs = map[LeafFamily][]string{
	Pointy: {"^", "*", "^^", "'"},
	Round:  {"&", "@", "o", "%"},
}

func (f LeafFamily) Glyphs() []string {
	return leafGlyphs[f]
}

func (f LeafFamily) String() string {
	if f == Round {
		return "round"
	}
	return "pointy"
}

// PotStyle selects the base drawn under the trunk.
type PotStyle int

const (
	LargePot PotStyle = iota
	SmallPot
)

func (p PotStyle) String() string {
	if p == SmallPot {
		return "small"
	}
	return "large"
}

// Extents bound the offset of a scattered leaf from its attachment point.
// Both ranges are inclusive.
type Extents struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

const (
	rainbowChance   = 0.05
	minLeafCount    = 2
	maxLeafCount    = 4
	minScatterCount = 5
	maxScatterCount = 10
)

// Appearance holds the cosmetic parameters of a tree. It is drawn once
// and never changes.
type Appearance struct {
	LeafFamily LeafFamily `json:"leaf_family"`
	LeafColor  LeafColor  `json:"leaf_color"`
	// LeafCount is how many steps from each branch tip carry leaves.
	LeafCount       int      `json:"leaf_count"`
	Scatter         Extents  `json:"scatter"`
	TrunkWidth      uint     `json:"trunk_width"`
	TrunkWidthBonus int      `json:"trunk_width_bonus"`
	Pot             PotStyle `json:"pot"`
}

// RandomAppearance draws an Appearance for a trunk of the given width.
func RandomAppearance(r Random, trunkWidth uint) Appearance {
	bonus := int(math.Round(float64(trunkWidth) / 5))
	family := choose(r, []LeafFamily{Pointy, Round})

	rainbowLeaves := chance(r, rainbowChance)
	count := intRange(r, minLeafCount, maxLeafCount)

	color := LeafColor{Rainbow: true}
	if !rainbowLeaves {
		color = LeafColor{Base: choose(r, []Color{Green, Red, Yellow, Rose})}
	}

	return Appearance{
		LeafFamily:      family,
		LeafColor:       color,
		LeafCount:       count,
		Scatter:         scatterExtents(family, bonus),
		TrunkWidth:      trunkWidth,
		TrunkWidthBonus: bonus,
		Pot:             choose(r, []PotStyle{LargePot, SmallPot}),
	}
}

// Pointy leaves spread wide and flat, round leaves pile up higher.
// Both reach further up than down.
func scatterExtents(f LeafFamily, bonus int) Extents {
	if f == Round {
		return Extents{MinX: -(2 + bonus), MaxX: 2 + bonus, MinY: -(2 + bonus), MaxY: 1}
	}
	return Extents{MinX: -(4 + bonus), MaxX: 4 + bonus, MinY: -(1 + bonus), MaxY: 1}
}

// ScatterCount draws how many leaves surround one attachment point.
func (a Appearance) ScatterCount(r Random) int {
	return intRange(r, minScatterCount, maxScatterCount+3*a.TrunkWidthBonus)
}

func (a Appearance) LeafGlyph(r Random) string {
	return choose(r, a.LeafFamily.Glyphs())
}

func (a Appearance) scatterOffset(r Random) Point {
	return Point{
		X: intRange(r, a.Scatter.MinX, a.Scatter.MaxX),
		Y: intRange(r, a.Scatter.MinY, a.Scatter.MaxY),
	}
}

// PotLines renders the base as text, top line first. The top line is the
// soil rim; a large pot is wider and has slanted walls, a small pot is
// narrower and rounded.
func PotLines(style PotStyle, trunkWidth uint) []string {
	left, right := `\`, `/`
	w := int(trunkWidth) + 10
	if style == SmallPot {
		left, right = "(", ")"
		w = int(trunkWidth) + 6
	}
	w = max(w, 3)
	return []string{
		" " + strings.Repeat("_", w),
		left + strings.Repeat(" ", w-1) + right,
		" " + left + strings.Repeat("_", w-3) + right,
	}
}
