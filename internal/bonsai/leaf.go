package bonsai

// Leaf is a single placed leaf glyph.
type Leaf struct {
	Pos    Point  `json:"pos"`
	Anchor Point  `json:"anchor"`
	Glyph  string `json:"glyph"`
	Color  Color  `json:"color"`
}

// attachmentPoints returns the positions of the n steps nearest the tip
// of b, in growth order.
func attachmentPoints(b *Branch, n int) []Point {
	if n <= 0 {
		return nil
	}
	steps := b.Steps
	if n > len(steps) {
		n = len(steps)
	}
	points := make([]Point, 0, n)
	for _, s := range steps[len(steps)-n:] {
		points = append(points, s.Pos)
	}
	return points
}

func (t *Tree) placeLeaf(anchor, offset Point) {
	leaf := Leaf{
		Pos:    t.screen.Clamp(anchor.Add(offset)),
		Anchor: anchor,
		Glyph:  t.look.LeafGlyph(t.rng),
	}
	leaf.Color = t.look.LeafColor.resolve(t.rng).Jitter(t.rng, t.leafJitter)
	t.leaves = append(t.leaves, leaf)
	t.emit(leaf.Pos, leaf.Glyph, leaf.Color)
}
