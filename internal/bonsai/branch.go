package bonsai

import "math"

// Direction is the fixed heading of a branch.
type Direction int

const (
	Up Direction = iota
	Left
	Right
	// RandomHorizontal is only accepted by NewBranch, which resolves it
	// into Left or Right once.
	RandomHorizontal
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	case RandomHorizontal:
		return "random-horizontal"
	}
	return "unknown"
}

// Step is one grown unit of a branch. Diff is the delta from the previous
// step and selects the glyph set.
type Step struct {
	Pos   Point `json:"pos"`
	Diff  Point `json:"diff"`
	Width uint  `json:"width"`
}

// Shape holds the tapering state of a branch.
type Shape struct {
	// WidthLossChance is the current per-step probability of losing one
	// width unit.
	WidthLossChance float64 `json:"width_loss_chance"`
	// MinWidthLossChance is the floor WidthLossChance decays toward.
	MinWidthLossChance float64 `json:"min_width_loss_chance"`
	// WidthLossRatio multiplies WidthLossChance once per step while it is
	// above the floor.
	WidthLossRatio float64 `json:"width_loss_ratio"`
}

func TrunkShape() Shape {
	return Shape{WidthLossChance: 1.0, MinWidthLossChance: 0.23, WidthLossRatio: 0.8}
}

func BranchShape() Shape {
	return Shape{WidthLossChance: 0.3, MinWidthLossChance: 0.28, WidthLossRatio: 0.8}
}

// decay moves WidthLossChance one step toward the floor. Decayed values
// are rounded to one decimal; once the floor is reached it sticks.
func (s *Shape) decay() {
	if s.WidthLossChance > s.MinWidthLossChance {
		s.WidthLossChance = math.Round(s.WidthLossChance*s.WidthLossRatio*10) / 10
	}
	if s.WidthLossChance < s.MinWidthLossChance {
		s.WidthLossChance = s.MinWidthLossChance
	}
}

const (
	// sidewaysStepLimit caps the history length of non-Up branches.
	sidewaysStepLimit = 10
	// driftAfter is the history length after which sideways branches may
	// climb a row.
	driftAfter  = 3
	driftChance = 0.3
)

// Branch is an append-only sequence of steps with a fixed direction.
type Branch struct {
	Steps     []Step    `json:"steps"`
	Direction Direction `json:"direction"`
	Shape     Shape     `json:"shape"`
	Color     Color     `json:"color"`
	// LeafFamily and LeafCount are copied from the tree's Appearance when
	// the branch is created.
	LeafFamily LeafFamily `json:"leaf_family"`
	LeafCount  int        `json:"leaf_count"`
}

// NewBranch starts a branch at start. RandomHorizontal is resolved with r.
func NewBranch(start Point, dir Direction, width uint, shape Shape, r Random) *Branch {
	if dir == RandomHorizontal {
		dir = choose(r, []Direction{Left, Right})
	}
	return &Branch{
		Steps:     []Step{{Pos: start, Width: width}},
		Direction: dir,
		Shape:     shape,
		Color:     Brown,
	}
}

func (b *Branch) Last() Step {
	return b.Steps[len(b.Steps)-1]
}

// Alive reports whether the branch can still grow.
func (b *Branch) Alive() bool {
	return b.Last().Width >= 1
}

// Grow appends the next step. progress is how close the tip is to the
// screen edge in the branch's direction; past a quarter it forces the
// branch to taper so it reaches zero width before running off screen.
// Grow returns false without drawing from r when the branch is exhausted.
func (b *Branch) Grow(n Noise, r Random, screen Screen, progress float64) (Step, bool) {
	last := b.Last()
	if last.Width < 1 {
		return Step{}, false
	}

	width := last.Width
	loss := b.Shape.WidthLossChance
	switch snapped := math.Round(progress/0.25) * 0.25; {
	case snapped >= 0.75:
		if width >= 2 {
			width--
		}
		loss = 1.0
	case snapped >= 0.5 && width > 4:
		loss = math.Max(loss, 0.75)
	case snapped >= 0.25 && width > 8:
		loss = math.Max(loss, 0.5)
	}

	if chance(r, loss) && width >= 1 {
		width--
	}
	if len(b.Steps) > sidewaysStepLimit && b.Direction != Up {
		width = 0
	}

	sample := math.Round(n.Sample(float64(last.Pos.X), float64(last.Pos.Y)))
	var diff Point
	switch b.Direction {
	case Up:
		diff = Point{X: int(sample), Y: -1}
	case Left, Right:
		dx := int(math.Abs(sample)) + int(width)
		if b.Direction == Left {
			dx = -dx
		}
		diff.X = dx
		if len(b.Steps) > driftAfter && chance(r, driftChance) {
			diff.Y = -1
		}
	}

	step := Step{Pos: screen.Clamp(last.Pos.Add(diff)), Diff: diff, Width: width}
	b.Steps = append(b.Steps, step)
	b.Shape.decay()
	return step, true
}

var (
	glyphsUp        = []rune(`/|\`)
	glyphsUpLeft    = []rune(`\~`)
	glyphsUpRight   = []rune(`/~\`)
	glyphsLeft      = []rune(`\~-_=`)
	glyphsRight     = []rune(`/~-_=`)
	glyphsUndefined = []rune(`?`)
)

// branchGlyph builds the string drawn for a step: the set's lead rune
// followed by width random runes from the set.
func branchGlyph(diff Point, width uint, r Random) string {
	dx, dy := clampInt(diff.X, -1, 1), clampInt(diff.Y, -1, 1)

	var set []rune
	switch {
	case dx == 0 && (dy == -1 || dy == 0):
		set = glyphsUp
	case (dx == -1 && dy == -1) || (dx == 1 && dy == 1):
		set = glyphsUpLeft
	case (dx == 1 && dy == -1) || (dx == -1 && dy == 1):
		set = glyphsUpRight
	case dx == -1 && dy == 0:
		set = glyphsLeft
	case dx == 1 && dy == 0:
		set = glyphsRight
	default:
		set = glyphsUndefined
	}

	out := make([]rune, 0, width+1)
	out = append(out, set[0])
	for i := uint(0); i < width; i++ {
		out = append(out, choose(r, set))
	}
	return string(out)
}
