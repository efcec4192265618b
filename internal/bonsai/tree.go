package bonsai

import (
	"math"

	"github.com/san-kum/bonsai/internal/noise"
	"github.com/san-kum/bonsai/internal/rng"
)

const (
	// MaxTrunkWidth bounds explicit trunk widths.
	MaxTrunkWidth = 40
	// minRandomTrunk and maxRandomTrunk bound the width drawn when none is given.
	minRandomTrunk = 5
	maxRandomTrunk = 15
)

// Options describe a tree to plant.
type Options struct {
	// Seed reproduces a tree. Plant replaces zero with a random seed.
	Seed uint64
	// TrunkWidth of zero draws a width in [5, 15] from the seeded source.
	TrunkWidth uint
	Screen     Screen
	// LeafJitter darkens each leaf channel by up to this much. Zero keeps
	// leaf colours exact.
	LeafJitter int
}

// Tree is the growth controller. It owns every branch and leaf and
// advances one action per Step call.
type Tree struct {
	seed       uint64
	screen     Screen
	noise      Noise
	rng        Random
	look       Appearance
	leafJitter int
	// requested is the trunk width asked for, zero when it was drawn.
	requested  uint

	branches []*Branch
	leaves   []Leaf
	phase    phase
	frames   int
	pending  []Command
}

// Plant builds a tree with the default noise field and random source for
// opts.Seed, drawing a fresh seed when it is zero.
func Plant(opts Options) (*Tree, error) {
	if opts.Seed == 0 {
		opts.Seed = rng.Seed()
	}
	return New(opts, noise.New(opts.Seed), rng.New(opts.Seed))
}

// New builds a tree on explicit collaborators. opts.Seed is only recorded.
func New(opts Options, n Noise, r Random) (*Tree, error) {
	if err := opts.Screen.Validate(); err != nil {
		return nil, err
	}
	if opts.TrunkWidth > MaxTrunkWidth {
		return nil, &ConfigError{Field: "trunk_width", Value: opts.TrunkWidth, Err: ErrTrunkTooWide}
	}

	width := opts.TrunkWidth
	if width == 0 {
		width = uint(intRange(r, minRandomTrunk, maxRandomTrunk))
	}

	return &Tree{
		seed:       opts.Seed,
		screen:     opts.Screen,
		noise:      n,
		rng:        r,
		look:       RandomAppearance(r, width),
		leafJitter: opts.LeafJitter,
		requested:  opts.TrunkWidth,
		phase:      growingTrunk{},
	}, nil
}

// Step performs one growth action and sends its draw commands to sink,
// which may be nil. It returns false, doing nothing, once the tree is
// finished.
func (t *Tree) Step(sink Sink) bool {
	if t.Done() {
		return false
	}
	t.pending = t.pending[:0]
	t.phase = t.advance()
	t.frames++
	if sink != nil {
		for _, c := range t.pending {
			sink.Draw(c.Pos, c.Glyph, c.Color)
		}
	}
	return true
}

func (t *Tree) Done() bool {
	_, ok := t.phase.(finished)
	return ok
}

func (t *Tree) Seed() uint64           { return t.seed }
func (t *Tree) Screen() Screen         { return t.screen }
func (t *Tree) Appearance() Appearance { return t.look }
func (t *Tree) Frames() int            { return t.frames }
func (t *Tree) Phase() string          { return t.phase.String() }
func (t *Tree) Leaves() []Leaf         { return t.leaves }
func (t *Tree) Branches() []*Branch    { return t.branches }

// Options returns what the tree was planted with, seed included, so
// Plant(t.Options()) grows the same tree.
func (t *Tree) Options() Options {
	return Options{Seed: t.seed, TrunkWidth: t.requested, Screen: t.screen, LeafJitter: t.leafJitter}
}

// Trunk returns nil until the first Step.
func (t *Tree) Trunk() *Branch {
	if len(t.branches) == 0 {
		return nil
	}
	return t.branches[0]
}

func (t *Tree) emit(pos Point, glyph string, color Color) {
	t.pending = append(t.pending, Command{Pos: pos, Glyph: glyph, Color: color})
}

// plantTrunk draws the pot and starts the trunk centred above it.
func (t *Tree) plantTrunk() {
	potHeight := t.drawPot()
	w := t.look.TrunkWidth
	start := Point{
		X: t.screen.Width/2 - int(math.Round(float64(w)/2)),
		Y: t.screen.Height - potHeight,
	}
	trunk := NewBranch(t.screen.Clamp(start), Up, w, TrunkShape(), t.rng)
	t.adopt(trunk)
}

// drawPot emits the pot lines bottom-aligned and centred, and returns
// how many rows sit below the soil rim.
func (t *Tree) drawPot() int {
	lines := PotLines(t.look.Pot, t.look.TrunkWidth)
	below := len(lines) - 1
	pos := Point{
		X: max(t.screen.Width/2-len(lines[0])/2, 0),
		Y: t.screen.Height - 1 - below,
	}
	t.emit(pos, lines[0], Green)
	for _, line := range lines[1:] {
		pos.Y++
		t.emit(pos, line, White)
	}
	return below
}

func (t *Tree) adopt(b *Branch) {
	b.LeafFamily = t.look.LeafFamily
	b.LeafCount = t.look.LeafCount
	t.branches = append(t.branches, b)
}

// growBranch steps b with progress measured along its own direction and
// draws the new step.
func (t *Tree) growBranch(b *Branch) bool {
	progress := t.screen.Progress(b.Last().Pos, b.Direction)
	step, ok := b.Grow(t.noise, t.rng, t.screen, progress)
	if !ok {
		return false
	}
	pos := step.Pos
	if b.Direction != Up && step.Width <= 1 {
		pos.Y++
	}
	t.emit(t.screen.Clamp(pos), branchGlyph(step.Diff, step.Width, t.rng), b.Color)
	return true
}
