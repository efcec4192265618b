package bonsai

const (
	// minBranchSpacing is the vertical gap required between two branches
	// on the same side, and the width of branches spawned from thick steps.
	minBranchSpacing = 2
	// minSpawnRatio is the height ratio a step must pass before a branch
	// may switch sides.
	minSpawnRatio = 0.35
)

// phase is one state of the growth machine. Each variant carries exactly
// the data it needs.
type phase interface {
	String() string
}

// spawnCursor is a resumable scan over the trunk's step history together
// with the side and height of the most recent spawn.
type spawnCursor struct {
	next    int
	lastDir Direction
	lastY   int
}

type growingTrunk struct{}

type searchingSpawnPoint struct {
	cursor spawnCursor
}

type growingBranch struct {
	cursor spawnCursor
	branch int
}

type growingLeaves struct {
	cursor spawnCursor
	branch int
	// points are attachment positions, furthest from the tip first.
	points []Point
	next   int
	// remaining counts scatter leaves left for points[next]. Zero means
	// the base leaf has not been placed yet.
	remaining int
}

type finished struct{}

func (growingTrunk) String() string        { return "trunk" }
func (searchingSpawnPoint) String() string { return "searching" }
func (growingBranch) String() string       { return "branch" }
func (growingLeaves) String() string       { return "leaves" }
func (finished) String() string            { return "done" }

// advance performs one action of the current phase and returns the next.
func (t *Tree) advance() phase {
	switch p := t.phase.(type) {
	case growingTrunk:
		return t.growTrunk()
	case searchingSpawnPoint:
		return t.searchSpawnPoint(p)
	case growingBranch:
		return t.growActiveBranch(p)
	case growingLeaves:
		return t.growLeaves(p)
	default:
		return finished{}
	}
}

func (t *Tree) growTrunk() phase {
	if len(t.branches) == 0 {
		t.plantTrunk()
	}
	trunk := t.branches[0]
	t.growBranch(trunk)
	if trunk.Alive() {
		return growingTrunk{}
	}
	return t.leavesFor(0, spawnCursor{lastDir: Up})
}

func (t *Tree) searchSpawnPoint(p searchingSpawnPoint) phase {
	trunk := t.branches[0]
	if p.cursor.next >= len(trunk.Steps) {
		return finished{}
	}
	step := trunk.Steps[p.cursor.next]
	p.cursor.next++

	ratio := clamp01(1 - float64(step.Pos.Y)/float64(t.screen.Height-1))
	dir := choose(t.rng, []Direction{Left, Right})

	spaced := dir == p.cursor.lastDir && absInt(step.Pos.Y-p.cursor.lastY) > minBranchSpacing
	switched := dir != p.cursor.lastDir && ratio > minSpawnRatio && chance(t.rng, ratio)
	if !spaced && !switched {
		return p
	}

	width := uint(minBranchSpacing)
	if step.Width <= 2 {
		width = 1
	}
	b := NewBranch(step.Pos, dir, width, BranchShape(), t.rng)
	t.adopt(b)

	p.cursor.lastDir = dir
	p.cursor.lastY = step.Pos.Y
	return growingBranch{cursor: p.cursor, branch: len(t.branches) - 1}
}

func (t *Tree) growActiveBranch(p growingBranch) phase {
	b := t.branches[p.branch]
	t.growBranch(b)
	if b.Alive() {
		return p
	}
	return t.leavesFor(p.branch, p.cursor)
}

// leavesFor enters the leaf phase for a finished branch, or resumes the
// search when the branch offers no attachment points.
func (t *Tree) leavesFor(branch int, cursor spawnCursor) phase {
	points := attachmentPoints(t.branches[branch], t.branches[branch].LeafCount)
	if len(points) == 0 {
		return searchingSpawnPoint{cursor: cursor}
	}
	return growingLeaves{cursor: cursor, branch: branch, points: points}
}

// growLeaves places a single leaf. Each attachment point gets its base
// leaf and then its whole scatter before the next point starts.
func (t *Tree) growLeaves(p growingLeaves) phase {
	anchor := p.points[p.next]
	if p.remaining == 0 {
		t.placeLeaf(anchor, Point{})
		p.remaining = t.look.ScatterCount(t.rng)
		return p
	}

	t.placeLeaf(anchor, t.look.scatterOffset(t.rng))
	p.remaining--
	if p.remaining > 0 {
		return p
	}
	p.next++
	if p.next >= len(p.points) {
		return searchingSpawnPoint{cursor: p.cursor}
	}
	return p
}
