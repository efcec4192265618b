package bonsai

import "fmt"

// Point is a cell coordinate. Y grows downward, as on a terminal.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Margin is the number of rows and columns kept free along the top and
// left edges for the terminal's input line.
const Margin = 3

// Screen is the playfield in character cells.
type Screen struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Validate fails fast on a screen with no room past the margin.
func (s Screen) Validate() error {
	if s.Width <= Margin || s.Height <= Margin {
		return &ConfigError{Field: "screen", Value: fmt.Sprintf("%dx%d", s.Width, s.Height), Err: ErrScreenTooSmall}
	}
	return nil
}

// Clamp pulls p into [Margin, dim-1] on both axes.
func (s Screen) Clamp(p Point) Point {
	return Point{
		X: clampInt(p.X, Margin, s.Width-1),
		Y: clampInt(p.Y, Margin, s.Height-1),
	}
}

// Progress reports how far p has travelled toward the screen edge that
// dir points at, in [0, 1].
func (s Screen) Progress(p Point, dir Direction) float64 {
	var r float64
	switch dir {
	case Up:
		r = 1 - float64(p.Y)/float64(s.Height-1)
	case Left:
		r = 1 - float64(p.X)/float64(s.Width-1)
	case Right:
		r = float64(p.X) / float64(s.Width-1)
	}
	return clamp01(r)
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
