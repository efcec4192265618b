package bonsai

import "fmt"

// Color is a 24-bit terminal colour.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Jitter darkens each channel by an independent uniform amount in
// [0, limit], saturating at zero. A limit of zero returns c without drawing.
func (c Color) Jitter(r Random, limit int) Color {
	if limit <= 0 {
		return c
	}
	return Color{
		R: subSat(c.R, r.IntN(limit+1)),
		G: subSat(c.G, r.IntN(limit+1)),
		B: subSat(c.B, r.IntN(limit+1)),
	}
}

func subSat(v uint8, d int) uint8 {
	if d >= int(v) {
		return 0
	}
	return v - uint8(d)
}

var (
	Green    = Color{0, 205, 0}
	Red      = Color{205, 0, 0}
	Yellow   = Color{205, 205, 0}
	Rose     = Color{252, 212, 251}
	Brown    = Color{142, 44, 19}
	White    = Color{229, 229, 229}
	DarkGrey = Color{127, 127, 127}
	DarkBlue = Color{0, 0, 139}
	Blue     = Color{0, 0, 238}
)

var rainbow = []Color{
	{20, 0, 62},
	DarkBlue,
	Blue,
	Green,
	Yellow,
	{100, 38, 16},
	Red,
}

// LeafColor is either a fixed colour or the rainbow marker, which picks a
// new hue for every leaf drawn.
type LeafColor struct {
	Base    Color `json:"base"`
	Rainbow bool  `json:"rainbow"`
}

func (lc LeafColor) resolve(r Random) Color {
	if lc.Rainbow {
		return choose(r, rainbow)
	}
	return lc.Base
}

func (lc LeafColor) String() string {
	if lc.Rainbow {
		return "rainbow"
	}
	return lc.Base.Hex()
}
