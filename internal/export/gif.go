package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"

	"github.com/san-kum/bonsai/internal/viz"
)

const (
	cellW = 6
	cellH = 12
)

var background = color.RGBA{R: 10, G: 10, B: 10, A: 255}

// Animation captures canvas snapshots as GIF frames. Each drawn cell
// becomes a solid block of its colour.
type Animation struct {
	frames []*image.Paletted
	delay  int
}

// NewAnimation shows each frame for delay hundredths of a second.
func NewAnimation(delay int) *Animation {
	return &Animation{delay: max(delay, 1)}
}

func (a *Animation) Len() int { return len(a.frames) }

func (a *Animation) Capture(c *viz.Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), palette.Plan9)
	bg := uint8(img.Palette.Index(background))
	for i := range img.Pix {
		img.Pix[i] = bg
	}

	idx := make(map[color.RGBA]uint8)
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			cell := c.Grid[row][col]
			if cell.Glyph == 0 || cell.Glyph == ' ' {
				continue
			}
			rgba := color.RGBA{R: cell.Color.R, G: cell.Color.G, B: cell.Color.B, A: 255}
			ci, ok := idx[rgba]
			if !ok {
				ci = uint8(img.Palette.Index(rgba))
				idx[rgba] = ci
			}
			// leave a one pixel gap so neighbouring cells stay distinct
			baseX, baseY := col*cellW, row*cellH
			for py := 1; py < cellH-1; py++ {
				for px := 1; px < cellW-1; px++ {
					img.SetColorIndex(baseX+px, baseY+py, ci)
				}
			}
		}
	}
	a.frames = append(a.frames, img)
}

func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return errors.New("no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range a.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, a.delay)
	}
	// hold the finished tree for two seconds
	anim.Delay[len(anim.Delay)-1] = max(a.delay, 200)
	return gif.EncodeAll(w, &anim)
}
