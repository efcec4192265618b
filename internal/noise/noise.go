// Package noise provides the coherent noise field that bends trunks and
// branches.
package noise

import "github.com/ojrac/opensimplex-go"

const (
	// DefaultScale maps cell coordinates into noise space; four cells per
	// unit keeps neighbouring steps correlated.
	DefaultScale = 0.25
	// DefaultAmplitude sets the output range to [-2, 2].
	DefaultAmplitude = 2.0
)

// Field is a seeded single-octave OpenSimplex field.
type Field struct {
	src       opensimplex.Noise
	scale     float64
	amplitude float64
}

func New(seed uint64) *Field {
	return &Field{
		src:       opensimplex.New(int64(seed)),
		scale:     DefaultScale,
		amplitude: DefaultAmplitude,
	}
}

// Sample returns the field value at (x, y), always within Range.
func (f *Field) Sample(x, y float64) float64 {
	v := f.src.Eval2(x*f.scale, y*f.scale) * f.amplitude
	if v > f.amplitude {
		return f.amplitude
	}
	if v < -f.amplitude {
		return -f.amplitude
	}
	return v
}

// Range is the closed interval every sample falls in.
func (f *Field) Range() (lo, hi float64) {
	return -f.amplitude, f.amplitude
}
