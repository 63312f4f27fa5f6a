// Package export provides sinks that render or store a finished unwrapped
// phase map.
package export

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	pu "phaseunwrap/pkg/phaseunwrap"
)

var errEmptyMap = errors.New("phase map is empty")

// Normalize scales the map linearly onto [0, 1]. A constant map normalizes
// to all zeros.
func Normalize(m *pu.Grid[float64]) []float64 {
	out := make([]float64, len(m.Data()))
	if len(out) == 0 {
		return out
	}
	copy(out, m.Data())
	lo, hi := floats.Min(out), floats.Max(out)
	floats.AddConst(-lo, out)
	if span := hi - lo; span > 0 {
		floats.Scale(1/span, out)
	}
	return out
}

// Gray16 renders the normalized map as a 16-bit grayscale image.
func Gray16(m *pu.Grid[float64]) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, m.Width(), m.Height()))
	for i, v := range Normalize(m) {
		q := uint16(math.Round(v * math.MaxUint16))
		img.Pix[2*i] = uint8(q >> 8)
		img.Pix[2*i+1] = uint8(q)
	}
	return img
}

// Gray8 renders the normalized map as an 8-bit grayscale image.
func Gray8(m *pu.Grid[float64]) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width(), m.Height()))
	for i, v := range Normalize(m) {
		img.Pix[i] = uint8(math.Round(v * math.MaxUint8))
	}
	return img
}
