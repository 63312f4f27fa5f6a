package capture

import (
	"math"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// DebayerRGGB interpolates a raw RGGB mosaic bilinearly and returns its
// luminance, (R+G+B)/3 rounded, at full resolution.
//
// Layout, 0-indexed:
//
//	even row, even col: R
//	even row, odd col:  G on the red row
//	odd row, even col:  G on the blue row
//	odd row, odd col:   B
//
// Lookups past the border replicate the edge pixel.
func DebayerRGGB(raw *pu.SampleGrid) *pu.SampleGrid {
	w, h := raw.Width(), raw.Height()
	out := pu.NewGrid[uint16](w, h)

	px := func(x, y int) float64 {
		return float64(raw.At(min(max(x, 0), w-1), min(max(y, 0), h-1)))
	}
	cross := func(x, y int) float64 {
		return (px(x-1, y) + px(x+1, y) + px(x, y-1) + px(x, y+1)) / 4
	}
	diag := func(x, y int) float64 {
		return (px(x-1, y-1) + px(x+1, y-1) + px(x-1, y+1) + px(x+1, y+1)) / 4
	}
	horiz := func(x, y int) float64 { return (px(x-1, y) + px(x+1, y)) / 2 }
	vert := func(x, y int) float64 { return (px(x, y-1) + px(x, y+1)) / 2 }

	for y := 0; y < h; y++ {
		row := out.Row(y)
		for x := range row {
			var r, g, b float64
			switch {
			case y%2 == 0 && x%2 == 0:
				r, g, b = px(x, y), cross(x, y), diag(x, y)
			case y%2 == 0:
				r, g, b = horiz(x, y), px(x, y), vert(x, y)
			case x%2 == 0:
				r, g, b = vert(x, y), px(x, y), horiz(x, y)
			default:
				r, g, b = diag(x, y), cross(x, y), px(x, y)
			}
			row[x] = uint16(math.Round((r + g + b) / 3))
		}
	}
	return out
}
