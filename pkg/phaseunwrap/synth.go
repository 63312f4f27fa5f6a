package phaseunwrap

import "math"

// SynthesizePatterns produces n sinusoidal fringe grids. Pixel (x, y) of
// pattern k is round(255 * 0.5 * (1 + cos(2πx/wavelength + kπ·shiftDeg/180))).
// Patterns vary only along x.
func SynthesizePatterns(width, height int, wavelength, shiftDeg float64, n int) []*SampleGrid {
	patterns := make([]*SampleGrid, n)
	row := make([]uint16, width)
	for k := 0; k < n; k++ {
		offset := float64(k) * math.Pi * shiftDeg / 180.0
		for x := range row {
			// Convert [-1, 1] to [0, 255].
			v := 0.5 * (1 + math.Cos(2*math.Pi*float64(x)/wavelength+offset))
			row[x] = uint16(math.Round(255 * v))
		}
		g := NewGrid[uint16](width, height)
		for y := 0; y < height; y++ {
			copy(g.Row(y), row)
		}
		patterns[k] = g
	}
	return patterns
}

// SynthesizeFringes produces the six fringe patterns of one run.
func SynthesizeFringes(cfg Config) ([]*SampleGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return SynthesizePatterns(cfg.Width, cfg.Height, cfg.Wavelength, cfg.PhaseShiftDeg, cfg.FringeCount()), nil
}

// SynthesizeGrayCode produces NumGrayImages binary patterns, most significant
// bit first. Column x encodes, as reflected Gray code clamped to MaxOrder, the
// period index of the phase the demodulator reports there. That phase belongs
// to the second pattern, carrier + step, so the index is
// floor(x/wavelength + step/360 + 1/2). Set bits are 255, clear bits 0.
func SynthesizeGrayCode(cfg Config) ([]*SampleGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k := cfg.NumGrayImages
	step := math.Mod(cfg.PhaseShiftDeg/360, 1)
	if step < 0 {
		step++
	}
	codes := make([]uint32, cfg.Width)
	for x := range codes {
		order := math.Floor(float64(x)/cfg.Wavelength + step + 0.5)
		if order > float64(cfg.MaxOrder()) {
			order = float64(cfg.MaxOrder())
		}
		codes[x] = BinaryToGray(uint32(order))
	}

	patterns := make([]*SampleGrid, k)
	row := make([]uint16, cfg.Width)
	for b := 0; b < k; b++ {
		shift := uint(k - 1 - b)
		for x, code := range codes {
			row[x] = 0
			if code>>shift&1 == 1 {
				row[x] = 255
			}
		}
		g := NewGrid[uint16](cfg.Width, cfg.Height)
		for y := 0; y < cfg.Height; y++ {
			copy(g.Row(y), row)
		}
		patterns[b] = g
	}
	return patterns, nil
}
