package phaseunwrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizePatternsValues(t *testing.T) {
	patterns := SynthesizePatterns(128, 2, 16, 60, 3)
	require.Len(t, patterns, 3)

	// x=32 is two full periods in, so only the step offset remains.
	assert.Equal(t, uint16(255), patterns[0].At(32, 0))
	assert.Equal(t, uint16(191), patterns[1].At(32, 0)) // 255*0.75 = 191.25
	assert.Equal(t, uint16(64), patterns[2].At(32, 0))  // 255*0.25 = 63.75

	// Half a period later the first pattern is dark.
	assert.Equal(t, uint16(0), patterns[0].At(40, 0))
}

func TestSynthesizePatternsIndependentOfY(t *testing.T) {
	for _, p := range SynthesizePatterns(37, 5, 7.5, 45, 4) {
		for y := 1; y < p.Height(); y++ {
			assert.Equal(t, p.Row(0), p.Row(y))
		}
	}
}

func TestSynthesizePatternsRange(t *testing.T) {
	for _, p := range SynthesizePatterns(200, 1, 13, 33, 6) {
		for _, v := range p.Data() {
			assert.LessOrEqual(t, v, uint16(255))
		}
	}
}

func TestSynthesizeFringesUsesConfig(t *testing.T) {
	cfg := Config{Width: 20, Height: 3, Wavelength: 5, PhaseShiftDeg: 120, NumGrayImages: 3}
	patterns, err := SynthesizeFringes(cfg)
	require.NoError(t, err)
	require.Len(t, patterns, 6)
	for _, p := range patterns {
		assert.Equal(t, 20, p.Width())
		assert.Equal(t, 3, p.Height())
	}

	_, err = SynthesizeFringes(Config{})
	assert.Error(t, err)
}

// demodulatedOrder is the period index of carrier + step at column x.
func demodulatedOrder(x int, wavelength, stepDeg float64) uint32 {
	return uint32(math.Floor(float64(x)/wavelength + stepDeg/360 + 0.5))
}

func TestSynthesizeGrayCodeEncodesPeriodIndex(t *testing.T) {
	cfg := Config{Width: 100, Height: 2, Wavelength: 10, PhaseShiftDeg: 120, NumGrayImages: 4}
	patterns, err := SynthesizeGrayCode(cfg)
	require.NoError(t, err)
	require.Len(t, patterns, 4)

	for x := 0; x < cfg.Width; x++ {
		var code uint32
		for _, p := range patterns {
			v := p.At(x, 1)
			require.Contains(t, []uint16{0, 255}, v)
			code <<= 1
			if v != 0 {
				code |= 1
			}
		}
		assert.Equal(t, demodulatedOrder(x, 10, 120), GrayToBinary(code), "x=%d", x)
	}
	// The order steps where carrier + 120° crosses π, a third of a period
	// before each fringe boundary.
	assert.Equal(t, []uint32{0, 1}, []uint32{demodulatedOrder(1, 10, 120), demodulatedOrder(2, 10, 120)})
}

func TestSynthesizeGrayCodeNegativeStep(t *testing.T) {
	cfg := Config{Width: 30, Height: 1, Wavelength: 10, PhaseShiftDeg: -120, NumGrayImages: 3}
	patterns, err := SynthesizeGrayCode(cfg)
	require.NoError(t, err)
	order, err := DecodeGray(t.Context(), patterns)
	require.NoError(t, err)
	// -120° is the same middle-frame offset as 240°.
	for x := 0; x < cfg.Width; x++ {
		assert.Equal(t, demodulatedOrder(x, 10, 240), order.At(x, 0), "x=%d", x)
	}
}

func TestSynthesizeGrayCodeClampsToMaxOrder(t *testing.T) {
	cfg := Config{Width: 100, Height: 1, Wavelength: 10, PhaseShiftDeg: 120, NumGrayImages: 2}
	patterns, err := SynthesizeGrayCode(cfg)
	require.NoError(t, err)

	order, err := DecodeGray(t.Context(), patterns)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), order.At(99, 0))
	assert.Equal(t, uint32(2), order.At(15, 0))
}
