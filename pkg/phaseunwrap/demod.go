package phaseunwrap

import (
	"context"
	"math"
)

var sqrt3 = math.Sqrt(3)

// DemodulatePixel applies the three-step formula
// atan2(√3·(i1 − i3), 2·i2 − i1 − i3). For patterns stepped by 120° it
// returns the phase of the second pattern. A zero denominator yields ±π/2.
func DemodulatePixel(i1, i2, i3 float64) float64 {
	return wrapToPi(math.Atan2(sqrt3*(i1-i3), 2*i2-i1-i3))
}

// Demodulate converts three phase-shifted captures into a wrapped phase map.
func Demodulate(ctx context.Context, i1, i2, i3 *SampleGrid) (*WrappedPhaseMap, error) {
	return demodulate(ctx, 0, i1, i2, i3)
}

func demodulate(ctx context.Context, workers int, i1, i2, i3 *SampleGrid) (*WrappedPhaseMap, error) {
	if err := checkSameSize(StageDemodulate, i1, i2, i3); err != nil {
		return nil, err
	}
	out := NewGrid[float64](i1.Width(), i1.Height())
	err := forEachRow(ctx, out.Height(), workers, func(y int) {
		r1, r2, r3 := i1.Row(y), i2.Row(y), i3.Row(y)
		dst := out.Row(y)
		for x := range dst {
			dst[x] = DemodulatePixel(float64(r1[x]), float64(r2[x]), float64(r3[x]))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// wrapToPi folds the single value atan2 can return outside (-π, π], -π,
// onto π. Both name the same angle.
func wrapToPi(phase float64) float64 {
	if phase == -math.Pi {
		return math.Pi
	}
	return phase
}
