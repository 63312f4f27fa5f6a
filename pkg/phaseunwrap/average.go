package phaseunwrap

import (
	"context"
	"math"
)

// CancellationEpsilon is the resultant length below which two phases are
// treated as exactly opposite.
const CancellationEpsilon = 1e-9

// AveragePixel returns the circular mean of two phases: both are mapped to
// unit vectors, summed and halved, and the angle of the result is returned.
// Opposite phases cancel; their mean is undefined and reported as 0.
func AveragePixel(a, b float64) float64 {
	sa, ca := math.Sincos(a)
	sb, cb := math.Sincos(b)
	re := 0.5 * (ca + cb)
	im := 0.5 * (sa + sb)
	if math.Hypot(re, im) < CancellationEpsilon {
		return 0
	}
	return wrapToPi(math.Atan2(im, re))
}

// Average merges two wrapped phase maps by circular averaging.
func Average(ctx context.Context, a, b *WrappedPhaseMap) (*WrappedPhaseMap, error) {
	return average(ctx, 0, a, b)
}

func average(ctx context.Context, workers int, a, b *WrappedPhaseMap) (*WrappedPhaseMap, error) {
	if err := checkSameSize(StageAverage, a, b); err != nil {
		return nil, err
	}
	out := NewGrid[float64](a.Width(), a.Height())
	err := forEachRow(ctx, out.Height(), workers, func(y int) {
		ra, rb := a.Row(y), b.Row(y)
		dst := out.Row(y)
		for x := range dst {
			dst[x] = AveragePixel(ra[x], rb[x])
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
