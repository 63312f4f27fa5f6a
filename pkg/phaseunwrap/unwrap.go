package phaseunwrap

import (
	"context"
	"math"
)

// UnwrapPixel adds order whole periods to a wrapped phase.
func UnwrapPixel(wrapped float64, order uint32) float64 {
	return wrapped + 2*math.Pi*float64(order)
}

// Unwrap combines a wrapped phase map with Gray-decoded fringe orders.
//
// The two measurements are not cross-checked. A pixel whose wrapped phase sits
// near a period boundary while its Gray code decodes one period off comes out
// a full 2π away from its neighbours.
func Unwrap(ctx context.Context, wrapped *WrappedPhaseMap, order *FringeOrderMap) (*UnwrappedPhaseMap, error) {
	return unwrap(ctx, 0, wrapped, order)
}

func unwrap(ctx context.Context, workers int, wrapped *WrappedPhaseMap, order *FringeOrderMap) (*UnwrappedPhaseMap, error) {
	if err := checkSameSize(StageUnwrap, wrapped, order); err != nil {
		return nil, err
	}
	out := NewGrid[float64](wrapped.Width(), wrapped.Height())
	err := forEachRow(ctx, out.Height(), workers, func(y int) {
		rw, ro := wrapped.Row(y), order.Row(y)
		dst := out.Row(y)
		for x := range dst {
			dst[x] = UnwrapPixel(rw[x], ro[x])
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
