package phaseunwrap

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the maps of one run.
type Summary struct {
	Width, Height int
	// WrappedMean is the circular mean of the averaged wrapped phase.
	WrappedMean float64
	// UnwrappedMin and UnwrappedMax bound the absolute phase.
	UnwrappedMin float64
	UnwrappedMax float64
	// MaxOrder is the highest fringe order decoded.
	MaxOrder uint32
}

func (s Summary) String() string {
	return fmt.Sprintf("{Size=%dx%d, WrappedMean=%f, Unwrapped=[%f, %f], MaxOrder=%d}",
		s.Width, s.Height, s.WrappedMean, s.UnwrappedMin, s.UnwrappedMax, s.MaxOrder)
}

// Summarize computes a Summary. Empty maps yield NaN statistics.
func Summarize(wrapped *WrappedPhaseMap, order *FringeOrderMap, unwrapped *UnwrappedPhaseMap) Summary {
	s := Summary{
		Width:        unwrapped.Width(),
		Height:       unwrapped.Height(),
		WrappedMean:  math.NaN(),
		UnwrappedMin: math.NaN(),
		UnwrappedMax: math.NaN(),
	}
	if w := wrapped.Data(); len(w) > 0 {
		s.WrappedMean = stat.CircularMean(w, nil)
	}
	if u := unwrapped.Data(); len(u) > 0 {
		s.UnwrappedMin = floats.Min(u)
		s.UnwrappedMax = floats.Max(u)
	}
	if o := order.Data(); len(o) > 0 {
		s.MaxOrder = slices.Max(o)
	}
	return s
}
