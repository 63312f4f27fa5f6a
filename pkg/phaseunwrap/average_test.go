package phaseunwrap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageIdempotent(t *testing.T) {
	for theta := -math.Pi + 0.001; theta <= math.Pi; theta += 0.05 {
		assert.InDelta(t, 0, angleDiff(AveragePixel(theta, theta), theta), 1e-12, "theta=%v", theta)
	}
	assert.InDelta(t, math.Pi, AveragePixel(math.Pi, math.Pi), 1e-12)
}

func TestAverageAcrossWrapBoundary(t *testing.T) {
	got := AveragePixel(math.Pi-0.01, -math.Pi+0.01)
	assert.InDelta(t, math.Pi, math.Abs(got), 1e-9, "circular mean must sit at ±π, got %v", got)

	// An arithmetic mean would land near 0.
	assert.Greater(t, math.Abs(got), 3.0)
}

func TestAverageMidpoint(t *testing.T) {
	assert.InDelta(t, 0.5, AveragePixel(0.2, 0.8), 1e-12)
	assert.InDelta(t, -0.5, AveragePixel(-0.2, -0.8), 1e-12)
}

func TestAverageOppositePhasesCancelToZero(t *testing.T) {
	// The mean of two opposite unit vectors is undefined; the result is 0 by convention.
	cases := [][2]float64{
		{0, math.Pi},
		{math.Pi / 2, -math.Pi / 2},
		{1, 1 - math.Pi},
		{-2.5, -2.5 + math.Pi},
	}
	for _, c := range cases {
		assert.Equal(t, 0.0, AveragePixel(c[0], c[1]), "%v", c)
	}
}

func TestAverageMaps(t *testing.T) {
	a := NewGrid[float64](3, 2)
	b := NewGrid[float64](3, 2)
	for i := range a.Data() {
		a.Data()[i] = 0.1 * float64(i)
		b.Data()[i] = 0.1*float64(i) + 0.2
	}
	out, err := Average(t.Context(), a, b)
	require.NoError(t, err)
	for i, v := range out.Data() {
		assert.InDelta(t, 0.1*float64(i)+0.1, v, 1e-12)
	}
}

func TestAverageDimensionMismatch(t *testing.T) {
	out, err := Average(t.Context(), NewGrid[float64](3, 2), NewGrid[float64](2, 3))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, StageAverage, dimErr.Stage)
}
