package phaseunwrap

import (
	"math"
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayCodeBijection(t *testing.T) {
	for k := 1; k <= 12; k++ {
		seen := make(map[uint32]bool, 1<<k)
		for n := uint32(0); n < 1<<k; n++ {
			g := BinaryToGray(n)
			require.Less(t, g, uint32(1)<<k, "code escapes %d bits", k)
			require.False(t, seen[g], "duplicate code %b", g)
			seen[g] = true
			require.Equal(t, n, GrayToBinary(g), "k=%d n=%d", k, n)
			if n > 0 {
				assert.Equal(t, 1, bits.OnesCount32(g^BinaryToGray(n-1)), "adjacent codes must differ by one bit")
			}
		}
	}
}

func TestGrayToBinaryCascade(t *testing.T) {
	cases := []struct {
		gray, binary uint32
	}{
		{0b0, 0},
		{0b1, 1},
		{0b11, 2},
		{0b10, 3},
		{0b110, 4},
		{0b100, 7},
		{0b1000000, 127},
	}
	for _, c := range cases {
		assert.Equal(t, c.binary, GrayToBinary(c.gray), "gray=%b", c.gray)
	}
	assert.Equal(t, uint32(math.MaxUint32), GrayToBinary(BinaryToGray(math.MaxUint32)))
}

// grayStack builds K single-row grids whose column x carries code codes[x].
func grayStack(k int, codes []uint32) []*SampleGrid {
	stack := make([]*SampleGrid, k)
	for b := range stack {
		g := NewGrid[uint16](len(codes), 1)
		for x, c := range codes {
			if c>>uint(k-1-b)&1 == 1 {
				g.Set(x, 0, 200)
			}
		}
		stack[b] = g
	}
	return stack
}

func TestDecodeGray(t *testing.T) {
	const k = 5
	codes := make([]uint32, 1<<k)
	for n := range codes {
		codes[n] = BinaryToGray(uint32(n))
	}
	order, err := DecodeGray(t.Context(), grayStack(k, codes))
	require.NoError(t, err)
	for n := range codes {
		assert.Equal(t, uint32(n), order.At(n, 0))
	}
}

func TestDecodeGrayAnyNonzeroIsOne(t *testing.T) {
	stack := []*SampleGrid{NewGrid[uint16](1, 1), NewGrid[uint16](1, 1)}
	stack[0].Set(0, 0, 1)
	stack[1].Set(0, 0, 65535)
	order, err := DecodeGray(t.Context(), stack)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), order.At(0, 0)) // Gray 11 = 2
}

func TestDecodeGrayOrdersStayBelowLimit(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const k = 7
	stack := make([]*SampleGrid, k)
	for i := range stack {
		g := NewGrid[uint16](64, 16)
		for j := range g.Data() {
			g.Data()[j] = uint16(r.IntN(2) * 255)
		}
		stack[i] = g
	}
	order, err := DecodeGray(t.Context(), stack)
	require.NoError(t, err)
	for _, v := range order.Data() {
		assert.Less(t, v, uint32(1)<<k)
	}
}

func TestDecodeGrayFailsFastOnMissingGrid(t *testing.T) {
	stack := grayStack(4, []uint32{1, 2, 3})
	stack[2] = nil

	order, err := DecodeGray(t.Context(), stack)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrMissingInput)

	var missing *MissingGridError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 2, missing.Index)
	assert.Equal(t, StageDecodeGray, missing.Stage)

	_, err = DecodeGray(t.Context(), nil)
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestDecodeGrayDimensionMismatch(t *testing.T) {
	stack := grayStack(3, []uint32{1, 2, 3})
	stack[1] = NewGrid[uint16](4, 1)

	order, err := DecodeGray(t.Context(), stack)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestDecodeGrayTooManyImages(t *testing.T) {
	stack := make([]*SampleGrid, MaxGrayImages+1)
	for i := range stack {
		stack[i] = NewGrid[uint16](1, 1)
	}
	_, err := DecodeGray(t.Context(), stack)
	assert.Error(t, err)
}
