package phaseunwrap

import (
	"context"

	"github.com/pkg/errors"
)

// BinaryToGray encodes n as reflected Gray code.
func BinaryToGray(n uint32) uint32 {
	return n ^ (n >> 1)
}

// GrayToBinary decodes reflected Gray code. Each binary bit is the XOR of its
// Gray bit and the binary bit above it.
func GrayToBinary(gray uint32) uint32 {
	var binary uint32
	for ; gray != 0; gray >>= 1 {
		binary ^= gray
	}
	return binary
}

// DecodeGray turns a stack of binary captures, most significant bit first,
// into fringe orders. A nonzero intensity is a 1 bit. Every grid must be
// present and share one size.
func DecodeGray(ctx context.Context, stack []*SampleGrid) (*FringeOrderMap, error) {
	return decodeGray(ctx, 0, stack)
}

func decodeGray(ctx context.Context, workers int, stack []*SampleGrid) (*FringeOrderMap, error) {
	k := len(stack)
	if k == 0 {
		return nil, errors.Wrap(ErrMissingInput, "decode-gray: empty stack")
	}
	if k > MaxGrayImages {
		return nil, errors.Errorf("decode-gray: %d images exceed the %d-bit limit", k, MaxGrayImages)
	}
	grids := make([]sized, k)
	for i, g := range stack {
		if g == nil {
			return nil, &MissingGridError{Stage: StageDecodeGray, Index: i}
		}
		grids[i] = g
	}
	if err := checkSameSize(StageDecodeGray, grids...); err != nil {
		return nil, err
	}

	out := NewGrid[uint32](stack[0].Width(), stack[0].Height())
	err := forEachRow(ctx, out.Height(), workers, func(y int) {
		dst := out.Row(y)
		for x := range dst {
			var code uint32
			for _, g := range stack {
				code <<= 1
				if g.Row(y)[x] != 0 {
					code |= 1
				}
			}
			dst[x] = GrayToBinary(code)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
