package capture

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// Decode reads a PNG, JPEG, BMP or TIFF capture into a grid.
func Decode(r io.Reader) (*pu.SampleGrid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	return FromImage(img), nil
}

// FromImage converts an image to luminance. 16-bit images keep the full
// 0..65535 range; everything else is scaled to 0..255.
func FromImage(img image.Image) *pu.SampleGrid {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	g := pu.NewGrid[uint16](w, h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			row := g.Row(y)
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := range row {
				row[x] = uint16(src.Pix[off+x])
			}
		}
		return g
	case *image.Gray16:
		for y := 0; y < h; y++ {
			row := g.Row(y)
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := range row {
				row[x] = uint16(src.Pix[off+2*x])<<8 | uint16(src.Pix[off+2*x+1])
			}
		}
		return g
	}

	shift := uint(8)
	if sixteenBit(img) {
		shift = 0
	}
	for y := 0; y < h; y++ {
		row := g.Row(y)
		for x := range row {
			r, gr, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Rec. 601 luminance in the 16-bit range.
			lum := (19595*r + 38470*gr + 7471*b + 1<<15) >> 16
			row[x] = uint16(lum >> shift)
		}
	}
	return g
}

func sixteenBit(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}
