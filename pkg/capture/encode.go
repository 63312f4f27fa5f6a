package capture

import (
	"image"
	"image/png"
	"os"
	"slices"

	"github.com/pkg/errors"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// ToImage converts a grid to an 8-bit grayscale image when every sample fits
// in a byte, and to a 16-bit one otherwise.
func ToImage(g *pu.SampleGrid) image.Image {
	r := image.Rect(0, 0, g.Width(), g.Height())
	if len(g.Data()) == 0 || slices.Max(g.Data()) <= 0xFF {
		img := image.NewGray(r)
		for i, v := range g.Data() {
			img.Pix[i] = uint8(v)
		}
		return img
	}
	img := image.NewGray16(r)
	for i, v := range g.Data() {
		img.Pix[2*i] = uint8(v >> 8)
		img.Pix[2*i+1] = uint8(v)
	}
	return img
}

// SavePNG writes a grid as a grayscale PNG.
func SavePNG(path string, g *pu.SampleGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create pattern file")
	}
	defer f.Close()
	if err := png.Encode(f, ToImage(g)); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrap(f.Close(), "close pattern file")
}

// SaveSequence writes grids as base0.png, base1.png, ...
func SaveSequence(base string, grids []*pu.SampleGrid) error {
	for i, g := range grids {
		if err := SavePNG(SequencePath(base, i, ".png"), g); err != nil {
			return err
		}
	}
	return nil
}
