package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	pu "phaseunwrap/pkg/phaseunwrap"
)

const (
	previewWidth     = 800
	previewMinHeight = 100
	captionHeight    = 24
)

// Preview writes a reduced JPEG rendering of the map with a one-line caption
// underneath.
type Preview struct {
	Path    string
	Caption string
}

func (p Preview) Consume(_ context.Context, m *pu.UnwrappedPhaseMap) error {
	if m.Empty() {
		return errEmptyMap
	}
	f, err := createFile(p.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WritePreview(f, m, p.Caption); err != nil {
		return err
	}
	return errors.Wrap(f.Close(), "close preview")
}

// WritePreview encodes the preview as JPEG.
func WritePreview(w io.Writer, m *pu.UnwrappedPhaseMap, caption string) error {
	img, err := RenderPreview(m, caption)
	if err != nil {
		return err
	}
	return errors.Wrap(jpeg.Encode(w, img, &jpeg.Options{Quality: 90}), "encode preview")
}

// PreviewBytes returns the JPEG preview in memory.
func PreviewBytes(m *pu.UnwrappedPhaseMap, caption string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePreview(&buf, m, caption); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPreview scales the normalized map to 800 pixels wide, nearest
// neighbour, and draws the caption on a black strip below it.
func RenderPreview(m *pu.UnwrappedPhaseMap, caption string) (*image.RGBA, error) {
	if m.Empty() {
		return nil, errEmptyMap
	}
	src := Gray8(m)

	scale := float64(previewWidth) / float64(m.Width())
	imgH := max(int(float64(m.Height())*scale), previewMinHeight)
	img := image.NewRGBA(image.Rect(0, 0, previewWidth, imgH+captionHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	for y := 0; y < imgH; y++ {
		sy := min(y*m.Height()/imgH, m.Height()-1)
		for x := 0; x < previewWidth; x++ {
			sx := min(x*m.Width()/previewWidth, m.Width()-1)
			v := src.Pix[sy*src.Stride+sx]
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}

	drawText(img, 8, imgH+captionHeight-8, caption, color.RGBA{255, 255, 0, 255})
	return img, nil
}

func drawText(img *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
