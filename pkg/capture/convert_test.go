package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 200})
	g := FromImage(img)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, uint16(200), g.At(2, 1))
	assert.Equal(t, uint16(0), g.At(0, 0))
}

func TestFromImageGray16KeepsDepth(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(1, 0, color.Gray16{Y: 40000})
	assert.Equal(t, uint16(40000), FromImage(img).At(1, 0))
}

func TestFromImageSubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 3, color.Gray{Y: 9})
	sub := img.SubImage(image.Rect(1, 2, 4, 4))
	g := FromImage(sub)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, uint16(9), g.At(1, 1))
}

func TestFromImageColorLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	g := FromImage(img)
	assert.Equal(t, uint16(255), g.At(0, 0))
	assert.Equal(t, uint16(128), g.At(1, 0))
}

func TestFromImageRGBA64(t *testing.T) {
	img := image.NewRGBA64(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA64{R: 65535, G: 65535, B: 65535, A: 65535})
	assert.Equal(t, uint16(65535), FromImage(img).At(0, 0))
}

func TestDecodeFormats(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 3))
	img.SetGray(4, 2, color.Gray{Y: 77})

	var pngBuf, bmpBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))
	require.NoError(t, bmp.Encode(&bmpBuf, img))

	for name, buf := range map[string]*bytes.Buffer{"png": &pngBuf, "bmp": &bmpBuf} {
		t.Run(name, func(t *testing.T) {
			g, err := Decode(buf)
			require.NoError(t, err)
			assert.Equal(t, 5, g.Width())
			assert.Equal(t, uint16(77), g.At(4, 2))
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}
