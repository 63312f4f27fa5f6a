//go:build !purego && !js

package export

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// WriteImage writes the normalized map as a 16-bit single-channel image. The
// format follows the extension; it must be one that stores 16 bits (PNG, TIFF).
func WriteImage(path string, m *pu.UnwrappedPhaseMap) error {
	mat := gocv.NewMatWithSize(m.Height(), m.Width(), gocv.MatTypeCV16U)
	defer mat.Close()

	data, err := mat.DataPtrUint16()
	if err != nil {
		return errors.Wrap(err, "image buffer")
	}
	img := Gray16(m)
	for i := range data {
		data[i] = uint16(img.Pix[2*i])<<8 | uint16(img.Pix[2*i+1])
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if !gocv.IMWrite(path, mat) {
		return errors.Errorf("could not write image: %s", path)
	}
	return nil
}
