//go:build purego || js

package export

import (
	"image/png"

	"github.com/pkg/errors"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// WriteImage writes the normalized map as a 16-bit grayscale PNG.
func WriteImage(path string, m *pu.UnwrappedPhaseMap) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, Gray16(m)); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return errors.Wrap(f.Close(), "close image")
}
