//go:build !purego && !js

package capture

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	pu "phaseunwrap/pkg/phaseunwrap"
)

const backendName = "gocv"

// decodeFile reads a capture as a single channel, keeping 16-bit depth when
// the file has it.
func decodeFile(path string) (*pu.SampleGrid, error) {
	src := gocv.IMRead(path, gocv.IMReadGrayScale|gocv.IMReadAnyDepth)
	if src.Empty() {
		return nil, errors.Errorf("could not load image: %s", path)
	}
	defer src.Close()

	w, h := src.Cols(), src.Rows()
	g := pu.NewGrid[uint16](w, h)
	dst := g.Data()

	switch src.Type() {
	case gocv.MatTypeCV8U:
		data, err := src.DataPtrUint8()
		if err != nil {
			return nil, errors.Wrap(err, "reading 8-bit pixels")
		}
		for i := range dst {
			dst[i] = uint16(data[i])
		}
	case gocv.MatTypeCV16U:
		data, err := src.DataPtrUint16()
		if err != nil {
			return nil, errors.Wrap(err, "reading 16-bit pixels")
		}
		copy(dst, data[:w*h])
	default:
		// Float or signed captures: scale through an 8-bit conversion.
		converted := gocv.NewMat()
		defer converted.Close()
		src.ConvertTo(&converted, gocv.MatTypeCV8U)
		data, err := converted.DataPtrUint8()
		if err != nil {
			return nil, errors.Wrap(err, "reading converted pixels")
		}
		for i := range dst {
			dst[i] = uint16(data[i])
		}
	}
	return g, nil
}
