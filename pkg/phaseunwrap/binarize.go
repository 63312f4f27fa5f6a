package phaseunwrap

// Binarize returns a copy of src where intensities above level become 255 and
// the rest 0.
func Binarize(src *SampleGrid, level uint16) *SampleGrid {
	dst := NewGrid[uint16](src.Width(), src.Height())
	sd, dd := src.Data(), dst.Data()
	for i, v := range sd {
		if v > level {
			dd[i] = 255
		}
	}
	return dst
}
