package capture

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	pu "phaseunwrap/pkg/phaseunwrap"
)

const (
	fitsCardSize  = 80
	fitsBlockSize = 36 * fitsCardSize

	// maxFITSSamples bounds NAXIS1*NAXIS2 before anything is allocated.
	maxFITSSamples = 1 << 28
)

var fitsMagic = []byte("SIMPLE  =")

// IsFITSPath reports whether path names a FITS capture.
func IsFITSPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fits", ".fit", ".fts":
		return true
	}
	return false
}

// IsFITS reports whether data starts like a FITS file.
func IsFITS(data []byte) bool { return bytes.HasPrefix(data, fitsMagic) }

func loadFITS(path string) (*pu.SampleGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening FITS file")
	}
	defer f.Close()
	return DecodeFITS(f)
}

type fitsHeader struct {
	bitpix, naxis int
	width, height int
	bzero, bscale float64
}

// DecodeFITS reads the primary image of a FITS file. Physical values
// (raw*BSCALE + BZERO) are clamped to the 16-bit sample range.
func DecodeFITS(r io.Reader) (*pu.SampleGrid, error) {
	h, err := readFITSHeader(r)
	if err != nil {
		return nil, err
	}
	if h.naxis < 2 || h.width <= 0 || h.height <= 0 {
		return nil, errors.Errorf("invalid FITS: NAXIS=%d, NAXIS1=%d, NAXIS2=%d", h.naxis, h.width, h.height)
	}
	if h.width > maxFITSSamples/h.height {
		return nil, errors.Errorf("FITS image %dx%d exceeds %d samples", h.width, h.height, maxFITSSamples)
	}

	var (
		size   int
		sample func(b []byte) float64
	)
	switch h.bitpix {
	case 8:
		size, sample = 1, func(b []byte) float64 { return float64(b[0]) }
	case 16:
		size, sample = 2, func(b []byte) float64 { return float64(int16(binary.BigEndian.Uint16(b))) }
	case 32:
		size, sample = 4, func(b []byte) float64 { return float64(int32(binary.BigEndian.Uint32(b))) }
	case -32:
		size, sample = 4, func(b []byte) float64 { return float64(math.Float32frombits(binary.BigEndian.Uint32(b))) }
	default:
		return nil, errors.Errorf("unsupported BITPIX: %d", h.bitpix)
	}

	g := pu.NewGrid[uint16](h.width, h.height)
	raw := make([]byte, len(g.Data())*size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, errors.Wrapf(err, "reading BITPIX %d pixel data", h.bitpix)
	}
	for i := range g.Data() {
		v := sample(raw[i*size:])*h.bscale + h.bzero
		g.Data()[i] = uint16(min(max(v, 0), math.MaxUint16))
	}
	return g, nil
}

// readFITSHeader consumes header blocks up to and including the one holding END.
func readFITSHeader(r io.Reader) (fitsHeader, error) {
	h := fitsHeader{bscale: 1}
	block := make([]byte, fitsBlockSize)
	for {
		if _, err := io.ReadFull(r, block); err != nil {
			return h, errors.Wrap(err, "reading FITS header")
		}
		for off := 0; off < fitsBlockSize; off += fitsCardSize {
			card := string(block[off : off+fitsCardSize])
			keyword := strings.TrimSpace(card[:8])
			if keyword == "END" {
				return h, nil
			}
			if card[8:10] != "= " {
				continue
			}
			value := strings.TrimSpace(strings.SplitN(card[10:], "/", 2)[0])
			switch keyword {
			case "BITPIX":
				h.bitpix, _ = strconv.Atoi(value)
			case "NAXIS":
				h.naxis, _ = strconv.Atoi(value)
			case "NAXIS1":
				h.width, _ = strconv.Atoi(value)
			case "NAXIS2":
				h.height, _ = strconv.Atoi(value)
			case "BZERO":
				h.bzero, _ = strconv.ParseFloat(value, 64)
			case "BSCALE":
				h.bscale, _ = strconv.ParseFloat(value, 64)
			}
		}
	}
}
