// Package capture loads fringe and Gray-code captures from disk into sample
// grids. The default build decodes with OpenCV through gocv; building with
// the purego tag (or for js) uses the standard library and x/image decoders.
package capture

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	pu "phaseunwrap/pkg/phaseunwrap"
)

// Loader turns one capture on disk into a grid.
type Loader interface {
	Load(path string) (*pu.SampleGrid, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*pu.SampleGrid, error)

func (f LoaderFunc) Load(path string) (*pu.SampleGrid, error) { return f(path) }

// LoadError reports the capture of a sequence that could not be loaded.
type LoadError struct {
	Index int
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("capture %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == pu.ErrMissingInput }

// SequencePath names capture index of a sequence: base + index + ext, e.g.
// SequencePath("scan/gray_pattern_", 3, ".png") is "scan/gray_pattern_3.png".
func SequencePath(base string, index int, ext string) string {
	return base + strconv.Itoa(index) + ext
}

// LoadSequence loads captures 0..n-1 in order and stops at the first one that
// is missing, unreadable or empty.
func LoadSequence(ctx context.Context, l Loader, base, ext string, n int) ([]*pu.SampleGrid, error) {
	grids := make([]*pu.SampleGrid, n)
	for i := range grids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := SequencePath(base, i, ext)
		g, err := l.Load(path)
		if err == nil && g.Empty() {
			err = errors.New("image is empty")
		}
		if err != nil {
			return nil, &LoadError{Index: i, Path: path, Err: err}
		}
		grids[i] = g
	}
	return grids, nil
}

// Options configure a FileLoader.
type Options struct {
	// Bayer treats captures as raw RGGB mosaics and converts them to luminance.
	Bayer  bool
	Logger *zap.SugaredLogger
}

// FileLoader decodes FITS captures itself and every other format with the
// build's image backend.
type FileLoader struct {
	opts Options
}

func NewFileLoader(opts Options) *FileLoader {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	return &FileLoader{opts: opts}
}

func (l *FileLoader) Load(path string) (*pu.SampleGrid, error) {
	decode := decodeFile
	if IsFITSPath(path) {
		decode = loadFITS
	}
	g, err := decode(path)
	if err != nil {
		return nil, err
	}
	if l.opts.Bayer {
		g = DebayerRGGB(g)
	}
	l.opts.Logger.Debugw("capture loaded", "path", path, "width", g.Width(), "height", g.Height(), "backend", backendName)
	return g, nil
}
