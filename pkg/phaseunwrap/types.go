// Package phaseunwrap recovers absolute phase from two sets of three-step
// phase-shifted fringe captures and a stack of Gray-code captures.
package phaseunwrap

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// SampleGrid holds intensities: 0..255 for synthesized and 8-bit captures,
// 0..65535 for 16-bit captures.
type SampleGrid = Grid[uint16]

// WrappedPhaseMap holds phase angles in (-π, π].
type WrappedPhaseMap = Grid[float64]

// FringeOrderMap holds the decoded period index of every pixel, in [0, 2^K).
type FringeOrderMap = Grid[uint32]

// UnwrappedPhaseMap holds absolute phase, wrapped + 2π·order.
type UnwrappedPhaseMap = Grid[float64]

// Stage names used in errors and log fields.
const (
	StageDemodulate = "demodulate"
	StageAverage    = "average"
	StageDecodeGray = "decode-gray"
	StageUnwrap     = "unwrap"
	StagePipeline   = "pipeline"
)

var (
	// ErrDimensionMismatch classifies grids of different sizes combined in one stage.
	ErrDimensionMismatch = errors.New("grid dimension mismatch")
	// ErrMissingInput classifies a required grid that is absent or failed to load.
	ErrMissingInput = errors.New("missing input grid")
)

// DimensionError reports the first grid whose size differs from the stage's reference grid.
type DimensionError struct {
	Stage string
	Index int
	Want  image.Point
	Got   image.Point
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: input %d is %dx%d, want %dx%d",
		e.Stage, e.Index, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

func (e *DimensionError) Is(target error) bool { return target == ErrDimensionMismatch }

// MissingGridError reports a nil grid in a stage's inputs.
type MissingGridError struct {
	Stage string
	Index int
}

func (e *MissingGridError) Error() string {
	return fmt.Sprintf("%s: input %d is missing", e.Stage, e.Index)
}

func (e *MissingGridError) Is(target error) bool { return target == ErrMissingInput }

// sized is satisfied by every Grid instantiation.
type sized interface {
	Size() image.Point
}

// checkSameSize fails on the first nil or differently sized grid. Index i in
// errors refers to the position in grids.
func checkSameSize(stage string, grids ...sized) error {
	var want image.Point
	for i, g := range grids {
		if isNilGrid(g) {
			return &MissingGridError{Stage: stage, Index: i}
		}
		if i == 0 {
			want = g.Size()
			continue
		}
		if got := g.Size(); got != want {
			return &DimensionError{Stage: stage, Index: i, Want: want, Got: got}
		}
	}
	return nil
}

func isNilGrid(g sized) bool {
	switch v := g.(type) {
	case nil:
		return true
	case *SampleGrid:
		return v == nil
	case *WrappedPhaseMap:
		return v == nil
	case *FringeOrderMap:
		return v == nil
	}
	return false
}
